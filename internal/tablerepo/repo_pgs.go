// Package tablerepo loads the customers, accounts and transactions tables into a snapshot.
package tablerepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/go-petr/bank-insights/internal/domain"
	"github.com/go-petr/bank-insights/pkg/dbpkg"
	"github.com/go-petr/bank-insights/pkg/errorspkg"
)

// RepoPGS reads the source tables from Postgres.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns RepoPGS reading through the given db handle, typically a transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns RepoPGS with connection to start read-only transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

// Load reads all three tables.
//
// With a connection the reads run in one read-only repeatable-read transaction, so the
// three tables come from the same database snapshot.
func (r *RepoPGS) Load(ctx context.Context) (domain.Snapshot, error) {
	l := zerolog.Ctx(ctx)

	if r.conn == nil {
		return load(ctx, r)
	}

	tx, err := r.conn.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Snapshot{}, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	s, err := load(ctx, NewTxRepoPGS(tx))
	if err != nil {
		return s, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Snapshot{}, errorspkg.ErrInternal
	}

	return s, nil
}

func load(ctx context.Context, r *RepoPGS) (domain.Snapshot, error) {
	var (
		s   domain.Snapshot
		err error
	)

	if s.Customers, err = r.ListCustomers(ctx); err != nil {
		return domain.Snapshot{}, err
	}

	if s.Accounts, err = r.ListAccounts(ctx); err != nil {
		return domain.Snapshot{}, err
	}

	if s.Transactions, err = r.ListTransactions(ctx); err != nil {
		return domain.Snapshot{}, err
	}

	return s, nil
}

const listCustomersQuery = `
SELECT
	customer_id, first_name, last_name, address, date_of_birth, zip
FROM customers
ORDER BY customer_id
`

// ListCustomers returns every customer ordered by id.
func (r *RepoPGS) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listCustomersQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Customer{}

	for rows.Next() {
		var (
			c       domain.Customer
			address sql.NullString
			dob     sql.NullTime
			zip     sql.NullString
		)

		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &address, &dob, &zip); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		if address.Valid {
			c.Address = &address.String
		}
		if dob.Valid {
			c.DateOfBirth = &dob.Time
		}
		if zip.Valid {
			c.ZIP = &zip.String
		}

		items = append(items, c)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const listAccountsQuery = `
SELECT
	account_id, customer_id, account_type, balance, opening_date
FROM accounts
ORDER BY account_id
`

// ListAccounts returns every account ordered by id.
func (r *RepoPGS) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listAccountsQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.CustomerID, &a.Type, &a.Balance, &a.OpeningDate); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const listTransactionsQuery = `
SELECT
	transaction_id, account_id, transaction_date, transaction_type, amount
FROM transactions
ORDER BY transaction_id
`

// ListTransactions returns every transaction ordered by id.
func (r *RepoPGS) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listTransactionsQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Date, &t.Type, &t.Amount); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
