package tablerepo

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-insights/internal/domain"
	"github.com/go-petr/bank-insights/pkg/datepkg"
	"github.com/go-petr/bank-insights/pkg/errorspkg"
)

// File names read by RepoCSV inside its directory.
const (
	CustomersFile    = "customers.csv"
	AccountsFile     = "accounts.csv"
	TransactionsFile = "transactions.csv"
)

// RepoCSV reads the source tables from a directory of CSV exports.
//
// Each file starts with a header row; columns are matched by name, so their order does not
// matter and unknown columns are ignored. An empty cell or NULL marks a missing value.
type RepoCSV struct {
	dir string
}

// NewRepoCSV returns RepoCSV reading from dir.
func NewRepoCSV(dir string) *RepoCSV {
	return &RepoCSV{dir: dir}
}

// Load reads all three files.
func (r *RepoCSV) Load(ctx context.Context) (domain.Snapshot, error) {
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

// ListCustomers parses customers.csv.
func (r *RepoCSV) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	items := []domain.Customer{}

	err := r.read(ctx, CustomersFile,
		[]string{"customer_id", "first_name", "last_name", "address", "date_of_birth", "zip"},
		func(rec record) error {
			var c domain.Customer

			id, err := rec.int64("customer_id")
			if err != nil {
				return err
			}

			dob, err := rec.optionalDate("date_of_birth")
			if err != nil {
				return err
			}

			c.ID = id
			c.FirstName = rec.str("first_name")
			c.LastName = rec.str("last_name")
			c.Address = rec.optionalStr("address")
			c.DateOfBirth = dob
			c.ZIP = rec.optionalStr("zip")

			items = append(items, c)

			return nil
		})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// ListAccounts parses accounts.csv.
func (r *RepoCSV) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	items := []domain.Account{}

	err := r.read(ctx, AccountsFile,
		[]string{"account_id", "customer_id", "account_type", "balance", "opening_date"},
		func(rec record) error {
			var (
				a   domain.Account
				err error
			)

			if a.ID, err = rec.int64("account_id"); err != nil {
				return err
			}
			if a.CustomerID, err = rec.int64("customer_id"); err != nil {
				return err
			}
			if a.Balance, err = rec.decimal("balance"); err != nil {
				return err
			}
			if a.OpeningDate, err = rec.date("opening_date"); err != nil {
				return err
			}

			a.Type = domain.AccountType(rec.str("account_type"))

			items = append(items, a)

			return nil
		})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// ListTransactions parses transactions.csv.
func (r *RepoCSV) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	items := []domain.Transaction{}

	err := r.read(ctx, TransactionsFile,
		[]string{"transaction_id", "account_id", "transaction_date", "transaction_type", "amount"},
		func(rec record) error {
			var (
				t   domain.Transaction
				err error
			)

			if t.ID, err = rec.int64("transaction_id"); err != nil {
				return err
			}
			if t.AccountID, err = rec.int64("account_id"); err != nil {
				return err
			}
			if t.Date, err = rec.date("transaction_date"); err != nil {
				return err
			}
			if t.Amount, err = rec.decimal("amount"); err != nil {
				return err
			}

			t.Type = domain.TransactionType(rec.str("transaction_type"))

			items = append(items, t)

			return nil
		})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// read streams the rows of one file into fn. Parse failures are returned as
// domain.ErrMalformedTable naming the file and line; IO failures as errorspkg.ErrInternal.
func (r *RepoCSV) read(ctx context.Context, name string, columns []string, fn func(record) error) error {
	l := zerolog.Ctx(ctx)

	path := filepath.Join(r.dir, name)

	f, err := os.Open(path)
	if err != nil {
		l.Error().Err(err).Str("file", path).Send()
		return errorspkg.ErrInternal
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		l.Info().Err(err).Str("file", path).Msg("cannot read header")
		return fmt.Errorf("%w: %s: missing header", domain.ErrMalformedTable, name)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}

	for _, c := range columns {
		if _, ok := index[c]; !ok {
			return fmt.Errorf("%w: %s: missing column %q", domain.ErrMalformedTable, name, c)
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			l.Info().Err(err).Str("file", path).Send()
			return fmt.Errorf("%w: %s: %v", domain.ErrMalformedTable, name, err)
		}

		line, _ := cr.FieldPos(0)

		if err := fn(record{index: index, fields: fields}); err != nil {
			return fmt.Errorf("%w: %s line %d: %v", domain.ErrMalformedTable, name, line, err)
		}
	}
}

type record struct {
	index  map[string]int
	fields []string
}

func (r record) str(column string) string {
	i := r.index[column]
	if i >= len(r.fields) {
		return ""
	}

	return strings.TrimSpace(r.fields[i])
}

func (r record) optionalStr(column string) *string {
	v := r.str(column)
	if isNull(v) {
		return nil
	}

	return &v
}

func (r record) int64(column string) (int64, error) {
	v, err := strconv.ParseInt(r.str(column), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", column, err)
	}

	return v, nil
}

func (r record) decimal(column string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(r.str(column))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("column %s: %w", column, err)
	}

	return v, nil
}

func (r record) date(column string) (time.Time, error) {
	v, err := datepkg.Parse(r.str(column))
	if err != nil {
		return time.Time{}, fmt.Errorf("column %s: %w", column, err)
	}

	return v, nil
}

func (r record) optionalDate(column string) (*time.Time, error) {
	if isNull(r.str(column)) {
		return nil, nil
	}

	v, err := r.date(column)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

func isNull(v string) bool {
	return v == "" || strings.EqualFold(v, "null")
}
