package test

import (
	"context"
	"testing"

	"github.com/go-petr/bank-insights/internal/domain"
	"github.com/go-petr/bank-insights/pkg/dbpkg"
)

const seedCustomerQuery = `
INSERT INTO
    customers (customer_id, first_name, last_name, address, date_of_birth, zip)
VALUES
    ($1, $2, $3, $4, $5, $6)
`

// SeedCustomer inserts the customer inside a test transaction.
func SeedCustomer(t *testing.T, tx dbpkg.SQLInterface, c domain.Customer) domain.Customer {
	t.Helper()

	_, err := tx.ExecContext(context.Background(), seedCustomerQuery,
		c.ID, c.FirstName, c.LastName, c.Address, c.DateOfBirth, c.ZIP)
	if err != nil {
		t.Fatalf("SeedCustomer(%+v) returned error: %v", c, err)
	}

	return c
}

const seedAccountQuery = `
INSERT INTO
    accounts (account_id, customer_id, account_type, balance, opening_date)
VALUES
    ($1, $2, $3, $4, $5)
`

// SeedAccount inserts the account inside a test transaction.
func SeedAccount(t *testing.T, tx dbpkg.SQLInterface, a domain.Account) domain.Account {
	t.Helper()

	_, err := tx.ExecContext(context.Background(), seedAccountQuery,
		a.ID, a.CustomerID, string(a.Type), a.Balance, a.OpeningDate)
	if err != nil {
		t.Fatalf("SeedAccount(%+v) returned error: %v", a, err)
	}

	return a
}

const seedTransactionQuery = `
INSERT INTO
    transactions (transaction_id, account_id, transaction_date, transaction_type, amount)
VALUES
    ($1, $2, $3, $4, $5)
`

// SeedTransaction inserts the transaction inside a test transaction.
func SeedTransaction(t *testing.T, tx dbpkg.SQLInterface, tr domain.Transaction) domain.Transaction {
	t.Helper()

	_, err := tx.ExecContext(context.Background(), seedTransactionQuery,
		tr.ID, tr.AccountID, tr.Date, string(tr.Type), tr.Amount)
	if err != nil {
		t.Fatalf("SeedTransaction(%+v) returned error: %v", tr, err)
	}

	return tr
}

// SeedSnapshot inserts every row of s inside a test transaction.
func SeedSnapshot(t *testing.T, tx dbpkg.SQLInterface, s domain.Snapshot) {
	t.Helper()

	for _, c := range s.Customers {
		SeedCustomer(t, tx, c)
	}

	for _, a := range s.Accounts {
		SeedAccount(t, tx, a)
	}

	for _, tr := range s.Transactions {
		SeedTransaction(t, tx, tr)
	}
}
