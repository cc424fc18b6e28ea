// Package test provides shared test helpers.
package test

import (
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-insights/internal/domain"
)

// EquateDecimals is a cmp option comparing decimals by value, so 80 equals 80.00.
var EquateDecimals = cmp.Comparer(func(x, y decimal.Decimal) bool {
	return x.Equal(y)
})

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Dec parses a decimal literal and panics on malformed input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Str returns a pointer to s.
func Str(s string) *string {
	return &s
}

// Time returns a pointer to t.
func Time(t time.Time) *time.Time {
	return &t
}

// Customer returns a customer with every optional field populated.
func Customer(id int64, firstName, lastName string) domain.Customer {
	return domain.Customer{
		ID:          id,
		FirstName:   firstName,
		LastName:    lastName,
		Address:     Str("1 Main Street"),
		DateOfBirth: Time(Day(1990, time.January, 1)),
		ZIP:         Str("10001"),
	}
}

// Account returns an account opened on 2020-01-01.
func Account(id, customerID int64, accountType domain.AccountType, balance string) domain.Account {
	return domain.Account{
		ID:          id,
		CustomerID:  customerID,
		Type:        accountType,
		Balance:     Dec(balance),
		OpeningDate: Day(2020, time.January, 1),
	}
}

// Transaction returns a transaction on the given account.
func Transaction(id, accountID int64, date time.Time, txType domain.TransactionType, amount string) domain.Transaction {
	return domain.Transaction{
		ID:        id,
		AccountID: accountID,
		Date:      date,
		Type:      txType,
		Amount:    Dec(amount),
	}
}
