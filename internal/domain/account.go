package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account. Only AccountTypeCredit may carry a negative balance.
type AccountType string

// Known account types.
const (
	AccountTypeCredit   AccountType = "Credit"
	AccountTypeSavings  AccountType = "Savings"
	AccountTypeChecking AccountType = "Checking"
)

// Account holds the stored balance of one customer account.
type Account struct {
	ID          int64           `json:"account_id"`
	CustomerID  int64           `json:"customer_id"`
	Type        AccountType     `json:"account_type"`
	Balance     decimal.Decimal `json:"balance"`
	OpeningDate time.Time       `json:"opening_date"`
}
