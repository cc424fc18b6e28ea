package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerTypeBalance is the summed balance of one customer's accounts of one type.
type CustomerTypeBalance struct {
	CustomerID   int64           `json:"customer_id"`
	AccountType  AccountType     `json:"account_type"`
	TotalBalance decimal.Decimal `json:"total_balance"`
}

// OpenedAccount is an account joined with its owner's name.
type OpenedAccount struct {
	AccountID   int64           `json:"account_id"`
	CustomerID  int64           `json:"customer_id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	AccountType AccountType     `json:"account_type"`
	Balance     decimal.Decimal `json:"balance"`
	OpeningDate time.Time       `json:"opening_date"`
}

// CustomerBalance is the total balance of a customer across all accounts.
type CustomerBalance struct {
	CustomerID   int64           `json:"customer_id"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	TotalBalance decimal.Decimal `json:"total_balance"`
}

// CustomerDeposits is the total deposited by a customer inside a window.
type CustomerDeposits struct {
	CustomerID    int64           `json:"customer_id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	TotalDeposits decimal.Decimal `json:"total_deposits"`
}

// LargeWithdrawal is a withdrawal above a threshold joined with account and customer identity.
type LargeWithdrawal struct {
	TransactionID   int64           `json:"transaction_id"`
	TransactionDate time.Time       `json:"transaction_date"`
	Amount          decimal.Decimal `json:"amount"`
	AccountID       int64           `json:"account_id"`
	AccountType     AccountType     `json:"account_type"`
	CustomerID      int64           `json:"customer_id"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
}

// RunningBalance is one transaction with the cumulative signed effect of its account up to it.
type RunningBalance struct {
	AccountID       int64           `json:"account_id"`
	TransactionID   int64           `json:"transaction_id"`
	TransactionDate time.Time       `json:"transaction_date"`
	TransactionType TransactionType `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	SignedAmount    decimal.Decimal `json:"signed_amount"`
	RunningBalance  decimal.Decimal `json:"running_balance"`
}

// CustomerAverages compares a customer's average transaction amount with the average
// balance of the customer's accounts.
type CustomerAverages struct {
	CustomerID           int64           `json:"customer_id"`
	FirstName            string          `json:"first_name"`
	LastName             string          `json:"last_name"`
	AvgTransactionAmount decimal.Decimal `json:"avg_transaction_amount"`
	AvgAccountBalance    decimal.Decimal `json:"avg_account_balance"`
}

// CustomerActivity is the number of transactions made on a customer's accounts.
type CustomerActivity struct {
	CustomerID       int64  `json:"customer_id"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	TransactionCount int    `json:"transaction_count"`
}
