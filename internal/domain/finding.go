package domain

import "github.com/shopspring/decimal"

// BalanceMismatch is an account whose stored balance differs from its calculated balance.
type BalanceMismatch struct {
	AccountID         int64           `json:"account_id"`
	StoredBalance     decimal.Decimal `json:"stored_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
}

// MissingCustomerData is a customer with at least one NULL optional field.
type MissingCustomerData struct {
	CustomerID    int64  `json:"customer_id"`
	Name          string `json:"name"`
	MissingFields string `json:"missing_fields"`
}

// DuplicateAccounts is a (customer, account type) pair owning more than one account.
type DuplicateAccounts struct {
	CustomerID         int64       `json:"customer_id"`
	AccountType        AccountType `json:"account_type"`
	NumberOfDuplicates int         `json:"number_of_duplicates"`
}

// InvalidTransactionType is a transaction whose type is not one of TransactionTypes.
type InvalidTransactionType struct {
	TransactionID   int64           `json:"transaction_id"`
	AccountID       int64           `json:"account_id"`
	TransactionType TransactionType `json:"transaction_type"`
}

// NegativeNonCreditBalance is a non-credit account with a balance below zero.
type NegativeNonCreditBalance struct {
	AccountID   int64           `json:"account_id"`
	CustomerID  int64           `json:"customer_id"`
	AccountType AccountType     `json:"account_type"`
	Balance     decimal.Decimal `json:"balance"`
}

// NegativeAmount is a transaction recorded with a negative amount.
type NegativeAmount struct {
	TransactionID int64           `json:"transaction_id"`
	AccountID     int64           `json:"account_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// OrphanTransaction is a transaction that references a nonexistent account.
type OrphanTransaction struct {
	TransactionID int64 `json:"transaction_id"`
	AccountID     int64 `json:"account_id"`
}

// OrphanAccount is an account that references a nonexistent customer.
type OrphanAccount struct {
	AccountID  int64 `json:"account_id"`
	CustomerID int64 `json:"customer_id"`
}

// AuditReport holds the findings of every data quality check run against one snapshot.
type AuditReport struct {
	BalanceMismatches         []BalanceMismatch          `json:"balance_mismatches"`
	MissingCustomerData       []MissingCustomerData      `json:"missing_customer_data"`
	DuplicateAccounts         []DuplicateAccounts        `json:"duplicate_accounts"`
	InvalidTransactionTypes   []InvalidTransactionType   `json:"invalid_transaction_types"`
	NegativeNonCreditBalances []NegativeNonCreditBalance `json:"negative_non_credit_balances"`
	NegativeAmounts           []NegativeAmount           `json:"negative_amounts"`
	OrphanTransactions        []OrphanTransaction        `json:"orphan_transactions"`
	OrphanAccounts            []OrphanAccount            `json:"orphan_accounts"`
}

// Total returns the number of findings across all checks.
func (r AuditReport) Total() int {
	return len(r.BalanceMismatches) +
		len(r.MissingCustomerData) +
		len(r.DuplicateAccounts) +
		len(r.InvalidTransactionTypes) +
		len(r.NegativeNonCreditBalances) +
		len(r.NegativeAmounts) +
		len(r.OrphanTransactions) +
		len(r.OrphanAccounts)
}
