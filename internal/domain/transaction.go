package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction.
type TransactionType string

// Valid transaction types. Any other value is invalid.
const (
	TransactionTypeDeposit    TransactionType = "Deposit"
	TransactionTypeWithdrawal TransactionType = "Withdrawal"
	TransactionTypePayment    TransactionType = "Payment"
	TransactionTypeTransfer   TransactionType = "Transfer"
)

// TransactionTypes holds all the valid transaction types.
var TransactionTypes = []TransactionType{
	TransactionTypeDeposit,
	TransactionTypeWithdrawal,
	TransactionTypePayment,
	TransactionTypeTransfer,
}

// Valid returns true if t is one of TransactionTypes. The comparison is case sensitive.
func (t TransactionType) Valid() bool {
	for _, v := range TransactionTypes {
		if v == t {
			return true
		}
	}

	return false
}

// Transaction holds a single money movement on an account.
type Transaction struct {
	ID        int64           `json:"transaction_id"`
	AccountID int64           `json:"account_id"`
	Date      time.Time       `json:"transaction_date"`
	Type      TransactionType `json:"transaction_type"`
	Amount    decimal.Decimal `json:"amount"` // expected non-negative
}

// SignedEffect returns the contribution of the transaction to its account balance:
// +amount for deposits, -amount for withdrawals, payments and transfers, zero otherwise.
func (t Transaction) SignedEffect() decimal.Decimal {
	switch t.Type {
	case TransactionTypeDeposit:
		return t.Amount
	case TransactionTypeWithdrawal, TransactionTypePayment, TransactionTypeTransfer:
		return t.Amount.Neg()
	default:
		return decimal.Zero
	}
}
