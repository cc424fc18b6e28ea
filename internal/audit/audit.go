// Package audit runs data quality checks over a snapshot.
//
// Every check is a pure function returning its findings. Bad data is what the checks
// look for, so none of them fails: a check that finds nothing returns an empty slice.
package audit

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-insights/internal/domain"
	"github.com/go-petr/bank-insights/internal/ledger"
)

// Labels used in MissingCustomerData.MissingFields.
const (
	MissingAddress     = "Missing Address"
	MissingDateOfBirth = "Missing Date of Birth"
	MissingZIP         = "Missing ZIP"
)

// Run executes every check against s.
func Run(s domain.Snapshot) domain.AuditReport {
	return domain.AuditReport{
		BalanceMismatches:         BalanceMismatches(s),
		MissingCustomerData:       MissingCustomerData(s),
		DuplicateAccounts:         DuplicateAccounts(s),
		InvalidTransactionTypes:   InvalidTransactionTypes(s),
		NegativeNonCreditBalances: NegativeNonCreditBalances(s),
		NegativeAmounts:           NegativeAmounts(s),
		OrphanTransactions:        OrphanTransactions(s),
		OrphanAccounts:            OrphanAccounts(s),
	}
}

// BalanceMismatches reports accounts whose stored balance differs from the sum of their
// transactions' signed effects. An account without transactions has a calculated
// balance of zero.
func BalanceMismatches(s domain.Snapshot) []domain.BalanceMismatch {
	calculated := ledger.CalculatedBalances(s)

	rows := []domain.BalanceMismatch{}

	for _, a := range s.Accounts {
		c, ok := calculated[a.ID]
		if !ok {
			c = decimal.Zero
		}

		if a.Balance.Equal(c) {
			continue
		}

		rows = append(rows, domain.BalanceMismatch{
			AccountID:         a.ID,
			StoredBalance:     a.Balance,
			CalculatedBalance: c,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].AccountID < rows[j].AccountID })

	return rows
}

// MissingCustomerData reports customers with a NULL address, date of birth or ZIP.
func MissingCustomerData(s domain.Snapshot) []domain.MissingCustomerData {
	rows := []domain.MissingCustomerData{}

	for _, c := range s.Customers {
		var missing []string

		if c.Address == nil {
			missing = append(missing, MissingAddress)
		}
		if c.DateOfBirth == nil {
			missing = append(missing, MissingDateOfBirth)
		}
		if c.ZIP == nil {
			missing = append(missing, MissingZIP)
		}

		if len(missing) == 0 {
			continue
		}

		rows = append(rows, domain.MissingCustomerData{
			CustomerID:    c.ID,
			Name:          c.FullName(),
			MissingFields: strings.Join(missing, ", "),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].CustomerID < rows[j].CustomerID })

	return rows
}

// DuplicateAccounts reports (customer, account type) pairs owning more than one account,
// ordered by customer id and then account type.
func DuplicateAccounts(s domain.Snapshot) []domain.DuplicateAccounts {
	type key struct {
		customerID  int64
		accountType domain.AccountType
	}

	counts := make(map[key]int)
	for _, a := range s.Accounts {
		counts[key{a.CustomerID, a.Type}]++
	}

	rows := []domain.DuplicateAccounts{}

	for k, n := range counts {
		if n < 2 {
			continue
		}

		rows = append(rows, domain.DuplicateAccounts{
			CustomerID:         k.customerID,
			AccountType:        k.accountType,
			NumberOfDuplicates: n,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CustomerID != rows[j].CustomerID {
			return rows[i].CustomerID < rows[j].CustomerID
		}
		return rows[i].AccountType < rows[j].AccountType
	})

	return rows
}

// InvalidTransactionTypes reports transactions whose type is not a known transaction type.
func InvalidTransactionTypes(s domain.Snapshot) []domain.InvalidTransactionType {
	rows := []domain.InvalidTransactionType{}

	for _, tx := range s.Transactions {
		if tx.Type.Valid() {
			continue
		}

		rows = append(rows, domain.InvalidTransactionType{
			TransactionID:   tx.ID,
			AccountID:       tx.AccountID,
			TransactionType: tx.Type,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].TransactionID < rows[j].TransactionID })

	return rows
}

// NegativeNonCreditBalances reports non-credit accounts with a balance below zero.
func NegativeNonCreditBalances(s domain.Snapshot) []domain.NegativeNonCreditBalance {
	rows := []domain.NegativeNonCreditBalance{}

	for _, a := range s.Accounts {
		if a.Type == domain.AccountTypeCredit || !a.Balance.IsNegative() {
			continue
		}

		rows = append(rows, domain.NegativeNonCreditBalance{
			AccountID:   a.ID,
			CustomerID:  a.CustomerID,
			AccountType: a.Type,
			Balance:     a.Balance,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].AccountID < rows[j].AccountID })

	return rows
}

// NegativeAmounts reports transactions recorded with a negative amount.
func NegativeAmounts(s domain.Snapshot) []domain.NegativeAmount {
	rows := []domain.NegativeAmount{}

	for _, tx := range s.Transactions {
		if !tx.Amount.IsNegative() {
			continue
		}

		rows = append(rows, domain.NegativeAmount{
			TransactionID: tx.ID,
			AccountID:     tx.AccountID,
			Amount:        tx.Amount,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].TransactionID < rows[j].TransactionID })

	return rows
}

// OrphanTransactions reports transactions referencing an account that does not exist.
// Reports joining transactions to accounts skip these rows silently.
func OrphanTransactions(s domain.Snapshot) []domain.OrphanTransaction {
	accounts := s.AccountsByID()

	rows := []domain.OrphanTransaction{}

	for _, tx := range s.Transactions {
		if _, ok := accounts[tx.AccountID]; ok {
			continue
		}

		rows = append(rows, domain.OrphanTransaction{
			TransactionID: tx.ID,
			AccountID:     tx.AccountID,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].TransactionID < rows[j].TransactionID })

	return rows
}

// OrphanAccounts reports accounts referencing a customer that does not exist.
func OrphanAccounts(s domain.Snapshot) []domain.OrphanAccount {
	customers := s.CustomersByID()

	rows := []domain.OrphanAccount{}

	for _, a := range s.Accounts {
		if _, ok := customers[a.CustomerID]; ok {
			continue
		}

		rows = append(rows, domain.OrphanAccount{
			AccountID:  a.ID,
			CustomerID: a.CustomerID,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].AccountID < rows[j].AccountID })

	return rows
}
