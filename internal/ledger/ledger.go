// Package ledger analyzes transactions per account: signed effects, running balances
// and per-customer activity.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-insights/internal/domain"
	"github.com/go-petr/bank-insights/pkg/datepkg"
)

// LargeWithdrawalsWithin returns withdrawals above threshold dated on or after today minus
// days, joined with account and customer identity. Transactions whose account or customer
// is missing are left out. Rows are ordered by transaction date and then transaction id.
func LargeWithdrawalsWithin(s domain.Snapshot, today time.Time, threshold decimal.Decimal, days int) ([]domain.LargeWithdrawal, error) {
	if days < 0 {
		return nil, fmt.Errorf("%w: days must be non-negative, got %d", domain.ErrInvalidParameter, days)
	}

	if threshold.IsNegative() {
		return nil, fmt.Errorf("%w: threshold must be non-negative, got %s", domain.ErrInvalidParameter, threshold)
	}

	cutoff := datepkg.DaysBefore(today, days)
	accounts := s.AccountsByID()
	customers := s.CustomersByID()

	rows := []domain.LargeWithdrawal{}

	for _, tx := range s.Transactions {
		if tx.Type != domain.TransactionTypeWithdrawal ||
			!tx.Amount.GreaterThan(threshold) ||
			datepkg.Date(tx.Date).Before(cutoff) {
			continue
		}

		a, ok := accounts[tx.AccountID]
		if !ok {
			continue
		}

		c, ok := customers[a.CustomerID]
		if !ok {
			continue
		}

		rows = append(rows, domain.LargeWithdrawal{
			TransactionID:   tx.ID,
			TransactionDate: tx.Date,
			Amount:          tx.Amount,
			AccountID:       a.ID,
			AccountType:     a.Type,
			CustomerID:      c.ID,
			FirstName:       c.FirstName,
			LastName:        c.LastName,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].TransactionDate.Equal(rows[j].TransactionDate) {
			return rows[i].TransactionDate.Before(rows[j].TransactionDate)
		}
		return rows[i].TransactionID < rows[j].TransactionID
	})

	return rows, nil
}

// chronological orders transactions by account, date and id.
func chronological(txs []domain.Transaction) []domain.Transaction {
	sorted := make([]domain.Transaction, len(txs))
	copy(sorted, txs)

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.AccountID != b.AccountID {
			return a.AccountID < b.AccountID
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	})

	return sorted
}

// RunningBalance returns, for every account with transactions, its transactions in
// chronological order together with the cumulative signed effect up to and including each
// one. Rows are grouped by account id ascending. A non-zero accountID restricts the output
// to that account.
func RunningBalance(s domain.Snapshot, accountID int64) []domain.RunningBalance {
	txs := s.Transactions

	if accountID != 0 {
		txs = make([]domain.Transaction, 0)
		for _, tx := range s.Transactions {
			if tx.AccountID == accountID {
				txs = append(txs, tx)
			}
		}
	}

	sorted := chronological(txs)
	rows := make([]domain.RunningBalance, 0, len(sorted))

	var (
		current int64
		running decimal.Decimal
	)

	for i, tx := range sorted {
		if i == 0 || tx.AccountID != current {
			current = tx.AccountID
			running = decimal.Zero
		}

		effect := tx.SignedEffect()
		running = running.Add(effect)

		rows = append(rows, domain.RunningBalance{
			AccountID:       tx.AccountID,
			TransactionID:   tx.ID,
			TransactionDate: tx.Date,
			TransactionType: tx.Type,
			Amount:          tx.Amount,
			SignedAmount:    effect,
			RunningBalance:  running,
		})
	}

	return rows
}

// CalculatedBalances returns the full-history sum of signed effects per account id.
// Accounts without transactions are absent from the map.
func CalculatedBalances(s domain.Snapshot) map[int64]decimal.Decimal {
	balances := make(map[int64]decimal.Decimal)

	for _, tx := range s.Transactions {
		balances[tx.AccountID] = balances[tx.AccountID].Add(tx.SignedEffect())
	}

	return balances
}

// AvgTransactionVsAvgBalance compares, per customer, the average amount of the
// transactions dated on or after today minus the given number of calendar months with the
// average balance of all the customer's accounts.
//
// Customers without transactions in the window are left out. Averages are rounded to two
// decimal places. Rows are ordered by customer id.
func AvgTransactionVsAvgBalance(s domain.Snapshot, today time.Time, months int) ([]domain.CustomerAverages, error) {
	if months < 0 {
		return nil, fmt.Errorf("%w: months must be non-negative, got %d", domain.ErrInvalidParameter, months)
	}

	cutoff := datepkg.MonthsBefore(today, months)
	customers := s.CustomersByID()

	type sums struct {
		total decimal.Decimal
		count int64
	}

	owner := make(map[int64]int64, len(s.Accounts))
	balances := make(map[int64]*sums)

	for _, a := range s.Accounts {
		if _, ok := customers[a.CustomerID]; !ok {
			continue
		}

		owner[a.ID] = a.CustomerID

		b, ok := balances[a.CustomerID]
		if !ok {
			b = &sums{}
			balances[a.CustomerID] = b
		}

		b.total = b.total.Add(a.Balance)
		b.count++
	}

	amounts := make(map[int64]*sums)

	for _, tx := range s.Transactions {
		customerID, ok := owner[tx.AccountID]
		if !ok || datepkg.Date(tx.Date).Before(cutoff) {
			continue
		}

		a, ok := amounts[customerID]
		if !ok {
			a = &sums{}
			amounts[customerID] = a
		}

		a.total = a.total.Add(tx.Amount)
		a.count++
	}

	rows := make([]domain.CustomerAverages, 0, len(amounts))

	for id, a := range amounts {
		c := customers[id]
		b := balances[id]

		rows = append(rows, domain.CustomerAverages{
			CustomerID:           id,
			FirstName:            c.FirstName,
			LastName:             c.LastName,
			AvgTransactionAmount: a.total.DivRound(decimal.NewFromInt(a.count), 2),
			AvgAccountBalance:    b.total.DivRound(decimal.NewFromInt(b.count), 2),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CustomerID < rows[j].CustomerID
	})

	return rows, nil
}

// MostFrequentCustomer returns the customer with the most transactions across all their
// accounts, ties broken by the lowest customer id. The result is empty when no
// transaction can be attributed to a known customer.
func MostFrequentCustomer(s domain.Snapshot) []domain.CustomerActivity {
	customers := s.CustomersByID()

	owner := make(map[int64]int64, len(s.Accounts))
	for _, a := range s.Accounts {
		if _, ok := customers[a.CustomerID]; ok {
			owner[a.ID] = a.CustomerID
		}
	}

	counts := make(map[int64]int)
	for _, tx := range s.Transactions {
		if customerID, ok := owner[tx.AccountID]; ok {
			counts[customerID]++
		}
	}

	var (
		best  int64
		count int
	)

	for id, n := range counts {
		if n > count || (n == count && id < best) {
			best, count = id, n
		}
	}

	if count == 0 {
		return []domain.CustomerActivity{}
	}

	c := customers[best]

	return []domain.CustomerActivity{{
		CustomerID:       best,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		TransactionCount: count,
	}}
}
