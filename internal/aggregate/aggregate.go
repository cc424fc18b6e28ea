// Package aggregate computes grouped balance and deposit reports over a snapshot.
package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-insights/internal/domain"
	"github.com/go-petr/bank-insights/pkg/datepkg"
)

type customerType struct {
	customerID  int64
	accountType domain.AccountType
}

// BalancePerCustomerAndType sums account balances per (customer, account type),
// ordered by customer id and then account type.
func BalancePerCustomerAndType(s domain.Snapshot) []domain.CustomerTypeBalance {
	totals := make(map[customerType]decimal.Decimal)

	for _, a := range s.Accounts {
		k := customerType{a.CustomerID, a.Type}
		totals[k] = totals[k].Add(a.Balance)
	}

	rows := make([]domain.CustomerTypeBalance, 0, len(totals))
	for k, total := range totals {
		rows = append(rows, domain.CustomerTypeBalance{
			CustomerID:   k.customerID,
			AccountType:  k.accountType,
			TotalBalance: total,
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

// AccountsOpenedWithin returns accounts opened on or after today minus days, joined with
// their owners. Accounts of unknown customers are left out. Rows are ordered by opening
// date and then account id.
func AccountsOpenedWithin(s domain.Snapshot, today time.Time, days int) ([]domain.OpenedAccount, error) {
	if days < 0 {
		return nil, fmt.Errorf("%w: days must be non-negative, got %d", domain.ErrInvalidParameter, days)
	}

	cutoff := datepkg.DaysBefore(today, days)
	customers := s.CustomersByID()

	rows := []domain.OpenedAccount{}

	for _, a := range s.Accounts {
		c, ok := customers[a.CustomerID]
		if !ok || datepkg.Date(a.OpeningDate).Before(cutoff) {
			continue
		}

		rows = append(rows, domain.OpenedAccount{
			AccountID:   a.ID,
			CustomerID:  c.ID,
			FirstName:   c.FirstName,
			LastName:    c.LastName,
			AccountType: a.Type,
			Balance:     a.Balance,
			OpeningDate: a.OpeningDate,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].OpeningDate.Equal(rows[j].OpeningDate) {
			return rows[i].OpeningDate.Before(rows[j].OpeningDate)
		}
		return rows[i].AccountID < rows[j].AccountID
	})

	return rows, nil
}

// TopCustomersByBalance returns the n customers with the largest total balance across
// their accounts. Ties are broken by customer id. Accounts of unknown customers are
// left out.
func TopCustomersByBalance(s domain.Snapshot, n int) ([]domain.CustomerBalance, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n must be at least 1, got %d", domain.ErrInvalidParameter, n)
	}

	customers := s.CustomersByID()
	totals := make(map[int64]decimal.Decimal)

	for _, a := range s.Accounts {
		if _, ok := customers[a.CustomerID]; !ok {
			continue
		}
		totals[a.CustomerID] = totals[a.CustomerID].Add(a.Balance)
	}

	rows := make([]domain.CustomerBalance, 0, len(totals))
	for id, total := range totals {
		c := customers[id]
		rows = append(rows, domain.CustomerBalance{
			CustomerID:   id,
			FirstName:    c.FirstName,
			LastName:     c.LastName,
			TotalBalance: total,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if cmp := rows[i].TotalBalance.Cmp(rows[j].TotalBalance); cmp != 0 {
			return cmp > 0
		}
		return rows[i].CustomerID < rows[j].CustomerID
	})

	if len(rows) > n {
		rows = rows[:n]
	}

	return rows, nil
}

// TotalDepositsWithin sums deposits dated on or after today minus the given number of
// calendar months, per customer.
//
// Every customer owning at least one account is reported, with zero when none of their
// deposits falls in the window. Rows are ordered by total descending, then customer id.
func TotalDepositsWithin(s domain.Snapshot, today time.Time, months int) ([]domain.CustomerDeposits, error) {
	if months < 0 {
		return nil, fmt.Errorf("%w: months must be non-negative, got %d", domain.ErrInvalidParameter, months)
	}

	cutoff := datepkg.MonthsBefore(today, months)
	customers := s.CustomersByID()

	owner := make(map[int64]int64, len(s.Accounts))
	totals := make(map[int64]decimal.Decimal)

	for _, a := range s.Accounts {
		if _, ok := customers[a.CustomerID]; !ok {
			continue
		}
		owner[a.ID] = a.CustomerID
		if _, ok := totals[a.CustomerID]; !ok {
			totals[a.CustomerID] = decimal.Zero
		}
	}

	for _, tx := range s.Transactions {
		customerID, ok := owner[tx.AccountID]
		if !ok || tx.Type != domain.TransactionTypeDeposit || datepkg.Date(tx.Date).Before(cutoff) {
			continue
		}
		totals[customerID] = totals[customerID].Add(tx.Amount)
	}

	rows := make([]domain.CustomerDeposits, 0, len(totals))
	for id, total := range totals {
		c := customers[id]
		rows = append(rows, domain.CustomerDeposits{
			CustomerID:    id,
			FirstName:     c.FirstName,
			LastName:      c.LastName,
			TotalDeposits: total,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if cmp := rows[i].TotalDeposits.Cmp(rows[j].TotalDeposits); cmp != 0 {
			return cmp > 0
		}
		return rows[i].CustomerID < rows[j].CustomerID
	})

	return rows, nil
}
