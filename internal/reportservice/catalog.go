package reportservice

import (
	"fmt"
	"time"

	"github.com/go-petr/bank-insights/internal/aggregate"
	"github.com/go-petr/bank-insights/internal/audit"
	"github.com/go-petr/bank-insights/internal/domain"
	"github.com/go-petr/bank-insights/internal/ledger"
)

// Report names.
const (
	BalancePerCustomerType  = "balance-per-customer-type"
	AccountsOpenedWithin    = "accounts-opened-within"
	TopCustomersByBalance   = "top-customers-by-balance"
	TotalDepositsWithin     = "total-deposits-within"
	LargeWithdrawalsWithin  = "large-withdrawals-within"
	RunningBalance          = "running-balance"
	AvgTransactionVsBalance = "avg-transaction-vs-balance"
	MostFrequentCustomer    = "most-frequent-customer"

	AuditBalanceMismatch          = "audit-balance-mismatch"
	AuditMissingCustomerData      = "audit-missing-customer-data"
	AuditDuplicateAccounts        = "audit-duplicate-accounts"
	AuditInvalidTransactionType   = "audit-invalid-transaction-type"
	AuditNegativeNonCreditBalance = "audit-negative-non-credit"
	AuditNegativeAmount           = "audit-negative-amount"
	AuditOrphanTransactions       = "audit-orphan-transactions"
	AuditOrphanAccounts           = "audit-orphan-accounts"
)

type runFunc func(s domain.Snapshot, today time.Time, p domain.ReportParams) (any, int, error)

type report struct {
	info     domain.ReportInfo
	validate func(p domain.ReportParams) error
	run      runFunc
}

func rows[T any](r []T, err error) (any, int, error) {
	if err != nil {
		return nil, 0, err
	}

	return r, len(r), nil
}

func noParams(domain.ReportParams) error { return nil }

func validDays(p domain.ReportParams) error {
	if p.Days < 0 {
		return fmt.Errorf("%w: days must be non-negative, got %d", domain.ErrInvalidParameter, p.Days)
	}
	return nil
}

func validMonths(p domain.ReportParams) error {
	if p.Months < 0 {
		return fmt.Errorf("%w: months must be non-negative, got %d", domain.ErrInvalidParameter, p.Months)
	}
	return nil
}

func validN(p domain.ReportParams) error {
	if p.N < 1 {
		return fmt.Errorf("%w: n must be at least 1, got %d", domain.ErrInvalidParameter, p.N)
	}
	return nil
}

func validWithdrawal(p domain.ReportParams) error {
	if p.Threshold.IsNegative() {
		return fmt.Errorf("%w: threshold must be non-negative, got %s", domain.ErrInvalidParameter, p.Threshold)
	}
	return validDays(p)
}

func validAccountID(p domain.ReportParams) error {
	if p.AccountID < 0 {
		return fmt.Errorf("%w: account_id must be non-negative, got %d", domain.ErrInvalidParameter, p.AccountID)
	}
	return nil
}

var catalog = []report{
	{
		info: domain.ReportInfo{
			Name:        BalancePerCustomerType,
			Description: "Total balance per customer and account type",
		},
		validate: noParams,
		run: func(s domain.Snapshot, _ time.Time, _ domain.ReportParams) (any, int, error) {
			return rows(aggregate.BalancePerCustomerAndType(s), nil)
		},
	},
	{
		info: domain.ReportInfo{
			Name:        AccountsOpenedWithin,
			Description: "Accounts opened in the last N days with their owners",
			Params:      []string{"days"},
		},
		validate: validDays,
		run: func(s domain.Snapshot, today time.Time, p domain.ReportParams) (any, int, error) {
			r, err := aggregate.AccountsOpenedWithin(s, today, p.Days)
			return rows(r, err)
		},
	},
	{
		info: domain.ReportInfo{
			Name:        TopCustomersByBalance,
			Description: "Top N customers by total balance across their accounts",
			Params:      []string{"n"},
		},
		validate: validN,
		run: func(s domain.Snapshot, _ time.Time, p domain.ReportParams) (any, int, error) {
			r, err := aggregate.TopCustomersByBalance(s, p.N)
			return rows(r, err)
		},
	},
	{
		info: domain.ReportInfo{
			Name:        TotalDepositsWithin,
			Description: "Total deposits per customer in the last N calendar months",
			Params:      []string{"months"},
		},
		validate: validMonths,
		run: func(s domain.Snapshot, today time.Time, p domain.ReportParams) (any, int, error) {
			r, err := aggregate.TotalDepositsWithin(s, today, p.Months)
			return rows(r, err)
		},
	},
	{
		info: domain.ReportInfo{
			Name:        LargeWithdrawalsWithin,
			Description: "Withdrawals above a threshold in the last N days",
			Params:      []string{"threshold", "days"},
		},
		validate: validWithdrawal,
		run: func(s domain.Snapshot, today time.Time, p domain.ReportParams) (any, int, error) {
			r, err := ledger.LargeWithdrawalsWithin(s, today, p.Threshold, p.Days)
			return rows(r, err)
		},
	},
	{
		info: domain.ReportInfo{
			Name:        RunningBalance,
			Description: "Running balance per account in chronological order",
			Params:      []string{"account_id"},
		},
		validate: validAccountID,
		run: func(s domain.Snapshot, _ time.Time, p domain.ReportParams) (any, int, error) {
			return rows(ledger.RunningBalance(s, p.AccountID), nil)
		},
	},
	{
		info: domain.ReportInfo{
			Name:        AvgTransactionVsBalance,
			Description: "Average transaction amount in the last N calendar months against average account balance",
			Params:      []string{"months"},
		},
		validate: validMonths,
		run: func(s domain.Snapshot, today time.Time, p domain.ReportParams) (any, int, error) {
			r, err := ledger.AvgTransactionVsAvgBalance(s, today, p.Months)
			return rows(r, err)
		},
	},
	{
		info: domain.ReportInfo{
			Name:        MostFrequentCustomer,
			Description: "Customer with the most transactions",
		},
		validate: noParams,
		run: func(s domain.Snapshot, _ time.Time, _ domain.ReportParams) (any, int, error) {
			return rows(ledger.MostFrequentCustomer(s), nil)
		},
	},
	auditCheck(AuditBalanceMismatch, "Accounts whose stored balance differs from the sum of their transactions",
		func(s domain.Snapshot) (any, int, error) { return rows(audit.BalanceMismatches(s), nil) }),
	auditCheck(AuditMissingCustomerData, "Customers with a missing address, date of birth or ZIP",
		func(s domain.Snapshot) (any, int, error) { return rows(audit.MissingCustomerData(s), nil) }),
	auditCheck(AuditDuplicateAccounts, "Customers owning several accounts of the same type",
		func(s domain.Snapshot) (any, int, error) { return rows(audit.DuplicateAccounts(s), nil) }),
	auditCheck(AuditInvalidTransactionType, "Transactions with an unknown type",
		func(s domain.Snapshot) (any, int, error) { return rows(audit.InvalidTransactionTypes(s), nil) }),
	auditCheck(AuditNegativeNonCreditBalance, "Non-credit accounts with a negative balance",
		func(s domain.Snapshot) (any, int, error) { return rows(audit.NegativeNonCreditBalances(s), nil) }),
	auditCheck(AuditNegativeAmount, "Transactions recorded with a negative amount",
		func(s domain.Snapshot) (any, int, error) { return rows(audit.NegativeAmounts(s), nil) }),
	auditCheck(AuditOrphanTransactions, "Transactions referencing a missing account",
		func(s domain.Snapshot) (any, int, error) { return rows(audit.OrphanTransactions(s), nil) }),
	auditCheck(AuditOrphanAccounts, "Accounts referencing a missing customer",
		func(s domain.Snapshot) (any, int, error) { return rows(audit.OrphanAccounts(s), nil) }),
}

func auditCheck(name, description string, check func(domain.Snapshot) (any, int, error)) report {
	return report{
		info:     domain.ReportInfo{Name: name, Description: description},
		validate: noParams,
		run: func(s domain.Snapshot, _ time.Time, _ domain.ReportParams) (any, int, error) {
			return check(s)
		},
	}
}

var byName = func() map[string]report {
	m := make(map[string]report, len(catalog))
	for _, r := range catalog {
		m[r.info.Name] = r
	}
	return m
}()

func lookup(name string) (report, error) {
	r, ok := byName[name]
	if !ok {
		return report{}, fmt.Errorf("%w: %q", domain.ErrUnknownReport, name)
	}

	return r, nil
}
