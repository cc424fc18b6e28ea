package ledger

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/bank-insights/internal/domain"
	"github.com/go-petr/bank-insights/internal/test"
)

var today = test.Day(2024, time.June, 15)

func testSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Customers: []domain.Customer{
			test.Customer(1, "Ada", "Lovelace"),
			test.Customer(2, "Alan", "Turing"),
			test.Customer(3, "Grace", "Hopper"),
		},
		Accounts: []domain.Account{
			test.Account(10, 1, domain.AccountTypeSavings, "100"),
			test.Account(11, 1, domain.AccountTypeChecking, "300"),
			test.Account(20, 2, domain.AccountTypeChecking, "50"),
			test.Account(30, 3, domain.AccountTypeSavings, "10"),
		},
		Transactions: []domain.Transaction{
			test.Transaction(7, 10, test.Day(2024, time.June, 10), domain.TransactionTypeWithdrawal, "30"),
			test.Transaction(3, 10, test.Day(2024, time.June, 10), domain.TransactionTypeDeposit, "100"),
			test.Transaction(1, 10, test.Day(2024, time.June, 1), domain.TransactionTypeDeposit, "20"),
			test.Transaction(5, 10, test.Day(2024, time.June, 11), domain.TransactionType("Refund"), "999"),
			test.Transaction(2, 11, test.Day(2024, time.June, 12), domain.TransactionTypeWithdrawal, "600"),
			test.Transaction(4, 20, test.Day(2024, time.June, 1), domain.TransactionTypeWithdrawal, "1500"),
			test.Transaction(6, 20, test.Day(2024, time.May, 20), domain.TransactionTypeWithdrawal, "2000"),
			test.Transaction(8, 20, test.Day(2024, time.June, 14), domain.TransactionTypePayment, "5000"),
			test.Transaction(9, 77, test.Day(2024, time.June, 14), domain.TransactionTypeWithdrawal, "9000"),
		},
	}
}

func TestLargeWithdrawalsWithin(t *testing.T) {
	got, err := LargeWithdrawalsWithin(testSnapshot(), today, test.Dec("500"), 20)
	require.NoError(t, err)

	// Cutoff is 2024-05-26: transaction 6 is too old, 8 is a payment, 9 has no account.
	want := []domain.LargeWithdrawal{
		{
			TransactionID: 4, TransactionDate: test.Day(2024, time.June, 1), Amount: test.Dec("1500"),
			AccountID: 20, AccountType: domain.AccountTypeChecking,
			CustomerID: 2, FirstName: "Alan", LastName: "Turing",
		},
		{
			TransactionID: 2, TransactionDate: test.Day(2024, time.June, 12), Amount: test.Dec("600"),
			AccountID: 11, AccountType: domain.AccountTypeChecking,
			CustomerID: 1, FirstName: "Ada", LastName: "Lovelace",
		},
	}

	if diff := cmp.Diff(want, got, test.EquateDecimals); diff != "" {
		t.Errorf("LargeWithdrawalsWithin() mismatch (-want +got):\n%s", diff)
	}
}

func TestLargeWithdrawalsWithinThresholdIsExclusive(t *testing.T) {
	got, err := LargeWithdrawalsWithin(testSnapshot(), today, test.Dec("600"), 20)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(4), got[0].TransactionID)
}

func TestLargeWithdrawalsWithinInvalidParams(t *testing.T) {
	_, err := LargeWithdrawalsWithin(testSnapshot(), today, test.Dec("500"), -1)
	require.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = LargeWithdrawalsWithin(testSnapshot(), today, test.Dec("-1"), 10)
	require.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestRunningBalance(t *testing.T) {
	got := RunningBalance(testSnapshot(), 10)

	want := []domain.RunningBalance{
		{
			AccountID: 10, TransactionID: 1, TransactionDate: test.Day(2024, time.June, 1),
			TransactionType: domain.TransactionTypeDeposit, Amount: test.Dec("20"),
			SignedAmount: test.Dec("20"), RunningBalance: test.Dec("20"),
		},
		{
			AccountID: 10, TransactionID: 3, TransactionDate: test.Day(2024, time.June, 10),
			TransactionType: domain.TransactionTypeDeposit, Amount: test.Dec("100"),
			SignedAmount: test.Dec("100"), RunningBalance: test.Dec("120"),
		},
		{
			AccountID: 10, TransactionID: 7, TransactionDate: test.Day(2024, time.June, 10),
			TransactionType: domain.TransactionTypeWithdrawal, Amount: test.Dec("30"),
			SignedAmount: test.Dec("-30"), RunningBalance: test.Dec("90"),
		},
		{
			AccountID: 10, TransactionID: 5, TransactionDate: test.Day(2024, time.June, 11),
			TransactionType: domain.TransactionType("Refund"), Amount: test.Dec("999"),
			SignedAmount: test.Dec("0"), RunningBalance: test.Dec("90"),
		},
	}

	if diff := cmp.Diff(want, got, test.EquateDecimals); diff != "" {
		t.Errorf("RunningBalance() mismatch (-want +got):\n%s", diff)
	}
}

func TestRunningBalanceEndsAtCalculatedBalance(t *testing.T) {
	s := testSnapshot()

	rows := RunningBalance(s, 0)
	require.Len(t, rows, len(s.Transactions))

	last := make(map[int64]domain.RunningBalance)
	for i, row := range rows {
		if i > 0 {
			prev := rows[i-1]
			require.LessOrEqual(t, prev.AccountID, row.AccountID)
			if prev.AccountID == row.AccountID {
				require.False(t, row.TransactionDate.Before(prev.TransactionDate))
			}
		}
		last[row.AccountID] = row
	}

	calculated := CalculatedBalances(s)
	require.Len(t, last, len(calculated))

	for accountID, want := range calculated {
		require.True(t, want.Equal(last[accountID].RunningBalance),
			"account %d: calculated %s, running %s", accountID, want, last[accountID].RunningBalance)
	}
}

func TestRunningBalanceEmpty(t *testing.T) {
	require.Empty(t, RunningBalance(domain.Snapshot{}, 0))
	require.Empty(t, RunningBalance(testSnapshot(), 30))
}

func TestAvgTransactionVsAvgBalance(t *testing.T) {
	got, err := AvgTransactionVsAvgBalance(testSnapshot(), today, 0)
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = AvgTransactionVsAvgBalance(testSnapshot(), today, 1)
	require.NoError(t, err)

	// Cutoff is 2024-05-15. Customer 3 has no transactions and is left out.
	want := []domain.CustomerAverages{
		{
			CustomerID: 1, FirstName: "Ada", LastName: "Lovelace",
			AvgTransactionAmount: test.Dec("349.80"), // (30+100+20+999+600)/5
			AvgAccountBalance:    test.Dec("200"),
		},
		{
			CustomerID: 2, FirstName: "Alan", LastName: "Turing",
			AvgTransactionAmount: test.Dec("2833.33"), // (1500+2000+5000)/3
			AvgAccountBalance:    test.Dec("50"),
		},
	}

	if diff := cmp.Diff(want, got, test.EquateDecimals); diff != "" {
		t.Errorf("AvgTransactionVsAvgBalance() mismatch (-want +got):\n%s", diff)
	}
}

func TestAvgTransactionVsAvgBalanceInvalidMonths(t *testing.T) {
	_, err := AvgTransactionVsAvgBalance(testSnapshot(), today, -1)
	require.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestMostFrequentCustomer(t *testing.T) {
	got := MostFrequentCustomer(testSnapshot())

	want := []domain.CustomerActivity{
		{CustomerID: 1, FirstName: "Ada", LastName: "Lovelace", TransactionCount: 5},
	}

	require.Equal(t, want, got)
}

func TestMostFrequentCustomerTie(t *testing.T) {
	s := domain.Snapshot{
		Customers: []domain.Customer{test.Customer(5, "Eve", "E"), test.Customer(4, "Dan", "D")},
		Accounts: []domain.Account{
			test.Account(50, 5, domain.AccountTypeSavings, "0"),
			test.Account(40, 4, domain.AccountTypeSavings, "0"),
		},
		Transactions: []domain.Transaction{
			test.Transaction(1, 50, today, domain.TransactionTypeDeposit, "1"),
			test.Transaction(2, 40, today, domain.TransactionTypeDeposit, "1"),
		},
	}

	got := MostFrequentCustomer(s)
	require.Len(t, got, 1)
	require.Equal(t, int64(4), got[0].CustomerID)
}

func TestMostFrequentCustomerEmpty(t *testing.T) {
	require.Empty(t, MostFrequentCustomer(domain.Snapshot{}))
}
