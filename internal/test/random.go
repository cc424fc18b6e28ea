package test

import (
	"time"

	"github.com/go-petr/bank-insights/internal/domain"
	"github.com/go-petr/bank-insights/pkg/randompkg"
)

var (
	randomFrom = Day(2022, time.January, 1)
	randomTo   = Day(2024, time.December, 31)

	accountTypes = []domain.AccountType{
		domain.AccountTypeCredit,
		domain.AccountTypeSavings,
		domain.AccountTypeChecking,
	}

	// Includes one invalid type and one wrong-case type.
	randomTransactionTypes = []domain.TransactionType{
		domain.TransactionTypeDeposit,
		domain.TransactionTypeWithdrawal,
		domain.TransactionTypeTransfer,
		domain.TransactionTypePayment,
		"Refund",
		"deposit",
	}
)

// RandomCustomer returns a customer whose optional fields are each missing one time in five.
func RandomCustomer(id int64) domain.Customer {
	c := domain.Customer{
		ID:        id,
		FirstName: randompkg.Name(),
		LastName:  randompkg.Name(),
	}

	if !randompkg.Bool(20) {
		c.Address = Str(randompkg.Name() + " Street")
	}
	if !randompkg.Bool(20) {
		c.DateOfBirth = Time(randompkg.DateBetween(Day(1940, time.January, 1), Day(2000, time.December, 31)))
	}
	if !randompkg.Bool(20) {
		c.ZIP = Str(randompkg.String(5))
	}

	return c
}

// RandomSnapshot returns a snapshot with the given table sizes. Ids start at 1. About
// one account in ten references a missing customer and one transaction in ten a missing
// account.
func RandomSnapshot(customers, accounts, transactions int) domain.Snapshot {
	s := domain.Snapshot{
		Customers:    make([]domain.Customer, 0, customers),
		Accounts:     make([]domain.Account, 0, accounts),
		Transactions: make([]domain.Transaction, 0, transactions),
	}

	for i := 1; i <= customers; i++ {
		s.Customers = append(s.Customers, RandomCustomer(int64(i)))
	}

	for i := 1; i <= accounts; i++ {
		customerID := int64(randompkg.IntBetween(1, customers))
		if randompkg.Bool(10) {
			customerID += int64(customers)
		}

		s.Accounts = append(s.Accounts, domain.Account{
			ID:          int64(i),
			CustomerID:  customerID,
			Type:        randompkg.Pick(accountTypes),
			Balance:     randompkg.MoneyAmountBetween(-500, 5000),
			OpeningDate: randompkg.DateBetween(randomFrom, randomTo),
		})
	}

	for i := 1; i <= transactions; i++ {
		accountID := int64(randompkg.IntBetween(1, accounts))
		if randompkg.Bool(10) {
			accountID += int64(accounts)
		}

		s.Transactions = append(s.Transactions, domain.Transaction{
			ID:        int64(i),
			AccountID: accountID,
			Date:      randompkg.DateBetween(randomFrom, randomTo),
			Type:      randompkg.Pick(randomTransactionTypes),
			Amount:    randompkg.MoneyAmountBetween(-10, 2000),
		})
	}

	return s
}
