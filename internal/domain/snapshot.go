package domain

// Snapshot is a read-only view of the three source tables taken for one report run.
//
// Reports never modify a Snapshot, so one value can be shared by concurrent reports.
type Snapshot struct {
	Customers    []Customer
	Accounts     []Account
	Transactions []Transaction
}

// CustomersByID indexes customers by their id.
func (s Snapshot) CustomersByID() map[int64]Customer {
	m := make(map[int64]Customer, len(s.Customers))
	for _, c := range s.Customers {
		m[c.ID] = c
	}

	return m
}

// AccountsByID indexes accounts by their id.
func (s Snapshot) AccountsByID() map[int64]Account {
	m := make(map[int64]Account, len(s.Accounts))
	for _, a := range s.Accounts {
		m[a.ID] = a
	}

	return m
}
