// Package domain provides definitions of all entities.
package domain

import "time"

// Customer holds the reference data of a bank customer.
//
// Address, DateOfBirth and ZIP are nil when the source value is NULL.
type Customer struct {
	ID          int64      `json:"customer_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Address     *string    `json:"address"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	ZIP         *string    `json:"zip"`
}

// FullName returns the first and last name joined by a space.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
