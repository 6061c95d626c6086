// Package model holds the domain entities and the request payloads
// accepted by the HTTP layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Address is the postal location embedded in a customer record.
// It is stored inline on the customers row.
type Address struct {
	StreetName   string `json:"street_name" validate:"required,max=120"`
	StreetNumber string `json:"street_number" validate:"required,max=20"`
	UnitNumber   string `json:"unit_number" validate:"omitempty,max=20"`
	City         string `json:"city" validate:"required,max=80"`
	PostalCode   string `json:"postal_code" validate:"required,max=16"`
	Province     string `json:"province" validate:"required,max=80"`
}

// Customer is a registered buyer.
//
// PasswordHash holds a bcrypt hash and is never serialized.
type Customer struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PostalCode   string    `json:"postal_code"`
	Address      Address   `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName joins first and last name.
func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
