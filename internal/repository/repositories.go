// Package repository handles all interactions with the database.
//
// It contains the SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
package repository

import (
	"github.com/JoshuaHenriques/store-management-rest-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Customer *CustomerRepository
}

// NewRepositories constructs the repository container on the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Customer: NewCustomerRepository(s.DB.Pool),
	}
}
