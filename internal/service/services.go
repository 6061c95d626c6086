// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"github.com/JoshuaHenriques/store-management-rest-api/internal/lib/job"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/repository"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/server"
)

type Services struct {
	Auth     *AuthService
	Address  *AddressService
	Customer *CustomerService
	Job      *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService := NewAuthService(s)
	addressService := NewAddressService()

	var tasks TaskEnqueuer
	if s.Job != nil && s.Job.Client != nil {
		tasks = s.Job.Client
	}

	return &Services{
		Job:      s.Job,
		Auth:     authService,
		Address:  addressService,
		Customer: NewCustomerService(s, repos.Customer, addressService, tasks),
	}, nil
}
