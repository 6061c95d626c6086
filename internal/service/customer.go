package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/JoshuaHenriques/store-management-rest-api/internal/errs"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/lib/job"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/model"
	"github.com/JoshuaHenriques/store-management-rest-api/internal/server"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"golang.org/x/crypto/bcrypt"
)

// CustomerStore is the persistence the customer service depends on.
// *repository.CustomerRepository implements it.
type CustomerStore interface {
	Create(ctx context.Context, c *model.Customer) (*model.Customer, error)
	Update(ctx context.Context, c *model.Customer) (*model.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context) ([]model.Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	FindByEmail(ctx context.Context, email string) (*model.Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhoneNumber(ctx context.Context, phone string) (bool, error)
	ExistsByEmailExcludingID(ctx context.Context, email string, id uuid.UUID) (bool, error)
	ExistsByPhoneNumberExcludingID(ctx context.Context, phone string, id uuid.UUID) (bool, error)
}

// PostalCodeValidator checks address postal codes. *AddressService implements it.
type PostalCodeValidator interface {
	ValidatePostalCode(postalCode string) error
}

// TaskEnqueuer enqueues background tasks. *asynq.Client implements it.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

const (
	msgPhoneExists = "Customer already exists with this phone number"
	msgEmailExists = "Customer already exists with this email"
)

// CustomerService registers and manages customers.
type CustomerService struct {
	server   *server.Server
	store    CustomerStore
	postal   PostalCodeValidator
	tasks    TaskEnqueuer
	hashCost int
}

func NewCustomerService(s *server.Server, store CustomerStore, postal PostalCodeValidator, tasks TaskEnqueuer) *CustomerService {
	return &CustomerService{
		server:   s,
		store:    store,
		postal:   postal,
		tasks:    tasks,
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *CustomerService) ExistsByPhoneNumber(ctx context.Context, phone string) (bool, error) {
	return s.store.ExistsByPhoneNumber(ctx, phone)
}

func (s *CustomerService) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.store.ExistsByEmail(ctx, email)
}

// Register creates a customer after checking, in order, phone number uniqueness,
// email uniqueness and the address postal code.
func (s *CustomerService) Register(ctx context.Context, req *model.RegisterCustomerRequest) (*model.Customer, error) {
	exists, err := s.ExistsByPhoneNumber(ctx, req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewCustomerAlreadyExistsError("phone_number", msgPhoneExists)
	}

	exists, err = s.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewCustomerAlreadyExistsError("email", msgEmailExists)
	}

	customer, err := s.buildCustomer(&req.CustomerPayload)
	if err != nil {
		return nil, err
	}

	stored, err := s.store.Create(ctx, customer)
	if err != nil {
		return nil, err
	}

	s.server.Logger.Info().
		Str("event", "customer_registered").
		Str("customer_id", stored.ID.String()).
		Msg("customer registered")

	s.enqueueWelcomeEmail(ctx, stored)

	return stored, nil
}

// buildCustomer validates the postal code and hashes the password of payload.
func (s *CustomerService) buildCustomer(p *model.CustomerPayload) (*model.Customer, error) {
	if err := s.postal.ValidatePostalCode(p.Address.PostalCode); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), s.hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, errs.NewBadRequestError("Validation failed", false, nil,
			[]errs.FieldError{{Field: "password", Error: "must not exceed 72 bytes"}}, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	postalCode := p.PostalCode
	if postalCode == "" {
		postalCode = p.Address.PostalCode
	}

	return &model.Customer{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		PhoneNumber:  p.PhoneNumber,
		Email:        p.Email,
		PasswordHash: string(hash),
		PostalCode:   postalCode,
		Address:      p.Address,
	}, nil
}

func (s *CustomerService) enqueueWelcomeEmail(ctx context.Context, c *model.Customer) {
	reg := s.server.Config.Registration
	if s.tasks == nil || reg == nil || !reg.WelcomeEmail {
		return
	}

	task, err := job.NewWelcomeEmailTask(c.ID.String(), c.Email, c.FirstName)
	if err != nil {
		s.server.Logger.Error().Err(err).Msg("failed to build welcome email task")
		return
	}

	if _, err := s.tasks.EnqueueContext(ctx, task); err != nil {
		s.server.Logger.Error().
			Err(err).
			Str("customer_id", c.ID.String()).
			Msg("failed to enqueue welcome email")
	}
}

func (s *CustomerService) GetAll(ctx context.Context) ([]model.Customer, error) {
	return s.store.FindAll(ctx)
}

func (s *CustomerService) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	customerID, err := parseCustomerID(id)
	if err != nil {
		return nil, err
	}
	return s.store.FindByID(ctx, customerID)
}

func (s *CustomerService) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return s.store.FindByEmail(ctx, email)
}

// Update replaces the customer identified by id. Phone number and email must
// not belong to another customer.
func (s *CustomerService) Update(ctx context.Context, id string, req *model.UpdateCustomerRequest) (*model.Customer, error) {
	customerID, err := parseCustomerID(id)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.FindByID(ctx, customerID); err != nil {
		return nil, err
	}

	exists, err := s.store.ExistsByPhoneNumberExcludingID(ctx, req.PhoneNumber, customerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewCustomerAlreadyExistsError("phone_number", msgPhoneExists)
	}

	exists, err = s.store.ExistsByEmailExcludingID(ctx, req.Email, customerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewCustomerAlreadyExistsError("email", msgEmailExists)
	}

	customer, err := s.buildCustomer(&req.CustomerPayload)
	if err != nil {
		return nil, err
	}
	customer.ID = customerID

	return s.store.Update(ctx, customer)
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	customerID, err := parseCustomerID(id)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, customerID)
}

func parseCustomerID(id string) (uuid.UUID, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("Invalid customer id", false, nil, []errs.FieldError{
			{Field: "id", Error: "must be a valid UUID"},
		}, nil)
	}
	return customerID, nil
}
