package model

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every request payload. Field errors are reported
// with their json names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("maxbytes", maxBytes)
	return v
}

// maxBytes bounds the encoded length of a string. max counts runes, but
// bcrypt rejects passwords longer than 72 bytes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// CustomerPayload is the customer body accepted on registration and full replacement.
type CustomerPayload struct {
	FirstName   string  `json:"first_name" validate:"required,max=100"`
	LastName    string  `json:"last_name" validate:"required,max=100"`
	PhoneNumber string  `json:"phone_number" validate:"required,min=7,max=20"`
	Email       string  `json:"email" validate:"required,email,max=254"`
	Password    string  `json:"password" validate:"required,min=8,max=72,maxbytes=72"`
	PostalCode  string  `json:"postal_code" validate:"omitempty,max=16"`
	Address     Address `json:"address" validate:"required"`
}

// Normalize trims surrounding whitespace and lowercases the email.
func (p *CustomerPayload) Normalize() {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.PhoneNumber = strings.TrimSpace(p.PhoneNumber)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.PostalCode = strings.TrimSpace(p.PostalCode)
	p.Address.PostalCode = strings.TrimSpace(p.Address.PostalCode)
}

// RegisterCustomerRequest is the body of POST /api/register/customer.
type RegisterCustomerRequest struct {
	CustomerPayload
}

func (r *RegisterCustomerRequest) Validate() error {
	r.Normalize()
	return validate.Struct(r)
}

// UpdateCustomerRequest is a full replacement of the customer identified by ID.
type UpdateCustomerRequest struct {
	ID string `param:"id" json:"-" validate:"required,uuid"`
	CustomerPayload
}

func (r *UpdateCustomerRequest) Validate() error {
	r.Normalize()
	return validate.Struct(r)
}

// CustomerIDRequest addresses a single customer by id.
type CustomerIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

func (r *CustomerIDRequest) Validate() error {
	return validate.Struct(r)
}

// CustomerEmailRequest addresses a single customer by email.
type CustomerEmailRequest struct {
	Email string `param:"email" validate:"required,email"`
}

func (r *CustomerEmailRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return validate.Struct(r)
}

// ListCustomersRequest carries no input; find-all returns every customer.
type ListCustomersRequest struct{}

func (r *ListCustomersRequest) Validate() error {
	return nil
}
