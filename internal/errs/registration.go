package errs

import (
	"errors"
	"strings"
)

// Codes sent to clients for rejected registrations.
const (
	CodeCustomerAlreadyExists = "CUSTOMER_ALREADY_EXISTS"
	CodeInvalidPostalCode     = "INVALID_POSTAL_CODE"
)

// CustomerAlreadyExistsError is returned when a customer with the same phone
// number or email is already registered.
type CustomerAlreadyExistsError struct {
	// Field is the conflicting attribute ("phone_number" or "email").
	Field   string
	Message string
}

func (e *CustomerAlreadyExistsError) Error() string {
	return e.Message
}

// NewCustomerAlreadyExistsError builds a CustomerAlreadyExistsError for field.
func NewCustomerAlreadyExistsError(field, message string) *CustomerAlreadyExistsError {
	return &CustomerAlreadyExistsError{Field: field, Message: message}
}

// InvalidPostalCodeError is returned when an address postal code fails validation.
type InvalidPostalCodeError struct {
	Message       string
	ErrorMessages []string
}

func (e *InvalidPostalCodeError) Error() string {
	if len(e.ErrorMessages) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.ErrorMessages, "; ")
}

// AddErrorMessage appends a detail message.
func (e *InvalidPostalCodeError) AddErrorMessage(msg string) {
	e.ErrorMessages = append(e.ErrorMessages, msg)
}

// NewInvalidPostalCodeError builds an InvalidPostalCodeError with optional details.
func NewInvalidPostalCodeError(message string, details ...string) *InvalidPostalCodeError {
	return &InvalidPostalCodeError{Message: message, ErrorMessages: details}
}

// FromRegistrationError maps the registration domain errors onto 400 HTTPErrors.
//
// It returns nil when err is neither a CustomerAlreadyExistsError nor an
// InvalidPostalCodeError.
func FromRegistrationError(err error) *HTTPError {
	var exists *CustomerAlreadyExistsError
	if errors.As(err, &exists) {
		code := CodeCustomerAlreadyExists
		var fields []FieldError
		if exists.Field != "" {
			fields = []FieldError{{Field: exists.Field, Error: "already registered"}}
		}
		return NewBadRequestError(exists.Message, true, &code, fields, nil)
	}

	var postal *InvalidPostalCodeError
	if errors.As(err, &postal) {
		code := CodeInvalidPostalCode
		fields := make([]FieldError, 0, len(postal.ErrorMessages))
		for _, msg := range postal.ErrorMessages {
			fields = append(fields, FieldError{Field: "address.postal_code", Error: msg})
		}
		return NewBadRequestError(postal.Message, true, &code, fields, nil)
	}

	return nil
}
