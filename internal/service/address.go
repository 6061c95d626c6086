package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JoshuaHenriques/store-management-rest-api/internal/errs"
)

// Canadian postal code: letter digit letter, optional space or hyphen, digit letter digit.
// D, F, I, O, Q and U never appear; W and Z never lead.
var postalCodePattern = regexp.MustCompile(`(?i)^[ABCEGHJ-NPRSTVXY][0-9][ABCEGHJ-NPRSTV-Z][ -]?[0-9][ABCEGHJ-NPRSTV-Z][0-9]$`)

// AddressService validates address data.
type AddressService struct{}

func NewAddressService() *AddressService {
	return &AddressService{}
}

// IsValidPostalCode reports whether postalCode is a well-formed postal code.
func (s *AddressService) IsValidPostalCode(postalCode string) bool {
	return postalCodePattern.MatchString(strings.TrimSpace(postalCode))
}

// ValidatePostalCode returns an *errs.InvalidPostalCodeError when postalCode is not valid.
func (s *AddressService) ValidatePostalCode(postalCode string) error {
	if s.IsValidPostalCode(postalCode) {
		return nil
	}

	e := errs.NewInvalidPostalCodeError("Invalid postal code")
	if strings.TrimSpace(postalCode) == "" {
		e.AddErrorMessage("postal code is required")
	} else {
		e.AddErrorMessage(fmt.Sprintf("postal code %q must match the format A1A 1A1", strings.TrimSpace(postalCode)))
	}
	return e
}
