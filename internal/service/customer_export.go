package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"
)

var exportHeader = []string{
	"id", "first_name", "last_name", "phone_number", "email", "postal_code",
	"street_number", "street_name", "unit_number", "city", "province", "address_postal_code",
	"created_at",
}

// ExportCSV renders every customer as CSV, one row per customer after a header row.
// Password hashes are never exported.
func (s *CustomerService) ExportCSV(ctx context.Context) ([]byte, error) {
	customers, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}

	for _, c := range customers {
		record := []string{
			c.ID.String(),
			c.FirstName,
			c.LastName,
			c.PhoneNumber,
			c.Email,
			c.PostalCode,
			c.Address.StreetNumber,
			c.Address.StreetName,
			c.Address.UnitNumber,
			c.Address.City,
			c.Address.Province,
			c.Address.PostalCode,
			c.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write customer %s: %w", c.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush export: %w", err)
	}

	return buf.Bytes(), nil
}
