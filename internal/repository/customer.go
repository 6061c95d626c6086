package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/JoshuaHenriques/store-management-rest-api/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const customerColumns = `id, first_name, last_name, phone_number, email, password_hash, postal_code,
	street_name, street_number, unit_number, city, address_postal_code, province,
	created_at, updated_at`

// errCustomerNotFound lets sqlerr name the entity in its 404 message.
var errCustomerNotFound = fmt.Errorf("table:customers: %w", pgx.ErrNoRows)

// CustomerRepository persists customers in the customers table.
type CustomerRepository struct {
	db DBTX
}

// NewCustomerRepository creates a CustomerRepository over db.
func NewCustomerRepository(db DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.PhoneNumber,
		&c.Email,
		&c.PasswordHash,
		&c.PostalCode,
		&c.Address.StreetName,
		&c.Address.StreetNumber,
		&c.Address.UnitNumber,
		&c.Address.City,
		&c.Address.PostalCode,
		&c.Address.Province,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a customer and returns the stored row.
func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	query := `
		INSERT INTO customers (
			first_name, last_name, phone_number, email, password_hash, postal_code,
			street_name, street_number, unit_number, city, address_postal_code, province
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + customerColumns

	stored, err := scanCustomer(r.db.QueryRow(ctx, query,
		c.FirstName,
		c.LastName,
		c.PhoneNumber,
		c.Email,
		c.PasswordHash,
		c.PostalCode,
		c.Address.StreetName,
		c.Address.StreetNumber,
		c.Address.UnitNumber,
		c.Address.City,
		c.Address.PostalCode,
		c.Address.Province,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return stored, nil
}

// Update replaces every mutable column of the customer identified by c.ID.
func (r *CustomerRepository) Update(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	query := `
		UPDATE customers SET
			first_name = $2,
			last_name = $3,
			phone_number = $4,
			email = $5,
			password_hash = $6,
			postal_code = $7,
			street_name = $8,
			street_number = $9,
			unit_number = $10,
			city = $11,
			address_postal_code = $12,
			province = $13,
			updated_at = now()
		WHERE id = $1
		RETURNING ` + customerColumns

	stored, err := scanCustomer(r.db.QueryRow(ctx, query,
		c.ID,
		c.FirstName,
		c.LastName,
		c.PhoneNumber,
		c.Email,
		c.PasswordHash,
		c.PostalCode,
		c.Address.StreetName,
		c.Address.StreetNumber,
		c.Address.UnitNumber,
		c.Address.City,
		c.Address.PostalCode,
		c.Address.Province,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update customer %s: %w", c.ID, err)
	}
	return stored, nil
}

// Delete removes the customer with id.
func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return errCustomerNotFound
	}
	return nil
}

// FindAll returns every customer ordered by creation time.
// An empty table yields an empty, non-nil slice.
func (r *CustomerRepository) FindAll(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := make([]model.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customers: %w", err)
	}

	return customers, nil
}

// FindByID returns the customer with id.
func (r *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get customer %s: %w", id, err)
	}
	return c, nil
}

// FindByEmail returns the customer registered with email.
func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE email = $1`, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get customer by email: %w", err)
	}
	return c, nil
}

func (r *CustomerRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ExistsByEmail reports whether a customer with email is stored.
func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	exists, err := r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)`, email)
	if err != nil {
		return false, fmt.Errorf("failed to check customer email: %w", err)
	}
	return exists, nil
}

// ExistsByPhoneNumber reports whether a customer with phone is stored.
func (r *CustomerRepository) ExistsByPhoneNumber(ctx context.Context, phone string) (bool, error) {
	exists, err := r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE phone_number = $1)`, phone)
	if err != nil {
		return false, fmt.Errorf("failed to check customer phone number: %w", err)
	}
	return exists, nil
}

// ExistsByEmailExcludingID reports whether another customer than id uses email.
func (r *CustomerRepository) ExistsByEmailExcludingID(ctx context.Context, email string, id uuid.UUID) (bool, error) {
	exists, err := r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1 AND id <> $2)`, email, id)
	if err != nil {
		return false, fmt.Errorf("failed to check customer email: %w", err)
	}
	return exists, nil
}

// ExistsByPhoneNumberExcludingID reports whether another customer than id uses phone.
func (r *CustomerRepository) ExistsByPhoneNumberExcludingID(ctx context.Context, phone string, id uuid.UUID) (bool, error) {
	exists, err := r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE phone_number = $1 AND id <> $2)`, phone, id)
	if err != nil {
		return false, fmt.Errorf("failed to check customer phone number: %w", err)
	}
	return exists, nil
}
