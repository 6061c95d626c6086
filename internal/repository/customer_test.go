package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JoshuaHenriques/store-management-rest-api/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "first_name", "last_name", "phone_number", "email", "password_hash", "postal_code",
	"street_name", "street_number", "unit_number", "city", "address_postal_code", "province",
	"created_at", "updated_at",
}

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *CustomerRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock, NewCustomerRepository(mock)
}

func sampleCustomer(email, phone string) model.Customer {
	return model.Customer{
		ID:           uuid.New(),
		FirstName:    "Joshua",
		LastName:     "Henriques",
		PhoneNumber:  phone,
		Email:        email,
		PasswordHash: "$2a$10$hash",
		PostalCode:   "L5M 1A1",
		Address: model.Address{
			StreetName:   "Main Street",
			StreetNumber: "123",
			UnitNumber:   "4",
			City:         "Mississauga",
			PostalCode:   "L5M 1A1",
			Province:     "Ontario",
		},
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func addRow(rows *pgxmock.Rows, c model.Customer) *pgxmock.Rows {
	return rows.AddRow(
		c.ID, c.FirstName, c.LastName, c.PhoneNumber, c.Email, c.PasswordHash, c.PostalCode,
		c.Address.StreetName, c.Address.StreetNumber, c.Address.UnitNumber, c.Address.City,
		c.Address.PostalCode, c.Address.Province, c.CreatedAt, c.UpdatedAt,
	)
}

func TestFindAllEmpty(t *testing.T) {
	mock, repo := newMock(t)
	mock.ExpectQuery("(?s)SELECT (.+) FROM customers ORDER BY").
		WillReturnRows(pgxmock.NewRows(columns))

	customers, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)
}

func TestFindAllReturnsEveryCustomer(t *testing.T) {
	mock, repo := newMock(t)
	first := sampleCustomer("first@example.com", "4165550001")
	second := sampleCustomer("second@example.com", "4165550002")
	third := sampleCustomer("third@example.com", "4165550003")

	rows := pgxmock.NewRows(columns)
	addRow(rows, first)
	addRow(rows, second)
	addRow(rows, third)
	mock.ExpectQuery("(?s)SELECT (.+) FROM customers ORDER BY").WillReturnRows(rows)

	customers, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, customers, 3)
	assert.Equal(t, first, customers[0])
	assert.Equal(t, "second@example.com", customers[1].Email)
	assert.Equal(t, "Ontario", customers[2].Address.Province)
}

func TestFindAllQueryError(t *testing.T) {
	mock, repo := newMock(t)
	mock.ExpectQuery("(?s)SELECT (.+) FROM customers").WillReturnError(errors.New("connection reset"))

	_, err := repo.FindAll(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestCreateStoresCustomer(t *testing.T) {
	mock, repo := newMock(t)
	c := sampleCustomer("new@example.com", "4165550100")

	mock.ExpectQuery("INSERT INTO customers").
		WithArgs(
			c.FirstName, c.LastName, c.PhoneNumber, c.Email, c.PasswordHash, c.PostalCode,
			c.Address.StreetName, c.Address.StreetNumber, c.Address.UnitNumber, c.Address.City,
			c.Address.PostalCode, c.Address.Province,
		).
		WillReturnRows(addRow(pgxmock.NewRows(columns), c))

	stored, err := repo.Create(context.Background(), &c)

	require.NoError(t, err)
	assert.Equal(t, c.ID, stored.ID)
	assert.Equal(t, c.Address, stored.Address)
}

func TestDeleteRemovesCustomer(t *testing.T) {
	mock, repo := newMock(t)
	id := uuid.New()
	mock.ExpectExec("DELETE FROM customers").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), id))
}

func TestDeleteMissingCustomer(t *testing.T) {
	mock, repo := newMock(t)
	id := uuid.New()
	mock.ExpectExec("DELETE FROM customers").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), id)

	require.Error(t, err)
	assert.True(t, errors.Is(err, pgx.ErrNoRows))
	assert.Contains(t, err.Error(), "table:customers")
}

func TestExistsByEmail(t *testing.T) {
	mock, repo := newMock(t)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("taken@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("free@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	taken, err := repo.ExistsByEmail(context.Background(), "taken@example.com")
	require.NoError(t, err)
	assert.True(t, taken)

	free, err := repo.ExistsByEmail(context.Background(), "free@example.com")
	require.NoError(t, err)
	assert.False(t, free)
}

func TestExistsByPhoneNumber(t *testing.T) {
	mock, repo := newMock(t)
	mock.ExpectQuery("SELECT EXISTS (.+) phone_number").
		WithArgs("4165550100").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByPhoneNumber(context.Background(), "4165550100")

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestExistsByEmailExcludingID(t *testing.T) {
	mock, repo := newMock(t)
	id := uuid.New()
	mock.ExpectQuery("SELECT EXISTS (.+) id <> ").
		WithArgs("a@example.com", id).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.ExistsByEmailExcludingID(context.Background(), "a@example.com", id)

	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFindByEmail(t *testing.T) {
	mock, repo := newMock(t)
	c := sampleCustomer("found@example.com", "4165550200")
	mock.ExpectQuery("(?s)SELECT (.+) FROM customers WHERE email").
		WithArgs(c.Email).
		WillReturnRows(addRow(pgxmock.NewRows(columns), c))

	found, err := repo.FindByEmail(context.Background(), c.Email)

	require.NoError(t, err)
	assert.Equal(t, c, *found)
}

func TestFindByIDNotFound(t *testing.T) {
	mock, repo := newMock(t)
	id := uuid.New()
	mock.ExpectQuery("(?s)SELECT (.+) FROM customers WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(columns))

	_, err := repo.FindByID(context.Background(), id)

	require.Error(t, err)
	assert.True(t, errors.Is(err, pgx.ErrNoRows))
}

func TestUpdateReturnsStoredRow(t *testing.T) {
	mock, repo := newMock(t)
	c := sampleCustomer("updated@example.com", "4165550300")
	mock.ExpectQuery("UPDATE customers SET").
		WithArgs(
			c.ID, c.FirstName, c.LastName, c.PhoneNumber, c.Email, c.PasswordHash, c.PostalCode,
			c.Address.StreetName, c.Address.StreetNumber, c.Address.UnitNumber, c.Address.City,
			c.Address.PostalCode, c.Address.Province,
		).
		WillReturnRows(addRow(pgxmock.NewRows(columns), c))

	updated, err := repo.Update(context.Background(), &c)

	require.NoError(t, err)
	assert.Equal(t, "updated@example.com", updated.Email)
}
