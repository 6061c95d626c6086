// Package sqlerr translates Postgres driver errors into client-facing
// HTTPErrors, e.g. a unique violation on customers becomes a 400
// CUSTOMER_ALREADY_EXISTS and a tagged ErrNoRows becomes "Customer not found".
package sqlerr
