// Package validation binds echo requests into payload structs and turns
// validator/v10 failures into 400 responses with per-field errors.
package validation
