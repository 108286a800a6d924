// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// string matching on driver errors.
package repository

import "errors"

// ErrEmailExists is returned when an insert would violate the unique
// email constraint. Handlers translate this into an HTTP 400 with a
// "email already in use" message.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a user lookup or scoped update
// matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrListingNotFound is returned when a listing lookup matches no row,
// or when an owner-scoped mutation matches no row. The two cases are
// deliberately indistinguishable so that handlers cannot leak whether a
// listing exists to a caller who does not own it.
var ErrListingNotFound = errors.New("listing not found")

// ErrPaymentNotFound is returned when a payment lookup or update
// matches no row.
var ErrPaymentNotFound = errors.New("payment not found")
