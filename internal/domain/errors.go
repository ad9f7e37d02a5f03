package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicatePhone = errors.New("phone number already registered")

	// Identity gate failures, mapped to user-readable messages at the edge.
	ErrWrongCredentials = errors.New("invalid email or password")
	ErrInvalidEmail     = errors.New("email format is incorrect")

	// Checkout refusals.
	ErrEmptySale      = errors.New("sale has no items")
	ErrAlreadyBilled  = errors.New("repair job already has a sale")
	ErrInvalidStatus  = errors.New("unknown repair job status")
	ErrInvalidPayment = errors.New("payment method required")
)
