// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a uniqueness invariant would be violated
// (duplicate registration, second pending credit request).
var ErrConflict = errors.New("conflict")

// ErrInvalidState indicates the operation is not legal given the current
// data state: empty cart, below-MOQ quantity, insufficient credit, or an
// already-terminal order/credit-request status.
var ErrInvalidState = errors.New("invalid state")

// ErrValidation indicates malformed or out-of-range request input.
var ErrValidation = errors.New("validation failed")
