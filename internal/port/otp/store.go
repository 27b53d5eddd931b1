// Package otp defines the one-time-passcode store port.
package otp

import (
	"context"
	"time"
)

// Store holds short-lived OTP codes keyed by email address.
type Store interface {
	// Set stores a code for the address, replacing any previous one.
	Set(ctx context.Context, email, code string, ttl time.Duration) error
	// Consume atomically fetches and deletes the code for the address.
	// ok is false when no unexpired code exists.
	Consume(ctx context.Context, email string) (code string, ok bool, err error)
	// Delete discards any stored code for the address.
	Delete(ctx context.Context, email string) error
}
