// Package mailer defines the outbound email port.
package mailer

import "context"

// Mailer sends transactional email (OTP codes).
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
