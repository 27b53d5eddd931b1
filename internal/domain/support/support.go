// Package support defines corporate support tickets.
package support

import (
	"errors"
	"time"
)

// Status is the lifecycle state of a support ticket.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Ticket is a free-form support request raised by a corporate user and
// resolved by back-office staff.
type Ticket struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRequest is the input for raising a ticket.
type CreateRequest struct {
	Message string `json:"message"`
}

// Validate checks that the CreateRequest has all required fields.
func (r *CreateRequest) Validate() error {
	if r.Message == "" {
		return errors.New("message is required")
	}
	return nil
}
