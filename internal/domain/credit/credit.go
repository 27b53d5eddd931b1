// Package credit defines the credit-limit increase request workflow.
package credit

import (
	"errors"
	"time"
)

// Status is the decision state of a credit request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Action is a back-office decision on a pending request.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Request is a tenant-initiated proposal to raise its credit limit.
// Amount is in minor currency units. At most one pending request may
// exist per tenant; a request is decided exactly once.
type Request struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	RequestedBy  string    `json:"requested_by"`
	Amount       int64     `json:"amount"`
	Reason       string    `json:"reason,omitempty"`
	Status       Status    `json:"status"`
	DecisionNote string    `json:"decision_note,omitempty"`
	DecidedBy    string    `json:"decided_by,omitempty"`
	DecidedAt    time.Time `json:"decided_at,omitzero"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateRequest is the input for raising a credit request.
type CreateRequest struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason,omitempty"`
}

// Validate checks that the CreateRequest has all required fields.
func (r *CreateRequest) Validate() error {
	if r.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	return nil
}

// DecideRequest is the back-office input for deciding a pending request.
type DecideRequest struct {
	Action Action `json:"action"`
	Note   string `json:"note,omitempty"`
}

// Validate checks that the DecideRequest carries a known action.
func (r *DecideRequest) Validate() error {
	if r.Action != ActionApprove && r.Action != ActionReject {
		return errors.New("action must be approve or reject")
	}
	return nil
}
