package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Strob0t/ProcureDesk/internal/adapter/otel"
	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/credit"
	"github.com/Strob0t/ProcureDesk/internal/port/database"
)

// CreditService manages the credit-limit increase workflow.
type CreditService struct {
	store   database.Store
	metrics *otel.Metrics
}

// NewCreditService creates a new credit service.
func NewCreditService(store database.Store, metrics *otel.Metrics) *CreditService {
	return &CreditService{store: store, metrics: metrics}
}

// Request raises a credit request for a tenant. At most one pending
// request may exist per tenant.
func (s *CreditService) Request(ctx context.Context, tenantID, userID string, req *credit.CreateRequest) (*credit.Request, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrValidation)
	}

	r := &credit.Request{
		TenantID:    tenantID,
		RequestedBy: userID,
		Amount:      req.Amount,
		Reason:      req.Reason,
	}
	if err := s.store.CreateCreditRequest(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListByTenant returns a tenant's credit request history.
func (s *CreditService) ListByTenant(ctx context.Context, tenantID string) ([]credit.Request, error) {
	return s.store.ListCreditRequestsByTenant(ctx, tenantID)
}

// List returns credit requests across tenants for the back office,
// optionally filtered by status.
func (s *CreditService) List(ctx context.Context, status credit.Status) ([]credit.Request, error) {
	return s.store.ListCreditRequests(ctx, status)
}

// Get returns a single credit request.
func (s *CreditService) Get(ctx context.Context, id string) (*credit.Request, error) {
	return s.store.GetCreditRequest(ctx, id)
}

// Decide settles a pending request. Approval raises the tenant's credit
// limit by the requested amount; either way the request is decided
// exactly once.
func (s *CreditService) Decide(ctx context.Context, id, deciderID string, req *credit.DecideRequest) (*credit.Request, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrValidation)
	}

	approve := req.Action == credit.ActionApprove
	r, err := s.store.DecideCreditRequest(ctx, id, approve, deciderID, req.Note)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.CreditDecisions.Add(ctx, 1)
	}
	slog.Info("credit request decided", "request_id", r.ID, "status", r.Status, "amount", r.Amount)
	return r, nil
}
