package service

import (
	"context"
	"fmt"

	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/support"
	"github.com/Strob0t/ProcureDesk/internal/port/database"
)

// SupportService manages support tickets.
type SupportService struct {
	store database.Store
}

// NewSupportService creates a new support service.
func NewSupportService(store database.Store) *SupportService {
	return &SupportService{store: store}
}

// Create raises a ticket for a tenant.
func (s *SupportService) Create(ctx context.Context, tenantID, userID string, req *support.CreateRequest) (*support.Ticket, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrValidation)
	}

	t := &support.Ticket{
		TenantID: tenantID,
		UserID:   userID,
		Message:  req.Message,
	}
	if err := s.store.CreateTicket(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListByTenant returns a tenant's tickets.
func (s *SupportService) ListByTenant(ctx context.Context, tenantID string) ([]support.Ticket, error) {
	return s.store.ListTicketsByTenant(ctx, tenantID)
}

// List returns tickets across tenants for the back office, optionally
// filtered by status.
func (s *SupportService) List(ctx context.Context, status support.Status) ([]support.Ticket, error) {
	return s.store.ListTickets(ctx, status)
}

// Close marks a ticket closed.
func (s *SupportService) Close(ctx context.Context, id string) (*support.Ticket, error) {
	return s.store.CloseTicket(ctx, id)
}
