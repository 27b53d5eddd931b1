package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/order"
	"github.com/Strob0t/ProcureDesk/internal/port/database"
)

// OrderService reads orders and progresses their fulfillment status.
type OrderService struct {
	store database.Store
}

// NewOrderService creates a new order service.
func NewOrderService(store database.Store) *OrderService {
	return &OrderService{store: store}
}

// GetForTenant returns an order scoped to its tenant.
func (s *OrderService) GetForTenant(ctx context.Context, tenantID, id string) (*order.Order, error) {
	return s.store.GetTenantOrder(ctx, tenantID, id)
}

// Get returns an order for the back office.
func (s *OrderService) Get(ctx context.Context, id string) (*order.Order, error) {
	return s.store.GetOrder(ctx, id)
}

// ListByTenant returns a tenant's order history, newest first.
func (s *OrderService) ListByTenant(ctx context.Context, tenantID string) ([]order.Order, error) {
	return s.store.ListOrdersByTenant(ctx, tenantID)
}

// List returns orders across tenants for the back office, optionally
// filtered by status.
func (s *OrderService) List(ctx context.Context, status order.Status) ([]order.Order, error) {
	if status != "" && status != order.StatusPlaced && !order.ValidStatusTargets[status] {
		return nil, fmt.Errorf("unknown status %q: %w", status, domain.ErrValidation)
	}
	return s.store.ListOrders(ctx, status)
}

// UpdateStatus progresses an order. Delivered orders are terminal.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, req *order.UpdateStatusRequest) (*order.Order, error) {
	o, err := s.store.UpdateOrderStatus(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}
	slog.Info("order status updated", "order_id", o.ID, "status", o.Status)
	return o, nil
}
