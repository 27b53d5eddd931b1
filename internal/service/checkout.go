package service

import (
	"context"
	"log/slog"

	"github.com/Strob0t/ProcureDesk/internal/adapter/otel"
	"github.com/Strob0t/ProcureDesk/internal/domain/order"
	"github.com/Strob0t/ProcureDesk/internal/port/database"
)

// CheckoutService converts carts into orders against the tenant ledger.
type CheckoutService struct {
	store   database.Store
	metrics *otel.Metrics
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(store database.Store, metrics *otel.Metrics) *CheckoutService {
	return &CheckoutService{store: store, metrics: metrics}
}

// Checkout places an order from the tenant's cart. All validation,
// re-pricing, the credit check, the ledger debit, and the cart clear
// happen atomically in the store; concurrent checkouts for one tenant
// serialize there.
func (s *CheckoutService) Checkout(ctx context.Context, tenantID, userID string) (*order.Order, error) {
	o, err := s.store.CheckoutCart(ctx, tenantID, userID)
	if err != nil {
		if s.metrics != nil {
			s.metrics.CheckoutsFailed.Add(ctx, 1)
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.OrdersPlaced.Add(ctx, 1)
		s.metrics.CheckoutAmount.Record(ctx, o.TotalAmount)
	}
	slog.Info("order placed", "order_id", o.ID, "tenant_id", tenantID, "total", o.TotalAmount)
	return o, nil
}
