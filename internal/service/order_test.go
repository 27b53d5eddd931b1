package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/order"
)

func seedOrder(store *mockStore, tenantID string, status order.Status) string {
	store.mu.Lock()
	defer store.mu.Unlock()
	id := store.nextID("order")
	store.orders = append(store.orders, order.Order{
		ID: id, TenantID: tenantID, Status: status, TotalAmount: 1000, CreatedAt: time.Now(),
	})
	return id
}

func TestOrderUpdateStatus(t *testing.T) {
	store := newMockStore()
	id := seedOrder(store, "tenant-1", order.StatusPlaced)
	svc := NewOrderService(store)

	o, err := svc.UpdateStatus(context.Background(), id, &order.UpdateStatusRequest{Status: order.StatusOutForDelivery})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Status != order.StatusOutForDelivery {
		t.Fatalf("expected out_for_delivery, got %q", o.Status)
	}
}

func TestOrderDeliveredIsTerminal(t *testing.T) {
	store := newMockStore()
	id := seedOrder(store, "tenant-1", order.StatusDelivered)
	svc := NewOrderService(store)

	_, err := svc.UpdateStatus(context.Background(), id, &order.UpdateStatusRequest{Status: order.StatusOutForDelivery})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	// Re-setting delivered on a delivered order is also refused.
	_, err = svc.UpdateStatus(context.Background(), id, &order.UpdateStatusRequest{Status: order.StatusDelivered})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestOrderUpdateStatusInvalidTarget(t *testing.T) {
	store := newMockStore()
	id := seedOrder(store, "tenant-1", order.StatusPlaced)
	svc := NewOrderService(store)

	// "placed" is set only by checkout.
	_, err := svc.UpdateStatus(context.Background(), id, &order.UpdateStatusRequest{Status: order.StatusPlaced})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestOrderListStatusFilter(t *testing.T) {
	store := newMockStore()
	seedOrder(store, "tenant-1", order.StatusPlaced)
	seedOrder(store, "tenant-1", order.StatusDelivered)
	seedOrder(store, "tenant-2", order.StatusDelivered)
	svc := NewOrderService(store)

	delivered, err := svc.List(context.Background(), order.StatusDelivered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(delivered) != 2 {
		t.Fatalf("expected 2 delivered orders, got %d", len(delivered))
	}

	all, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(all))
	}
}

func TestOrderListUnknownStatus(t *testing.T) {
	svc := NewOrderService(newMockStore())

	_, err := svc.List(context.Background(), "shipped")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestOrderGetForTenantScoped(t *testing.T) {
	store := newMockStore()
	id := seedOrder(store, "tenant-1", order.StatusPlaced)
	svc := NewOrderService(store)

	if _, err := svc.GetForTenant(context.Background(), "tenant-1", id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Another tenant must not see the order.
	_, err := svc.GetForTenant(context.Background(), "tenant-2", id)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-tenant read, got %v", err)
	}
}
