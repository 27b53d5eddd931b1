// Package order defines immutable order records and the checkout
// composition rules that produce them from a cart.
package order

import (
	"fmt"
	"time"

	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/cart"
	"github.com/Strob0t/ProcureDesk/internal/domain/catalog"
)

// Status is the fulfillment state of an order.
type Status string

const (
	StatusPlaced         Status = "placed"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
)

// ValidStatusTargets are the statuses the back-office may set on an order.
// "placed" is only ever set by checkout itself.
var ValidStatusTargets = map[Status]bool{
	StatusOutForDelivery: true,
	StatusDelivered:      true,
}

// Item is an immutable order line. Name and UnitPrice are snapshots taken
// at checkout time; LineTotal = Quantity × UnitPrice.
type Item struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

// Order is the record of a completed checkout. Content is immutable once
// created; only Status changes afterwards.
type Order struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	PlacedBy    string    `json:"placed_by"`
	Items       []Item    `json:"items"`
	TotalAmount int64     `json:"total_amount"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateStatusRequest is the back-office input for progressing an order.
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

// CanTransition reports whether an order in the current status may move to
// the target. "delivered" is terminal; re-setting the same status on a
// delivered order is also rejected. Forward-only ordering between the
// non-terminal states is deliberately not enforced.
func CanTransition(current, target Status) error {
	if current == StatusDelivered {
		return fmt.Errorf("order is already delivered: %w", domain.ErrInvalidState)
	}
	if !ValidStatusTargets[target] {
		return fmt.Errorf("invalid target status %q: %w", target, domain.ErrValidation)
	}
	return nil
}

// BuildFromCart validates cart lines against the current catalog state and
// materializes the order lines and total for checkout.
//
// Every line is re-priced from the product's current selling price; a line
// whose quantity is below the product's current MOQ fails the whole
// checkout (the caller must adjust the cart — quantities are never
// auto-corrected here). Missing or inactive products fail likewise: the
// cart is stale and must be fixed, not silently pruned.
func BuildFromCart(items []cart.Item, products map[string]*catalog.Product) ([]Item, int64, error) {
	if len(items) == 0 {
		return nil, 0, fmt.Errorf("cart is empty: %w", domain.ErrInvalidState)
	}

	lines := make([]Item, 0, len(items))
	var total int64
	for _, it := range items {
		p, ok := products[it.ProductID]
		if !ok || !p.Active {
			return nil, 0, fmt.Errorf("product %s is no longer available: %w", it.ProductID, domain.ErrInvalidState)
		}
		if it.Quantity < p.EffectiveMOQ() {
			return nil, 0, fmt.Errorf("quantity for %s is below MOQ (%d), please update your cart: %w",
				p.Name, p.EffectiveMOQ(), domain.ErrInvalidState)
		}
		lineTotal := int64(it.Quantity) * p.SellingPrice
		lines = append(lines, Item{
			ProductID: it.ProductID,
			Name:      p.Name,
			Quantity:  it.Quantity,
			UnitPrice: p.SellingPrice,
			LineTotal: lineTotal,
		})
		total += lineTotal
	}
	return lines, total, nil
}
