// Package cart defines the tenant-scoped pre-order staging area.
//
// A tenant has exactly one cart, created lazily on the first item add.
// Every line item carries a price/MOQ snapshot taken from the catalog at
// add time; the snapshot is advisory — checkout re-validates against the
// live catalog.
package cart

import (
	"errors"
	"time"
)

// Item is a line in a cart, owned exclusively by its cart. UnitPrice is
// in minor currency units.
type Item struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
	MOQ       int       `json:"moq"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cart holds a tenant's staged items. It persists (empty) across checkouts.
type Cart struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	UserID    string    `json:"user_id"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subtotal returns the sum of quantity × unit price over all lines, based
// on the stored snapshots.
func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, it := range c.Items {
		sum += int64(it.Quantity) * it.UnitPrice
	}
	return sum
}

// AddItemRequest is the input for adding or replacing a cart line.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Validate checks that the AddItemRequest has all required fields.
func (r *AddItemRequest) Validate() error {
	if r.ProductID == "" {
		return errors.New("product_id is required")
	}
	if r.Quantity < 1 {
		return errors.New("quantity must be at least 1")
	}
	return nil
}

// EffectiveQuantity applies the MOQ auto-raise rule: an under-MOQ request
// is silently raised to the product's MOQ rather than rejected.
func EffectiveQuantity(requested, moq int) int {
	if moq < 1 {
		moq = 1
	}
	if requested < moq {
		return moq
	}
	return requested
}
