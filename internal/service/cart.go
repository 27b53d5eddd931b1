package service

import (
	"context"
	"fmt"

	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/cart"
	"github.com/Strob0t/ProcureDesk/internal/port/database"
)

// CartService manages the tenant's single shared cart.
type CartService struct {
	store database.Store
}

// NewCartService creates a new cart service.
func NewCartService(store database.Store) *CartService {
	return &CartService{store: store}
}

// Get returns the tenant's cart, creating a persistent empty one on
// first access.
func (s *CartService) Get(ctx context.Context, tenantID, userID string) (*cart.Cart, error) {
	return s.store.GetOrCreateCart(ctx, tenantID, userID)
}

// AddItem adds a product to the cart or replaces the existing line's
// quantity. Requests below the product's MOQ are silently raised to it;
// the line snapshots the current selling price and MOQ.
func (s *CartService) AddItem(ctx context.Context, tenantID, userID string, req *cart.AddItemRequest) (*cart.Cart, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrValidation)
	}

	p, err := s.store.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, fmt.Errorf("product %s not found or inactive: %w", p.ID, domain.ErrNotFound)
	}

	item := cart.Item{
		ProductID: p.ID,
		Quantity:  cart.EffectiveQuantity(req.Quantity, p.MOQ),
		UnitPrice: p.SellingPrice,
		MOQ:       p.EffectiveMOQ(),
	}
	return s.store.UpsertCartItem(ctx, tenantID, userID, item)
}

// Increment bumps a cart line's quantity by one.
func (s *CartService) Increment(ctx context.Context, tenantID, itemID string) (*cart.Cart, error) {
	return s.store.IncrementCartItem(ctx, tenantID, itemID)
}

// Decrement lowers a cart line's quantity by one, refusing to go below
// the line's MOQ snapshot. To drop a line entirely, use Remove, which is
// not MOQ-gated.
func (s *CartService) Decrement(ctx context.Context, tenantID, itemID string) (*cart.Cart, error) {
	return s.store.DecrementCartItem(ctx, tenantID, itemID)
}

// Remove deletes a cart line regardless of MOQ.
func (s *CartService) Remove(ctx context.Context, tenantID, itemID string) (*cart.Cart, error) {
	return s.store.RemoveCartItem(ctx, tenantID, itemID)
}
