package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/cart"
)

// GetOrCreateCart returns the tenant's cart, creating an empty one on
// first use. The unique tenant_id constraint makes concurrent first adds
// converge on a single cart row.
func (s *Store) GetOrCreateCart(ctx context.Context, tenantID, userID string) (*cart.Cart, error) {
	c := &cart.Cart{TenantID: tenantID}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO carts (tenant_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (tenant_id) DO UPDATE SET updated_at = now()
		 RETURNING id, user_id, created_at, updated_at`,
		tenantID, userID,
	).Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}

	items, err := s.loadCartItems(ctx, s.pool, c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return c, nil
}

// UpsertCartItem adds a line or replaces the quantity and snapshot of an
// existing line for the same product.
func (s *Store) UpsertCartItem(ctx context.Context, tenantID, userID string, item cart.Item) (*cart.Cart, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var cartID string
	err = tx.QueryRow(ctx,
		`INSERT INTO carts (tenant_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (tenant_id) DO UPDATE SET updated_at = now()
		 RETURNING id`,
		tenantID, userID,
	).Scan(&cartID)
	if err != nil {
		return nil, fmt.Errorf("get or create cart: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO cart_items (cart_id, product_id, quantity, unit_price, moq)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (cart_id, product_id) DO UPDATE SET
		   quantity = EXCLUDED.quantity,
		   unit_price = EXCLUDED.unit_price,
		   moq = EXCLUDED.moq,
		   updated_at = now()`,
		cartID, item.ProductID, item.Quantity, item.UnitPrice, item.MOQ)
	if err != nil {
		return nil, fmt.Errorf("upsert cart item: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit cart item: %w", err)
	}
	return s.loadCart(ctx, s.pool, tenantID)
}

// IncrementCartItem bumps a line quantity by one. The increment is a
// single atomic UPDATE against the stored value, so concurrent bumps
// never lose updates.
func (s *Store) IncrementCartItem(ctx context.Context, tenantID, itemID string) (*cart.Cart, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE cart_items SET quantity = quantity + 1, updated_at = now()
		 WHERE id = $1 AND cart_id = (SELECT id FROM carts WHERE tenant_id = $2)`,
		itemID, tenantID)
	if err := execExpectOne(tag, err, "increment cart item %s", itemID); err != nil {
		return nil, err
	}
	return s.loadCart(ctx, s.pool, tenantID)
}

// DecrementCartItem lowers a line quantity by one but never below the
// line's MOQ snapshot. Removing the line entirely is a separate
// operation and is not MOQ-gated.
func (s *Store) DecrementCartItem(ctx context.Context, tenantID, itemID string) (*cart.Cart, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var quantity, moq int
	err = tx.QueryRow(ctx,
		`SELECT quantity, moq FROM cart_items
		 WHERE id = $1 AND cart_id = (SELECT id FROM carts WHERE tenant_id = $2)
		 FOR UPDATE`,
		itemID, tenantID,
	).Scan(&quantity, &moq)
	if err != nil {
		return nil, notFoundWrap(err, "decrement cart item %s", itemID)
	}

	floor := moq
	if floor < 1 {
		floor = 1
	}
	if quantity-1 < floor {
		return nil, fmt.Errorf("quantity cannot go below MOQ (%d): %w", floor, domain.ErrInvalidState)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE cart_items SET quantity = quantity - 1, updated_at = now() WHERE id = $1`, itemID); err != nil {
		return nil, fmt.Errorf("decrement cart item %s: %w", itemID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit decrement: %w", err)
	}
	return s.loadCart(ctx, s.pool, tenantID)
}

func (s *Store) RemoveCartItem(ctx context.Context, tenantID, itemID string) (*cart.Cart, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM cart_items
		 WHERE id = $1 AND cart_id = (SELECT id FROM carts WHERE tenant_id = $2)`,
		itemID, tenantID)
	if err := execExpectOne(tag, err, "remove cart item %s", itemID); err != nil {
		return nil, err
	}
	return s.loadCart(ctx, s.pool, tenantID)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *Store) loadCart(ctx context.Context, q querier, tenantID string) (*cart.Cart, error) {
	var c cart.Cart
	err := q.QueryRow(ctx,
		`SELECT id, tenant_id, user_id, created_at, updated_at FROM carts WHERE tenant_id = $1`,
		tenantID,
	).Scan(&c.ID, &c.TenantID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFoundWrap(err, "get cart for tenant %s", tenantID)
	}

	items, err := s.loadCartItems(ctx, q, c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return &c, nil
}

func (s *Store) loadCartItems(ctx context.Context, q querier, cartID string) ([]cart.Item, error) {
	rows, err := q.Query(ctx,
		`SELECT id, product_id, quantity, unit_price, moq, created_at, updated_at
		 FROM cart_items WHERE cart_id = $1 ORDER BY created_at ASC`, cartID)
	if err != nil {
		return nil, fmt.Errorf("load cart items: %w", err)
	}
	defer rows.Close()

	items := []cart.Item{}
	for rows.Next() {
		var it cart.Item
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.MOQ,
			&it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
