package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/catalog"
	"github.com/Strob0t/ProcureDesk/internal/domain/order"
)

// CheckoutCart converts the tenant's cart into an order in a single
// transaction: it re-validates every line against the live catalog,
// re-prices from current selling prices, debits the tenant ledger, and
// clears the cart.
//
// The cart row and then the tenant row are locked FOR UPDATE, so
// concurrent checkouts for the same tenant serialize and the committed
// state always satisfies credit_used <= credit_limit. DecideCreditRequest
// locks the tenant row under the same ordering, so limit raises and
// checkouts interleave safely.
func (s *Store) CheckoutCart(ctx context.Context, tenantID, userID string) (*order.Order, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var cartID string
	err = tx.QueryRow(ctx,
		`SELECT id FROM carts WHERE tenant_id = $1 FOR UPDATE`, tenantID,
	).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cart is empty: %w", domain.ErrInvalidState)
		}
		return nil, fmt.Errorf("lock cart: %w", err)
	}

	items, err := s.loadCartItems(ctx, tx, cartID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]string, 0, len(items))
	for _, it := range items {
		productIDs = append(productIDs, it.ProductID)
	}
	products, err := loadProductsByID(ctx, tx, productIDs)
	if err != nil {
		return nil, err
	}

	lines, total, err := order.BuildFromCart(items, products)
	if err != nil {
		return nil, err
	}

	var creditLimit, creditUsed int64
	err = tx.QueryRow(ctx,
		`SELECT credit_limit, credit_used FROM tenants WHERE id = $1 FOR UPDATE`, tenantID,
	).Scan(&creditLimit, &creditUsed)
	if err != nil {
		return nil, notFoundWrap(err, "lock tenant %s", tenantID)
	}
	if creditUsed+total > creditLimit {
		return nil, fmt.Errorf("insufficient credit: need %d, available %d: %w",
			total, creditLimit-creditUsed, domain.ErrInvalidState)
	}

	o := &order.Order{
		TenantID:    tenantID,
		PlacedBy:    userID,
		Items:       lines,
		TotalAmount: total,
		Status:      order.StatusPlaced,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (tenant_id, placed_by, total_amount, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		o.TenantID, o.PlacedBy, o.TotalAmount, string(o.Status),
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for i, line := range lines {
		if _, err := tx.Exec(ctx,
			`INSERT INTO order_items (order_id, product_id, name, quantity, unit_price, line_total)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			o.ID, line.ProductID, line.Name, line.Quantity, line.UnitPrice, line.LineTotal); err != nil {
			return nil, fmt.Errorf("insert order item %d: %w", i, err)
		}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE tenants SET credit_used = credit_used + $2, updated_at = now() WHERE id = $1`,
		tenantID, total); err != nil {
		return nil, fmt.Errorf("debit tenant ledger: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit checkout: %w", err)
	}
	return o, nil
}

func loadProductsByID(ctx context.Context, q querier, ids []string) (map[string]*catalog.Product, error) {
	products := make(map[string]*catalog.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	rows, err := q.Query(ctx,
		`SELECT `+productCols+` FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products[p.ID] = &p
	}
	return products, rows.Err()
}
