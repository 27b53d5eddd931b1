package postgres

import (
	"context"
	"fmt"

	"github.com/Strob0t/ProcureDesk/internal/domain/order"
)

const orderCols = `id, tenant_id, placed_by, total_amount, status, created_at, updated_at`

func (s *Store) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+orderCols+` FROM orders WHERE id = $1`, id)

	o, err := scanOrder(row)
	if err != nil {
		return nil, notFoundWrap(err, "get order %s", id)
	}

	items, err := s.loadOrderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// GetTenantOrder fetches an order scoped to a tenant, so one tenant can
// never read another's orders by guessing IDs.
func (s *Store) GetTenantOrder(ctx context.Context, tenantID, id string) (*order.Order, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+orderCols+` FROM orders WHERE id = $1 AND tenant_id = $2`, id, tenantID)

	o, err := scanOrder(row)
	if err != nil {
		return nil, notFoundWrap(err, "get order %s", id)
	}

	items, err := s.loadOrderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (s *Store) ListOrdersByTenant(ctx context.Context, tenantID string) ([]order.Order, error) {
	return s.listOrders(ctx,
		`SELECT `+orderCols+` FROM orders WHERE tenant_id = $1 ORDER BY created_at DESC`, tenantID)
}

// ListOrders returns orders across all tenants, optionally filtered by
// status. An empty status means all orders.
func (s *Store) ListOrders(ctx context.Context, status order.Status) ([]order.Order, error) {
	if status == "" {
		return s.listOrders(ctx,
			`SELECT `+orderCols+` FROM orders ORDER BY created_at DESC`)
	}
	return s.listOrders(ctx,
		`SELECT `+orderCols+` FROM orders WHERE status = $1 ORDER BY created_at DESC`, string(status))
}

// UpdateOrderStatus progresses an order under a row lock so the
// delivered-is-terminal rule holds even for concurrent updates.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, target order.Status) (*order.Order, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	row := tx.QueryRow(ctx,
		`SELECT `+orderCols+` FROM orders WHERE id = $1 FOR UPDATE`, id)
	o, err := scanOrder(row)
	if err != nil {
		return nil, notFoundWrap(err, "get order %s", id)
	}

	if err := order.CanTransition(o.Status, target); err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1 RETURNING updated_at`,
		id, string(target),
	).Scan(&o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update order status %s: %w", id, err)
	}
	o.Status = target

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit order status: %w", err)
	}

	items, err := s.loadOrderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (s *Store) listOrders(ctx context.Context, query string, args ...any) ([]order.Order, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := s.loadOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *Store) loadOrderItems(ctx context.Context, orderID string) ([]order.Item, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT product_id, name, quantity, unit_price, line_total
		 FROM order_items WHERE order_id = $1 ORDER BY id ASC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	items := []order.Item{}
	for rows.Next() {
		var it order.Item
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanOrder(row scannable) (order.Order, error) {
	var o order.Order
	err := row.Scan(&o.ID, &o.TenantID, &o.PlacedBy, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}
