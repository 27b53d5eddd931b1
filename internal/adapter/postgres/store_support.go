package postgres

import (
	"context"
	"fmt"

	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/support"
)

const ticketCols = `id, tenant_id, user_id, message, status, created_at, updated_at`

func (s *Store) CreateTicket(ctx context.Context, t *support.Ticket) error {
	t.Status = support.StatusOpen
	err := s.pool.QueryRow(ctx,
		`INSERT INTO support_tickets (tenant_id, user_id, message)
		 VALUES ($1, $2, $3)
		 RETURNING id, status, created_at, updated_at`,
		t.TenantID, t.UserID, t.Message,
	).Scan(&t.ID, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

func (s *Store) ListTicketsByTenant(ctx context.Context, tenantID string) ([]support.Ticket, error) {
	return s.listTickets(ctx,
		`SELECT `+ticketCols+` FROM support_tickets WHERE tenant_id = $1 ORDER BY created_at DESC`, tenantID)
}

// ListTickets returns tickets across all tenants, optionally filtered by
// status. An empty status means all tickets.
func (s *Store) ListTickets(ctx context.Context, status support.Status) ([]support.Ticket, error) {
	if status == "" {
		return s.listTickets(ctx,
			`SELECT `+ticketCols+` FROM support_tickets ORDER BY created_at DESC`)
	}
	return s.listTickets(ctx,
		`SELECT `+ticketCols+` FROM support_tickets WHERE status = $1 ORDER BY created_at DESC`, string(status))
}

// CloseTicket marks an open ticket closed. Closing an already-closed
// ticket is rejected.
func (s *Store) CloseTicket(ctx context.Context, id string) (*support.Ticket, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE support_tickets SET status = $2, updated_at = now()
		 WHERE id = $1 AND status = $3
		 RETURNING `+ticketCols,
		id, string(support.StatusClosed), string(support.StatusOpen))

	t, err := scanTicket(row)
	if err != nil {
		// Distinguish a missing ticket from an already-closed one.
		if _, getErr := s.getTicket(ctx, id); getErr == nil {
			return nil, fmt.Errorf("ticket %s is already closed: %w", id, domain.ErrInvalidState)
		}
		return nil, notFoundWrap(err, "close ticket %s", id)
	}
	return &t, nil
}

func (s *Store) getTicket(ctx context.Context, id string) (*support.Ticket, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+ticketCols+` FROM support_tickets WHERE id = $1`, id)
	t, err := scanTicket(row)
	if err != nil {
		return nil, notFoundWrap(err, "get ticket %s", id)
	}
	return &t, nil
}

func (s *Store) listTickets(ctx context.Context, query string, args ...any) ([]support.Ticket, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []support.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func scanTicket(row scannable) (support.Ticket, error) {
	var t support.Ticket
	err := row.Scan(&t.ID, &t.TenantID, &t.UserID, &t.Message, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}
