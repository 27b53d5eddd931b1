package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/credit"
)

const creditCols = `id, tenant_id, requested_by, amount, reason, status, decision_note,
	        COALESCE(decided_by::text, ''), decided_at, created_at, updated_at`

// CreateCreditRequest inserts a pending request. The partial unique index
// on (tenant_id) WHERE status = 'pending' enforces at most one pending
// request per tenant; a violation surfaces as ErrConflict.
func (s *Store) CreateCreditRequest(ctx context.Context, r *credit.Request) error {
	r.Status = credit.StatusPending
	err := s.pool.QueryRow(ctx,
		`INSERT INTO credit_requests (tenant_id, requested_by, amount, reason)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, status, created_at, updated_at`,
		r.TenantID, r.RequestedBy, r.Amount, r.Reason,
	).Scan(&r.ID, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tenant already has a pending credit request: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert credit request: %w", err)
	}
	return nil
}

func (s *Store) GetCreditRequest(ctx context.Context, id string) (*credit.Request, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+creditCols+` FROM credit_requests WHERE id = $1`, id)

	r, err := scanCreditRequest(row)
	if err != nil {
		return nil, notFoundWrap(err, "get credit request %s", id)
	}
	return &r, nil
}

func (s *Store) ListCreditRequestsByTenant(ctx context.Context, tenantID string) ([]credit.Request, error) {
	return s.listCreditRequests(ctx,
		`SELECT `+creditCols+` FROM credit_requests WHERE tenant_id = $1 ORDER BY created_at DESC`, tenantID)
}

// ListCreditRequests returns requests across all tenants, optionally
// filtered by status. An empty status means all requests.
func (s *Store) ListCreditRequests(ctx context.Context, status credit.Status) ([]credit.Request, error) {
	if status == "" {
		return s.listCreditRequests(ctx,
			`SELECT `+creditCols+` FROM credit_requests ORDER BY created_at DESC`)
	}
	return s.listCreditRequests(ctx,
		`SELECT `+creditCols+` FROM credit_requests WHERE status = $1 ORDER BY created_at DESC`, string(status))
}

// DecideCreditRequest settles a pending request exactly once. The request
// row is locked FOR UPDATE so two concurrent decisions serialize; the
// loser sees a non-pending status and gets ErrInvalidState. An approval
// raises the tenant's credit limit in the same transaction.
func (s *Store) DecideCreditRequest(ctx context.Context, id string, approve bool, deciderID, note string) (*credit.Request, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	row := tx.QueryRow(ctx,
		`SELECT `+creditCols+` FROM credit_requests WHERE id = $1 FOR UPDATE`, id)
	r, err := scanCreditRequest(row)
	if err != nil {
		return nil, notFoundWrap(err, "get credit request %s", id)
	}
	if r.Status != credit.StatusPending {
		return nil, fmt.Errorf("credit request already %s: %w", r.Status, domain.ErrInvalidState)
	}

	status := credit.StatusRejected
	if approve {
		status = credit.StatusApproved
		if _, err := tx.Exec(ctx,
			`UPDATE tenants SET credit_limit = credit_limit + $2, updated_at = now() WHERE id = $1`,
			r.TenantID, r.Amount); err != nil {
			return nil, fmt.Errorf("raise credit limit: %w", err)
		}
	}

	err = tx.QueryRow(ctx,
		`UPDATE credit_requests
		 SET status = $2, decision_note = $3, decided_by = $4, decided_at = now(), updated_at = now()
		 WHERE id = $1
		 RETURNING decided_at, updated_at`,
		id, string(status), note, deciderID,
	).Scan(&r.DecidedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("decide credit request %s: %w", id, err)
	}
	r.Status = status
	r.DecisionNote = note
	r.DecidedBy = deciderID

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit credit decision: %w", err)
	}
	return &r, nil
}

func (s *Store) listCreditRequests(ctx context.Context, query string, args ...any) ([]credit.Request, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list credit requests: %w", err)
	}
	defer rows.Close()

	var requests []credit.Request
	for rows.Next() {
		r, err := scanCreditRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

func scanCreditRequest(row scannable) (credit.Request, error) {
	var r credit.Request
	var decidedAt *time.Time
	err := row.Scan(&r.ID, &r.TenantID, &r.RequestedBy, &r.Amount, &r.Reason, &r.Status, &r.DecisionNote,
		&r.DecidedBy, &decidedAt, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("scan credit request: %w", err)
	}
	if decidedAt != nil {
		r.DecidedAt = *decidedAt
	}
	return r, nil
}
