package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/tenant"
	"github.com/Strob0t/ProcureDesk/internal/domain/user"
)

// Store implements database.Store using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// --- Tenants ---

const tenantCols = `id, company_legal_name, employee_count, admin_name, admin_email, admin_contact,
	        address, billing_addresses, delivery_addresses, credit_limit, credit_used, verified, created_at, updated_at`

// CreateTenantWithAdmin inserts the tenant and its corporate admin user in
// one transaction so a tenant can never exist without an admin.
func (s *Store) CreateTenantWithAdmin(ctx context.Context, t *tenant.Tenant, admin *user.User) error {
	addrJSON, err := json.Marshal(t.Address)
	if err != nil {
		return fmt.Errorf("marshal address: %w", err)
	}
	billingJSON, err := json.Marshal(orEmpty(t.BillingAddresses))
	if err != nil {
		return fmt.Errorf("marshal billing_addresses: %w", err)
	}
	deliveryJSON, err := json.Marshal(orEmpty(t.DeliveryAddresses))
	if err != nil {
		return fmt.Errorf("marshal delivery_addresses: %w", err)
	}
	permsJSON, err := json.Marshal(admin.Permissions)
	if err != nil {
		return fmt.Errorf("marshal permissions: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	err = tx.QueryRow(ctx,
		`INSERT INTO tenants (company_legal_name, employee_count, admin_name, admin_email, admin_contact,
		         address, billing_addresses, delivery_addresses)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, credit_limit, credit_used, verified, created_at, updated_at`,
		t.CompanyLegalName, t.EmployeeCount, t.AdminName, t.AdminEmail, t.AdminContact,
		addrJSON, billingJSON, deliveryJSON,
	).Scan(&t.ID, &t.CreditLimit, &t.CreditUsed, &t.Verified, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("company or admin email already registered: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert tenant: %w", err)
	}

	admin.TenantID = t.ID
	err = tx.QueryRow(ctx,
		`INSERT INTO users (tenant_id, name, email, contact, designation, role, permissions)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		admin.TenantID, admin.Name, admin.Email, admin.Contact, admin.Designation, string(admin.Role), permsJSON,
	).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("admin email already registered: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert admin user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tenant: %w", err)
	}
	return nil
}

func (s *Store) GetTenant(ctx context.Context, id string) (*tenant.Tenant, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+tenantCols+` FROM tenants WHERE id = $1`, id)

	t, err := scanTenant(row)
	if err != nil {
		return nil, notFoundWrap(err, "get tenant %s", id)
	}
	return &t, nil
}

func (s *Store) ListTenants(ctx context.Context) ([]tenant.Tenant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+tenantCols+` FROM tenants ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []tenant.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (s *Store) SetTenantVerified(ctx context.Context, id string, verified bool) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tenants SET verified = $2, updated_at = now() WHERE id = $1`, id, verified)
	return execExpectOne(tag, err, "set tenant verified %s", id)
}

// --- Corporate users ---

const userCols = `id, tenant_id, name, email, contact, designation, role, permissions,
	        COALESCE(created_by::text, ''), last_login, created_at, updated_at`

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	permsJSON, err := json.Marshal(u.Permissions)
	if err != nil {
		return fmt.Errorf("marshal permissions: %w", err)
	}

	err = s.pool.QueryRow(ctx,
		`INSERT INTO users (tenant_id, name, email, contact, designation, role, permissions, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		u.TenantID, u.Name, u.Email, u.Contact, u.Designation, string(u.Role), permsJSON, nullIfEmpty(u.CreatedBy),
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email already registered: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*user.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id = $1`, id)

	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundWrap(err, "get user %s", id)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE email = $1`, email)

	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundWrap(err, "get user by email")
	}
	return &u, nil
}

func (s *Store) ListUsersByTenant(ctx context.Context, tenantID string) ([]user.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+userCols+` FROM users WHERE tenant_id = $1 ORDER BY created_at ASC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) TouchUserLogin(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET last_login = now() WHERE id = $1`, id)
	return execExpectOne(tag, err, "touch user login %s", id)
}

// --- Scanners ---

func scanTenant(row scannable) (tenant.Tenant, error) {
	var t tenant.Tenant
	var addrJSON, billingJSON, deliveryJSON []byte
	err := row.Scan(&t.ID, &t.CompanyLegalName, &t.EmployeeCount, &t.AdminName, &t.AdminEmail, &t.AdminContact,
		&addrJSON, &billingJSON, &deliveryJSON, &t.CreditLimit, &t.CreditUsed, &t.Verified, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return t, err
		}
		return t, fmt.Errorf("scan tenant: %w", err)
	}
	if err := json.Unmarshal(addrJSON, &t.Address); err != nil {
		return t, fmt.Errorf("unmarshal address: %w", err)
	}
	if err := json.Unmarshal(billingJSON, &t.BillingAddresses); err != nil {
		return t, fmt.Errorf("unmarshal billing_addresses: %w", err)
	}
	if err := json.Unmarshal(deliveryJSON, &t.DeliveryAddresses); err != nil {
		return t, fmt.Errorf("unmarshal delivery_addresses: %w", err)
	}
	return t, nil
}

func scanUser(row scannable) (user.User, error) {
	var u user.User
	var permsJSON []byte
	var lastLogin *time.Time
	err := row.Scan(&u.ID, &u.TenantID, &u.Name, &u.Email, &u.Contact, &u.Designation, &u.Role, &permsJSON,
		&u.CreatedBy, &lastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return u, err
		}
		return u, fmt.Errorf("scan user: %w", err)
	}
	if lastLogin != nil {
		u.LastLogin = *lastLogin
	}
	if err := json.Unmarshal(permsJSON, &u.Permissions); err != nil {
		return u, fmt.Errorf("unmarshal permissions: %w", err)
	}
	return u, nil
}
