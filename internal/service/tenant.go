package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/tenant"
	"github.com/Strob0t/ProcureDesk/internal/domain/user"
	"github.com/Strob0t/ProcureDesk/internal/port/database"
)

// TenantService manages corporate tenant accounts and their employees.
type TenantService struct {
	store database.Store
}

// NewTenantService creates a new tenant service.
func NewTenantService(store database.Store) *TenantService {
	return &TenantService{store: store}
}

// Register creates a tenant together with its corporate admin user. The
// tenant starts unverified with a zero credit limit; back-office staff
// verify it and the tenant raises its limit through credit requests.
func (s *TenantService) Register(ctx context.Context, req *tenant.RegisterRequest) (*tenant.Tenant, *user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", err, domain.ErrValidation)
	}

	t := &tenant.Tenant{
		CompanyLegalName:  req.CompanyLegalName,
		EmployeeCount:     req.EmployeeCount,
		AdminName:         req.AdminName,
		AdminEmail:        req.AdminEmail,
		AdminContact:      req.AdminContact,
		Address:           req.Address,
		BillingAddresses:  req.BillingAddresses,
		DeliveryAddresses: req.DeliveryAddresses,
	}
	admin := &user.User{
		Name:        req.AdminName,
		Email:       req.AdminEmail,
		Contact:     req.AdminContact,
		Role:        user.RoleCorporateAdmin,
		Permissions: user.DefaultPermissions(user.RoleCorporateAdmin),
	}

	if err := s.store.CreateTenantWithAdmin(ctx, t, admin); err != nil {
		return nil, nil, err
	}

	slog.Info("tenant registered", "tenant_id", t.ID, "company", t.CompanyLegalName)
	return t, admin, nil
}

// Get returns a tenant by ID.
func (s *TenantService) Get(ctx context.Context, id string) (*tenant.Tenant, error) {
	return s.store.GetTenant(ctx, id)
}

// List returns all tenants for the back office.
func (s *TenantService) List(ctx context.Context) ([]tenant.Tenant, error) {
	return s.store.ListTenants(ctx)
}

// SetVerified marks a tenant verified (or unverified) by staff.
func (s *TenantService) SetVerified(ctx context.Context, id string, verified bool) (*tenant.Tenant, error) {
	if err := s.store.SetTenantVerified(ctx, id, verified); err != nil {
		return nil, err
	}
	return s.store.GetTenant(ctx, id)
}

// CreateUser adds an employee to a tenant. Permissions are derived from
// the role at creation time.
func (s *TenantService) CreateUser(ctx context.Context, tenantID, createdBy string, req *user.CreateRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrValidation)
	}

	u := &user.User{
		TenantID:    tenantID,
		Name:        req.Name,
		Email:       req.Email,
		Contact:     req.Contact,
		Designation: req.Designation,
		Role:        req.Role,
		Permissions: user.DefaultPermissions(req.Role),
		CreatedBy:   createdBy,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ListUsers returns the tenant's employees.
func (s *TenantService) ListUsers(ctx context.Context, tenantID string) ([]user.User, error) {
	return s.store.ListUsersByTenant(ctx, tenantID)
}
