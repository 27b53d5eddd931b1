// Package database defines the persistence port for ProcureDesk.
package database

import (
	"context"

	"github.com/Strob0t/ProcureDesk/internal/domain/cart"
	"github.com/Strob0t/ProcureDesk/internal/domain/catalog"
	"github.com/Strob0t/ProcureDesk/internal/domain/credit"
	"github.com/Strob0t/ProcureDesk/internal/domain/homepage"
	"github.com/Strob0t/ProcureDesk/internal/domain/order"
	"github.com/Strob0t/ProcureDesk/internal/domain/staff"
	"github.com/Strob0t/ProcureDesk/internal/domain/support"
	"github.com/Strob0t/ProcureDesk/internal/domain/tenant"
	"github.com/Strob0t/ProcureDesk/internal/domain/user"
)

// Store is the persistence interface for all ProcureDesk entities.
//
// Methods that touch the tenant credit ledger (CheckoutCart,
// DecideCreditRequest) are atomic: they serialize per tenant so that
// concurrent checkouts and credit approvals cannot jointly violate
// creditUsed <= creditLimit. Cart counter mutations are read-modify-write
// against the latest stored value, never last-write-wins.
type Store interface {
	// Tenants
	CreateTenantWithAdmin(ctx context.Context, t *tenant.Tenant, admin *user.User) error
	GetTenant(ctx context.Context, id string) (*tenant.Tenant, error)
	ListTenants(ctx context.Context) ([]tenant.Tenant, error)
	SetTenantVerified(ctx context.Context, id string, verified bool) error

	// Corporate users
	CreateUser(ctx context.Context, u *user.User) error
	GetUser(ctx context.Context, id string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	ListUsersByTenant(ctx context.Context, tenantID string) ([]user.User, error)
	TouchUserLogin(ctx context.Context, id string) error

	// Staff
	CreateStaff(ctx context.Context, s *staff.Staff) error
	GetStaff(ctx context.Context, id string) (*staff.Staff, error)
	GetStaffByEmail(ctx context.Context, email string) (*staff.Staff, error)
	TouchStaffLogin(ctx context.Context, id string) error

	// Catalog
	CreateCategory(ctx context.Context, c *catalog.Category) error
	GetCategory(ctx context.Context, id string) (*catalog.Category, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]catalog.Category, error)
	UpdateCategory(ctx context.Context, c *catalog.Category) error
	DeleteCategory(ctx context.Context, id string) error
	AddSubcategory(ctx context.Context, categoryID string, sc *catalog.Subcategory) error
	CreateProduct(ctx context.Context, p *catalog.Product) error
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
	UpdateProduct(ctx context.Context, p *catalog.Product) error
	SearchProducts(ctx context.Context, req catalog.SearchRequest) (*catalog.SearchResult, error)

	// Cart
	GetOrCreateCart(ctx context.Context, tenantID, userID string) (*cart.Cart, error)
	UpsertCartItem(ctx context.Context, tenantID, userID string, item cart.Item) (*cart.Cart, error)
	IncrementCartItem(ctx context.Context, tenantID, itemID string) (*cart.Cart, error)
	DecrementCartItem(ctx context.Context, tenantID, itemID string) (*cart.Cart, error)
	RemoveCartItem(ctx context.Context, tenantID, itemID string) (*cart.Cart, error)

	// Checkout: atomically re-validates the cart against the live catalog,
	// debits the tenant ledger, creates the order, and clears the cart.
	CheckoutCart(ctx context.Context, tenantID, userID string) (*order.Order, error)

	// Orders
	GetOrder(ctx context.Context, id string) (*order.Order, error)
	GetTenantOrder(ctx context.Context, tenantID, id string) (*order.Order, error)
	ListOrdersByTenant(ctx context.Context, tenantID string) ([]order.Order, error)
	ListOrders(ctx context.Context, status order.Status) ([]order.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, target order.Status) (*order.Order, error)

	// Credit requests
	CreateCreditRequest(ctx context.Context, r *credit.Request) error
	GetCreditRequest(ctx context.Context, id string) (*credit.Request, error)
	ListCreditRequestsByTenant(ctx context.Context, tenantID string) ([]credit.Request, error)
	ListCreditRequests(ctx context.Context, status credit.Status) ([]credit.Request, error)
	DecideCreditRequest(ctx context.Context, id string, approve bool, deciderID, note string) (*credit.Request, error)

	// Support tickets
	CreateTicket(ctx context.Context, t *support.Ticket) error
	ListTicketsByTenant(ctx context.Context, tenantID string) ([]support.Ticket, error)
	ListTickets(ctx context.Context, status support.Status) ([]support.Ticket, error)
	CloseTicket(ctx context.Context, id string) (*support.Ticket, error)

	// Homepage
	GetHomepage(ctx context.Context) (*homepage.Homepage, error)
	UpsertHomepage(ctx context.Context, h *homepage.Homepage) error
}
