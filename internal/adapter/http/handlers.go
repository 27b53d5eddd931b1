package http

import (
	"net/http"

	"github.com/Strob0t/ProcureDesk/internal/service"
)

// Handlers holds all HTTP handlers and their service dependencies.
type Handlers struct {
	auth     *service.AuthService
	staff    *service.StaffService
	tenants  *service.TenantService
	catalog  *service.CatalogService
	carts    *service.CartService
	checkout *service.CheckoutService
	orders   *service.OrderService
	credits  *service.CreditService
	support  *service.SupportService
	homepage *service.HomepageService
}

// NewHandlers creates the handler set.
func NewHandlers(
	auth *service.AuthService,
	staff *service.StaffService,
	tenants *service.TenantService,
	catalog *service.CatalogService,
	carts *service.CartService,
	checkout *service.CheckoutService,
	orders *service.OrderService,
	credits *service.CreditService,
	support *service.SupportService,
	homepage *service.HomepageService,
) *Handlers {
	return &Handlers{
		auth:     auth,
		staff:    staff,
		tenants:  tenants,
		catalog:  catalog,
		carts:    carts,
		checkout: checkout,
		orders:   orders,
		credits:  credits,
		support:  support,
		homepage: homepage,
	}
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
