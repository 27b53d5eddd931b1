package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/Strob0t/ProcureDesk/internal/domain/staff"
	"github.com/Strob0t/ProcureDesk/internal/domain/user"
	"github.com/Strob0t/ProcureDesk/internal/middleware"
	"github.com/Strob0t/ProcureDesk/internal/service"
)

// MountRoutes registers all API routes on the given chi router. The
// corporate group authenticates with OTP-issued tokens; the CRM group
// with staff password-issued tokens.
func MountRoutes(r chi.Router, h *Handlers, authSvc *service.AuthService, staffSvc *service.StaffService) {
	r.Get("/health", h.Health)

	r.Route("/api/v1/corporate", func(r chi.Router) {
		// Public: registration and login.
		r.Post("/register", h.RegisterTenant)
		r.Post("/auth/otp", h.RequestOTP)
		r.Post("/auth/verify", h.VerifyOTP)

		// Public storefront reads.
		r.Get("/categories", h.ListCategories)
		r.Get("/products", h.SearchProducts)
		r.Get("/products/{id}", h.GetProduct)
		r.Get("/homepage", h.GetHomepage)

		// Authenticated corporate routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.CorporateAuth(authSvc))

			r.Get("/me", h.Me)

			r.With(middleware.RequirePermission(func(p user.Permissions) bool { return p.CanCreateUsers })).
				Post("/users", h.CreateTenantUser)
			r.Get("/users", h.ListTenantUsers)

			r.Get("/cart", h.GetCart)
			r.Post("/cart/items", h.AddCartItem)
			r.Post("/cart/items/{itemId}/increment", h.IncrementCartItem)
			r.Post("/cart/items/{itemId}/decrement", h.DecrementCartItem)
			r.Delete("/cart/items/{itemId}", h.RemoveCartItem)

			r.With(middleware.RequirePermission(func(p user.Permissions) bool { return p.CanPlaceOrders })).
				Post("/checkout", h.Checkout)

			r.With(middleware.RequirePermission(func(p user.Permissions) bool { return p.CanViewOrders })).
				Get("/orders", h.ListTenantOrders)
			r.With(middleware.RequirePermission(func(p user.Permissions) bool { return p.CanViewOrders })).
				Get("/orders/{id}", h.GetTenantOrder)

			r.With(middleware.RequirePermission(func(p user.Permissions) bool { return p.CanRequestCredits })).
				Post("/credit-requests", h.CreateCreditRequest)
			r.With(middleware.RequirePermission(func(p user.Permissions) bool { return p.CanViewCredits })).
				Get("/credit-requests", h.ListTenantCreditRequests)

			r.Post("/tickets", h.CreateTicket)
			r.Get("/tickets", h.ListTenantTickets)
		})
	})

	r.Route("/api/v1/crm", func(r chi.Router) {
		r.Post("/auth/register", h.StaffRegister)
		r.Post("/auth/login", h.StaffLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.StaffAuth(staffSvc))

			r.Get("/tenants", h.ListTenants)
			r.Get("/tenants/{id}", h.GetTenant)
			r.Post("/tenants/{id}/verify", h.VerifyTenant)

			r.Get("/categories", h.ListAllCategories)
			r.Get("/categories/{id}", h.GetCategory)
			r.Get("/orders", h.ListOrders)
			r.Get("/orders/{id}", h.GetOrder)
			r.Get("/credit-requests", h.ListCreditRequests)
			r.Get("/tickets", h.ListTickets)
			r.Post("/tickets/{id}/close", h.CloseTicket)

			// Catalog, fulfillment, and credit decisions are admin-only.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireStaffRole(staff.RoleAdmin))

				r.Post("/categories", h.CreateCategory)
				r.Patch("/categories/{id}", h.UpdateCategory)
				r.Delete("/categories/{id}", h.DeleteCategory)
				r.Post("/categories/{id}/subcategories", h.AddSubcategory)
				r.Post("/products", h.CreateProduct)
				r.Patch("/products/{id}", h.UpdateProduct)

				r.Patch("/orders/{id}/status", h.UpdateOrderStatus)
				r.Post("/credit-requests/{id}/decide", h.DecideCreditRequest)
				r.Put("/homepage", h.UpsertHomepage)
			})
		})
	})
}
