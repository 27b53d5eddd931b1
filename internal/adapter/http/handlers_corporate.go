package http

import (
	"net/http"

	"github.com/Strob0t/ProcureDesk/internal/domain/catalog"
	"github.com/Strob0t/ProcureDesk/internal/domain/credit"
	"github.com/Strob0t/ProcureDesk/internal/domain/support"
	"github.com/Strob0t/ProcureDesk/internal/middleware"
)

// --- Catalog (corporate-facing) ---

// ListCategories returns the active category tree.
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context(), true)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// GetProduct returns a single product.
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetProduct(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// SearchProducts returns a page of active products.
func (h *Handlers) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := catalog.SearchRequest{
		Query:         q.Get("q"),
		CategoryID:    q.Get("category_id"),
		SubcategoryID: q.Get("subcategory_id"),
		Page:          atoiDefault(q.Get("page"), 1),
		Limit:         atoiDefault(q.Get("limit"), 20),
	}

	result, err := h.catalog.SearchProducts(r.Context(), req)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetHomepage returns the storefront homepage content.
func (h *Handlers) GetHomepage(w http.ResponseWriter, r *http.Request) {
	hp, err := h.homepage.Get(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hp)
}

// --- Orders (corporate-facing) ---

// ListTenantOrders returns the caller's tenant order history.
func (h *Handlers) ListTenantOrders(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	orders, err := h.orders.ListByTenant(r.Context(), u.TenantID)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetTenantOrder returns one of the caller's tenant orders.
func (h *Handlers) GetTenantOrder(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	o, err := h.orders.GetForTenant(r.Context(), u.TenantID, urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// --- Credit (corporate-facing) ---

// CreateCreditRequest raises a credit-limit increase request.
func (h *Handlers) CreateCreditRequest(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	req, ok := readJSON[credit.CreateRequest](w, r)
	if !ok {
		return
	}

	cr, err := h.credits.Request(r.Context(), u.TenantID, u.ID, &req)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusCreated, cr)
}

// ListTenantCreditRequests returns the caller's tenant credit history.
func (h *Handlers) ListTenantCreditRequests(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	requests, err := h.credits.ListByTenant(r.Context(), u.TenantID)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// --- Support (corporate-facing) ---

// CreateTicket raises a support ticket.
func (h *Handlers) CreateTicket(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	req, ok := readJSON[support.CreateRequest](w, r)
	if !ok {
		return
	}

	t, err := h.support.Create(r.Context(), u.TenantID, u.ID, &req)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// ListTenantTickets returns the caller's tenant tickets.
func (h *Handlers) ListTenantTickets(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	tickets, err := h.support.ListByTenant(r.Context(), u.TenantID)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}
