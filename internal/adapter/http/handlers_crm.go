package http

import (
	"net/http"

	"github.com/Strob0t/ProcureDesk/internal/domain/catalog"
	"github.com/Strob0t/ProcureDesk/internal/domain/credit"
	"github.com/Strob0t/ProcureDesk/internal/domain/homepage"
	"github.com/Strob0t/ProcureDesk/internal/domain/order"
	"github.com/Strob0t/ProcureDesk/internal/domain/support"
	"github.com/Strob0t/ProcureDesk/internal/middleware"
)

// --- Tenants (back office) ---

// ListTenants returns all corporate tenants.
func (h *Handlers) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.tenants.List(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tenants)
}

// GetTenant returns a tenant with its ledger state.
func (h *Handlers) GetTenant(w http.ResponseWriter, r *http.Request) {
	t, err := h.tenants.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type verifyRequest struct {
	Verified bool `json:"verified"`
}

// VerifyTenant marks a tenant verified or unverified.
func (h *Handlers) VerifyTenant(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[verifyRequest](w, r)
	if !ok {
		return
	}

	t, err := h.tenants.SetVerified(r.Context(), urlParam(r, "id"), req.Verified)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// --- Catalog management ---

// CreateCategory creates a category.
func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	st := middleware.StaffFromContext(r.Context())
	req, ok := readJSON[catalog.CreateCategoryRequest](w, r)
	if !ok {
		return
	}

	c, err := h.catalog.CreateCategory(r.Context(), st.ID, &req)
	if err != nil {
		writeDomainError(w, err, "category not found")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// ListAllCategories returns every category, including inactive ones.
func (h *Handlers) ListAllCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context(), false)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// GetCategory returns a category with its subcategories.
func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.catalog.GetCategory(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// UpdateCategory applies a partial update to a category.
func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[catalog.UpdateCategoryRequest](w, r)
	if !ok {
		return
	}

	c, err := h.catalog.UpdateCategory(r.Context(), urlParam(r, "id"), &req)
	if err != nil {
		writeDomainError(w, err, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteCategory removes a category without products.
func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteCategory(r.Context(), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "category not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddSubcategory adds a subcategory to a category.
func (h *Handlers) AddSubcategory(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[catalog.CreateSubcategoryRequest](w, r)
	if !ok {
		return
	}

	sc, err := h.catalog.AddSubcategory(r.Context(), urlParam(r, "id"), &req)
	if err != nil {
		writeDomainError(w, err, "category not found")
		return
	}
	writeJSON(w, http.StatusCreated, sc)
}

// CreateProduct creates a product with a generated SKU.
func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	st := middleware.StaffFromContext(r.Context())
	req, ok := readJSON[catalog.CreateProductRequest](w, r)
	if !ok {
		return
	}

	p, err := h.catalog.CreateProduct(r.Context(), st.ID, &req)
	if err != nil {
		writeDomainError(w, err, "category not found")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// UpdateProduct applies a partial update to a product.
func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[catalog.UpdateProductRequest](w, r)
	if !ok {
		return
	}

	p, err := h.catalog.UpdateProduct(r.Context(), urlParam(r, "id"), &req)
	if err != nil {
		writeDomainError(w, err, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// --- Orders (back office) ---

// ListOrders returns orders across tenants, optionally filtered by ?status=.
func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context(), order.Status(r.URL.Query().Get("status")))
	if err != nil {
		writeDomainError(w, err, "orders not found")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetOrder returns any order by ID.
func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// UpdateOrderStatus progresses an order's fulfillment status.
func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[order.UpdateStatusRequest](w, r)
	if !ok {
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), urlParam(r, "id"), &req)
	if err != nil {
		writeDomainError(w, err, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// --- Credit (back office) ---

// ListCreditRequests returns credit requests, optionally filtered by ?status=.
func (h *Handlers) ListCreditRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.credits.List(r.Context(), credit.Status(r.URL.Query().Get("status")))
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// DecideCreditRequest approves or rejects a pending credit request.
func (h *Handlers) DecideCreditRequest(w http.ResponseWriter, r *http.Request) {
	st := middleware.StaffFromContext(r.Context())
	req, ok := readJSON[credit.DecideRequest](w, r)
	if !ok {
		return
	}

	cr, err := h.credits.Decide(r.Context(), urlParam(r, "id"), st.ID, &req)
	if err != nil {
		writeDomainError(w, err, "credit request not found")
		return
	}
	writeJSON(w, http.StatusOK, cr)
}

// --- Support (back office) ---

// ListTickets returns support tickets, optionally filtered by ?status=.
func (h *Handlers) ListTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.support.List(r.Context(), support.Status(r.URL.Query().Get("status")))
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}

// CloseTicket marks a ticket closed.
func (h *Handlers) CloseTicket(w http.ResponseWriter, r *http.Request) {
	t, err := h.support.Close(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "ticket not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// --- Homepage (back office) ---

// UpsertHomepage replaces the storefront homepage content.
func (h *Handlers) UpsertHomepage(w http.ResponseWriter, r *http.Request) {
	st := middleware.StaffFromContext(r.Context())
	req, ok := readJSON[homepage.UpsertRequest](w, r)
	if !ok {
		return
	}

	hp, err := h.homepage.Upsert(r.Context(), st.ID, &req)
	if err != nil {
		writeDomainError(w, err, "homepage not found")
		return
	}
	writeJSON(w, http.StatusOK, hp)
}
