package http

import (
	"net/http"

	"github.com/Strob0t/ProcureDesk/internal/domain/cart"
	"github.com/Strob0t/ProcureDesk/internal/middleware"
)

// GetCart returns the tenant's cart with its subtotal.
func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	c, err := h.carts.Get(r.Context(), u.TenantID, u.ID)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeCart(w, c)
}

// AddCartItem adds a product to the cart (or replaces its quantity).
func (h *Handlers) AddCartItem(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	req, ok := readJSON[cart.AddItemRequest](w, r)
	if !ok {
		return
	}

	c, err := h.carts.AddItem(r.Context(), u.TenantID, u.ID, &req)
	if err != nil {
		writeDomainError(w, err, "product not found")
		return
	}
	writeCart(w, c)
}

// IncrementCartItem bumps a cart line quantity by one.
func (h *Handlers) IncrementCartItem(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	c, err := h.carts.Increment(r.Context(), u.TenantID, urlParam(r, "itemId"))
	if err != nil {
		writeDomainError(w, err, "cart item not found")
		return
	}
	writeCart(w, c)
}

// DecrementCartItem lowers a cart line quantity by one, not below MOQ.
func (h *Handlers) DecrementCartItem(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	c, err := h.carts.Decrement(r.Context(), u.TenantID, urlParam(r, "itemId"))
	if err != nil {
		writeDomainError(w, err, "cart item not found")
		return
	}
	writeCart(w, c)
}

// RemoveCartItem deletes a cart line.
func (h *Handlers) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	c, err := h.carts.Remove(r.Context(), u.TenantID, urlParam(r, "itemId"))
	if err != nil {
		writeDomainError(w, err, "cart item not found")
		return
	}
	writeCart(w, c)
}

// Checkout places an order from the tenant's cart.
func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	o, err := h.checkout.Checkout(r.Context(), u.TenantID, u.ID)
	if err != nil {
		writeDomainError(w, err, "cart not found")
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func writeCart(w http.ResponseWriter, c *cart.Cart) {
	writeJSON(w, http.StatusOK, map[string]any{
		"cart":     c,
		"subtotal": c.Subtotal(),
	})
}
