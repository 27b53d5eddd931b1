package http

import (
	"errors"
	"net/http"

	"github.com/Strob0t/ProcureDesk/internal/domain/staff"
	"github.com/Strob0t/ProcureDesk/internal/domain/tenant"
	"github.com/Strob0t/ProcureDesk/internal/domain/user"
	"github.com/Strob0t/ProcureDesk/internal/middleware"
	"github.com/Strob0t/ProcureDesk/internal/service"
)

// RegisterTenant creates a corporate tenant with its admin user.
func (h *Handlers) RegisterTenant(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[tenant.RegisterRequest](w, r)
	if !ok {
		return
	}

	t, admin, err := h.tenants.Register(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"tenant": t, "admin": admin})
}

type otpRequest struct {
	Email string `json:"email"`
}

type otpVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// RequestOTP emails a one-time login code to a registered user.
func (h *Handlers) RequestOTP(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[otpRequest](w, r)
	if !ok {
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.auth.RequestOTP(r.Context(), req.Email); err != nil {
		writeDomainError(w, err, "no account for this email")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "code sent"})
}

// VerifyOTP exchanges a login code for an access token.
func (h *Handlers) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[otpVerifyRequest](w, r)
	if !ok {
		return
	}
	if req.Email == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "email and code are required")
		return
	}

	resp, err := h.auth.VerifyOTP(r.Context(), req.Email, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOTP) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Me returns the authenticated corporate user and their tenant.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	t, err := h.tenants.Get(r.Context(), u.TenantID)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u, "tenant": t})
}

// CreateTenantUser adds an employee to the caller's tenant.
func (h *Handlers) CreateTenantUser(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	req, ok := readJSON[user.CreateRequest](w, r)
	if !ok {
		return
	}

	created, err := h.tenants.CreateUser(r.Context(), u.TenantID, u.ID, &req)
	if err != nil {
		writeDomainError(w, err, "tenant not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTenantUsers returns the caller's tenant employees.
func (h *Handlers) ListTenantUsers(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	users, err := h.tenants.ListUsers(r.Context(), u.TenantID)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// StaffRegister creates a back-office account.
func (h *Handlers) StaffRegister(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[staff.RegisterRequest](w, r)
	if !ok {
		return
	}

	st, err := h.staff.Register(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "staff not found")
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

// StaffLogin authenticates a back-office account.
func (h *Handlers) StaffLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[staff.LoginRequest](w, r)
	if !ok {
		return
	}

	resp, err := h.staff.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeDomainError(w, err, "staff not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
