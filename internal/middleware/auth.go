// Package middleware provides authentication and authorization middleware
// for the corporate and back-office API groups.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Strob0t/ProcureDesk/internal/domain/staff"
	"github.com/Strob0t/ProcureDesk/internal/domain/user"
	"github.com/Strob0t/ProcureDesk/internal/service"
)

type authUserCtxKey struct{}
type authStaffCtxKey struct{}

// CorporateAuth returns middleware that validates a corporate bearer
// token and injects the user into the request context.
func CorporateAuth(authSvc *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(w, r)
			if !ok {
				return
			}

			claims, err := authSvc.ValidateToken(token)
			if err != nil {
				http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusUnauthorized)
				return
			}

			u := &user.User{
				ID:          claims.UserID,
				Email:       claims.Email,
				Name:        claims.Name,
				Role:        claims.Role,
				TenantID:    claims.TenantID,
				Permissions: user.DefaultPermissions(claims.Role),
			}
			ctx := context.WithValue(r.Context(), authUserCtxKey{}, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StaffAuth returns middleware that validates a staff bearer token and
// injects the staff user into the request context.
func StaffAuth(staffSvc *service.StaffService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(w, r)
			if !ok {
				return
			}

			claims, err := staffSvc.ValidateToken(token)
			if err != nil {
				http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusUnauthorized)
				return
			}

			st := &staff.Staff{
				ID:     claims.StaffID,
				Email:  claims.Email,
				Role:   claims.Role,
				Active: true,
			}
			ctx := context.WithValue(r.Context(), authStaffCtxKey{}, st)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		http.Error(w, `{"error":"authorization required"}`, http.StatusUnauthorized)
		return "", false
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		http.Error(w, `{"error":"invalid authorization header"}`, http.StatusUnauthorized)
		return "", false
	}
	return token, true
}

// UserFromContext returns the authenticated corporate user from the
// request context.
func UserFromContext(ctx context.Context) *user.User {
	u, _ := ctx.Value(authUserCtxKey{}).(*user.User)
	return u
}

// StaffFromContext returns the authenticated staff user from the request
// context.
func StaffFromContext(ctx context.Context) *staff.Staff {
	st, _ := ctx.Value(authStaffCtxKey{}).(*staff.Staff)
	return st
}

// AuthUserCtxKeyForTest returns the context key used for storing the auth user.
// Exported only for use in tests that need to inject a user into the context.
func AuthUserCtxKeyForTest() any {
	return authUserCtxKey{}
}

// AuthStaffCtxKeyForTest returns the context key used for storing the auth staff.
// Exported only for use in tests that need to inject a staff user into the context.
func AuthStaffCtxKeyForTest() any {
	return authStaffCtxKey{}
}
