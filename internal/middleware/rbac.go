package middleware

import (
	"net/http"

	"github.com/Strob0t/ProcureDesk/internal/domain/staff"
	"github.com/Strob0t/ProcureDesk/internal/domain/user"
)

// RequirePermission returns middleware that restricts a corporate route
// to users whose permission set satisfies the check.
func RequirePermission(check func(user.Permissions) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := UserFromContext(r.Context())
			if u == nil {
				http.Error(w, `{"error":"authorization required"}`, http.StatusUnauthorized)
				return
			}

			if !check(u.Permissions) {
				http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireStaffRole returns middleware that restricts a back-office route
// to staff with one of the given roles.
func RequireStaffRole(roles ...staff.Role) func(http.Handler) http.Handler {
	allowed := make(map[staff.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := StaffFromContext(r.Context())
			if st == nil {
				http.Error(w, `{"error":"authorization required"}`, http.StatusUnauthorized)
				return
			}

			if !allowed[st.Role] {
				http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
