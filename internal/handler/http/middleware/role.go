package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/qubix-crm/crm-backend-go/internal/domain/employee"
	"github.com/qubix-crm/crm-backend-go/internal/handler/http/response"
)

// RequireAdmin requires the ADMIN role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromToken(r)
		if !ok || role != employee.RoleAdmin {
			response.Forbidden(w, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireReviewer requires a role that may review leave and see the
// team dashboard (ADMIN or MANAGER).
func RequireReviewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromToken(r)
		if !ok || !role.CanReviewLeave() {
			response.Forbidden(w, "Manager or admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func roleFromToken(r *http.Request) (employee.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}

	return employee.Role(roleStr), true
}
