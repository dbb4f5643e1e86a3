package middleware

import (
	"net/http"

	"healthflow-backend/internal/domain/entity"
	"healthflow-backend/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the
// required roles. Role is read from context (set by AuthMiddleware).
func RequireRole(allowedRoleIDs ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, allowedRoleID := range allowedRoleIDs {
				if roleID == allowedRoleID {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireStaff gates approve/decline/complete to doctors, secretaries and admins
func RequireStaff(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDDoctor, entity.RoleIDSecretary, entity.RoleIDAdmin)(next)
}

// RequireDoctorOrAdmin gates availability management
func RequireDoctorOrAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDDoctor, entity.RoleIDAdmin)(next)
}
