package middleware

import (
	"net/http"

	"github.com/shiftwise/timeclock-go/internal/domain/user"
	"github.com/shiftwise/timeclock-go/internal/handler/http/response"
)

// RequireManager requires a role allowed to edit punch records.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := IdentityFromContext(r)
		if err != nil {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		if !identity.Role.CanEditPunches() {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
