package middleware

import (
	"net/http"

	"github.com/shiftwise/timeclock-go/internal/domain/user"
	"github.com/shiftwise/timeclock-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, user.ErrIdentityMissing)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, user.ErrIdentityMissing)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, user.ErrIdentityMissing)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// IdentityFromContext extracts the caller identity from the verified JWT
// claims.
func IdentityFromContext(r *http.Request) (user.Identity, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return user.Identity{}, user.ErrIdentityMissing
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Identity{}, user.ErrIdentityMissing
	}

	applicantID, _ := claims["applicant_id"].(string)

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return user.Identity{}, user.ErrIdentityMissing
	}

	return user.Identity{
		UserID:      userID,
		ApplicantID: applicantID,
		Role:        user.Role(roleStr),
	}, nil
}
