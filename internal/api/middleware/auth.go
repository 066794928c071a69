package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vlat-exam/api/internal/api/types"
	"github.com/vlat-exam/api/internal/auth"
)

// MsgUnauthorized is returned when the bearer token is missing or invalid.
const MsgUnauthorized = "Invalid or missing token"

type claimsKeyType string

const ClaimsKey claimsKeyType = "claims"

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Auth validates a Bearer JWT and adds its claims to the request context.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := r.Header.Get("Authorization")
			if !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
				unauthorized(w)
				return
			}
			claims, err := verifier.Verify(strings.TrimSpace(ah[len("Bearer "):]))
			if err != nil {
				unauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims returns the verified claims stored by Auth, or nil.
func GetClaims(ctx context.Context) *auth.Claims {
	if c, ok := ctx.Value(ClaimsKey).(*auth.Claims); ok {
		return c
	}
	return nil
}

func unauthorized(w http.ResponseWriter) {
	types.WriteJSON(w, http.StatusUnauthorized, types.APIResponse{Success: false, Message: MsgUnauthorized})
}
