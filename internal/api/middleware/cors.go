package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/vlat-exam/api/internal/api/types"
	"github.com/vlat-exam/api/pkg/logger"
)

const (
	corsMethods = "GET,POST,PUT,DELETE,OPTIONS"
	corsHeaders = "Content-Type,Authorization"
)

// CORS admits requests without an Origin header and requests from the
// allow-list. Any other origin is rejected through the internal error path;
// the reason is only echoed to the client when verbose is set.
func CORS(allowed []string, verbose bool) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	list := strings.Join(allowed, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				if _, ok := set[origin]; !ok {
					msg := fmt.Sprintf("CORS blocked: %s. Allowed: %s", origin, list)
					logger.L().Warn(msg, zap.String("origin", origin), zap.String("path", r.URL.Path))
					types.WriteJSON(w, http.StatusInternalServerError, types.Internal(msg, verbose))
					return
				}
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}
			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", corsMethods)
				w.Header().Set("Access-Control-Allow-Headers", corsHeaders)
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
