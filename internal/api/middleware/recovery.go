package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/vlat-exam/api/internal/api/types"
	"github.com/vlat-exam/api/pkg/logger"
)

// Recovery logs panics and returns 500 with a generic message. The panic
// value is included in the body only when verbose is set.
func Recovery(verbose bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.L().Error("panic recovered", zap.Any("panic", rec), zap.ByteString("stack", debug.Stack()))
					types.WriteJSON(w, http.StatusInternalServerError, types.Internal(fmt.Sprint(rec), verbose))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
