package middlewares

import (
	"net/http"
	"runtime/debug"

	httperrors "github.com/coopandina/ahorro-backoffice/internal/http/errors"
	"github.com/coopandina/ahorro-backoffice/internal/observability/logger"
)

// WithRecover convierte un panic del handler en un 500 controlado.
func WithRecover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.From(r.Context()).Error("panic recovered",
						logger.Any("panic", rec),
						logger.Any("stack", string(debug.Stack())),
						logger.Path(r.URL.Path),
					)
					httperrors.WriteError(w, httperrors.ErrInterno)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
