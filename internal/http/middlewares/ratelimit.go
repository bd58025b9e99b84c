package middlewares

import (
	"fmt"
	"net/http"
	"time"

	httperrors "github.com/coopandina/ahorro-backoffice/internal/http/errors"
	"github.com/coopandina/ahorro-backoffice/internal/http/helpers"
	"github.com/coopandina/ahorro-backoffice/internal/observability/logger"
	"github.com/coopandina/ahorro-backoffice/internal/rate"
)

// WithPinRateLimit acota los intentos de verificación de PIN por IP de
// cliente. Fail-open: si el limiter es nil o su backend falla, el request
// pasa (la verificación del PIN sigue siendo la barrera).
func WithPinRateLimit(lim rate.Limiter, limit int, window time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if lim == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := "pin:" + helpers.ClientIP(r)
			res, err := lim.Allow(r.Context(), key)
			if err != nil {
				logger.From(r.Context()).Warn("rate limiter backend error", logger.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", res.Remaining))

			if !res.Allowed {
				if res.RetryAfter > 0 {
					w.Header().Set("Retry-After", fmt.Sprintf("%d", int(res.RetryAfter.Seconds())))
				}
				httperrors.WriteError(w, httperrors.ErrDemasiadosIntentos)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
