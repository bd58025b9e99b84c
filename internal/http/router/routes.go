// Package router define las rutas HTTP del back-office.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	accesoctrl "github.com/coopandina/ahorro-backoffice/internal/http/controllers/acceso"
	adminctrl "github.com/coopandina/ahorro-backoffice/internal/http/controllers/admin"
	httperrors "github.com/coopandina/ahorro-backoffice/internal/http/errors"
	"github.com/coopandina/ahorro-backoffice/internal/http/helpers"
	mw "github.com/coopandina/ahorro-backoffice/internal/http/middlewares"
	"github.com/coopandina/ahorro-backoffice/internal/rate"
)

// Deps contiene las dependencias del router.
type Deps struct {
	Acceso      *accesoctrl.AccesoController
	Ahorradores *adminctrl.AhorradoresController

	// SessionChecker protege el área de ahorradores.
	SessionChecker mw.SessionChecker
	CookieName     string

	// RateLimiter acota los intentos de PIN por IP; nil deshabilita el límite.
	RateLimiter rate.Limiter
	RateLimit   int
	RateWindow  time.Duration

	CORSAllowedOrigins []string

	// Metrics es el handler de /metrics; nil lo omite.
	Metrics http.Handler
	// Ready chequea las dependencias para /readyz; nil responde siempre ok.
	Ready func(r *http.Request) error
}

// New construye el router con la cadena global de middlewares.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Cadena global: recover primero, logging al final para que el request id
	// ya esté en el contexto.
	r.Use(
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithCORS(deps.CORSAllowedOrigins),
		mw.WithMetrics(),
		mw.WithLogging(),
	)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrRutaNoEncontrada)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	// ─── Acceso administrativo (público) ───
	r.Route("/admin/acceso", func(r chi.Router) {
		pin := http.HandlerFunc(deps.Acceso.VerifyPin)
		if deps.RateLimiter != nil {
			r.With(mw.WithPinRateLimit(deps.RateLimiter, deps.RateLimit, deps.RateWindow)).
				Post("/pin", pin)
		} else {
			r.Post("/pin", pin)
		}
		r.Get("/sesion", deps.Acceso.CheckSession)
		r.Delete("/sesion", deps.Acceso.Logout)
	})

	// ─── Área de ahorradores (requiere sesión verificada) ───
	r.Route("/ahorradores", func(r chi.Router) {
		r.Use(mw.RequireAdminSession(deps.CookieName, deps.SessionChecker))
		r.Get("/", deps.Ahorradores.ListOrGet)
		r.Get("/buscar", deps.Ahorradores.Search)
		r.Post("/", deps.Ahorradores.Create)
		r.Put("/", deps.Ahorradores.Update)
		r.Delete("/", deps.Ahorradores.Delete)
	})

	// ─── Operación ───
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if deps.Ready != nil {
			if err := deps.Ready(req); err != nil {
				helpers.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
