// Package app arma el árbol de dependencias del back-office: storage, cache,
// servicios, controllers y router.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/coopandina/ahorro-backoffice/internal/cache"
	"github.com/coopandina/ahorro-backoffice/internal/config"
	accesoctrl "github.com/coopandina/ahorro-backoffice/internal/http/controllers/acceso"
	adminctrl "github.com/coopandina/ahorro-backoffice/internal/http/controllers/admin"
	"github.com/coopandina/ahorro-backoffice/internal/http/middlewares"
	"github.com/coopandina/ahorro-backoffice/internal/http/router"
	accesosvc "github.com/coopandina/ahorro-backoffice/internal/http/services/acceso"
	adminsvc "github.com/coopandina/ahorro-backoffice/internal/http/services/admin"
	"github.com/coopandina/ahorro-backoffice/internal/observability/logger"
	"github.com/coopandina/ahorro-backoffice/internal/rate"
	"github.com/coopandina/ahorro-backoffice/internal/security/session"
	"github.com/coopandina/ahorro-backoffice/internal/store"
)

// App es la aplicación armada y lista para servir.
type App struct {
	Handler http.Handler

	cfg   *config.Config
	store *store.Store
	cache cache.Client
}

// New construye la aplicación a partir de la configuración.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.Named("app")

	// 1. Storage
	st, err := store.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("app: storage: %w", err)
	}
	log.Info("storage listo", logger.Any("driver", cfg.Storage.Driver))

	// 2. Cache (sesiones + rate limiting en memoria)
	sessionTTL, err := cfg.SessionTTL()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("app: session ttl: %w", err)
	}
	cc, err := cache.New(cache.Config{
		Kind:       cfg.Cache.Kind,
		Addr:       cfg.Cache.Redis.Addr,
		DB:         cfg.Cache.Redis.DB,
		Prefix:     cfg.Cache.Redis.Prefix,
		DefaultTTL: sessionTTL,
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("app: cache: %w", err)
	}

	// 3. Servicios
	issuer := session.NewIssuer(cfg.Admin.Session.Secret, sessionTTL)
	accesoService := accesosvc.NewAccesoService(accesosvc.AccesoDeps{
		PinHash:  cfg.Admin.PinHash,
		Issuer:   issuer,
		Sessions: store.NewAdminSessionRepository(cc),
	})
	ahorradorService := adminsvc.NewAhorradorService(adminsvc.AhorradorDeps{
		Repo: st.Ahorradores,
	})

	// 4. Rate limiter de intentos de PIN
	var limiter rate.Limiter
	pinWindow, err := cfg.PinWindow()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("app: pin window: %w", err)
	}
	if cfg.Rate.Enabled {
		limiter = newPinLimiter(cc, cfg.Rate.Pin.Limit, pinWindow)
	}

	// 5. Métricas
	metricsHandler, err := middlewares.RegisterMetrics(nil)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("app: metrics: %w", err)
	}

	// 6. Controllers + router
	handler := router.New(router.Deps{
		Acceso: accesoctrl.NewAccesoController(accesoService, accesoctrl.CookieConfig{
			Name:     cfg.Admin.Session.CookieName,
			Domain:   cfg.Admin.Session.Domain,
			SameSite: cfg.Admin.Session.SameSite,
			Secure:   cfg.Admin.Session.Secure,
		}),
		Ahorradores:        adminctrl.NewAhorradoresController(ahorradorService),
		SessionChecker:     accesoService,
		CookieName:         cfg.Admin.Session.CookieName,
		RateLimiter:        limiter,
		RateLimit:          cfg.Rate.Pin.Limit,
		RateWindow:         pinWindow,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Metrics:            metricsHandler,
		Ready: func(r *http.Request) error {
			if pool := st.Pool(); pool != nil {
				if err := pool.Ping(r.Context()); err != nil {
					return err
				}
			}
			return cc.Ping(r.Context())
		},
	})

	return &App{Handler: handler, cfg: cfg, store: st, cache: cc}, nil
}

// newPinLimiter usa el backend redis si el cache corre sobre redis; si no,
// un limitador en memoria de ventana fija.
func newPinLimiter(cc cache.Client, limit int, window time.Duration) rate.Limiter {
	type rawer interface{ Raw() *redis.Client }
	if rc, ok := cc.(rawer); ok {
		return rate.NewRedisLimiter(rc.Raw(), "rate:pin", limit, window)
	}
	return rate.NewMemoryLimiter("rate:pin", limit, window)
}

// Close libera storage y cache.
func (a *App) Close() {
	a.store.Close()
	if err := a.cache.Close(); err != nil {
		logger.Named("app").Warn("error cerrando cache", logger.Err(err))
	}
}
