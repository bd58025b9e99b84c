package store

import (
	"context"
	"time"

	"github.com/coopandina/ahorro-backoffice/internal/cache"
	"github.com/coopandina/ahorro-backoffice/internal/domain/repository"
)

const sessionKeyPrefix = "sesion:"

// cacheSessionRepo implementa AdminSessionRepository sobre el cache (memory o
// redis). La expiración la maneja el TTL del backend; revocar es borrar.
type cacheSessionRepo struct {
	c cache.Client
}

// NewAdminSessionRepository crea el repositorio de sesiones sobre un cache.
func NewAdminSessionRepository(c cache.Client) repository.AdminSessionRepository {
	return &cacheSessionRepo{c: c}
}

func (r *cacheSessionRepo) Save(ctx context.Context, sidHash string, ttl time.Duration) error {
	return r.c.Set(ctx, sessionKeyPrefix+sidHash, "1", ttl)
}

func (r *cacheSessionRepo) Exists(ctx context.Context, sidHash string) (bool, error) {
	return r.c.Exists(ctx, sessionKeyPrefix+sidHash)
}

func (r *cacheSessionRepo) Revoke(ctx context.Context, sidHash string) error {
	return r.c.Delete(ctx, sessionKeyPrefix+sidHash)
}
