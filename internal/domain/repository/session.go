package repository

import (
	"context"
	"time"
)

// AdminSessionRepository gestiona el estado server-side de las sesiones
// administrativas. Se guarda solo el hash SHA-256 del session ID, nunca el
// token; la verificación de acceso vive del lado del servidor, no del cliente.
type AdminSessionRepository interface {
	// Save registra una sesión verificada con su TTL.
	Save(ctx context.Context, sidHash string, ttl time.Duration) error

	// Exists verifica si la sesión sigue vigente (no revocada ni expirada).
	Exists(ctx context.Context, sidHash string) (bool, error)

	// Revoke elimina la sesión (logout o cancelación).
	Revoke(ctx context.Context, sidHash string) error
}
