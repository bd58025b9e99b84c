// Package store selecciona el adapter de persistencia según configuración.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coopandina/ahorro-backoffice/internal/config"
	"github.com/coopandina/ahorro-backoffice/internal/domain/repository"
	"github.com/coopandina/ahorro-backoffice/internal/store/memory"
	"github.com/coopandina/ahorro-backoffice/internal/store/pg"
)

// Store agrupa los repositorios concretos del back-office.
type Store struct {
	Ahorradores repository.AhorradorRepository

	pool *pgxpool.Pool
}

// New crea el Store según storage.driver: "postgres" o "memory".
func New(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := pg.NewPool(ctx, cfg.Storage.DSN, cfg.Storage.Postgres.MaxConns)
		if err != nil {
			return nil, err
		}
		return &Store{
			Ahorradores: pg.NewAhorradorRepository(pool),
			pool:        pool,
		}, nil
	case "memory", "":
		return &Store{Ahorradores: memory.NewAhorradorRepository()}, nil
	default:
		return nil, fmt.Errorf("store: driver desconocido %q", cfg.Storage.Driver)
	}
}

// Pool expone el pool de postgres; nil con driver memory.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

// Close libera las conexiones.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
