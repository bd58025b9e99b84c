// Package memory implementa el repositorio de ahorradores en memoria.
// Se usa en desarrollo y como doble de pruebas; el estado es por proceso.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/coopandina/ahorro-backoffice/internal/domain/repository"
)

type ahorradorRepo struct {
	mu    sync.RWMutex
	byID  map[string]repository.Ahorrador
	order []string // IDs en orden de creación, para listados estables
}

// NewAhorradorRepository crea un repositorio vacío.
func NewAhorradorRepository() repository.AhorradorRepository {
	return &ahorradorRepo{byID: make(map[string]repository.Ahorrador)}
}

func (r *ahorradorRepo) List(_ context.Context) ([]repository.Ahorrador, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]repository.Ahorrador, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneAhorrador(r.byID[id]))
	}
	return out, nil
}

func (r *ahorradorRepo) GetByID(_ context.Context, id string) (*repository.Ahorrador, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := cloneAhorrador(a)
	return &c, nil
}

func (r *ahorradorRepo) GetByCedula(_ context.Context, cedula string) (*repository.Ahorrador, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// orden de creación: con cédulas repetidas gana la más antigua
	for _, id := range r.order {
		if a := r.byID[id]; a.Cedula == cedula {
			c := cloneAhorrador(a)
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ahorradorRepo) Create(_ context.Context, input repository.CreateAhorradorInput) (*repository.Ahorrador, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	a := repository.Ahorrador{
		ID:           uuid.NewString(),
		Nombre:       input.Nombre,
		Cedula:       input.Cedula,
		Telefono:     input.Telefono,
		Direccion:    input.Direccion,
		Email:        input.Email,
		FechaIngreso: input.FechaIngreso,
		Extra:        cloneExtra(input.Extra),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.byID[a.ID] = a
	r.order = append(r.order, a.ID)

	c := cloneAhorrador(a)
	return &c, nil
}

func (r *ahorradorRepo) Update(_ context.Context, id string, input repository.UpdateAhorradorInput) (*repository.Ahorrador, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	if input.Nombre != nil {
		a.Nombre = *input.Nombre
	}
	if input.Cedula != nil {
		a.Cedula = *input.Cedula
	}
	if input.Telefono != nil {
		a.Telefono = *input.Telefono
	}
	if input.Direccion != nil {
		a.Direccion = *input.Direccion
	}
	if input.Email != nil {
		a.Email = *input.Email
	}
	if input.FechaIngreso != nil {
		a.FechaIngreso = *input.FechaIngreso
	}
	if len(input.Extra) > 0 {
		if a.Extra == nil {
			a.Extra = make(map[string]any, len(input.Extra))
		} else {
			a.Extra = cloneExtra(a.Extra)
		}
		for k, v := range input.Extra {
			a.Extra[k] = v
		}
	}
	a.UpdatedAt = time.Now().UTC()

	r.byID[id] = a
	c := cloneAhorrador(a)
	return &c, nil
}

func (r *ahorradorRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneAhorrador(a repository.Ahorrador) repository.Ahorrador {
	a.Extra = cloneExtra(a.Extra)
	return a
}

func cloneExtra(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
