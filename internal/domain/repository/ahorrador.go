// Package repository define las interfaces de acceso a datos del back-office.
package repository

import (
	"context"
	"time"
)

// Ahorrador representa el registro de un cliente de producto de ahorro.
type Ahorrador struct {
	ID           string
	Nombre       string
	Cedula       string // documento de identidad; clave de negocio
	Telefono     string
	Direccion    string
	Email        string
	FechaIngreso time.Time
	// Extra guarda atributos opcionales que pasan sin validar.
	Extra     map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateAhorradorInput contiene los datos para crear un ahorrador.
// Todos los campos salvo Extra son obligatorios (lo valida el service).
type CreateAhorradorInput struct {
	Nombre       string
	Cedula       string
	Telefono     string
	Direccion    string
	Email        string
	FechaIngreso time.Time
	Extra        map[string]any
}

// UpdateAhorradorInput contiene los campos actualizables. Los punteros en nil
// no se tocan: la actualización es un merge parcial, no un reemplazo.
type UpdateAhorradorInput struct {
	Nombre       *string
	Cedula       *string
	Telefono     *string
	Direccion    *string
	Email        *string
	FechaIngreso *time.Time
	Extra        map[string]any
}

// AhorradorRepository define operaciones sobre registros de ahorradores.
// El datastore es el único dueño del estado persistido; esta capa no cachea.
type AhorradorRepository interface {
	// List retorna todos los ahorradores. Slice vacío si no hay ninguno.
	List(ctx context.Context) ([]Ahorrador, error)

	// GetByID busca un ahorrador por su identificador.
	// Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*Ahorrador, error)

	// GetByCedula busca un ahorrador por cédula.
	// Retorna ErrNotFound si no existe. Si hubiera más de uno con la misma
	// cédula (la unicidad no se exige en esta capa), retorna el primero.
	GetByCedula(ctx context.Context, cedula string) (*Ahorrador, error)

	// Create crea un ahorrador y le asigna un ID nuevo e inmutable.
	Create(ctx context.Context, input CreateAhorradorInput) (*Ahorrador, error)

	// Update aplica un merge parcial sobre el registro en una sola operación
	// condicional: si el ID no existe retorna ErrNotFound sin mutar nada.
	Update(ctx context.Context, id string, input UpdateAhorradorInput) (*Ahorrador, error)

	// Delete elimina el registro si existe; ErrNotFound si no.
	Delete(ctx context.Context, id string) error
}
