package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coopandina/ahorro-backoffice/internal/domain/repository"
	dto "github.com/coopandina/ahorro-backoffice/internal/http/dto/admin"
	"github.com/coopandina/ahorro-backoffice/internal/observability/logger"
)

// AhorradorService maneja las operaciones CRUD de ahorradores.
type AhorradorService interface {
	List(ctx context.Context) ([]dto.AhorradorResponse, error)
	Get(ctx context.Context, id string) (*dto.AhorradorResponse, error)
	SearchByCedula(ctx context.Context, cedula string) (*dto.AhorradorResponse, error)
	Create(ctx context.Context, req dto.CreateAhorradorRequest) (*dto.AhorradorResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateAhorradorRequest) (*dto.AhorradorResponse, error)
	Delete(ctx context.Context, id string) error
}

// AhorradorDeps contiene las dependencias del service.
type AhorradorDeps struct {
	Repo repository.AhorradorRepository
}

type ahorradorService struct {
	deps AhorradorDeps
}

// NewAhorradorService crea una nueva instancia del servicio.
func NewAhorradorService(deps AhorradorDeps) AhorradorService {
	return &ahorradorService{deps: deps}
}

// Errores del servicio
var (
	ErrAhorradorNotFound  = fmt.Errorf("ahorrador not found")
	ErrCedulaRequerida    = fmt.Errorf("cedula parameter is required")
	ErrIDRequerido        = fmt.Errorf("id is required")
	ErrFechaIngresoFormat = fmt.Errorf("invalid fechaIngreso format")
)

// CampoObligatorioError indica que falta un campo requerido del ahorrador.
type CampoObligatorioError struct {
	Campo string
}

func (e *CampoObligatorioError) Error() string {
	return fmt.Sprintf("el campo %s es obligatorio", e.Campo)
}

// camposObligatorios fija el orden de validación: se reporta el primer
// campo faltante, no todos.
var camposObligatorios = []string{"nombre", "cedula", "telefono", "direccion", "email", "fechaIngreso"}

// List retorna todos los ahorradores registrados.
func (s *ahorradorService) List(ctx context.Context) ([]dto.AhorradorResponse, error) {
	log := logger.From(ctx)

	ahorradores, err := s.deps.Repo.List(ctx)
	if err != nil {
		log.Error("failed to list ahorradores", logger.Err(err))
		return nil, fmt.Errorf("failed to list ahorradores: %w", err)
	}

	out := make([]dto.AhorradorResponse, len(ahorradores))
	for i := range ahorradores {
		out[i] = *mapAhorradorToResponse(&ahorradores[i])
	}

	log.Info("ahorradores listed", logger.Count(len(out)))

	return out, nil
}

// Get obtiene un ahorrador por ID.
func (s *ahorradorService) Get(ctx context.Context, id string) (*dto.AhorradorResponse, error) {
	log := logger.From(ctx)

	// 1. Validación
	if strings.TrimSpace(id) == "" {
		return nil, ErrIDRequerido
	}

	// 2. Buscar
	a, err := s.deps.Repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrAhorradorNotFound
		}
		log.Error("failed to get ahorrador", logger.Err(err), logger.AhorradorID(id))
		return nil, fmt.Errorf("failed to get ahorrador: %w", err)
	}

	return mapAhorradorToResponse(a), nil
}

// SearchByCedula busca un ahorrador por su cédula.
func (s *ahorradorService) SearchByCedula(ctx context.Context, cedula string) (*dto.AhorradorResponse, error) {
	log := logger.From(ctx)

	// 1. Validación
	cedula = strings.TrimSpace(cedula)
	if cedula == "" {
		return nil, ErrCedulaRequerida
	}

	// 2. Buscar
	a, err := s.deps.Repo.GetByCedula(ctx, cedula)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrAhorradorNotFound
		}
		log.Error("failed to search ahorrador", logger.Err(err), logger.Cedula(cedula))
		return nil, fmt.Errorf("failed to search ahorrador: %w", err)
	}

	log.Info("ahorrador found by cedula", logger.AhorradorID(a.ID), logger.Cedula(cedula))

	return mapAhorradorToResponse(a), nil
}

// Create crea un nuevo ahorrador.
func (s *ahorradorService) Create(ctx context.Context, req dto.CreateAhorradorRequest) (*dto.AhorradorResponse, error) {
	log := logger.From(ctx)

	// 1. Validar campos obligatorios en orden fijo
	valores := map[string]string{
		"nombre":       req.Nombre,
		"cedula":       req.Cedula,
		"telefono":     req.Telefono,
		"direccion":    req.Direccion,
		"email":        req.Email,
		"fechaIngreso": req.FechaIngreso,
	}
	for _, campo := range camposObligatorios {
		if strings.TrimSpace(valores[campo]) == "" {
			return nil, &CampoObligatorioError{Campo: campo}
		}
	}

	// 2. Parsear fecha de ingreso
	fecha, err := parseFechaIngreso(req.FechaIngreso)
	if err != nil {
		return nil, ErrFechaIngresoFormat
	}

	// 3. Crear
	a, err := s.deps.Repo.Create(ctx, repository.CreateAhorradorInput{
		Nombre:       strings.TrimSpace(req.Nombre),
		Cedula:       strings.TrimSpace(req.Cedula),
		Telefono:     strings.TrimSpace(req.Telefono),
		Direccion:    strings.TrimSpace(req.Direccion),
		Email:        strings.TrimSpace(req.Email),
		FechaIngreso: fecha,
		Extra:        req.Extra,
	})
	if err != nil {
		log.Error("failed to create ahorrador", logger.Err(err), logger.Cedula(req.Cedula))
		return nil, fmt.Errorf("failed to create ahorrador: %w", err)
	}

	log.Info("ahorrador created", logger.AhorradorID(a.ID), logger.Cedula(a.Cedula))

	return mapAhorradorToResponse(a), nil
}

// Update aplica un merge parcial sobre un ahorrador existente.
func (s *ahorradorService) Update(ctx context.Context, id string, req dto.UpdateAhorradorRequest) (*dto.AhorradorResponse, error) {
	log := logger.From(ctx)

	// 1. Validación
	if strings.TrimSpace(id) == "" {
		return nil, ErrIDRequerido
	}

	// 2. Parsear fecha si viene en el payload
	input := repository.UpdateAhorradorInput{
		Nombre:    req.Nombre,
		Cedula:    req.Cedula,
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
		Email:     req.Email,
		Extra:     req.Extra,
	}
	if req.FechaIngreso != nil {
		fecha, err := parseFechaIngreso(*req.FechaIngreso)
		if err != nil {
			return nil, ErrFechaIngresoFormat
		}
		input.FechaIngreso = &fecha
	}

	// 3. Actualizar (operación condicional: no muta si el ID no existe)
	a, err := s.deps.Repo.Update(ctx, id, input)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrAhorradorNotFound
		}
		log.Error("failed to update ahorrador", logger.Err(err), logger.AhorradorID(id))
		return nil, fmt.Errorf("failed to update ahorrador: %w", err)
	}

	log.Info("ahorrador updated", logger.AhorradorID(id))

	return mapAhorradorToResponse(a), nil
}

// Delete elimina un ahorrador.
func (s *ahorradorService) Delete(ctx context.Context, id string) error {
	log := logger.From(ctx)

	// 1. Validación
	if strings.TrimSpace(id) == "" {
		return ErrIDRequerido
	}

	// 2. Eliminar
	if err := s.deps.Repo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrAhorradorNotFound
		}
		log.Error("failed to delete ahorrador", logger.Err(err), logger.AhorradorID(id))
		return fmt.Errorf("failed to delete ahorrador: %w", err)
	}

	log.Info("ahorrador deleted", logger.AhorradorID(id))

	return nil
}

// parseFechaIngreso acepta YYYY-MM-DD o RFC3339.
func parseFechaIngreso(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// mapAhorradorToResponse convierte un repository.Ahorrador a dto.AhorradorResponse.
func mapAhorradorToResponse(a *repository.Ahorrador) *dto.AhorradorResponse {
	return &dto.AhorradorResponse{
		ID:           a.ID,
		Nombre:       a.Nombre,
		Cedula:       a.Cedula,
		Telefono:     a.Telefono,
		Direccion:    a.Direccion,
		Email:        a.Email,
		FechaIngreso: a.FechaIngreso.Format(time.DateOnly),
		Extra:        a.Extra,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
