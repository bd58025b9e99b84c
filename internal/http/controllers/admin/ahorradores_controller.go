// Package admin expone los controllers del área administrativa de ahorradores.
package admin

import (
	"errors"
	"net/http"
	"strings"

	dto "github.com/coopandina/ahorro-backoffice/internal/http/dto/admin"
	httperrors "github.com/coopandina/ahorro-backoffice/internal/http/errors"
	"github.com/coopandina/ahorro-backoffice/internal/http/helpers"
	svc "github.com/coopandina/ahorro-backoffice/internal/http/services/admin"
	"github.com/coopandina/ahorro-backoffice/internal/observability/logger"
)

// AhorradoresController maneja las operaciones CRUD de ahorradores.
type AhorradoresController struct {
	service svc.AhorradorService
}

// NewAhorradoresController crea una nueva instancia del controller.
func NewAhorradoresController(service svc.AhorradorService) *AhorradoresController {
	return &AhorradoresController{service: service}
}

// ListOrGet maneja GET /ahorradores. Sin parámetro id retorna la lista
// completa; con ?id= retorna el ahorrador puntual o 404.
func (c *AhorradoresController) ListOrGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// 1. ¿Consulta puntual?
	if id := strings.TrimSpace(r.URL.Query().Get("id")); id != "" {
		result, err := c.service.Get(ctx, id)
		if err != nil {
			c.writeAhorradorError(w, err, httperrors.ErrBadRequest)
			return
		}
		helpers.WriteJSON(w, http.StatusOK, result)
		return
	}

	// 2. Lista completa
	result, err := c.service.List(ctx)
	if err != nil {
		c.writeAhorradorError(w, err, httperrors.ErrBadRequest)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, result)
}

// Search maneja GET /ahorradores/buscar?cedula=
func (c *AhorradoresController) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// 1. Parámetro obligatorio
	cedula := r.URL.Query().Get("cedula")

	// 2. Llamar al service
	result, err := c.service.SearchByCedula(ctx, cedula)
	if err != nil {
		c.writeAhorradorError(w, err, httperrors.ErrBadRequest)
		return
	}

	// 3. Response
	helpers.WriteJSON(w, http.StatusOK, result)
}

// Create maneja POST /ahorradores
func (c *AhorradoresController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx)

	// 1. Parse request body
	var req dto.CreateAhorradorRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	// 2. Llamar al service
	result, err := c.service.Create(ctx, req)
	if err != nil {
		c.writeAhorradorError(w, err, httperrors.ErrBadRequest)
		return
	}

	// 3. Response
	helpers.WriteJSON(w, http.StatusCreated, result)

	log.Info("ahorrador creado", logger.AhorradorID(result.ID))
}

// Update maneja PUT /ahorradores?id=
func (c *AhorradoresController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// 1. El ID viene por query string
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		httperrors.WriteError(w, httperrors.ErrIDRequeridoActualizar)
		return
	}

	// 2. Parse request body
	var req dto.UpdateAhorradorRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	// 3. Llamar al service
	result, err := c.service.Update(ctx, id, req)
	if err != nil {
		c.writeAhorradorError(w, err, httperrors.ErrIDRequeridoActualizar)
		return
	}

	// 4. Response
	helpers.WriteJSON(w, http.StatusOK, result)
}

// Delete maneja DELETE /ahorradores?id=
func (c *AhorradoresController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// 1. El ID viene por query string
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		httperrors.WriteError(w, httperrors.ErrIDRequeridoEliminar)
		return
	}

	// 2. Llamar al service
	if err := c.service.Delete(ctx, id); err != nil {
		c.writeAhorradorError(w, err, httperrors.ErrIDRequeridoEliminar)
		return
	}

	// 3. Response
	helpers.WriteJSON(w, http.StatusOK, dto.MensajeResponse{Message: "Ahorrador eliminado exitosamente"})
}

// writeAhorradorError mapea errores del service a la taxonomía HTTP.
// idRequerido es el 400 específico de la operación para ErrIDRequerido.
func (c *AhorradoresController) writeAhorradorError(w http.ResponseWriter, err error, idRequerido *httperrors.AppError) {
	var campoErr *svc.CampoObligatorioError
	switch {
	case errors.Is(err, svc.ErrAhorradorNotFound):
		httperrors.WriteError(w, httperrors.ErrAhorradorNoEncontrado)
	case errors.Is(err, svc.ErrCedulaRequerida):
		httperrors.WriteError(w, httperrors.ErrCedulaRequerida)
	case errors.Is(err, svc.ErrIDRequerido):
		httperrors.WriteError(w, idRequerido)
	case errors.Is(err, svc.ErrFechaIngresoFormat):
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("fechaIngreso debe tener formato YYYY-MM-DD"))
	case errors.As(err, &campoErr):
		httperrors.WriteError(w, httperrors.CampoObligatorio(campoErr.Campo))
	default:
		httperrors.WriteError(w, httperrors.FromError(err))
	}
}
