// Package acceso expone los endpoints de verificación de PIN y sesión.
package acceso

import (
	"errors"
	"net/http"
	"strings"
	"time"

	dto "github.com/coopandina/ahorro-backoffice/internal/http/dto/acceso"
	httperrors "github.com/coopandina/ahorro-backoffice/internal/http/errors"
	"github.com/coopandina/ahorro-backoffice/internal/http/helpers"
	"github.com/coopandina/ahorro-backoffice/internal/http/middlewares"
	svc "github.com/coopandina/ahorro-backoffice/internal/http/services/acceso"
	"github.com/coopandina/ahorro-backoffice/internal/observability/logger"
)

// CookieConfig describe la cookie de sesión administrativa.
type CookieConfig struct {
	Name     string
	Domain   string
	SameSite string
	Secure   bool
}

// AccesoController maneja la verificación de PIN y el ciclo de la sesión.
type AccesoController struct {
	service svc.AccesoService
	cookie  CookieConfig
}

// NewAccesoController crea una nueva instancia del controller.
func NewAccesoController(service svc.AccesoService, cookie CookieConfig) *AccesoController {
	return &AccesoController{service: service, cookie: cookie}
}

// VerifyPin maneja POST /admin/acceso/pin
func (c *AccesoController) VerifyPin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx)

	// 1. Parse request body
	var req dto.VerificarPinRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	// 2. Verificar y abrir sesión
	result, err := c.service.VerifyPin(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, svc.ErrPinFormato), errors.Is(err, svc.ErrPinIncorrecto):
			// El formato inválido y el código equivocado responden igual:
			// no se le da al cliente más señal que la del rechazo.
			middlewares.CountPinReject()
			log.Warn("pin rechazado", logger.ClientIP(helpers.ClientIP(r)))
			httperrors.WriteError(w, httperrors.ErrPinIncorrecto)
		default:
			httperrors.WriteError(w, httperrors.FromError(err))
		}
		return
	}

	// 3. Cookie de sesión + token en el body
	http.SetCookie(w, helpers.BuildSessionCookie(
		c.cookie.Name, result.Token, c.cookie.Domain, c.cookie.SameSite, c.cookie.Secure,
		time.Duration(result.ExpiraEn)*time.Second,
	))
	helpers.WriteJSON(w, http.StatusOK, result)
}

// CheckSession maneja GET /admin/acceso/sesion
func (c *AccesoController) CheckSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// 1. Extraer token (cookie o bearer)
	tok := c.sessionToken(r)
	if tok == "" {
		httperrors.WriteError(w, httperrors.ErrSesionRequerida)
		return
	}

	// 2. Validar firma, expiración y registro server-side
	if _, err := c.service.Check(ctx, tok); err != nil {
		httperrors.WriteError(w, httperrors.ErrSesionExpirada)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.EstadoSesionResponse{Verificado: true})
}

// Logout maneja DELETE /admin/acceso/sesion
func (c *AccesoController) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// 1. Extraer token
	tok := c.sessionToken(r)
	if tok == "" {
		httperrors.WriteError(w, httperrors.ErrSesionRequerida)
		return
	}

	// 2. Revocar server-side
	if err := c.service.Logout(ctx, tok); err != nil {
		switch {
		case errors.Is(err, svc.ErrSesionInvalida):
			httperrors.WriteError(w, httperrors.ErrSesionExpirada)
		default:
			httperrors.WriteError(w, httperrors.FromError(err))
		}
		return
	}

	// 3. Borrar la cookie del cliente
	http.SetCookie(w, helpers.BuildDeletionCookie(c.cookie.Name, c.cookie.Domain, c.cookie.SameSite, c.cookie.Secure))
	helpers.WriteJSON(w, http.StatusOK, dto.MensajeResponse{Message: "Sesión cerrada"})
}

func (c *AccesoController) sessionToken(r *http.Request) string {
	if ck, err := r.Cookie(c.cookie.Name); err == nil && ck.Value != "" {
		return ck.Value
	}
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(ah) > 7 && strings.EqualFold(ah[:7], "bearer ") {
		return strings.TrimSpace(ah[7:])
	}
	return ""
}
