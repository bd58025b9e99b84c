// Package acceso implementa la verificación del PIN administrativo y el ciclo
// de vida de la sesión que habilita el área de ahorradores.
package acceso

import (
	"context"
	"fmt"

	"github.com/coopandina/ahorro-backoffice/internal/domain/repository"
	dto "github.com/coopandina/ahorro-backoffice/internal/http/dto/acceso"
	"github.com/coopandina/ahorro-backoffice/internal/observability/logger"
	"github.com/coopandina/ahorro-backoffice/internal/pingate"
	"github.com/coopandina/ahorro-backoffice/internal/security/pin"
	"github.com/coopandina/ahorro-backoffice/internal/security/session"
	"github.com/coopandina/ahorro-backoffice/internal/security/token"
)

// AccesoService maneja la verificación de PIN y las sesiones administrativas.
type AccesoService interface {
	VerifyPin(ctx context.Context, req dto.VerificarPinRequest) (*dto.SesionResponse, error)
	// Check valida un token de sesión y retorna el sid. Implementa el checker
	// del middleware de sesión.
	Check(ctx context.Context, tok string) (string, error)
	Logout(ctx context.Context, tok string) error
}

// AccesoDeps contiene las dependencias del service.
type AccesoDeps struct {
	// PinHash es el hash Argon2id (PHC) del PIN administrativo.
	PinHash  string
	Issuer   *session.Issuer
	Sessions repository.AdminSessionRepository
}

type accesoService struct {
	deps AccesoDeps
}

// NewAccesoService crea una nueva instancia del servicio.
func NewAccesoService(deps AccesoDeps) AccesoService {
	return &accesoService{deps: deps}
}

// Errores del servicio
var (
	ErrPinFormato      = fmt.Errorf("pin must be exactly 6 digits")
	ErrPinIncorrecto   = fmt.Errorf("pin mismatch")
	ErrSesionInvalida  = fmt.Errorf("invalid or revoked session")
	ErrSesionRequerida = fmt.Errorf("session token is required")
)

// VerifyPin verifica el código ingresado contra el hash configurado y, si
// coincide, abre una sesión administrativa.
func (s *accesoService) VerifyPin(ctx context.Context, req dto.VerificarPinRequest) (*dto.SesionResponse, error) {
	log := logger.From(ctx)

	// 1. Validar formato: exactamente 6 dígitos
	if !pin.ValidFormat(req.Pin) {
		return nil, ErrPinFormato
	}

	// 2. Alimentar la máquina de captura dígito a dígito; el sexto dígito
	// dispara la verificación contra el hash (comparación en tiempo constante).
	gate := pingate.New(pingate.VerifierFunc(func(code string) bool {
		return pin.Verify(code, s.deps.PinHash)
	}), nil, nil)
	for i := 0; i < len(req.Pin); i++ {
		if _, err := gate.SubmitDigit(req.Pin[i]); err != nil {
			return nil, ErrPinFormato
		}
	}
	if gate.State() != pingate.Verified {
		log.Warn("pin verification failed")
		return nil, ErrPinIncorrecto
	}

	// 3. Abrir sesión: sid opaco, registro server-side con TTL
	sid, err := token.GenerateOpaque(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}
	ttl := s.deps.Issuer.TTL()
	if err := s.deps.Sessions.Save(ctx, token.SHA256Base64URL(sid), ttl); err != nil {
		log.Error("failed to persist session", logger.Err(err))
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	// 4. Emitir token firmado
	signed, _, err := s.deps.Issuer.Issue(sid)
	if err != nil {
		log.Error("failed to issue session token", logger.Err(err))
		return nil, err
	}

	log.Info("admin session opened", logger.SesionID(sid))

	return &dto.SesionResponse{
		Verificado: true,
		Token:      signed,
		ExpiraEn:   int64(ttl.Seconds()),
	}, nil
}

// Check valida firma, expiración y vigencia server-side del token.
func (s *accesoService) Check(ctx context.Context, tok string) (string, error) {
	if tok == "" {
		return "", ErrSesionRequerida
	}

	// 1. Firma y expiración
	sid, err := s.deps.Issuer.Parse(tok)
	if err != nil {
		return "", ErrSesionInvalida
	}

	// 2. La sesión debe seguir registrada del lado del servidor
	ok, err := s.deps.Sessions.Exists(ctx, token.SHA256Base64URL(sid))
	if err != nil {
		return "", fmt.Errorf("failed to check session: %w", err)
	}
	if !ok {
		return "", ErrSesionInvalida
	}
	return sid, nil
}

// Logout revoca la sesión del token. Revocar una sesión ya vencida no es error.
func (s *accesoService) Logout(ctx context.Context, tok string) error {
	log := logger.From(ctx)

	if tok == "" {
		return ErrSesionRequerida
	}
	// la expiración no se valida acá: un token vencido con firma legítima
	// todavía identifica la sesión a revocar
	sid, err := s.deps.Issuer.ParseAllowExpired(tok)
	if err != nil {
		return ErrSesionInvalida
	}
	if err := s.deps.Sessions.Revoke(ctx, token.SHA256Base64URL(sid)); err != nil {
		log.Error("failed to revoke session", logger.Err(err))
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	log.Info("admin session revoked", logger.SesionID(sid))

	return nil
}
