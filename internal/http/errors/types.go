// Package errors define el taxónomo de errores HTTP del back-office:
// validación (400), no encontrado (404), no autorizado (401), rate limit
// (429) e interno (500).
package errors

import (
	"fmt"
	"net/http"
)

// AppError es la estructura estándar de error de la aplicación.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // causa original, solo para logs
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// New crea un AppError.
func New(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// FromError convierte un error genérico en AppError. Lo que no sea AppError
// se normaliza a error interno conservando la causa para el log; el detalle
// interno nunca llega al cliente.
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrInterno.WithCause(err)
}

// WithDetail retorna una copia con detalle adicional; no muta el error base.
func (e *AppError) WithDetail(detail string) *AppError {
	newErr := *e
	newErr.Detail = detail
	return &newErr
}

// WithCause retorna una copia con la causa original adjunta.
func (e *AppError) WithCause(err error) *AppError {
	newErr := *e
	newErr.Err = err
	return &newErr
}

// Catálogo de errores predefinidos.

var (
	// 400
	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "La solicitud contiene sintaxis inválida o parámetros faltantes.",
		HTTPStatus: http.StatusBadRequest,
	}
	ErrInvalidJSON = &AppError{
		Code:       "INVALID_JSON",
		Message:    "El cuerpo de la solicitud no es un JSON válido.",
		HTTPStatus: http.StatusBadRequest,
	}
	ErrCedulaRequerida = &AppError{
		Code:       "MISSING_PARAMETER",
		Message:    "Se requiere el parámetro cedula",
		HTTPStatus: http.StatusBadRequest,
	}
	ErrIDRequeridoActualizar = &AppError{
		Code:       "MISSING_PARAMETER",
		Message:    "Se requiere un ID para actualizar el ahorrador",
		HTTPStatus: http.StatusBadRequest,
	}
	ErrIDRequeridoEliminar = &AppError{
		Code:       "MISSING_PARAMETER",
		Message:    "Se requiere un ID para eliminar el ahorrador",
		HTTPStatus: http.StatusBadRequest,
	}

	// 401
	ErrPinIncorrecto = &AppError{
		Code:       "PIN_INCORRECTO",
		Message:    "Código PIN incorrecto",
		HTTPStatus: http.StatusUnauthorized,
	}
	ErrSesionRequerida = &AppError{
		Code:       "SESION_REQUERIDA",
		Message:    "Se requiere una sesión administrativa verificada.",
		HTTPStatus: http.StatusUnauthorized,
	}
	ErrSesionExpirada = &AppError{
		Code:       "SESION_EXPIRADA",
		Message:    "La sesión expiró o fue revocada; verifique el PIN nuevamente.",
		HTTPStatus: http.StatusUnauthorized,
	}

	// 404
	ErrAhorradorNoEncontrado = &AppError{
		Code:       "AHORRADOR_NO_ENCONTRADO",
		Message:    "Ahorrador no encontrado",
		HTTPStatus: http.StatusNotFound,
	}
	ErrRutaNoEncontrada = &AppError{
		Code:       "ROUTE_NOT_FOUND",
		Message:    "La ruta solicitada no existe.",
		HTTPStatus: http.StatusNotFound,
	}

	// 405
	ErrMethodNotAllowed = &AppError{
		Code:       "METHOD_NOT_ALLOWED",
		Message:    "El método HTTP no está permitido para este recurso.",
		HTTPStatus: http.StatusMethodNotAllowed,
	}

	// 429
	ErrDemasiadosIntentos = &AppError{
		Code:       "DEMASIADOS_INTENTOS",
		Message:    "Demasiados intentos de verificación. Intente más tarde.",
		HTTPStatus: http.StatusTooManyRequests,
	}

	// 500
	ErrInterno = &AppError{
		Code:       "INTERNAL_SERVER_ERROR",
		Message:    "Ocurrió un error interno en el servidor.",
		HTTPStatus: http.StatusInternalServerError,
	}
)

// CampoObligatorio construye el 400 de campo faltante nombrando el campo,
// ej: "El campo nombre es obligatorio".
func CampoObligatorio(campo string) *AppError {
	return &AppError{
		Code:       "MISSING_FIELD",
		Message:    fmt.Sprintf("El campo %s es obligatorio", campo),
		HTTPStatus: http.StatusBadRequest,
	}
}
