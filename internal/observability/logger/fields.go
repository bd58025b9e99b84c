package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Campos HTTP estándar.

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }
func Bytes(v int) zap.Field        { return zap.Int("bytes", v) }
func DurationMs(v int64) zap.Field { return zap.Int64("duration_ms", v) }
func ClientIP(v string) zap.Field  { return zap.String("client_ip", v) }

// Campos de negocio.

func AhorradorID(v string) zap.Field { return zap.String("ahorrador_id", v) }
func SesionID(v string) zap.Field    { return zap.String("sesion_id", v) }
func Count(v int) zap.Field          { return zap.Int("count", v) }
func Int(k string, v int) zap.Field  { return zap.Int(k, v) }
func Any(k string, v any) zap.Field  { return zap.Any(k, v) }
func Err(err error) zap.Field        { return zap.Error(err) }

// Cedula loguea la cédula enmascarada: solo los últimos 3 dígitos visibles.
// El documento de identidad completo no debe aparecer en logs.
func Cedula(v string) zap.Field {
	return zap.String("cedula", maskCedula(v))
}

func maskCedula(c string) string {
	if len(c) <= 3 {
		return strings.Repeat("*", len(c))
	}
	return strings.Repeat("*", len(c)-3) + c[len(c)-3:]
}
