package middlewares

import (
	"context"
	"net/http"
	"strings"

	httperrors "github.com/coopandina/ahorro-backoffice/internal/http/errors"
)

// SessionChecker valida un token de sesión administrativa y retorna el ID de
// sesión. El acceso verificado se decide siempre del lado del servidor.
type SessionChecker interface {
	Check(ctx context.Context, token string) (string, error)
}

type sesionKey struct{}

func withSesionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, sesionKey{}, sid)
}

// GetSesionID retorna el ID de la sesión administrativa del contexto, o vacío.
func GetSesionID(ctx context.Context) string {
	if v, ok := ctx.Value(sesionKey{}).(string); ok {
		return v
	}
	return ""
}

// RequireAdminSession protege las rutas del área administrativa. Acepta el
// token por cookie de sesión o por Authorization: Bearer. Sin token responde
// 401; con token inválido, expirado o revocado también. La sesión validada
// viaja por el contexto del request, nunca por estado global.
func RequireAdminSession(cookieName string, checker SessionChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r, cookieName)
			if token == "" {
				httperrors.WriteError(w, httperrors.ErrSesionRequerida)
				return
			}

			sid, err := checker.Check(r.Context(), token)
			if err != nil {
				httperrors.WriteError(w, httperrors.ErrSesionExpirada)
				return
			}

			next.ServeHTTP(w, r.WithContext(withSesionID(r.Context(), sid)))
		})
	}
}

func sessionToken(r *http.Request, cookieName string) string {
	if ck, err := r.Cookie(cookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(ah) > 7 && strings.EqualFold(ah[:7], "bearer ") {
		return strings.TrimSpace(ah[7:])
	}
	return ""
}
