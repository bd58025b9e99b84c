// Package middlewares implementa la cadena de middlewares HTTP del
// back-office: request id, logging, CORS, métricas, sesión administrativa y
// rate limiting del PIN.
package middlewares

import "net/http"

// Middleware es un decorador de http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain aplica middlewares en orden: Chain(h, A, B) ejecuta A -> B -> h,
// con A como el primero en interceptar el request.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
