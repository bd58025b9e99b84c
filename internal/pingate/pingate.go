// Package pingate implementa la máquina de estados de captura del PIN
// administrativo: Vacío → Ingresando(1..5) → Completo(6) → Verificado.
//
// La máquina solo decide; comparar el código y marcar la sesión verificada se
// delegan en el Verifier y el callback de éxito. El éxito dispara el callback
// exactamente una vez. Los reintentos no se acotan acá: el límite de intentos
// lo aplica la capa HTTP por cliente.
package pingate

import "errors"

// State es el estado de la máquina.
type State int

const (
	// Empty: sin dígitos ingresados.
	Empty State = iota
	// Entering: entre 1 y 5 dígitos en el buffer.
	Entering
	// Complete: 6 dígitos, listo para verificar.
	Complete
	// Verified: el código coincidió. Estado terminal.
	Verified
)

// Verifier compara un código completo contra el secreto.
type Verifier interface {
	Verify(code string) bool
}

// VerifierFunc adapta una función a Verifier.
type VerifierFunc func(code string) bool

func (f VerifierFunc) Verify(code string) bool { return f(code) }

var (
	// ErrNotADigit indica que el carácter ingresado no es un dígito 0-9.
	ErrNotADigit = errors.New("pingate: se esperaba un dígito 0-9")
	// ErrBufferFull indica un dígito de más; no debería pasar porque el sexto
	// dígito dispara la verificación.
	ErrBufferFull = errors.New("pingate: el código ya está completo")
	// ErrIncomplete indica un Verify explícito con menos de 6 dígitos.
	ErrIncomplete = errors.New("pingate: el código está incompleto")
)

const codeLength = 6

// Gate es una instancia de la máquina. No es segura para uso concurrente:
// cada sesión de captura usa su propia instancia.
type Gate struct {
	verifier   Verifier
	onVerified func()
	onCancel   func()

	buf      []byte
	state    State
	lastErr  string
	verified bool
}

// New crea una máquina en estado Empty. onVerified y onCancel pueden ser nil.
func New(v Verifier, onVerified, onCancel func()) *Gate {
	return &Gate{verifier: v, onVerified: onVerified, onCancel: onCancel, state: Empty}
}

// State retorna el estado actual.
func (g *Gate) State() State { return g.state }

// Entered retorna la cantidad de dígitos en el buffer.
func (g *Gate) Entered() int { return len(g.buf) }

// LastError retorna el mensaje de error visible ("Código PIN incorrecto")
// tras una verificación fallida; vacío en cualquier otro caso.
func (g *Gate) LastError() string { return g.lastErr }

// SubmitDigit agrega un dígito. Solo es válido mientras haya menos de 6; al
// llegar al sexto dígito dispara la verificación de inmediato.
func (g *Gate) SubmitDigit(d byte) (State, error) {
	if g.state == Verified {
		return g.state, ErrBufferFull
	}
	if d < '0' || d > '9' {
		return g.state, ErrNotADigit
	}
	if len(g.buf) >= codeLength {
		return g.state, ErrBufferFull
	}

	g.buf = append(g.buf, d)
	g.lastErr = ""
	switch {
	case len(g.buf) == codeLength:
		g.state = Complete
		return g.Verify()
	default:
		g.state = Entering
	}
	return g.state, nil
}

// DeleteLast quita el último dígito ingresado; no-op con el buffer vacío.
func (g *Gate) DeleteLast() {
	if g.state == Verified || len(g.buf) == 0 {
		return
	}
	g.buf = g.buf[:len(g.buf)-1]
	if len(g.buf) == 0 {
		g.state = Empty
	} else {
		g.state = Entering
	}
}

// Clear vacía el buffer y borra el error mostrado.
func (g *Gate) Clear() {
	if g.state == Verified {
		return
	}
	g.buf = g.buf[:0]
	g.lastErr = ""
	g.state = Empty
}

// Verify compara el buffer completo contra el secreto. Con coincidencia pasa
// a Verified e invoca el callback de éxito una sola vez; sin coincidencia
// vacía el buffer, registra el error y vuelve a Empty. El llamador puede
// reintentar sin límite desde la máquina.
func (g *Gate) Verify() (State, error) {
	if g.state == Verified {
		return g.state, nil
	}
	if len(g.buf) != codeLength {
		return g.state, ErrIncomplete
	}

	if g.verifier != nil && g.verifier.Verify(string(g.buf)) {
		g.state = Verified
		g.lastErr = ""
		if !g.verified {
			g.verified = true
			if g.onVerified != nil {
				g.onVerified()
			}
		}
		return g.state, nil
	}

	g.buf = g.buf[:0]
	g.lastErr = "Código PIN incorrecto"
	g.state = Empty
	return g.state, nil
}

// Cancel abandona la captura e invoca el callback de cancelación. Nunca marca
// la sesión como verificada.
func (g *Gate) Cancel() {
	if g.onCancel != nil {
		g.onCancel()
	}
}
