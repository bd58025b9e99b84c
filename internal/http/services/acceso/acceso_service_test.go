package acceso

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coopandina/ahorro-backoffice/internal/cache"
	dto "github.com/coopandina/ahorro-backoffice/internal/http/dto/acceso"
	"github.com/coopandina/ahorro-backoffice/internal/security/pin"
	"github.com/coopandina/ahorro-backoffice/internal/security/session"
	"github.com/coopandina/ahorro-backoffice/internal/store"
)

var testPinParams = pin.Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32}

func newTestService(t *testing.T, code string, ttl time.Duration) AccesoService {
	t.Helper()
	phc, err := pin.Hash(testPinParams, code)
	if err != nil {
		t.Fatal(err)
	}
	return NewAccesoService(AccesoDeps{
		PinHash:  phc,
		Issuer:   session.NewIssuer("secreto-de-prueba", ttl),
		Sessions: store.NewAdminSessionRepository(cache.NewMemory("test", ttl)),
	})
}

func TestVerifyPin_SuccessOpensSession(t *testing.T) {
	svc := newTestService(t, "123456", 30*time.Minute)
	ctx := context.Background()

	res, err := svc.VerifyPin(ctx, dto.VerificarPinRequest{Pin: "123456"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Verificado || res.Token == "" {
		t.Fatalf("esperada sesión verificada con token, fue %+v", res)
	}
	if res.ExpiraEn != int64((30 * time.Minute).Seconds()) {
		t.Fatalf("expira_en: %d", res.ExpiraEn)
	}

	// el token emitido pasa el check server-side
	sid, err := svc.Check(ctx, res.Token)
	if err != nil {
		t.Fatal(err)
	}
	if sid == "" {
		t.Fatal("esperado sid")
	}
}

func TestVerifyPin_WrongCode(t *testing.T) {
	svc := newTestService(t, "123456", time.Minute)

	if _, err := svc.VerifyPin(context.Background(), dto.VerificarPinRequest{Pin: "654321"}); !errors.Is(err, ErrPinIncorrecto) {
		t.Fatalf("esperado ErrPinIncorrecto, fue %v", err)
	}
}

func TestVerifyPin_BadFormat(t *testing.T) {
	svc := newTestService(t, "123456", time.Minute)

	for _, p := range []string{"", "12345", "1234567", "12345a"} {
		if _, err := svc.VerifyPin(context.Background(), dto.VerificarPinRequest{Pin: p}); !errors.Is(err, ErrPinFormato) {
			t.Fatalf("pin %q: esperado ErrPinFormato, fue %v", p, err)
		}
	}
}

func TestVerifyPin_RetryAfterFailure(t *testing.T) {
	svc := newTestService(t, "123456", time.Minute)
	ctx := context.Background()

	if _, err := svc.VerifyPin(ctx, dto.VerificarPinRequest{Pin: "000000"}); err == nil {
		t.Fatal("esperado rechazo")
	}
	// el rechazo no bloquea el siguiente intento correcto
	if _, err := svc.VerifyPin(ctx, dto.VerificarPinRequest{Pin: "123456"}); err != nil {
		t.Fatal(err)
	}
}

func TestCheck_Errors(t *testing.T) {
	svc := newTestService(t, "123456", time.Minute)
	ctx := context.Background()

	if _, err := svc.Check(ctx, ""); !errors.Is(err, ErrSesionRequerida) {
		t.Fatalf("esperado ErrSesionRequerida, fue %v", err)
	}
	if _, err := svc.Check(ctx, "token-basura"); !errors.Is(err, ErrSesionInvalida) {
		t.Fatalf("esperado ErrSesionInvalida, fue %v", err)
	}

	// token firmado con otro secreto se rechaza
	otro, _, err := session.NewIssuer("otro-secreto", time.Minute).Issue("sid-x")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Check(ctx, otro); !errors.Is(err, ErrSesionInvalida) {
		t.Fatalf("esperado ErrSesionInvalida, fue %v", err)
	}
}

func TestLogout_RevokesServerSide(t *testing.T) {
	svc := newTestService(t, "123456", time.Minute)
	ctx := context.Background()

	res, err := svc.VerifyPin(ctx, dto.VerificarPinRequest{Pin: "123456"})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout(ctx, res.Token); err != nil {
		t.Fatal(err)
	}

	// el JWT sigue vigente pero la sesión server-side ya no existe
	if _, err := svc.Check(ctx, res.Token); !errors.Is(err, ErrSesionInvalida) {
		t.Fatalf("esperado ErrSesionInvalida tras logout, fue %v", err)
	}
}

func TestLogout_ExpiredTokenStillRevokes(t *testing.T) {
	// TTL negativo: el JWT nace vencido pero el registro server-side persiste
	// (sin expiración en el cache de memoria)
	svc := newTestService(t, "123456", -time.Minute)
	ctx := context.Background()

	res, err := svc.VerifyPin(ctx, dto.VerificarPinRequest{Pin: "123456"})
	if err != nil {
		t.Fatal(err)
	}

	// revocar con el token vencido no es error
	if err := svc.Logout(ctx, res.Token); err != nil {
		t.Fatalf("logout con token vencido debe revocar, fue %v", err)
	}

	// la firma sí se sigue exigiendo
	otro, _, err := session.NewIssuer("otro-secreto", -time.Minute).Issue("sid-x")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout(ctx, otro); !errors.Is(err, ErrSesionInvalida) {
		t.Fatalf("esperado ErrSesionInvalida, fue %v", err)
	}
}

func TestSessionExpires(t *testing.T) {
	svc := newTestService(t, "123456", 50*time.Millisecond)
	ctx := context.Background()

	res, err := svc.VerifyPin(ctx, dto.VerificarPinRequest{Pin: "123456"})
	if err != nil {
		t.Fatal(err)
	}

	time.Sleep(80 * time.Millisecond)

	if _, err := svc.Check(ctx, res.Token); err == nil {
		t.Fatal("la sesión vencida no debe validar")
	}
}
