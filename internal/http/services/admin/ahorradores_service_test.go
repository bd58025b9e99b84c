package admin

import (
	"context"
	"errors"
	"testing"

	dto "github.com/coopandina/ahorro-backoffice/internal/http/dto/admin"
	"github.com/coopandina/ahorro-backoffice/internal/store/memory"
)

func newService() AhorradorService {
	return NewAhorradorService(AhorradorDeps{Repo: memory.NewAhorradorRepository()})
}

func validCreate() dto.CreateAhorradorRequest {
	return dto.CreateAhorradorRequest{
		Nombre:       "Juan López",
		Cedula:       "1712345678",
		Telefono:     "0991234567",
		Direccion:    "Calle Larga 45",
		Email:        "juan@example.com",
		FechaIngreso: "2024-03-15",
	}
}

func TestCreate_FieldOrderValidation(t *testing.T) {
	// el primer campo faltante en el orden fijo es el que se reporta
	cases := []struct {
		mutate func(*dto.CreateAhorradorRequest)
		campo  string
	}{
		{func(r *dto.CreateAhorradorRequest) { r.Nombre = "" }, "nombre"},
		{func(r *dto.CreateAhorradorRequest) { r.Cedula = "  " }, "cedula"},
		{func(r *dto.CreateAhorradorRequest) { r.Telefono = "" }, "telefono"},
		{func(r *dto.CreateAhorradorRequest) { r.Direccion = "" }, "direccion"},
		{func(r *dto.CreateAhorradorRequest) { r.Email = "" }, "email"},
		{func(r *dto.CreateAhorradorRequest) { r.FechaIngreso = "" }, "fechaIngreso"},
		// con varios faltantes gana el primero del orden
		{func(r *dto.CreateAhorradorRequest) { r.Cedula = ""; r.Email = "" }, "cedula"},
		{func(r *dto.CreateAhorradorRequest) { *r = dto.CreateAhorradorRequest{} }, "nombre"},
	}

	svc := newService()
	for _, tc := range cases {
		req := validCreate()
		tc.mutate(&req)
		_, err := svc.Create(context.Background(), req)

		var campoErr *CampoObligatorioError
		if !errors.As(err, &campoErr) {
			t.Fatalf("campo %s: esperado CampoObligatorioError, fue %v", tc.campo, err)
		}
		if campoErr.Campo != tc.campo {
			t.Fatalf("esperado campo %q, fue %q", tc.campo, campoErr.Campo)
		}
	}
}

func TestCreate_Success(t *testing.T) {
	svc := newService()

	req := validCreate()
	req.Extra = map[string]any{"sucursal": "quito"}
	got, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID == "" {
		t.Fatal("esperado ID asignado")
	}
	if got.FechaIngreso != "2024-03-15" {
		t.Fatalf("fechaIngreso: %q", got.FechaIngreso)
	}
	if got.Extra["sucursal"] != "quito" {
		t.Fatalf("extra no preservado: %v", got.Extra)
	}
}

func TestCreate_InvalidFecha(t *testing.T) {
	svc := newService()
	req := validCreate()
	req.FechaIngreso = "15/03/2024"

	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrFechaIngresoFormat) {
		t.Fatalf("esperado ErrFechaIngresoFormat, fue %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := newService()
	if _, err := svc.Get(context.Background(), "no-existe"); !errors.Is(err, ErrAhorradorNotFound) {
		t.Fatalf("esperado ErrAhorradorNotFound, fue %v", err)
	}
	if _, err := svc.Get(context.Background(), " "); !errors.Is(err, ErrIDRequerido) {
		t.Fatalf("esperado ErrIDRequerido, fue %v", err)
	}
}

func TestSearchByCedula(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	creado, err := svc.Create(ctx, validCreate())
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.SearchByCedula(ctx, "1712345678")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != creado.ID {
		t.Fatalf("esperado %s, fue %s", creado.ID, got.ID)
	}

	if _, err := svc.SearchByCedula(ctx, ""); !errors.Is(err, ErrCedulaRequerida) {
		t.Fatalf("esperado ErrCedulaRequerida, fue %v", err)
	}
	if _, err := svc.SearchByCedula(ctx, "0000000000"); !errors.Is(err, ErrAhorradorNotFound) {
		t.Fatalf("esperado ErrAhorradorNotFound, fue %v", err)
	}
}

func TestUpdate_MergeAndErrors(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	creado, err := svc.Create(ctx, validCreate())
	if err != nil {
		t.Fatal(err)
	}

	telefono := "0990000000"
	got, err := svc.Update(ctx, creado.ID, dto.UpdateAhorradorRequest{Telefono: &telefono})
	if err != nil {
		t.Fatal(err)
	}
	if got.Telefono != "0990000000" {
		t.Fatalf("teléfono: %q", got.Telefono)
	}
	if got.Nombre != creado.Nombre || got.Cedula != creado.Cedula || got.Email != creado.Email {
		t.Fatal("el merge parcial no debe tocar los campos omitidos")
	}

	if _, err := svc.Update(ctx, "", dto.UpdateAhorradorRequest{}); !errors.Is(err, ErrIDRequerido) {
		t.Fatalf("esperado ErrIDRequerido, fue %v", err)
	}
	if _, err := svc.Update(ctx, "no-existe", dto.UpdateAhorradorRequest{Telefono: &telefono}); !errors.Is(err, ErrAhorradorNotFound) {
		t.Fatalf("esperado ErrAhorradorNotFound, fue %v", err)
	}

	mala := "hoy"
	if _, err := svc.Update(ctx, creado.ID, dto.UpdateAhorradorRequest{FechaIngreso: &mala}); !errors.Is(err, ErrFechaIngresoFormat) {
		t.Fatalf("esperado ErrFechaIngresoFormat, fue %v", err)
	}
}

func TestDelete_Errors(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	creado, err := svc.Create(ctx, validCreate())
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, creado.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, creado.ID); !errors.Is(err, ErrAhorradorNotFound) {
		t.Fatalf("esperado ErrAhorradorNotFound, fue %v", err)
	}
	if err := svc.Delete(ctx, ""); !errors.Is(err, ErrIDRequerido) {
		t.Fatalf("esperado ErrIDRequerido, fue %v", err)
	}
}

func TestList_Empty(t *testing.T) {
	svc := newService()
	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("esperada lista vacía no nil, fue %#v", got)
	}
}
