package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteError_Contract(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrAhorradorNoEncontrado)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "Ahorrador no encontrado" {
		t.Fatalf("error: %v", body["error"])
	}
}

func TestWriteError_NormalizaDesconocidos(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, fmt.Errorf("falló la conexión a la base"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	// el detalle interno no llega al cliente
	if body["error"] != ErrInterno.Message {
		t.Fatalf("error: %v", body["error"])
	}
}

func TestCampoObligatorio(t *testing.T) {
	e := CampoObligatorio("telefono")
	if e.Message != "El campo telefono es obligatorio" {
		t.Fatalf("%q", e.Message)
	}
	if e.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("status: %d", e.HTTPStatus)
	}
}

func TestWithDetail_NoMutaBase(t *testing.T) {
	d := ErrBadRequest.WithDetail("algo")
	if ErrBadRequest.Detail != "" {
		t.Fatal("el catálogo base no debe mutarse")
	}
	if d.Detail != "algo" || d.Code != ErrBadRequest.Code {
		t.Fatalf("%+v", d)
	}
}
