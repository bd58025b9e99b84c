package session

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	iss := NewIssuer("secreto-de-prueba", 30*time.Minute)

	signed, exp, err := iss.Issue("sid-123")
	if err != nil {
		t.Fatal(err)
	}
	if until := time.Until(exp); until < 29*time.Minute || until > 31*time.Minute {
		t.Fatalf("expiración fuera de rango: %v", until)
	}

	sid, err := iss.Parse(signed)
	if err != nil {
		t.Fatal(err)
	}
	if sid != "sid-123" {
		t.Fatalf("sid esperado sid-123, fue %q", sid)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	signed, _, err := NewIssuer("secreto-a", time.Minute).Issue("sid-x")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewIssuer("secreto-b", time.Minute).Parse(signed); err != ErrTokenInvalid {
		t.Fatalf("esperado ErrTokenInvalid, fue %v", err)
	}
}

func TestParse_Expired(t *testing.T) {
	iss := NewIssuer("secreto", -time.Minute)
	signed, _, err := iss.Issue("sid-x")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := iss.Parse(signed); err != ErrTokenExpired {
		t.Fatalf("esperado ErrTokenExpired, fue %v", err)
	}
}

func TestParseAllowExpired(t *testing.T) {
	iss := NewIssuer("secreto", -time.Minute)
	signed, _, err := iss.Issue("sid-x")
	if err != nil {
		t.Fatal(err)
	}

	sid, err := iss.ParseAllowExpired(signed)
	if err != nil {
		t.Fatalf("token vencido con firma legítima debe parsear: %v", err)
	}
	if sid != "sid-x" {
		t.Fatalf("sid esperado sid-x, fue %q", sid)
	}

	// la firma se sigue validando
	if _, err := NewIssuer("otro-secreto", time.Minute).ParseAllowExpired(signed); err != ErrTokenInvalid {
		t.Fatalf("esperado ErrTokenInvalid, fue %v", err)
	}
}

func TestParse_Garbage(t *testing.T) {
	iss := NewIssuer("secreto", time.Minute)
	for _, tok := range []string{"", "no-es-jwt", "a.b.c"} {
		if _, err := iss.Parse(tok); err == nil {
			t.Fatalf("token basura no debe parsear: %q", tok)
		}
	}
}
