package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.9:4567"
	if got := ClientIP(r); got != "10.0.0.9" {
		t.Fatalf("%q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := ClientIP(r); got != "203.0.113.7" {
		t.Fatalf("con proxy debe ganar el primer hop: %q", got)
	}
}

func TestParseSameSite(t *testing.T) {
	cases := map[string]http.SameSite{
		"strict": http.SameSiteStrictMode,
		"none":   http.SameSiteNoneMode,
		"lax":    http.SameSiteLaxMode,
		"":       http.SameSiteLaxMode,
		"otro":   http.SameSiteLaxMode,
	}
	for in, want := range cases {
		if got := ParseSameSite(in); got != want {
			t.Fatalf("%q: %v", in, got)
		}
	}
}

func TestBuildSessionCookie(t *testing.T) {
	ck := BuildSessionCookie("bo_session", "tok", "", "lax", false, 30*time.Minute)
	if !ck.HttpOnly || ck.Path != "/" || ck.Value != "tok" {
		t.Fatalf("%+v", ck)
	}
	if ck.MaxAge != int((30 * time.Minute).Seconds()) {
		t.Fatalf("max-age: %d", ck.MaxAge)
	}
}

func TestBuildDeletionCookie(t *testing.T) {
	ck := BuildDeletionCookie("bo_session", "", "lax", false)
	if ck.MaxAge != -1 || ck.Value != "" {
		t.Fatalf("%+v", ck)
	}
}
