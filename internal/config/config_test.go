package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeYAML(t, "app:\n  env: dev\n"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("addr: %q", cfg.Server.Addr)
	}
	if cfg.Storage.Driver != "memory" {
		t.Fatalf("driver: %q", cfg.Storage.Driver)
	}
	if cfg.Admin.Session.CookieName != "bo_session" {
		t.Fatalf("cookie: %q", cfg.Admin.Session.CookieName)
	}
	if ttl, err := cfg.SessionTTL(); err != nil || ttl != 30*time.Minute {
		t.Fatalf("ttl: %v/%v", ttl, err)
	}
	if cfg.Rate.Pin.Limit != 5 {
		t.Fatalf("pin limit: %d", cfg.Rate.Pin.Limit)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	cfg, err := Load(writeYAML(t, `
app:
  env: prod
  log_level: warn
server:
  addr: ":9090"
storage:
  driver: postgres
  dsn: "postgres://u:p@localhost/db"
admin:
  pin_hash: "$argon2id$..."
  session:
    secret: "s3cr3t"
    ttl: 15m
rate:
  enabled: true
  pin:
    limit: 3
    window: 5m
`))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.App.Env != "prod" || cfg.Server.Addr != ":9090" {
		t.Fatalf("%+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if w, _ := cfg.PinWindow(); w != 5*time.Minute {
		t.Fatalf("window: %v", w)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":7070")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("SESSION_SECRET", "env-secret")

	cfg, err := Load(writeYAML(t, "server:\n  addr: \":8080\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Fatalf("el env debe pisar el YAML: %q", cfg.Server.Addr)
	}
	if cfg.Storage.Driver != "postgres" {
		t.Fatalf("driver: %q", cfg.Storage.Driver)
	}
	if cfg.Admin.Session.Secret != "env-secret" {
		t.Fatalf("secret: %q", cfg.Admin.Session.Secret)
	}
}

func TestValidate_Requiere(t *testing.T) {
	cfg, err := Load(writeYAML(t, "app:\n  env: dev\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("sin pin_hash ni secret, Validate debe fallar")
	}
}
