// Package config carga la configuración del back-office desde YAML, con
// overrides por variables de entorno (.env vía godotenv en el comando).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | prod
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		ReadTimeout        string   `yaml:"read_timeout"`
		WriteTimeout       string   `yaml:"write_timeout"`
	} `yaml:"server"`

	Storage struct {
		// postgres | memory
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxConns        int    `yaml:"max_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		// memory | redis
		Kind  string `yaml:"kind"`
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	Admin struct {
		// PinHash es el hash Argon2id (formato PHC) del PIN de acceso.
		// Se genera con: backoffice hash-pin
		PinHash string `yaml:"pin_hash"`

		Session struct {
			// Secret firma los tokens de sesión (HS256). Obligatorio.
			Secret     string `yaml:"secret"`
			TTL        string `yaml:"ttl"`
			CookieName string `yaml:"cookie_name"`
			Domain     string `yaml:"domain"`
			SameSite   string `yaml:"samesite"`
			Secure     bool   `yaml:"secure"`
		} `yaml:"session"`
	} `yaml:"admin"`

	Rate struct {
		Enabled bool `yaml:"enabled"`
		Pin     struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"pin"`
	} `yaml:"rate"`
}

// Load lee el YAML, aplica defaults y luego overrides de entorno.
func Load(path string) (*Config, error) {
	var c Config

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	// defaults razonables
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "30s"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Storage.Postgres.MaxConns == 0 {
		c.Storage.Postgres.MaxConns = 10
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "2m"
	}
	if c.Admin.Session.TTL == "" {
		c.Admin.Session.TTL = "30m"
	}
	if c.Admin.Session.CookieName == "" {
		c.Admin.Session.CookieName = "bo_session"
	}
	if c.Admin.Session.SameSite == "" {
		c.Admin.Session.SameSite = "lax"
	}
	if c.Rate.Pin.Limit == 0 {
		c.Rate.Pin.Limit = 5
	}
	if c.Rate.Pin.Window == "" {
		c.Rate.Pin.Window = "10m"
	}

	c.applyEnvOverrides()

	return &c, nil
}

// Validate verifica los valores críticos antes de arrancar el servidor.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Admin.PinHash) == "" {
		return fmt.Errorf("config: admin.pin_hash es obligatorio (generar con: backoffice hash-pin)")
	}
	if strings.TrimSpace(c.Admin.Session.Secret) == "" {
		return fmt.Errorf("config: admin.session.secret es obligatorio")
	}
	if c.Storage.Driver == "postgres" && strings.TrimSpace(c.Storage.DSN) == "" {
		return fmt.Errorf("config: storage.dsn es obligatorio con driver postgres")
	}
	if _, err := c.SessionTTL(); err != nil {
		return fmt.Errorf("config: admin.session.ttl inválido: %w", err)
	}
	if _, err := c.PinWindow(); err != nil {
		return fmt.Errorf("config: rate.pin.window inválido: %w", err)
	}
	return nil
}

// SessionTTL parsea la duración de sesión.
func (c *Config) SessionTTL() (time.Duration, error) {
	return time.ParseDuration(c.Admin.Session.TTL)
}

// PinWindow parsea la ventana del rate limit de PIN.
func (c *Config) PinWindow() (time.Duration, error) {
	return time.ParseDuration(c.Rate.Pin.Window)
}

// ReadTimeout parsea el read timeout del server, con fallback a 10s.
func (c *Config) ReadTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Server.ReadTimeout); err == nil {
		return d
	}
	return 10 * time.Second
}

// WriteTimeout parsea el write timeout del server, con fallback a 30s.
func (c *Config) WriteTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Server.WriteTimeout); err == nil {
		return d
	}
	return 30 * time.Second
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.App.LogLevel = v
	}

	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}

	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_CONNS"); ok {
		c.Storage.Postgres.MaxConns = v
	}

	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Cache.Redis.Prefix = v
	}

	if v, ok := getEnvStr("ADMIN_PIN_HASH"); ok {
		c.Admin.PinHash = v
	}
	if v, ok := getEnvStr("SESSION_SECRET"); ok {
		c.Admin.Session.Secret = v
	}
	if v, ok := getEnvStr("SESSION_TTL"); ok {
		c.Admin.Session.TTL = v
	}
	if v, ok := getEnvStr("SESSION_COOKIE_NAME"); ok {
		c.Admin.Session.CookieName = v
	}
	if v, ok := getEnvStr("SESSION_DOMAIN"); ok {
		c.Admin.Session.Domain = v
	}
	if v, ok := getEnvStr("SESSION_SAMESITE"); ok {
		c.Admin.Session.SameSite = v
	}
	if v, ok := getEnvBool("SESSION_SECURE"); ok {
		c.Admin.Session.Secure = v
	}

	if v, ok := getEnvBool("RATE_ENABLED"); ok {
		c.Rate.Enabled = v
	}
	if v, ok := getEnvInt("RATE_PIN_LIMIT"); ok {
		c.Rate.Pin.Limit = v
	}
	if v, ok := getEnvStr("RATE_PIN_WINDOW"); ok {
		c.Rate.Pin.Window = v
	}
}

func getEnvStr(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return "", false
	}
	return v, true
}

func getEnvInt(key string) (int, bool) {
	s, ok := getEnvStr(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func getEnvBool(key string) (bool, bool) {
	s, ok := getEnvStr(key)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return b, true
}

func getEnvCSV(key string) ([]string, bool) {
	s, ok := getEnvStr(key)
	if !ok {
		return nil, false
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, true
}
