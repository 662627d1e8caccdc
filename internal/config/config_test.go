package config

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "STORE_DRIVER", "STORE_SEED", "DATABASE_URL", "JWT_EXPIRATION_HOURS", "DASHBOARD_MONTHS", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	if cfg.HTTPPort != "8080" || cfg.StoreDriver != StoreMemory || !cfg.StoreSeed {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.JWTExpiration != 24*time.Hour {
		t.Errorf("JWTExpiration = %v", cfg.JWTExpiration)
	}
	if cfg.DashboardMonths != 6 {
		t.Errorf("DashboardMonths = %d", cfg.DashboardMonths)
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"*"}) {
		t.Errorf("CORSAllowedOrigins = %q", cfg.CORSAllowedOrigins)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("STORE_SEED", "false")
	t.Setenv("DASHBOARD_MONTHS", "12")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("DB_MAX_CONNECTIONS", "not-a-number")

	cfg := FromEnv()

	if cfg.StoreDriver != StorePostgres || cfg.StoreSeed || cfg.DashboardMonths != 12 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"http://a.test", "http://b.test"}) {
		t.Errorf("CORSAllowedOrigins = %q", cfg.CORSAllowedOrigins)
	}
	if cfg.DBMaxConns != 10 {
		t.Errorf("invalid number should fall back to default, got %d", cfg.DBMaxConns)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{HTTPPort: "8080", StoreDriver: StoreMemory, JWTSecretKey: "secret"}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"valid", func(*Config) {}, nil},
		{"missing secret", func(c *Config) { c.JWTSecretKey = "" }, ErrMissingJWTSecret},
		{"unknown store", func(c *Config) { c.StoreDriver = "firestore" }, ErrUnknownStore},
		{"bad port", func(c *Config) { c.HTTPPort = "http" }, ErrInvalidPort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPostgresURL(t *testing.T) {
	cfg := Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5433", DBName: "billing", DBSSLMode: "disable"}
	if got := cfg.PostgresURL(); got != "postgres://u:p@db:5433/billing?sslmode=disable" {
		t.Errorf("PostgresURL = %q", got)
	}
	cfg.DatabaseURL = "postgres://override"
	if got := cfg.PostgresURL(); got != "postgres://override" {
		t.Errorf("PostgresURL = %q", got)
	}
}
