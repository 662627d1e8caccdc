// Package config carrega a configuração da aplicação a partir de variáveis de
// ambiente (opcionalmente de um arquivo .env).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hugohenrick/billing-dashboard/pkg/logger"
)

// Drivers de armazenamento suportados
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

var (
	ErrMissingJWTSecret = errors.New("JWT_SECRET_KEY é obrigatória")
	ErrUnknownStore     = errors.New("STORE_DRIVER desconhecido")
	ErrInvalidPort      = errors.New("HTTP_PORT inválida")
)

// Config contém toda a configuração da aplicação
type Config struct {
	// HTTP
	HTTPPort           string
	GinMode            string
	CORSAllowedOrigins []string

	// Armazenamento
	StoreDriver    string
	StoreSeed      bool
	DatabaseURL    string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBMaxConns     int32
	DBMinConns     int32
	MigrationsPath string
	AutoMigrate    bool

	// Autenticação
	JWTSecretKey  string
	JWTExpiration time.Duration
	JWTIssuer     string

	// Dashboard
	DashboardMonths int

	// Logging
	LogLevel  string
	LogFormat string
	LogOutput string
}

// Load lê o arquivo .env (se existir) e as variáveis de ambiente
func Load() (*Config, error) {
	// .env é opcional
	_ = godotenv.Load()

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}
	return cfg, nil
}

// FromEnv monta a configuração a partir das variáveis de ambiente, sem validar
func FromEnv() *Config {
	return &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
		StoreSeed:      getBool("STORE_SEED", true),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "billing_dashboard"),
		DBSSLMode:      getEnv("DB_SSL_MODE", "disable"),
		DBMaxConns:     int32(getInt("DB_MAX_CONNECTIONS", 10)),
		DBMinConns:     int32(getInt("DB_MIN_CONNECTIONS", 1)),
		MigrationsPath: getEnv("MIGRATIONS_PATH", ""),
		AutoMigrate:    getBool("DB_AUTO_MIGRATE", false),

		JWTSecretKey:  getEnv("JWT_SECRET_KEY", ""),
		JWTExpiration: time.Duration(getInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		JWTIssuer:     getEnv("JWT_ISSUER", "billing-dashboard-api"),

		DashboardMonths: getInt("DASHBOARD_MONTHS", 6),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
		LogOutput: getEnv("LOG_OUTPUT", "stdout"),
	}
}

// Validate verifica as combinações obrigatórias
func (c *Config) Validate() error {
	if c.JWTSecretKey == "" {
		return ErrMissingJWTSecret
	}
	switch c.StoreDriver {
	case StoreMemory, StorePostgres:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStore, c.StoreDriver)
	}
	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("%w: %q", ErrInvalidPort, c.HTTPPort)
	}
	return nil
}

// PostgresURL retorna DATABASE_URL ou a URL montada a partir das variáveis DB_*
func (c *Config) PostgresURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoggerConfig retorna a configuração do logger
func (c *Config) LoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:  c.LogLevel,
		Format: c.LogFormat,
		Output: c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
