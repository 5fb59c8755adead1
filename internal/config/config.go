package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/MariamAbbas03/Project435/internal/database"
)

// Config holds the settings shared by the three services and shopctl.
type Config struct {
	ServiceName string
	Version     string
	Environment string
	Port        string

	LogLevel  string
	LogFormat string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string

	DBMaxConns        int32
	DBMinConns        int32
	DBConnectAttempts int

	// EnsureSchema creates missing tables on start, before serving.
	EnsureSchema bool

	OTelEnabled  bool
	OTLPEndpoint string

	// DebitWalletOnSale charges the item price to the customer's wallet in
	// the sale transaction. When false the wallet is only checked.
	DebitWalletOnSale bool
	// LegacyStatusCodes answers every domain error with HTTP 200 and an
	// "error" body, for clients that only inspect the body.
	LegacyStatusCodes bool

	CORSAllowedOrigins []string

	CustomersURL string
	InventoryURL string
	SalesURL     string
}

// Load reads the configuration from the environment, after loading a .env
// file when one exists. serviceName and defaultPort seed SERVICE_NAME and
// PORT.
func Load(serviceName, defaultPort string) (*Config, error) {
	// A missing .env is fine: real environment variables still apply.
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", serviceName),
		Version:     getEnv("SERVICE_VERSION", "1.0.0"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		Port:        getEnv("PORT", defaultPort),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		DBUser:     getEnv("DATABASE_USER", "root"),
		DBPassword: getEnv("DATABASE_PASSWORD", "pass"),
		DBHost:     getEnv("DATABASE_HOST", "localhost"),
		DBPort:     getEnv("DATABASE_PORT", "5432"),
		DBName:     getEnv("DATABASE_NAME", "ecommerce"),
		DBSSLMode:  getEnv("DATABASE_SSLMODE", "disable"),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),

		CustomersURL: getEnv("CUSTOMERS_SERVICE_URL", "http://localhost:5000"),
		InventoryURL: getEnv("INVENTORY_SERVICE_URL", "http://localhost:5001"),
		SalesURL:     getEnv("SALES_SERVICE_URL", "http://localhost:8080"),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	var err error
	if cfg.DBMaxConns, err = getInt32("DATABASE_MAX_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.DBMinConns, err = getInt32("DATABASE_MIN_CONNS", 2); err != nil {
		return nil, err
	}
	attempts, err := getInt32("DATABASE_CONNECT_ATTEMPTS", 30)
	if err != nil {
		return nil, err
	}
	cfg.DBConnectAttempts = int(attempts)

	if cfg.EnsureSchema, err = getBool("ENSURE_SCHEMA", true); err != nil {
		return nil, err
	}
	if cfg.OTelEnabled, err = getBool("OTEL_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.DebitWalletOnSale, err = getBool("DEBIT_WALLET_ON_SALE", true); err != nil {
		return nil, err
	}
	if cfg.LegacyStatusCodes, err = getBool("LEGACY_STATUS_CODES", false); err != nil {
		return nil, err
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	if cfg.DBMinConns > cfg.DBMaxConns {
		return nil, fmt.Errorf("DATABASE_MIN_CONNS (%d) exceeds DATABASE_MAX_CONNS (%d)", cfg.DBMinConns, cfg.DBMaxConns)
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// PoolConfig returns the pool settings for database.NewPool.
func (c *Config) PoolConfig() database.PoolConfig {
	return database.PoolConfig{
		DSN:               c.DSN(),
		MaxConns:          c.DBMaxConns,
		MinConns:          c.DBMinConns,
		MaxConnLifetime:   time.Hour,
		MaxConnIdleTime:   30 * time.Minute,
		HealthCheckPeriod: time.Minute,
		ConnectAttempts:   c.DBConnectAttempts,
		RetryInterval:     time.Second,
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return v, nil
}

func getInt32(key string, defaultValue int32) (int32, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("invalid %s value %q: must not be negative", key, raw)
	}
	return int32(v), nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
