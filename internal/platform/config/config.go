package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

const defaultAnalyticsCacheSize = 256

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	// EnableDBCheck applies pending PostgreSQL migrations at startup.
	EnableDBCheck bool

	StoreDriver string
	DatabaseURL string
	SQLitePath  string

	JWTSecret string
	JWTIssuer string

	RateLimit          string
	CORSAllowedOrigins []string

	// AnalyticsCacheSize or AnalyticsCacheTTL of zero disables the analytics cache.
	AnalyticsCacheSize int
	AnalyticsCacheTTL  time.Duration

	// AMQPURL empty disables ledger event broadcasting.
	AMQPURL      string
	AMQPExchange string
}

// CacheEnabled reports whether monthly analytics should be cached.
func (c *Config) CacheEnabled() bool {
	return c.AnalyticsCacheSize > 0 && c.AnalyticsCacheTTL > 0
}

// analyticsCacheDefault keeps the cache off when replicas can share a
// PostgreSQL database without an AMQP feed to invalidate each other's caches.
func (c *Config) analyticsCacheDefault() int {
	if c.StoreDriver == DriverPostgres && c.AMQPURL == "" {
		return 0
	}
	return defaultAnalyticsCacheSize
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	// An explicitly empty variable overrides the default so that validation sees it.
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORE_DRIVER", DriverPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "data/cashbook.db")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("ANALYTICS_CACHE_TTL", "5m")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "cashbook.ledger")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:          v.GetString("PORT"),
		IsProduction:  v.GetBool("IS_PRODUCTION"),
		EnableDBCheck: v.GetBool("ENABLE_DB_CHECK"),
		StoreDriver:   strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		DatabaseURL:   v.GetString("PGSQL_URL"),
		SQLitePath:    v.GetString("SQLITE_PATH"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTIssuer:     v.GetString("JWT_ISSUER"),
		RateLimit:     v.GetString("RATE_LIMIT"),
		AMQPURL:       v.GetString("AMQP_URL"),
		AMQPExchange:  v.GetString("AMQP_EXCHANGE"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if sizeStr := strings.TrimSpace(v.GetString("ANALYTICS_CACHE_SIZE")); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid ANALYTICS_CACHE_SIZE %q: %w", sizeStr, err)
		}
		cfg.AnalyticsCacheSize = size
	} else {
		cfg.AnalyticsCacheSize = cfg.analyticsCacheDefault()
	}
	if cfg.AnalyticsCacheSize < 0 {
		return nil, fmt.Errorf("ANALYTICS_CACHE_SIZE must not be negative, got %d", cfg.AnalyticsCacheSize)
	}
	ttlStr := v.GetString("ANALYTICS_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_CACHE_TTL %q: %w", ttlStr, err)
	}
	cfg.AnalyticsCacheTTL = ttl

	if cfg.AMQPURL != "" && cfg.AMQPExchange == "" {
		return nil, fmt.Errorf("AMQP_EXCHANGE must be set when AMQP_URL is set")
	}

	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set when STORE_DRIVER is %q", DriverPostgres)
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH must be set when STORE_DRIVER is %q", DriverSQLite)
		}
	case DriverMemory:
		log.Println("Warning: STORE_DRIVER is memory. Data is lost on restart.")
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want %s, %s or %s)", cfg.StoreDriver, DriverPostgres, DriverSQLite, DriverMemory)
	}

	return cfg, nil
}
