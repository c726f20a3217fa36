package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Snapshot drivers
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
	DriverRedis    = "redis"
)

type Config struct {
	Environment string

	HTTPAddr       string
	TLSCertFile    string
	TLSKeyFile     string
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int

	SnapshotDriver string
	SnapshotPath   string
	SQLitePath     string
	DBDSN          string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3Prefix    string
	S3PathStyle bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string

	TelegramToken string
	AuditInterval time.Duration
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	} else {
		log.Println("Loaded configuration from .env file")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Environment:    getEnv("ENV", "development"),
		HTTPAddr:       getEnv("HTTP_ADDR", "127.0.0.1:5000"),
		TLSCertFile:    os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:     os.Getenv("TLS_KEY_FILE"),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
		SnapshotDriver: strings.ToLower(getEnv("SNAPSHOT_DRIVER", DriverFile)),
		SnapshotPath:   getEnv("SNAPSHOT_PATH", "rooms.json"),
		SQLitePath:     getEnv("SQLITE_PATH", "unireserva.db"),
		DBDSN:          os.Getenv("DB_DSN"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       os.Getenv("S3_REGION"),
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3Prefix:       os.Getenv("S3_PREFIX"),
		S3PathStyle:    strings.EqualFold(os.Getenv("S3_PATH_STYLE"), "true"),
		RedisAddr:      getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisKey:       os.Getenv("REDIS_KEY"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
	}

	var err error
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "40")); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}
	if cfg.AuditInterval, err = time.ParseDuration(getEnv("AUDIT_INTERVAL", "0s")); err != nil {
		return nil, fmt.Errorf("AUDIT_INTERVAL: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.SnapshotDriver {
	case DriverFile, DriverSQLite, DriverRedis:
	case DriverPostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required for the postgres snapshot driver")
		}
	case DriverS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 snapshot driver")
		}
	default:
		return fmt.Errorf("unknown SNAPSHOT_DRIVER %q", c.SnapshotDriver)
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}
	return nil
}

// TLSEnabled reports whether the HTTP server should serve HTTPS
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
