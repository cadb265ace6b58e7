package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=cordonbleuhaus port=5432 sslmode=disable"

type Config struct {
	HTTPPort       string
	DatabaseDriver string // postgres or sqlite
	DatabaseDSN    string
	JWTSecret      string
	JWTExpiresIn   time.Duration
	CORSOrigins    string
	UploadDir      string // uploaded images land here and are served under /uploads
	MaxUploadBytes int64
}

func Load() *Config {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env not found, using process environment")
	}

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "5000"),
		DatabaseDriver: getEnv("DATABASE_DRIVER", "postgres"),
		DatabaseDSN:    getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTExpiresIn:   getEnvDuration("JWT_EXPIRES_IN", time.Hour),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: getEnvInt64("UPLOAD_MAX_BYTES", 5*1024*1024),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.DatabaseDriver != "postgres" && cfg.DatabaseDriver != "sqlite" {
		log.Fatalf("[FATAL] unsupported DATABASE_DRIVER %q (postgres or sqlite)", cfg.DatabaseDriver)
	}
	if cfg.DatabaseDriver == "postgres" && cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN is using the default value, set your own Postgres connection for production.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS is using the default value, set your own domain for production.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("[WARN] invalid %s=%q, falling back to %s", key, raw, def)
		return def
	}
	return d
}

func getEnvInt64(key string, def int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		log.Printf("[WARN] invalid %s=%q, falling back to %d", key, raw, def)
		return def
	}
	return v
}
