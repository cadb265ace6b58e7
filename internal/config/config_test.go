package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", strings.Repeat("a", 40))
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", "file:test.db")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_EXPIRES_IN", "30m")
	t.Setenv("UPLOAD_MAX_BYTES", "2048")
	t.Setenv("UPLOAD_DIR", "")

	cfg := Load()

	if cfg.HTTPPort != "8080" || cfg.DatabaseDriver != "sqlite" || cfg.DatabaseDSN != "file:test.db" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.JWTExpiresIn != 30*time.Minute {
		t.Errorf("JWTExpiresIn = %s", cfg.JWTExpiresIn)
	}
	if cfg.MaxUploadBytes != 2048 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.UploadDir != "./uploads" {
		t.Errorf("UploadDir = %q, want the default", cfg.UploadDir)
	}
}

func TestEnvFallbacks(t *testing.T) {
	t.Setenv("CFG_TEST_DURATION", "soon")
	t.Setenv("CFG_TEST_INT", "-5")

	if got := getEnvDuration("CFG_TEST_DURATION", time.Hour); got != time.Hour {
		t.Errorf("getEnvDuration = %s, want fallback", got)
	}
	if got := getEnvInt64("CFG_TEST_INT", 7); got != 7 {
		t.Errorf("getEnvInt64 = %d, want fallback", got)
	}
	if got := getEnv("CFG_TEST_MISSING", "def"); got != "def" {
		t.Errorf("getEnv = %q", got)
	}
}
