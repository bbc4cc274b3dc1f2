package config_test

import (
	"strings"
	"testing"

	"github.com/vibescine/cinevibes/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("expected default bcrypt cost 12, got %d", cfg.BcryptCost)
	}
	if cfg.SMTPPort != 587 {
		t.Fatalf("expected default SMTP port 587, got %d", cfg.SMTPPort)
	}
	if cfg.StorageBucket != "profile-pics" {
		t.Fatalf("expected default bucket, got %q", cfg.StorageBucket)
	}
	if cfg.MailEnabled() {
		t.Fatal("expected mail to be disabled without credentials")
	}
	if cfg.BucketEnabled() {
		t.Fatal("expected bucket to be disabled without credentials")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	if err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected error to name JWT_SECRET, got %v", err)
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for short JWT_SECRET")
	}
}

func TestLoad_BcryptCostBounds(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("BCRYPT_COST", "20")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for out-of-range BCRYPT_COST")
	}

	t.Setenv("BCRYPT_COST", "not-a-number")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for non-numeric BCRYPT_COST")
	}
}

func TestLoad_SMTPUsernameFallsBackToSender(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("EMAIL_SENDER", "noreply@example.com")
	t.Setenv("SMTP_PASSWORD", "app-password")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SMTPUsername != "noreply@example.com" {
		t.Fatalf("expected username to fall back to sender, got %q", cfg.SMTPUsername)
	}
	if !cfg.MailEnabled() {
		t.Fatal("expected mail to be enabled")
	}
}

func TestLoad_BucketEnabled(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("STORAGE_URL", "https://store.example.com")
	t.Setenv("STORAGE_SERVICE_KEY", "service-key")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.BucketEnabled() {
		t.Fatal("expected bucket to be enabled")
	}
}
