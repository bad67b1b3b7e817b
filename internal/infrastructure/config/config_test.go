package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8000" {
		t.Fatalf("expected default port 8000, got %q", cfg.Port)
	}
	if cfg.Token.AccessTTL != 15*time.Minute {
		t.Fatalf("expected default access TTL 15m, got %v", cfg.Token.AccessTTL)
	}
	if cfg.Token.RefreshTTL != 240*time.Hour {
		t.Fatalf("expected default refresh TTL 240h, got %v", cfg.Token.RefreshTTL)
	}
	if cfg.Mongo.Database != "employee_hub" {
		t.Fatalf("expected default database, got %q", cfg.Mongo.Database)
	}
}

func TestLoad_MissingSecrets(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("REFRESH_TOKEN_SECRET", "")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error when secrets are missing")
	}
}

func TestLoad_IdenticalSecrets(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "same")
	t.Setenv("REFRESH_TOKEN_SECRET", "same")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error when both secrets are identical")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh")
	t.Setenv("PORT", "9090")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("expected port override, got %q", cfg.Port)
	}
	if cfg.Token.AccessTTL != 5*time.Minute {
		t.Fatalf("expected TTL override, got %v", cfg.Token.AccessTTL)
	}
}
