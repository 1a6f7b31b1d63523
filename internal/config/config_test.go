package config

import (
	"testing"
)

func TestLoad_RequiredFields(t *testing.T) {
	t.Setenv("MYSQL_DSN", "")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail when MYSQL_DSN is missing")
	}

	t.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/shop")
	if _, err := Load(); err == nil {
		t.Error("Load() should fail when JWT_SECRET is missing")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/shop")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("SECOND_TRANCHE_OFFSET_DAYS", "")
	t.Setenv("OVERDUE_SCANNER_ENABLED", "")
	t.Setenv("OVERDUE_SCANNER_INTERVAL_SEC", "")
	t.Setenv("JWT_EXPIRE_MINUTES", "")
	t.Setenv("JWT_ISSUER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %s, want :8080", cfg.HTTPAddr)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %s, want localhost:6379", cfg.Redis.Addr)
	}
	if cfg.Installment.SecondTrancheOffsetDays != 60 {
		t.Errorf("SecondTrancheOffsetDays = %d, want 60", cfg.Installment.SecondTrancheOffsetDays)
	}
	if !cfg.OverdueScanner.Enabled {
		t.Error("OverdueScanner should default to enabled")
	}
	if cfg.OverdueScanner.IntervalSec != 3600 {
		t.Errorf("OverdueScanner.IntervalSec = %d, want 3600", cfg.OverdueScanner.IntervalSec)
	}
	if cfg.JWT.ExpireMinutes != 1440 {
		t.Errorf("JWT.ExpireMinutes = %d, want 1440", cfg.JWT.ExpireMinutes)
	}
	if cfg.JWT.Issuer != "go_shop" {
		t.Errorf("JWT.Issuer = %s, want go_shop", cfg.JWT.Issuer)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/shop")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SECOND_TRANCHE_OFFSET_DAYS", "90")
	t.Setenv("OVERDUE_SCANNER_ENABLED", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Installment.SecondTrancheOffsetDays != 90 {
		t.Errorf("SecondTrancheOffsetDays = %d, want 90", cfg.Installment.SecondTrancheOffsetDays)
	}
	if cfg.OverdueScanner.Enabled {
		t.Error("OverdueScanner should be disabled")
	}
}

func TestLoad_RejectsNonPositiveOffset(t *testing.T) {
	t.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/shop")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SECOND_TRANCHE_OFFSET_DAYS", "-5")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject a non-positive tranche offset")
	}
}
