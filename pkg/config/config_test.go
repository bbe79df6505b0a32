package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerAddr != ":1998" || cfg.SSHAddr != ":2222" {
		t.Fatalf("addrs = %q %q", cfg.ServerAddr, cfg.SSHAddr)
	}
	if cfg.Theme != "basic" || cfg.SquareSize != 1 || cfg.IdleTimeout != 5*time.Minute {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PAWNRACE_LAYOUT", "/tmp/layout.json")
	t.Setenv("PAWNRACE_SQUARE_SIZE", "2.5")
	t.Setenv("PAWNRACE_IDLE_TIMEOUT", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LayoutPath != "/tmp/layout.json" || cfg.SquareSize != 2.5 || cfg.IdleTimeout != 90*time.Second {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("PAWNRACE_SQUARE_SIZE", "0")
	if _, err := Load(); err == nil {
		t.Fatal("zero square size accepted")
	}

	t.Setenv("PAWNRACE_SQUARE_SIZE", "wide")
	if _, err := Load(); err == nil {
		t.Fatal("non-numeric square size accepted")
	}
}
