package config

import "testing"

func TestLoadAppliesDefaultsWithoutEnv(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "")
	t.Setenv("GRPC_HEALTH_PORT", "")
	t.Setenv("WORKER_POOL_SIZE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.Environment != "development" {
		t.Fatalf("expected default environment, got %q", cfg.Environment)
	}
	if cfg.ShutdownTimeout.Seconds() != 30 {
		t.Fatalf("expected default shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.WorkerPoolSize != 10 {
		t.Fatalf("expected default worker pool size 10, got %d", cfg.WorkerPoolSize)
	}
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("APP_ENV", "production")
	t.Setenv("WORKER_POOL_SIZE", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9999 {
		t.Fatalf("expected overridden port 9999, got %d", cfg.Port)
	}
	if cfg.Environment != "production" {
		t.Fatalf("expected overridden environment, got %q", cfg.Environment)
	}
	if cfg.WorkerPoolSize != 4 {
		t.Fatalf("expected overridden worker pool size 4, got %d", cfg.WorkerPoolSize)
	}
}

func TestLoadRejectsNonIntegerPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-integer PORT")
	}
}
