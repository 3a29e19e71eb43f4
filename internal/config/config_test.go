package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgallion1/outliner/internal/outline"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8090" {
		t.Errorf("expected port %q, got %q", "8090", cfg.Port)
	}
	if cfg.WorkerCount != 4 || cfg.MaxQueueSize != 100 {
		t.Errorf("unexpected pool defaults: %d workers, queue %d", cfg.WorkerCount, cfg.MaxQueueSize)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected job ttl 1h, got %v", cfg.JobTTL)
	}
	if cfg.Outline() != outline.DefaultConfig() {
		t.Errorf("expected default thresholds, got %+v", cfg.Outline())
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	yaml := "worker_count: 8\nbody_size_ratio: 1.2\nheader_margin: 0.05\njob_ttl: 10m\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("OUTLINER_WORKER_COUNT", "2")
	t.Setenv("OUTLINER_API_KEY", "secret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("expected env to override file, got %d workers", cfg.WorkerCount)
	}
	if cfg.APIKey != "secret" {
		t.Errorf("expected api key from env, got %q", cfg.APIKey)
	}
	oc := cfg.Outline()
	if oc.BodySizeRatio != 1.2 || oc.HeaderMargin != 0.05 {
		t.Errorf("expected file thresholds, got %+v", oc)
	}
	if cfg.JobTTL != 10*time.Minute {
		t.Errorf("expected job ttl 10m, got %v", cfg.JobTTL)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_ClampsInvalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OUTLINER_WORKER_COUNT", "-3")
	t.Setenv("OUTLINER_MAX_QUEUE_SIZE", "0")
	t.Setenv("OUTLINER_DOC_TIMEOUT", "-1s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WorkerCount != 4 || cfg.MaxQueueSize != 100 || cfg.DocTimeout != 0 {
		t.Errorf("expected clamped values, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	if err := (Config{}).Validate(); err == nil {
		t.Error("expected error without api key")
	}
	if err := (Config{APIKey: "k"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := (Config{LogLevel: tt.in}).SlogLevel(); got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
