package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/opensource-finance/kestrel/internal/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kestrel.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("failed to load defaults: %v", err)
	}

	if cfg.Policy.ApproveThreshold != domain.DefaultApproveThreshold {
		t.Errorf("expected threshold %v, got %v", domain.DefaultApproveThreshold, cfg.Policy.ApproveThreshold)
	}
	if cfg.Policy.NoTraceCheck != domain.DefaultNoTraceCheck || cfg.Policy.NoTraceScore != domain.DefaultNoTraceScore {
		t.Errorf("unexpected no-trace policy: %q %d", cfg.Policy.NoTraceCheck, cfg.Policy.NoTraceScore)
	}
	if len(cfg.Policy.Tiers) != 6 || cfg.Policy.Tiers[0].Amount != 300000 {
		t.Errorf("unexpected tiers: %+v", cfg.Policy.Tiers)
	}
	if cfg.Worker.Concurrency != 8 {
		t.Errorf("expected concurrency 8, got %d", cfg.Worker.Concurrency)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging: %+v", cfg.Logging)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
policy:
  approve_threshold: 3.5
  weights:
    Bureau Score: 0.2
  tiers:
    - above_percent: 80
      amount: 100000
  extra_checks:
    - name: Recent Enquiries
      metric: enquiries_1m
      weight: 0.02
      bands:
        fallback: 1
        bands:
          - upper: 0
            upper_inclusive: true
            score: 5
worker:
  concurrency: 4
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	p := cfg.Policy
	if p.ApproveThreshold != 3.5 {
		t.Errorf("expected threshold 3.5, got %v", p.ApproveThreshold)
	}
	if p.Weights["Bureau Score"] != 0.2 {
		t.Errorf("expected weight override, got %v", p.Weights)
	}
	if len(p.Tiers) != 1 || p.Tiers[0].AbovePercent != 80 || p.Tiers[0].Amount != 100000 {
		t.Errorf("file tiers should replace defaults, got %+v", p.Tiers)
	}
	if len(p.ExtraChecks) != 1 {
		t.Fatalf("expected 1 extra check, got %d", len(p.ExtraChecks))
	}
	extra := p.ExtraChecks[0]
	if extra.Metric != domain.MetricEnquiries1m || extra.Bands.Fallback != 1 || len(extra.Bands.Bands) != 1 {
		t.Errorf("unexpected extra check: %+v", extra)
	}
	if b := extra.Bands.Bands[0]; b.Upper == nil || *b.Upper != 0 || !b.UpperInclusive || b.Score != 5 {
		t.Errorf("unexpected band: %+v", b)
	}

	if cfg.Worker.Concurrency != 4 || cfg.Logging.Level != "debug" {
		t.Errorf("unexpected worker/logging: %+v %+v", cfg.Worker, cfg.Logging)
	}
	// untouched sections keep defaults
	if cfg.Logging.Format != "json" || cfg.Policy.NoTraceCheck != domain.DefaultNoTraceCheck {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeFile(t, "worker:\n  concurrency: 4\n")

	t.Setenv("KESTREL_WORKER_CONCURRENCY", "2")
	t.Setenv("KESTREL_POLICY_APPROVE_THRESHOLD", "3.75")
	t.Setenv("KESTREL_TRACING_SERVICE_NAME", "kestrel-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Worker.Concurrency != 2 {
		t.Errorf("env should win over file, got %d", cfg.Worker.Concurrency)
	}
	if cfg.Policy.ApproveThreshold != 3.75 {
		t.Errorf("expected 3.75, got %v", cfg.Policy.ApproveThreshold)
	}
	if cfg.Tracing.ServiceName != "kestrel-test" {
		t.Errorf("expected service name override, got %q", cfg.Tracing.ServiceName)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("BadYAML", func(t *testing.T) {
		if _, err := Load(writeFile(t, "policy: [unclosed")); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("ThresholdOutOfRange", func(t *testing.T) {
		_, err := Load(writeFile(t, "policy:\n  approve_threshold: 7\n"))
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("BadLogLevel", func(t *testing.T) {
		t.Setenv("KESTREL_LOGGING_LEVEL", "verbose")
		if _, err := Load(""); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("ZeroConcurrency", func(t *testing.T) {
		t.Setenv("KESTREL_WORKER_CONCURRENCY", "0")
		if _, err := Load(""); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"KESTREL_WORKER_CONCURRENCY":    "worker.concurrency",
		"KESTREL_POLICY_NO_TRACE_SCORE": "policy.no_trace_score",
		"KESTREL_LOGGING_LEVEL":         "logging.level",
		"KESTREL_TRACING_ENABLED":       "tracing.enabled",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%s) = %s, want %s", in, got, want)
		}
	}
}
