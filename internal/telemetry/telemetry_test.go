package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/opensource-finance/kestrel/internal/domain"
	"github.com/opensource-finance/kestrel/internal/rules"
	"github.com/opensource-finance/kestrel/internal/scoring"
)

var _ scoring.Observer = (*Collector)(nil)

func TestNewLogger(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(domain.LoggingConfig{Level: "info", Format: "json"}, &buf)

		logger.Debug("hidden")
		logger.Info("report processed", "applicant", "A", "score", 4.92)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 1 {
			t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
		}

		var entry map[string]any
		if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
			t.Fatalf("expected JSON output: %v", err)
		}
		if entry["msg"] != "report processed" || entry["applicant"] != "A" {
			t.Errorf("unexpected entry: %v", entry)
		}
	})

	t.Run("Text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(domain.LoggingConfig{Level: "debug", Format: "text"}, &buf)

		logger.Debug("visible", "key", "value")
		if !strings.Contains(buf.String(), "msg=visible") || !strings.Contains(buf.String(), "key=value") {
			t.Errorf("unexpected text output: %q", buf.String())
		}
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTracer(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		tracer := Tracer(domain.TracingConfig{Enabled: enabled, ServiceName: "kestrel-test"})
		if tracer == nil {
			t.Fatalf("expected tracer (enabled=%v)", enabled)
		}
		_, span := tracer.Start(context.Background(), "test")
		span.End()
	}
}

func result(decision domain.Decision, score float64, critical, noTrace bool) *domain.ScoreResult {
	return &domain.ScoreResult{
		Decision:        decision,
		Score:           score,
		CriticalFailure: critical,
		NoTrace:         noTrace,
		Checks: []domain.CheckScore{
			{Name: "Bureau Score", Applicable: true, Score: 5},
			{Name: "Age Check", Applicable: !noTrace, Score: 3},
		},
	}
}

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("failed to create collector: %v", err)
	}

	c.Observe(result(domain.DecisionApprove, 4.5, false, false))
	c.Observe(result(domain.DecisionReject, 0, true, false))
	c.Observe(result(domain.DecisionReject, 2, false, true))
	c.Observe(nil)

	if got := testutil.ToFloat64(c.evaluations.WithLabelValues("APPROVE")); got != 1 {
		t.Errorf("expected 1 approve, got %v", got)
	}
	if got := testutil.ToFloat64(c.evaluations.WithLabelValues("REJECT")); got != 2 {
		t.Errorf("expected 2 rejects, got %v", got)
	}
	if got := testutil.ToFloat64(c.criticalFailures); got != 1 {
		t.Errorf("expected 1 critical failure, got %v", got)
	}
	if got := testutil.ToFloat64(c.noTrace); got != 1 {
		t.Errorf("expected 1 no-trace, got %v", got)
	}
	if got := testutil.CollectAndCount(c.checkScores); got != 2 {
		t.Errorf("expected 2 check series, got %d", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	counts := map[string]uint64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if h := m.GetHistogram(); h != nil {
				key := mf.GetName()
				for _, lp := range m.GetLabel() {
					key += "/" + lp.GetValue()
				}
				counts[key] = h.GetSampleCount()
			}
		}
	}

	if counts["kestrel_scoring_composite_score"] != 3 {
		t.Errorf("expected 3 composite samples, got %d", counts["kestrel_scoring_composite_score"])
	}
	if counts["kestrel_scoring_check_score/Bureau Score"] != 3 {
		t.Errorf("expected 3 bureau samples, got %d", counts["kestrel_scoring_check_score/Bureau Score"])
	}
	// bypassed on the no-trace path
	if counts["kestrel_scoring_check_score/Age Check"] != 2 {
		t.Errorf("expected 2 age samples, got %d", counts["kestrel_scoring_check_score/Age Check"])
	}
}

func TestCollectorDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewCollector(reg); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := NewCollector(reg); err == nil {
		t.Error("expected error on duplicate registration")
	}
}

func TestCollectorObservesEngine(t *testing.T) {
	c, err := NewCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("failed to create collector: %v", err)
	}
	engine, err := scoring.NewEngine(rules.DefaultRegistry(), scoring.WithObserver(c))
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}

	engine.Evaluate(context.Background(), &domain.NormalizedReport{ReportDate: "2025-12-01"})

	if got := testutil.ToFloat64(c.noTrace); got != 1 {
		t.Errorf("expected 1 no-trace evaluation, got %v", got)
	}
	if got := testutil.ToFloat64(c.evaluations.WithLabelValues("REJECT")); got != 1 {
		t.Errorf("expected 1 reject, got %v", got)
	}
	// only the no-trace check is applicable
	if got := testutil.CollectAndCount(c.checkScores); got != 1 {
		t.Errorf("expected 1 check series, got %d", got)
	}
}
