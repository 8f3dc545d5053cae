// Package scoring evaluates a rule registry against one report and turns the
// weighted composite into a decision and a sanction amount.
package scoring

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/opensource-finance/kestrel/internal/domain"
	"github.com/opensource-finance/kestrel/internal/extract"
	"github.com/opensource-finance/kestrel/internal/rules"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Observer receives every completed result.
type Observer interface {
	Observe(result *domain.ScoreResult)
}

// Engine scores reports. It holds no per-evaluation state and is safe for
// concurrent use once built.
type Engine struct {
	registry         *rules.Registry
	ladder           *Ladder
	approveThreshold float64
	noTraceCheck     string
	noTraceIndex     int
	noTraceScore     int
	observer         Observer
	tracer           trace.Tracer
}

// Option configures an Engine.
type Option func(*Engine)

// WithApproveThreshold sets the score at or below which reports are rejected.
func WithApproveThreshold(threshold float64) Option {
	return func(e *Engine) { e.approveThreshold = threshold }
}

// WithLadder sets the sanction ladder.
func WithLadder(l *Ladder) Option {
	return func(e *Engine) { e.ladder = l }
}

// WithNoTrace sets the check scored for consumer-not-found reports and the score it gets.
func WithNoTrace(check string, score int) Option {
	return func(e *Engine) {
		e.noTraceCheck = check
		e.noTraceScore = score
	}
}

// WithObserver registers an observer, typically a metrics collector.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// NewEngine creates an engine over reg with the default policy.
func NewEngine(reg *rules.Registry, opts ...Option) (*Engine, error) {
	if reg == nil {
		return nil, fmt.Errorf("registry is required")
	}

	e := &Engine{
		registry:         reg,
		approveThreshold: domain.DefaultApproveThreshold,
		noTraceCheck:     domain.DefaultNoTraceCheck,
		noTraceScore:     domain.DefaultNoTraceScore,
		tracer:           otel.Tracer("kestrel-scoring"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.ladder == nil {
		e.ladder = DefaultLadder()
	}

	if e.noTraceScore < 0 || e.noTraceScore > domain.MaxScore {
		return nil, fmt.Errorf("no-trace score %d outside 0-%d", e.noTraceScore, domain.MaxScore)
	}
	idx, ok := reg.Index(e.noTraceCheck)
	if !ok {
		return nil, fmt.Errorf("no-trace check %q: %w", e.noTraceCheck, rules.ErrUnknownCheck)
	}
	e.noTraceIndex = idx

	return e, nil
}

// NewEngineFromConfig builds the default rule bank extended and reweighted
// per policy, and an engine over it.
func NewEngineFromConfig(policy domain.PolicyConfig, opts ...Option) (*Engine, error) {
	reg := rules.DefaultRegistry()

	var err error
	if len(policy.ExtraChecks) > 0 {
		if reg, err = reg.WithChecks(policy.ExtraChecks...); err != nil {
			return nil, fmt.Errorf("failed to add extra checks: %w", err)
		}
	}
	if len(policy.Weights) > 0 {
		if reg, err = reg.WithWeights(policy.Weights); err != nil {
			return nil, fmt.Errorf("failed to apply weights: %w", err)
		}
	}

	ladder, err := NewLadder(policy.Tiers)
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithApproveThreshold(policy.ApproveThreshold),
		WithLadder(ladder),
		WithNoTrace(policy.NoTraceCheck, policy.NoTraceScore),
	}
	return NewEngine(reg, append(base, opts...)...)
}

// Registry returns the engine's rule bank.
func (e *Engine) Registry() *rules.Registry {
	return e.registry
}

// Evaluate scores one report. It never fails: malformed report fields
// degrade to each check's fallback score.
func (e *Engine) Evaluate(ctx context.Context, report *domain.NormalizedReport) *domain.ScoreResult {
	_, span := e.tracer.Start(ctx, "scoring.Evaluate")
	defer span.End()

	var result *domain.ScoreResult
	if report.ConsumerFound {
		result = e.evaluateStandard(report)
	} else {
		result = e.evaluateNoTrace(report)
	}
	e.decide(result)

	span.SetAttributes(
		attribute.String("decision", string(result.Decision)),
		attribute.Float64("score", result.Score),
		attribute.Bool("critical_failure", result.CriticalFailure),
		attribute.Bool("no_trace", result.NoTrace),
	)

	if e.observer != nil {
		e.observer.Observe(result)
	}
	return result
}

// evaluateStandard runs every check. A critical check scoring 0 marks the
// evaluation failed but does not stop the remaining checks.
func (e *Engine) evaluateStandard(report *domain.NormalizedReport) *domain.ScoreResult {
	reg := e.registry
	metrics := extract.NewSet(report)

	result := &domain.ScoreResult{
		Checks:        make([]domain.CheckScore, reg.Len()),
		Status:        domain.StatusPass,
		ReferenceDate: report.ReportDate,
	}

	for i := range reg.Len() {
		score, v := reg.Score(i, metrics)
		weight := reg.NormalizedWeight(i)
		critical := reg.Critical(i)

		result.Checks[i] = domain.CheckScore{
			Name:         reg.Name(i),
			Applicable:   true,
			Score:        score,
			Metric:       v,
			Critical:     critical,
			Weight:       weight,
			Contribution: float64(score) * weight,
		}

		if critical && score == 0 {
			result.CriticalFailure = true
			result.Status = domain.StatusFail
		}
		result.Composite += result.Checks[i].Contribution
	}

	return result
}

// evaluateNoTrace scores only the no-trace check, at full weight.
// Every other check is not applicable.
func (e *Engine) evaluateNoTrace(report *domain.NormalizedReport) *domain.ScoreResult {
	reg := e.registry

	result := &domain.ScoreResult{
		Checks:        make([]domain.CheckScore, reg.Len()),
		Status:        domain.StatusPass,
		NoTrace:       true,
		ReferenceDate: report.ReportDate,
	}

	for i := range reg.Len() {
		result.Checks[i] = domain.CheckScore{
			Name:     reg.Name(i),
			Critical: reg.Critical(i),
		}
	}

	// The metric is still recorded; the score is the fixed no-trace score.
	_, v := reg.Score(e.noTraceIndex, extract.NewSet(report))

	c := &result.Checks[e.noTraceIndex]
	c.Applicable = true
	c.Score = e.noTraceScore
	c.Metric = v
	c.Weight = 1
	c.Contribution = float64(e.noTraceScore)
	result.Composite = c.Contribution

	return result
}

// decide applies the critical override, the approve threshold and the ladder.
func (e *Engine) decide(result *domain.ScoreResult) {
	result.SanctionAmount = decimal.Zero

	if result.CriticalFailure {
		result.Score = 0
		result.Decision = domain.DecisionReject
		return
	}

	result.Score = round2(result.Composite)
	if result.Score <= e.approveThreshold {
		result.Decision = domain.DecisionReject
		return
	}

	result.Decision = domain.DecisionApprove
	if result.Score > 0 {
		result.SanctionAmount = e.ladder.Amount(result.Score)
	}
}

// round2 rounds half-to-even on the exact binary value of x. Every float64
// is exactly representable with 1074 fractional digits.
func round2(x float64) float64 {
	d, err := decimal.NewFromString(strconv.FormatFloat(x, 'f', 1074, 64))
	if err != nil {
		return math.Round(x*100) / 100
	}
	return d.RoundBank(2).InexactFloat64()
}
