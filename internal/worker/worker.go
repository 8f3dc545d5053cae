// Package worker evaluates batches of reports across a bounded pool of goroutines.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/opensource-finance/kestrel/internal/domain"
	"github.com/opensource-finance/kestrel/internal/extract"
	"github.com/opensource-finance/kestrel/internal/rebase"
)

// Evaluator scores a single report. *scoring.Engine satisfies it.
type Evaluator interface {
	Evaluate(ctx context.Context, report *domain.NormalizedReport) *domain.ScoreResult
}

// Outcome is the result of one job.
type Outcome struct {
	JobID     uuid.UUID `json:"jobId"`
	Applicant string    `json:"applicant"`

	// Result scores the report as received. Nil when the report was skipped.
	Result *domain.ScoreResult `json:"result"`

	// AsOf scores the report rebased to its QEC date, when it has one.
	AsOf *domain.ScoreResult `json:"asOf,omitempty"`

	// ActiveCreditCard is taken from the report actually scored last:
	// the rebased one when a QEC date exists.
	ActiveCreditCard bool `json:"activeCreditCard"`
}

// Pool dispatches evaluations over at most Concurrency goroutines.
// Evaluations share no mutable state, so jobs run in any order.
type Pool struct {
	evaluator   Evaluator
	concurrency int
	logger      *slog.Logger
	tracer      trace.Tracer
}

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the pool's logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pool) { p.logger = l }
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(p *Pool) { p.tracer = t }
}

// NewPool creates a pool over evaluator.
func NewPool(evaluator Evaluator, cfg domain.WorkerConfig, opts ...Option) (*Pool, error) {
	if evaluator == nil {
		return nil, fmt.Errorf("evaluator is required")
	}
	if cfg.Concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1, got %d", cfg.Concurrency)
	}

	p := &Pool{
		evaluator:   evaluator,
		concurrency: cfg.Concurrency,
		logger:      slog.Default(),
		tracer:      otel.Tracer("kestrel-worker"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Process evaluates every report and returns outcomes in input order.
// When ctx is cancelled, dispatch stops; jobs already running finish and the
// outcomes collected so far are returned together with ctx.Err().
func (p *Pool) Process(ctx context.Context, reports []*domain.NormalizedReport) ([]Outcome, error) {
	outcomes := make([]Outcome, len(reports))
	sem := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup

	var err error
	for i, report := range reports {
		if err = acquire(ctx, sem); err != nil {
			break
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }() // release
			outcomes[i] = p.ProcessOne(ctx, report)
		}()
	}

	wg.Wait()

	if err != nil {
		p.logger.Error("batch cancelled",
			"total", len(reports),
			"error", err,
		)
	}
	return outcomes, err
}

// acquire takes a slot from sem unless ctx is done first.
func acquire(ctx context.Context, sem chan struct{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case sem <- struct{}{}:
		return nil
	}
}

// ProcessOne evaluates one report as received and, when it carries a QEC
// date, again as of that date.
func (p *Pool) ProcessOne(ctx context.Context, report *domain.NormalizedReport) Outcome {
	out := Outcome{JobID: uuid.New()}

	ctx, span := p.tracer.Start(ctx, "worker.Process",
		trace.WithAttributes(attribute.String("job_id", out.JobID.String())),
	)
	defer span.End()

	if report == nil {
		span.SetStatus(codes.Error, "nil report")
		p.logger.Error("skipping report",
			"job_id", out.JobID,
			"error", "nil report",
		)
		return out
	}

	start := time.Now()
	out.Applicant = report.Name
	out.Result = p.evaluator.Evaluate(ctx, report)

	scored := report
	if asOf, ok := rebase.AsOfQEC(report); ok {
		out.AsOf = p.evaluator.Evaluate(ctx, asOf)
		scored = asOf
	} else if report.QECDate != "" {
		p.logger.Debug("ignoring unparsable QEC date",
			"job_id", out.JobID,
			"qec_date", report.QECDate,
		)
	}
	out.ActiveCreditCard = extract.HasActiveCreditCard(scored)

	span.SetAttributes(
		attribute.String("decision", string(out.Result.Decision)),
		attribute.Bool("as_of", out.AsOf != nil),
	)

	p.logger.Info("report processed",
		"job_id", out.JobID,
		"applicant", out.Applicant,
		"decision", out.Result.Decision,
		"score", out.Result.Score,
		"as_of", out.AsOf != nil,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return out
}
