// Package rules holds the rule bank: named risk checks, their band tables,
// and the immutable registry the scoring engine evaluates.
package rules

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/opensource-finance/kestrel/internal/domain"
	"github.com/opensource-finance/kestrel/internal/extract"
)

// Registry errors
var (
	ErrInvalidCheck   = errors.New("invalid check")
	ErrDuplicateCheck = errors.New("duplicate check name")
	ErrUnknownMetric  = errors.New("unknown metric")
	ErrUnknownCheck   = errors.New("unknown check")
)

var validate = validator.New()

// MetricSource supplies derived metrics by key.
type MetricSource interface {
	Metric(key domain.MetricKey) domain.MetricValue
}

type entry struct {
	check domain.RiskCheck
	expr  *expression
}

// Registry is an ordered, validated rule bank. It is read-only once built
// and safe to share between concurrent evaluations.
type Registry struct {
	entries []entry
	index   map[string]int
	total   float64
}

// NewRegistry validates and compiles checks, preserving their order.
func NewRegistry(checks []domain.RiskCheck) (*Registry, error) {
	if len(checks) == 0 {
		return nil, fmt.Errorf("%w: registry needs at least one check", ErrInvalidCheck)
	}

	r := &Registry{
		entries: make([]entry, 0, len(checks)),
		index:   make(map[string]int, len(checks)),
	}

	for i := range checks {
		check := cloneCheck(&checks[i])

		if err := validate.Struct(check); err != nil {
			return nil, fmt.Errorf("check %q: %w: %w", check.Name, ErrInvalidCheck, err)
		}
		if _, dup := r.index[check.Name]; dup {
			return nil, fmt.Errorf("check %q: %w", check.Name, ErrDuplicateCheck)
		}
		for _, b := range check.Bands.Bands {
			if err := validateBand(b); err != nil {
				return nil, fmt.Errorf("check %q: %w: %w", check.Name, ErrInvalidCheck, err)
			}
		}

		e := entry{check: check}
		if check.Expression != "" {
			expr, err := compileExpression(&check)
			if err != nil {
				return nil, err
			}
			e.expr = expr
		} else if !extract.Supported(check.Metric) {
			return nil, fmt.Errorf("check %q metric %q: %w", check.Name, check.Metric, ErrUnknownMetric)
		}

		r.index[check.Name] = len(r.entries)
		r.entries = append(r.entries, e)
		r.total += check.Weight
	}

	return r, nil
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(DefaultChecks())
	if err != nil {
		panic(fmt.Sprintf("default rule bank: %v", err))
	}
	return r
})

// DefaultRegistry returns the shared registry built from DefaultChecks.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// Len returns the number of checks.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Check returns the check at position i.
func (r *Registry) Check(i int) domain.RiskCheck {
	return cloneCheck(&r.entries[i].check)
}

// Checks returns a copy of every check in evaluation order.
func (r *Registry) Checks() []domain.RiskCheck {
	out := make([]domain.RiskCheck, len(r.entries))
	for i := range r.entries {
		out[i] = cloneCheck(&r.entries[i].check)
	}
	return out
}

// Name returns the name of check i.
func (r *Registry) Name(i int) string {
	return r.entries[i].check.Name
}

// Critical reports whether check i is critical.
func (r *Registry) Critical(i int) bool {
	return r.entries[i].check.Critical
}

// Index returns the position of the check named name.
func (r *Registry) Index(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

// Lookup returns the check named name.
func (r *Registry) Lookup(name string) (domain.RiskCheck, bool) {
	i, ok := r.index[name]
	if !ok {
		return domain.RiskCheck{}, false
	}
	return r.Check(i), true
}

// TotalWeight is the sum of all check weights.
func (r *Registry) TotalWeight() float64 {
	return r.total
}

// NormalizedWeight is the weight of check i divided by the total.
func (r *Registry) NormalizedWeight(i int) float64 {
	return r.entries[i].check.Weight / r.total
}

// Score evaluates check i against m and returns its score and the banded value.
func (r *Registry) Score(i int, m MetricSource) (int, domain.MetricValue) {
	e := &r.entries[i]

	var v domain.MetricValue
	if e.expr != nil {
		v = e.expr.eval(m)
	} else {
		v = m.Metric(e.check.Metric)
	}
	return Match(v, e.check.Bands), v
}

// WithWeights returns a new registry with the named weights replaced.
func (r *Registry) WithWeights(weights map[string]float64) (*Registry, error) {
	checks := r.Checks()
	for name, w := range weights {
		i, ok := r.index[name]
		if !ok {
			return nil, fmt.Errorf("weight override %q: %w", name, ErrUnknownCheck)
		}
		checks[i].Weight = w
	}
	return NewRegistry(checks)
}

// WithChecks returns a new registry with extra checks appended.
func (r *Registry) WithChecks(extra ...domain.RiskCheck) (*Registry, error) {
	return NewRegistry(append(r.Checks(), extra...))
}

func cloneCheck(c *domain.RiskCheck) domain.RiskCheck {
	out := *c
	out.Inputs = append([]domain.MetricKey(nil), c.Inputs...)
	out.Bands.Bands = make([]domain.Band, len(c.Bands.Bands))
	for i, b := range c.Bands.Bands {
		if b.Lower != nil {
			b.Lower = limit(*b.Lower)
		}
		if b.Upper != nil {
			b.Upper = limit(*b.Upper)
		}
		out.Bands.Bands[i] = b
	}
	return out
}
