package domain

import (
	"github.com/shopspring/decimal"
)

// Decision is the final underwriting verdict.
type Decision string

// Decision values
const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// Evaluation status
const (
	StatusPass = "PASS"
	StatusFail = "FAIL" // a critical check scored 0
)

// ScoreResult is the outcome of evaluating one report.
// It carries no identity beyond the (report, evaluation) pairing.
type ScoreResult struct {
	Checks []CheckScore `json:"checks"`

	Status          string `json:"status"`
	CriticalFailure bool   `json:"criticalFailure"`
	NoTrace         bool   `json:"noTrace"`

	// Composite is the unrounded weighted score.
	Composite float64 `json:"composite"`

	// Score is the final score: Composite rounded to 2 dp, or 0.0 on critical failure.
	Score float64 `json:"score"`

	Decision       Decision        `json:"decision"`
	SanctionAmount decimal.Decimal `json:"sanctionAmount"`

	// ReferenceDate is the anchor date the windowed metrics used.
	ReferenceDate string `json:"referenceDate"`
}

// CheckScore is the per-check slice of a ScoreResult.
type CheckScore struct {
	Name       string      `json:"name"`
	Applicable bool        `json:"applicable"`
	Score      int         `json:"score"`
	Metric     MetricValue `json:"metric"`
	Critical   bool        `json:"critical"`

	// Weight is normalised by the registry's total weight.
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"` // Score * Weight
}

// NotApplicable marks a check bypassed by the no-trace path.
const NotApplicable = "N/A"

// Lookup returns the check result for name.
func (r *ScoreResult) Lookup(name string) (CheckScore, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return CheckScore{}, false
}

// Scores returns the per-check score map keyed by check name.
// Bypassed checks map to NotApplicable, scored checks to their int score.
func (r *ScoreResult) Scores() map[string]any {
	out := make(map[string]any, len(r.Checks))
	for _, c := range r.Checks {
		if !c.Applicable {
			out[c.Name] = NotApplicable
			continue
		}
		out[c.Name] = c.Score
	}
	return out
}

// Approved reports whether the decision is APPROVE.
func (r *ScoreResult) Approved() bool {
	return r.Decision == DecisionApprove
}
