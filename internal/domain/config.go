package domain

// Config holds the complete Kestrel configuration.
type Config struct {
	Policy PolicyConfig `json:"policy" koanf:"policy"`
	Worker WorkerConfig `json:"worker" koanf:"worker"`

	// Observability
	Logging LoggingConfig `json:"logging" koanf:"logging"`
	Tracing TracingConfig `json:"tracing" koanf:"tracing"`
}

// PolicyConfig holds the human-authored underwriting policy.
// Nothing here is learned; every value is static for the process lifetime.
type PolicyConfig struct {
	// ApproveThreshold is the rounded composite at or below which a report is rejected.
	ApproveThreshold float64 `json:"approveThreshold" koanf:"approve_threshold" validate:"gt=0,lte=5"`

	// NoTraceCheck is the only check scored for a consumer-not-found report.
	NoTraceCheck string `json:"noTraceCheck" koanf:"no_trace_check" validate:"required"`

	// NoTraceScore is the score that check receives on the no-trace path.
	NoTraceScore int `json:"noTraceScore" koanf:"no_trace_score" validate:"gte=0,lte=5"`

	// Weights overrides default check weights by check name.
	Weights map[string]float64 `json:"weights,omitempty" koanf:"weights" validate:"dive,gt=0"`

	// Tiers is the sanction ladder, highest band first.
	Tiers []SanctionTier `json:"tiers" koanf:"tiers" validate:"dive"`

	// ExtraChecks are appended to the default rule bank.
	ExtraChecks []RiskCheck `json:"extraChecks,omitempty" koanf:"extra_checks" validate:"dive"`
}

// SanctionTier grants Amount when the final score, as a percentage of
// the maximum score, is strictly above AbovePercent.
type SanctionTier struct {
	AbovePercent float64 `json:"abovePercent" koanf:"above_percent" validate:"gte=0,lte=100"`
	Amount       int64   `json:"amount" koanf:"amount" validate:"gte=0"`
}

// WorkerConfig holds batch evaluation settings.
type WorkerConfig struct {
	Concurrency int `json:"concurrency" koanf:"concurrency" validate:"gte=1"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `json:"level" koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `json:"format" koanf:"format" validate:"omitempty,oneof=json text"`
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	Enabled     bool   `json:"enabled" koanf:"enabled"`
	ServiceName string `json:"serviceName" koanf:"service_name"`
}

// Policy defaults
const (
	DefaultApproveThreshold = 3.25 // 65% of the 0-5 scale
	DefaultNoTraceCheck     = "Bureau Score"
	DefaultNoTraceScore     = 2
	MaxScore                = 5
)

// DefaultTiers returns the default sanction ladder.
func DefaultTiers() []SanctionTier {
	return []SanctionTier{
		{AbovePercent: 90, Amount: 300000},
		{AbovePercent: 85, Amount: 275000},
		{AbovePercent: 80, Amount: 225000},
		{AbovePercent: 75, Amount: 175000},
		{AbovePercent: 70, Amount: 125000},
		{AbovePercent: 65, Amount: 75000},
	}
}

// DefaultConfig returns the built-in underwriting configuration.
func DefaultConfig() *Config {
	return &Config{
		Policy: PolicyConfig{
			ApproveThreshold: DefaultApproveThreshold,
			NoTraceCheck:     DefaultNoTraceCheck,
			NoTraceScore:     DefaultNoTraceScore,
			Tiers:            DefaultTiers(),
		},
		Worker: WorkerConfig{
			Concurrency: 8,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Tracing: TracingConfig{
			Enabled:     false,
			ServiceName: "kestrel",
		},
	}
}
