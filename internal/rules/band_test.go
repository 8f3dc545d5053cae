package rules

import (
	"math"
	"testing"

	"github.com/opensource-finance/kestrel/internal/domain"
)

func TestMatch(t *testing.T) {
	table := Table(9,
		Eq(0, 5),
		OpenClosed(0, 1, 4),
		Below(3, 3),
		Between(10, 20, 2),
		Above(20, 1),
	)

	tests := []struct {
		name  string
		value domain.MetricValue
		want  int
	}{
		{"Unknown", domain.UnknownValue, 9},
		{"Exact", domain.KnownValue(0), 5},
		{"UpperInclusive", domain.KnownValue(1), 4},
		{"LowerExclusive", domain.KnownValue(0.5), 4},
		{"UpperExclusive", domain.KnownValue(3), 9},
		{"BelowIncludesNegatives", domain.KnownValue(-4), 3},
		{"BetweenLower", domain.KnownValue(10), 2},
		{"BetweenUpper", domain.KnownValue(20), 2},
		{"Above", domain.KnownValue(20.01), 1},
		{"Gap", domain.KnownValue(5), 9},
		{"NaN", domain.KnownValue(math.NaN()), 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.value, table); got != tt.want {
				t.Errorf("Match(%+v) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestMatchFirstBandWins(t *testing.T) {
	table := Table(0, AtMost(10, 3), AtMost(5, 4))
	if got := Match(domain.KnownValue(2), table); got != 3 {
		t.Errorf("expected first band to win, got %d", got)
	}
}

func TestMatchFallbackOnly(t *testing.T) {
	if got := Match(domain.KnownValue(42), Table(3)); got != 3 {
		t.Errorf("expected fallback 3, got %d", got)
	}
}

func TestValidateBand(t *testing.T) {
	if err := validateBand(Eq(1, 5)); err != nil {
		t.Errorf("point band should be valid: %v", err)
	}
	if err := validateBand(OpenClosed(1, 1, 5)); err == nil {
		t.Error("expected error for empty half-open band")
	}
	if err := validateBand(Between(5, 1, 2)); err == nil {
		t.Error("expected error for inverted band")
	}
	if err := validateBand(AtMost(3, 1)); err != nil {
		t.Errorf("unbounded band should be valid: %v", err)
	}
}
