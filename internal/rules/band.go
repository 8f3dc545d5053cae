package rules

import (
	"fmt"
	"math"

	"github.com/opensource-finance/kestrel/internal/domain"
)

// Match returns the score of the first band containing the metric value.
// Unknown metrics, NaN and values outside every band get the table's fallback.
func Match(v domain.MetricValue, table domain.BandTable) int {
	if !v.Known || math.IsNaN(v.Value) {
		return table.Fallback
	}
	for _, band := range table.Bands {
		if contains(band, v.Value) {
			return band.Score
		}
	}
	return table.Fallback
}

// contains reports whether x lies within the band. A nil limit is unbounded.
func contains(b domain.Band, x float64) bool {
	if b.Lower != nil {
		if b.LowerInclusive && x < *b.Lower {
			return false
		}
		if !b.LowerInclusive && x <= *b.Lower {
			return false
		}
	}
	if b.Upper != nil {
		if b.UpperInclusive && x > *b.Upper {
			return false
		}
		if !b.UpperInclusive && x >= *b.Upper {
			return false
		}
	}
	return true
}

// validateBand rejects bands that can never match.
func validateBand(b domain.Band) error {
	if b.Lower == nil || b.Upper == nil {
		return nil
	}
	lo, hi := *b.Lower, *b.Upper
	if lo > hi || (lo == hi && !(b.LowerInclusive && b.UpperInclusive)) {
		return fmt.Errorf("empty band [%v, %v] scoring %d", lo, hi, b.Score)
	}
	return nil
}

func limit(v float64) *float64 { return &v }

// Eq matches exactly v.
func Eq(v float64, score int) domain.Band {
	return domain.Band{Lower: limit(v), LowerInclusive: true, Upper: limit(v), UpperInclusive: true, Score: score}
}

// AtMost matches x <= v.
func AtMost(v float64, score int) domain.Band {
	return domain.Band{Upper: limit(v), UpperInclusive: true, Score: score}
}

// Below matches x < v.
func Below(v float64, score int) domain.Band {
	return domain.Band{Upper: limit(v), Score: score}
}

// AtLeast matches x >= v.
func AtLeast(v float64, score int) domain.Band {
	return domain.Band{Lower: limit(v), LowerInclusive: true, Score: score}
}

// Above matches x > v.
func Above(v float64, score int) domain.Band {
	return domain.Band{Lower: limit(v), Score: score}
}

// Between matches lo <= x <= hi.
func Between(lo, hi float64, score int) domain.Band {
	return domain.Band{Lower: limit(lo), LowerInclusive: true, Upper: limit(hi), UpperInclusive: true, Score: score}
}

// OpenClosed matches lo < x <= hi.
func OpenClosed(lo, hi float64, score int) domain.Band {
	return domain.Band{Lower: limit(lo), Upper: limit(hi), UpperInclusive: true, Score: score}
}

// Table builds a band table from a fallback score and ordered bands.
func Table(fallback int, bands ...domain.Band) domain.BandTable {
	return domain.BandTable{Bands: bands, Fallback: fallback}
}
