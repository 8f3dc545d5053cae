package extract

import (
	"github.com/opensource-finance/kestrel/internal/domain"
	"github.com/shopspring/decimal"
)

// Ratio sentinels used when a denominator is zero.
const (
	RatioMaxRisk    = 999.0 // numerator > 0 over a zero denominator
	RatioNoExposure = 0.0   // zero over zero
)

// CleanUnsecuredWindowDays bounds "recently opened" for CountCleanUnsecured.
const CleanUnsecuredWindowDays = 730

// SanctionByCategory sums sanction amounts per category.
func SanctionByCategory(r *domain.NormalizedReport) map[Category]decimal.Decimal {
	sums := map[Category]decimal.Decimal{
		CategorySecured:   decimal.Zero,
		CategoryUnsecured: decimal.Zero,
		CategoryOther:     decimal.Zero,
	}
	for i := range r.Accounts {
		acc := &r.Accounts[i]
		c := Categorize(acc.AccountType)
		sums[c] = sums[c].Add(ParseAmount(acc.SanctionAmount))
	}
	return sums
}

// UnsecuredToSecuredRatio is total unsecured over total secured sanction.
func UnsecuredToSecuredRatio(r *domain.NormalizedReport) float64 {
	sums := SanctionByCategory(r)
	return SafeRatio(sums[CategoryUnsecured], sums[CategorySecured])
}

// SafeRatio divides num by den, returning RatioMaxRisk or RatioNoExposure
// when den is zero.
func SafeRatio(num, den decimal.Decimal) float64 {
	if den.IsZero() {
		if num.IsPositive() {
			return RatioMaxRisk
		}
		return RatioNoExposure
	}
	return num.Div(den).InexactFloat64()
}

// CountCleanUnsecured counts unsecured accounts opened in the last two years
// whose payment history never shows a delinquency.
func CountCleanUnsecured(r *domain.NormalizedReport) int {
	ref, ok := ReferenceDate(r)
	if !ok {
		return 0
	}
	start := ref.AddDate(0, 0, -CleanUnsecuredWindowDays)

	count := 0
	for i := range r.Accounts {
		acc := &r.Accounts[i]
		if Categorize(acc.AccountType) != CategoryUnsecured {
			continue
		}
		opened, ok := ParseDate(acc.DateOpened)
		if !ok || !inWindow(opened, start, ref) {
			continue
		}
		if MaxPaymentDPD(acc) == 0 {
			count++
		}
	}
	return count
}

// MaxPaymentDPD is the worst payment-status severity over the full history,
// including entries with unparsable keys.
func MaxPaymentDPD(a *domain.TradeAccount) int {
	worst := 0
	for _, h := range a.History {
		worst = max(worst, ParseDPD(h.PaymentStatus))
	}
	return worst
}

// MaxUnsecuredSanction returns the largest unsecured sanction amount, never negative.
func MaxUnsecuredSanction(r *domain.NormalizedReport) decimal.Decimal {
	best := decimal.Zero
	for i := range r.Accounts {
		acc := &r.Accounts[i]
		if Categorize(acc.AccountType) != CategoryUnsecured {
			continue
		}
		best = decimal.Max(best, ParseAmount(acc.SanctionAmount))
	}
	return best
}
