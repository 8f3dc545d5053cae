package extract

import (
	"strings"

	"github.com/opensource-finance/kestrel/internal/domain"
	"github.com/shopspring/decimal"
)

// parseAmountPair parses two summary amounts together. If either is
// unparsable, both degrade to zero.
func parseAmountPair(a, b string) (decimal.Decimal, decimal.Decimal) {
	x, errA := decimal.NewFromString(strings.TrimSpace(a))
	y, errB := decimal.NewFromString(strings.TrimSpace(b))
	if errA != nil || errB != nil {
		return decimal.Zero, decimal.Zero
	}
	return x, y
}

// ClosedAccountRatio is zero-balance accounts over total accounts from the
// summary. Unknown when the total is zero or either count is unparsable.
func ClosedAccountRatio(s *domain.AccountSummary) domain.MetricValue {
	total, okT := ParseCount(s.NoOfAccounts)
	zero, okZ := ParseCount(s.NoOfZeroBalanceAccounts)
	if !okT || !okZ || total == 0 {
		return domain.UnknownValue
	}
	return domain.KnownValue(float64(zero) / float64(total))
}

// UtilizationRatio is total balance over total sanction from the summary.
func UtilizationRatio(s *domain.AccountSummary) float64 {
	balance, sanction := parseAmountPair(s.TotalBalanceAmount, s.TotalSanctionAmount)
	return SafeRatio(balance, sanction)
}

// OverdueBalanceRatio is total past-due over total balance from the summary.
func OverdueBalanceRatio(s *domain.AccountSummary) float64 {
	pastDue, balance := parseAmountPair(s.TotalPastDue, s.TotalBalanceAmount)
	return SafeRatio(pastDue, balance)
}

// CreditLines is the reported account count, or the number of accounts
// present when the summary count is unparsable.
func CreditLines(r *domain.NormalizedReport) int {
	if n, ok := ParseCount(r.Summary.NoOfAccounts); ok {
		return n
	}
	return len(r.Accounts)
}

// EnquiryLoanRatio is enquiries in the last 12 months over loans opened in
// the same window. 0/0 is 0 and n/0 is RatioMaxRisk.
func EnquiryLoanRatio(r *domain.NormalizedReport) float64 {
	enquiries := countOrZero(r.Enquiries.Past12Months)
	loans := CountLoansOpenedInWindow(r, 12)
	if loans == 0 {
		if enquiries == 0 {
			return RatioNoExposure
		}
		return RatioMaxRisk
	}
	return float64(enquiries) / float64(loans)
}
