package rules

// Scores whose underwriting intent was recorded inconsistently when the
// policy was written down. Each is isolated here so it can be corrected
// without touching the tables that use it.
const (
	// OverdueActiveLoansTopScore applies to active-loan overdue above 3k.
	OverdueActiveLoansTopScore = 1

	// VintageThreeToFiveScore covers unsecured and secured vintage in [3, 5) years,
	// including the 4-5 gap.
	VintageThreeToFiveScore = 4

	// CreditVintageFourToFiveScore covers overall credit vintage in [4, 5) years.
	CreditVintageFourToFiveScore = 5

	// UnsecuredRatioTopScore applies to unsecured/secured exposure above 0.5.
	UnsecuredRatioTopScore = 1

	// ClosedRatioNoDataScore applies when the summary has no accounts or unreadable counts.
	ClosedRatioNoDataScore = 5

	// OverdueBalanceTopScore applies to overdue/balance above 0.25. The check is critical.
	OverdueBalanceTopScore = 0

	// BureauScoreLowRangeScore applies to bureau scores 0-300, which precede the <720 reject band.
	BureauScoreLowRangeScore = 2
)
