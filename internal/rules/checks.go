package rules

import "github.com/opensource-finance/kestrel/internal/domain"

// Default check names.
const (
	CheckBureauScore         = "Bureau Score"
	CheckAge                 = "Age Check"
	CheckPANCount            = "PAN Count"
	CheckDPD3mLoans          = "DPD 3m Loans"
	CheckDPD6mLoans          = "DPD 6m Loans"
	CheckDPD12mActiveLoans   = "DPD 12m Active Loans"
	CheckDPD12mClosed        = "DPD 12m Closed Loans/Cards"
	CheckDPD36mClosed        = "DPD 36m Closed Loans/Cards"
	CheckOverdueActiveLoans  = "Overdue Active Loans"
	CheckOverdueActiveCards  = "Overdue Active Cards"
	CheckOverdueClosedAll    = "Overdue Closed All"
	CheckDerog12m            = "Derog 12m"
	CheckDerog36m            = "Derog 36m"
	CheckEnquiry1m           = "Enquiry 1m"
	CheckEnquiry12m          = "Enquiry 12m"
	CheckEnquiryRatio12m     = "Enquiry Ratio 12m"
	CheckCreditVintage       = "Credit Vintage"
	CheckLTDRatio            = "LTD Ratio"
	CheckUnsecuredVintage    = "Unsecured Vintage"
	CheckSecuredVintage      = "Secured Vintage"
	CheckClosedLoanRatio     = "Closed Loan Ratio"
	CheckUtilizationRatio    = "Utilization Ratio"
	CheckOverdueBalanceRatio = "Overdue Balance Ratio"
	CheckUnsecClean24m       = "Unsec Clean 24m"
	CheckMaxUSLAmount        = "Max USL Amount"
	CheckCreditLinesCount    = "Credit Lines Count"
)

func creditVintageBands() domain.BandTable {
	return Table(1,
		AtLeast(5, 5),
		AtLeast(4, CreditVintageFourToFiveScore),
		AtLeast(3, 4),
		AtLeast(2, 3),
		AtLeast(1, 2),
	)
}

func vintageBands() domain.BandTable {
	return Table(1,
		AtLeast(5, 5),
		AtLeast(3, VintageThreeToFiveScore),
		AtLeast(2, 3),
		AtLeast(1, 2),
	)
}

// DefaultChecks returns the standard underwriting rule bank in evaluation order.
// Overdue and sanction metrics are in thousands.
func DefaultChecks() []domain.RiskCheck {
	return []domain.RiskCheck{
		{
			Name:   CheckBureauScore,
			Metric: domain.MetricBureauScore,
			Bands: Table(0,
				Above(810, 5),
				Between(776, 810, 4),
				Between(751, 775, 3),
				Between(720, 750, 1),
				Between(0, 300, BureauScoreLowRangeScore),
			),
			Weight:   0.12,
			Critical: true,
		},
		{
			Name:   CheckAge,
			Metric: domain.MetricApplicantAge,
			Bands: Table(0,
				Between(21, 24, 1),
				Between(25, 30, 2),
				Between(41, 60, 3),
				Between(31, 35, 4),
				Between(36, 40, 5),
			),
			Weight:   0.03,
			Critical: true,
		},
		{
			Name:        CheckPANCount,
			Description: "more than one PAN on file",
			Metric:      domain.MetricIdentityCount,
			Bands:       Table(5, Above(1, 0)),
			Weight:      0.02,
			Critical:    true,
		},
		{
			Name:     CheckDPD3mLoans,
			Metric:   domain.MetricMaxDPD3mLoans,
			Bands:    Table(0, Eq(0, 4)),
			Weight:   0.05,
			Critical: true,
		},
		{
			Name:     CheckDPD6mLoans,
			Metric:   domain.MetricMaxDPD6mLoans,
			Bands:    Table(0, Eq(0, 4)),
			Weight:   0.03,
			Critical: true,
		},
		{
			Name:   CheckDPD12mActiveLoans,
			Metric: domain.MetricMaxDPD12mActiveLoans,
			Bands: Table(1,
				Eq(0, 5),
				Below(30, 3),
				Below(60, 2),
			),
			Weight: 0.03,
		},
		{
			Name:   CheckDPD12mClosed,
			Metric: domain.MetricMaxDPD12mClosedAll,
			Bands: Table(1,
				Eq(0, 5),
				OpenClosed(0, 30, 4),
				OpenClosed(30, 60, 3),
				OpenClosed(60, 90, 2),
			),
			Weight: 0.03,
		},
		{
			Name:   CheckDPD36mClosed,
			Metric: domain.MetricMaxDPD36mClosedAll,
			Bands: Table(1,
				Eq(0, 5),
				Below(30, 4),
				Below(60, 3),
				Below(90, 2),
			),
			Weight: 0.02,
		},
		{
			Name:   CheckOverdueActiveLoans,
			Metric: domain.MetricOverdueActiveLoansK,
			Bands: Table(OverdueActiveLoansTopScore,
				Eq(0, 5),
				OpenClosed(0, 1, 4),
				OpenClosed(1, 2, 3),
				OpenClosed(2, 3, 2),
			),
			Weight: 0.05,
		},
		{
			Name:   CheckOverdueActiveCards,
			Metric: domain.MetricOverdueActiveCardsK,
			Bands: Table(1,
				Eq(0, 5),
				AtMost(3, 4),
				AtMost(5, 3),
				AtMost(7.5, 2),
			),
			Weight: 0.05,
		},
		{
			Name:   CheckOverdueClosedAll,
			Metric: domain.MetricOverdueClosedAllK,
			Bands: Table(1,
				Eq(0, 5),
				AtMost(7.5, 4),
				AtMost(10, 3),
				AtMost(15, 2),
			),
			Weight: 0.02,
		},
		{
			Name:     CheckDerog12m,
			Metric:   domain.MetricDerogCount12m,
			Bands:    Table(0, Eq(0, 5), Eq(1, 1)),
			Weight:   0.06,
			Critical: true,
		},
		{
			Name:   CheckDerog36m,
			Metric: domain.MetricDerogCount36m,
			Bands:  Table(1, Eq(0, 5), Eq(1, 3), Eq(2, 2)),
			Weight: 0.02,
		},
		{
			Name:   CheckEnquiry1m,
			Metric: domain.MetricEnquiries1m,
			Bands: Table(0,
				Eq(0, 5),
				Between(1, 3, 3),
				Between(4, 5, 1),
			),
			Weight:   0.04,
			Critical: true,
		},
		{
			Name:   CheckEnquiry12m,
			Metric: domain.MetricEnquiries12m,
			Bands: Table(1,
				AtMost(2, 5),
				AtMost(4, 4),
				AtMost(6, 3),
				AtMost(9, 2),
			),
			Weight: 0.02,
		},
		{
			Name:   CheckEnquiryRatio12m,
			Metric: domain.MetricEnquiryLoanRatio12m,
			Bands: Table(1,
				AtMost(1, 5),
				AtMost(2, 4),
				AtMost(3, 3),
				AtMost(5, 2),
			),
			Weight: 0.02,
		},
		{
			Name:   CheckCreditVintage,
			Metric: domain.MetricCreditVintage,
			Bands:  creditVintageBands(),
			Weight: 0.06,
		},
		{
			Name:        CheckLTDRatio,
			Description: "unsecured to secured sanctioned exposure",
			Metric:      domain.MetricUnsecuredToSecured,
			Bands: Table(UnsecuredRatioTopScore,
				AtMost(0.2, 5),
				AtMost(0.3, 4),
				AtMost(0.4, 3),
				AtMost(0.5, 2),
			),
			Weight: 0.03,
		},
		{
			Name:   CheckUnsecuredVintage,
			Metric: domain.MetricUnsecuredVintage,
			Bands:  vintageBands(),
			Weight: 0.05,
		},
		{
			Name:   CheckSecuredVintage,
			Metric: domain.MetricSecuredVintage,
			Bands:  vintageBands(),
			Weight: 0.02,
		},
		{
			Name:   CheckClosedLoanRatio,
			Metric: domain.MetricClosedAccountRatio,
			Bands: Table(ClosedRatioNoDataScore,
				Above(0.5, 5),
				Above(0.4, 4),
				Above(0.25, 3),
				Above(0, 2),
				AtMost(0, 1),
			),
			Weight: 0.02,
		},
		{
			Name:   CheckUtilizationRatio,
			Metric: domain.MetricUtilizationRatio,
			Bands: Table(1,
				AtMost(0.25, 5),
				AtMost(0.35, 4),
				AtMost(0.45, 3),
				AtMost(0.6, 2),
			),
			Weight: 0.02,
		},
		{
			Name:   CheckOverdueBalanceRatio,
			Metric: domain.MetricOverdueBalanceRatio,
			Bands: Table(OverdueBalanceTopScore,
				Eq(0, 5),
				AtMost(0.1, 4),
				AtMost(0.15, 3),
				AtMost(0.2, 2),
				AtMost(0.25, 1),
			),
			Weight:   0.03,
			Critical: true,
		},
		{
			Name:        CheckUnsecClean24m,
			Description: "unsecured accounts opened in the last 24 months with no delinquency",
			Metric:      domain.MetricCleanUnsecured24m,
			Bands: Table(1,
				AtLeast(7, 5),
				AtLeast(5, 4),
				AtLeast(3, 3),
				AtLeast(1, 2),
			),
			Weight: 0.04,
		},
		{
			Name:   CheckMaxUSLAmount,
			Metric: domain.MetricMaxUnsecuredK,
			Bands: Table(1,
				Above(1000, 5),
				Above(500, 4),
				Above(250, 3),
				AtLeast(100, 2),
			),
			Weight: 0.08,
		},
		{
			Name:   CheckCreditLinesCount,
			Metric: domain.MetricCreditLines,
			Bands: Table(1,
				Above(10, 5),
				AtLeast(6, 4),
				AtLeast(4, 3),
				AtLeast(2, 2),
			),
			Weight: 0.02,
		},
	}
}
