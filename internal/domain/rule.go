package domain

// MetricKey names a derived metric computed from a NormalizedReport.
type MetricKey string

// Metrics available to risk checks.
const (
	MetricBureauScore          MetricKey = "bureau_score"
	MetricApplicantAge         MetricKey = "applicant_age"
	MetricIdentityCount        MetricKey = "identity_count"
	MetricMaxDPD3mLoans        MetricKey = "max_dpd_3m_loans"
	MetricMaxDPD6mLoans        MetricKey = "max_dpd_6m_loans"
	MetricMaxDPD12mActiveLoans MetricKey = "max_dpd_12m_active_loans"
	MetricMaxDPD12mClosedAll   MetricKey = "max_dpd_12m_closed_all"
	MetricMaxDPD36mClosedAll   MetricKey = "max_dpd_36m_closed_all"
	MetricOverdueActiveLoansK  MetricKey = "overdue_active_loans_k"
	MetricOverdueActiveCardsK  MetricKey = "overdue_active_cards_k"
	MetricOverdueClosedAllK    MetricKey = "overdue_closed_all_k"
	MetricDerogCount12m        MetricKey = "derog_count_12m"
	MetricDerogCount36m        MetricKey = "derog_count_36m"
	MetricEnquiries1m          MetricKey = "enquiries_1m"
	MetricEnquiries12m         MetricKey = "enquiries_12m"
	MetricLoansOpened12m       MetricKey = "loans_opened_12m"
	MetricEnquiryLoanRatio12m  MetricKey = "enquiry_loan_ratio_12m"
	MetricCreditVintage        MetricKey = "credit_vintage_years"
	MetricUnsecuredVintage     MetricKey = "unsecured_vintage_years"
	MetricSecuredVintage       MetricKey = "secured_vintage_years"
	MetricUnsecuredToSecured   MetricKey = "unsecured_secured_ratio"
	MetricClosedAccountRatio   MetricKey = "closed_account_ratio"
	MetricUtilizationRatio     MetricKey = "utilization_ratio"
	MetricOverdueBalanceRatio  MetricKey = "overdue_balance_ratio"
	MetricCleanUnsecured24m    MetricKey = "clean_unsecured_24m"
	MetricMaxUnsecuredK        MetricKey = "max_unsecured_sanction_k"
	MetricCreditLines          MetricKey = "credit_lines"
)

// MetricValue is a derived metric. Known is false when the source field
// could not be interpreted (e.g. bureau score "N/A").
type MetricValue struct {
	Value float64 `json:"value"`
	Known bool    `json:"known"`
}

// KnownValue wraps v as a known metric.
func KnownValue(v float64) MetricValue {
	return MetricValue{Value: v, Known: true}
}

// UnknownValue is the metric for an unparsable or absent source field.
var UnknownValue = MetricValue{}

// Band maps a metric range to a score.
// A nil limit is unbounded on that side.
type Band struct {
	Lower          *float64 `json:"lower,omitempty" koanf:"lower"`
	LowerInclusive bool     `json:"lowerInclusive" koanf:"lower_inclusive"`
	Upper          *float64 `json:"upper,omitempty" koanf:"upper"`
	UpperInclusive bool     `json:"upperInclusive" koanf:"upper_inclusive"`
	Score          int      `json:"score" koanf:"score" validate:"gte=0,lte=5"`
}

// BandTable is an ordered band list. The first matching band wins;
// Fallback applies when none match or the metric is unknown.
type BandTable struct {
	Bands    []Band `json:"bands" koanf:"bands" validate:"dive"`
	Fallback int    `json:"fallback" koanf:"fallback" validate:"gte=0,lte=5"`
}

// RiskCheck defines one named check of the rule bank.
type RiskCheck struct {
	Name        string `json:"name" koanf:"name" validate:"required"`
	Description string `json:"description,omitempty" koanf:"description"`

	// Metric is the derived metric banded by this check.
	Metric MetricKey `json:"metric,omitempty" koanf:"metric" validate:"required_without=Expression"`

	// Expression is an optional CEL expression over Inputs whose result
	// is banded instead of Metric.
	Expression string      `json:"expression,omitempty" koanf:"expression"`
	Inputs     []MetricKey `json:"inputs,omitempty" koanf:"inputs" validate:"required_with=Expression"`

	Bands    BandTable `json:"bands" koanf:"bands"`
	Weight   float64   `json:"weight" koanf:"weight" validate:"gt=0"`
	Critical bool      `json:"critical" koanf:"critical"`
}
