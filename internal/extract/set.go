package extract

import (
	"slices"
	"strings"

	"github.com/opensource-finance/kestrel/internal/domain"
)

type deriver func(r *domain.NormalizedReport) domain.MetricValue

func known[T int | float64](v T) domain.MetricValue {
	return domain.KnownValue(float64(v))
}

var (
	loansAll    = Filter{Type: TypeLoans, Status: StatusAll}
	loansActive = Filter{Type: TypeLoans, Status: StatusActive}
	cardsActive = Filter{Type: TypeCards, Status: StatusActive}
	allClosed   = Filter{Type: TypeAll, Status: StatusClosed}
)

func dpdInWindow(months int, f Filter) deriver {
	return func(r *domain.NormalizedReport) domain.MetricValue { return known(MaxDPDInWindow(r, months, f)) }
}

func overdueK(f Filter) deriver {
	return func(r *domain.NormalizedReport) domain.MetricValue { return known(inThousands(TotalOverdue(r, f))) }
}

var derivers = map[domain.MetricKey]deriver{
	domain.MetricBureauScore: func(r *domain.NormalizedReport) domain.MetricValue {
		return countMetric(r.BureauScore)
	},
	domain.MetricApplicantAge: func(r *domain.NormalizedReport) domain.MetricValue {
		return countMetric(r.Age)
	},
	domain.MetricIdentityCount: func(r *domain.NormalizedReport) domain.MetricValue {
		return known(len(r.IdentityIDs))
	},

	domain.MetricMaxDPD3mLoans:        dpdInWindow(3, loansAll),
	domain.MetricMaxDPD6mLoans:        dpdInWindow(6, loansAll),
	domain.MetricMaxDPD12mActiveLoans: dpdInWindow(12, loansActive),
	domain.MetricMaxDPD12mClosedAll:   dpdInWindow(12, allClosed),
	domain.MetricMaxDPD36mClosedAll:   dpdInWindow(36, allClosed),

	domain.MetricOverdueActiveLoansK: overdueK(loansActive),
	domain.MetricOverdueActiveCardsK: overdueK(cardsActive),
	domain.MetricOverdueClosedAllK:   overdueK(allClosed),

	domain.MetricDerogCount12m: func(r *domain.NormalizedReport) domain.MetricValue {
		return known(CountDerogatoryInWindow(r, 12))
	},
	domain.MetricDerogCount36m: func(r *domain.NormalizedReport) domain.MetricValue {
		return known(CountDerogatoryInWindow(r, 36))
	},

	domain.MetricEnquiries1m: func(r *domain.NormalizedReport) domain.MetricValue {
		return known(countOrZero(r.Enquiries.Past30Days))
	},
	domain.MetricEnquiries12m: func(r *domain.NormalizedReport) domain.MetricValue {
		return known(countOrZero(r.Enquiries.Past12Months))
	},
	domain.MetricLoansOpened12m: func(r *domain.NormalizedReport) domain.MetricValue {
		return known(CountLoansOpenedInWindow(r, 12))
	},
	domain.MetricEnquiryLoanRatio12m: func(r *domain.NormalizedReport) domain.MetricValue {
		return known(EnquiryLoanRatio(r))
	},

	domain.MetricCreditVintage: func(r *domain.NormalizedReport) domain.MetricValue {
		return known(CreditVintage(r))
	},
	domain.MetricUnsecuredVintage: func(r *domain.NormalizedReport) domain.MetricValue {
		return known(CategoryVintage(r, CategoryUnsecured))
	},
	domain.MetricSecuredVintage: func(r *domain.NormalizedReport) domain.MetricValue {
		return known(CategoryVintage(r, CategorySecured))
	},

	domain.MetricUnsecuredToSecured: func(r *domain.NormalizedReport) domain.MetricValue {
		return known(UnsecuredToSecuredRatio(r))
	},
	domain.MetricClosedAccountRatio: func(r *domain.NormalizedReport) domain.MetricValue {
		return ClosedAccountRatio(&r.Summary)
	},
	domain.MetricUtilizationRatio: func(r *domain.NormalizedReport) domain.MetricValue {
		return known(UtilizationRatio(&r.Summary))
	},
	domain.MetricOverdueBalanceRatio: func(r *domain.NormalizedReport) domain.MetricValue {
		return known(OverdueBalanceRatio(&r.Summary))
	},
	domain.MetricCleanUnsecured24m: func(r *domain.NormalizedReport) domain.MetricValue {
		return known(CountCleanUnsecured(r))
	},
	domain.MetricMaxUnsecuredK: func(r *domain.NormalizedReport) domain.MetricValue {
		return known(inThousands(MaxUnsecuredSanction(r)))
	},
	domain.MetricCreditLines: func(r *domain.NormalizedReport) domain.MetricValue {
		return known(CreditLines(r))
	},
}

// countMetric parses an integer field, unknown when unparsable ("N/A", "NTC", "").
func countMetric(s string) domain.MetricValue {
	n, ok := ParseCount(s)
	if !ok {
		return domain.UnknownValue
	}
	return known(n)
}

// Supported reports whether key has a registered deriver.
func Supported(key domain.MetricKey) bool {
	_, ok := derivers[key]
	return ok
}

// Keys returns every supported metric key in sorted order.
func Keys() []domain.MetricKey {
	keys := make([]domain.MetricKey, 0, len(derivers))
	for k := range derivers {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b domain.MetricKey) int {
		return strings.Compare(string(a), string(b))
	})
	return keys
}

// Set computes metrics for one report on demand, each at most once.
// A Set belongs to a single evaluation and is not safe for concurrent use.
type Set struct {
	report *domain.NormalizedReport
	values map[domain.MetricKey]domain.MetricValue
}

// NewSet creates a metric set over r.
func NewSet(r *domain.NormalizedReport) *Set {
	return &Set{
		report: r,
		values: make(map[domain.MetricKey]domain.MetricValue, len(derivers)),
	}
}

// Metric returns the value for key, deriving it on first use.
// Unsupported keys are unknown.
func (s *Set) Metric(key domain.MetricKey) domain.MetricValue {
	if v, ok := s.values[key]; ok {
		return v
	}
	derive, ok := derivers[key]
	if !ok {
		return domain.UnknownValue
	}
	v := derive(s.report)
	s.values[key] = v
	return v
}

// Report returns the report the set derives from.
func (s *Set) Report() *domain.NormalizedReport {
	return s.report
}
