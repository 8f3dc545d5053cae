package extract

import (
	"strings"
	"time"

	"github.com/opensource-finance/kestrel/internal/domain"
)

// Severity labels, most severe first.
const (
	SeveritySuitFiled     = "Suit Filed"
	SeverityWilfulDefault = "Wilful Default"
	SeverityLoss          = "Loss"
	SeverityWrittenOff    = "Written Off"
	SeveritySettled       = "Settled"
	SeverityDoubtful      = "Doubtful"
	SeveritySubstandard   = "Substandard"
	SeveritySMA           = "SMA"
)

var severityRank = map[string]int{
	SeveritySuitFiled:     8,
	SeverityWilfulDefault: 7,
	SeverityLoss:          6,
	SeverityWrittenOff:    5,
	SeveritySettled:       4,
	SeverityDoubtful:      3,
	SeveritySubstandard:   2,
	SeveritySMA:           1,
}

// remarkPatterns are tried in order; the first hit labels the string.
var remarkPatterns = []struct {
	label    string
	keywords []string
}{
	{SeveritySuitFiled, []string{"suit"}},
	{SeverityWilfulDefault, []string{"wilful"}},
	{SeverityWrittenOff, []string{"write", "written"}},
	{SeveritySettled, []string{"settled"}},
	{SeverityLoss, []string{"loss"}},
	{SeverityDoubtful, []string{"doubtful"}},
	{SeveritySubstandard, []string{"substandard"}},
	{SeveritySMA, []string{"sma"}},
}

// ClassifyRemark maps a free-text status to a severity label, or "" if none applies.
func ClassifyRemark(status string) string {
	lower := strings.ToLower(status)
	if lower == "" {
		return ""
	}
	for _, p := range remarkPatterns {
		for _, kw := range p.keywords {
			if strings.Contains(lower, kw) {
				return p.label
			}
		}
	}
	return ""
}

// moreSevere returns whichever label ranks higher.
func moreSevere(a, b string) string {
	if severityRank[b] > severityRank[a] {
		return b
	}
	return a
}

// Profile summarises delinquency at a single institution.
type Profile struct {
	Institution string `json:"institution"`
	Accounts    int    `json:"accounts"`

	// MostSevere is the worst remark seen, or "" if none.
	MostSevere string `json:"mostSevere,omitempty"`

	MaxDPD int `json:"maxDpd"`

	// MaxDPDMonth is the latest MM-YY key at which MaxDPD occurred. Empty when MaxDPD is 0.
	MaxDPDMonth string `json:"maxDpdMonth,omitempty"`
}

// InstitutionProfile builds the delinquency profile for accounts held at
// institution. The name match is trimmed and case-insensitive.
func InstitutionProfile(r *domain.NormalizedReport, institution string) Profile {
	want := strings.TrimSpace(institution)
	p := Profile{Institution: want}

	var maxAt time.Time
	for i := range r.Accounts {
		acc := &r.Accounts[i]
		if !strings.EqualFold(strings.TrimSpace(acc.Institution), want) {
			continue
		}
		p.Accounts++

		for _, s := range []string{acc.AccountStatus, acc.SuitFiledStatus, acc.AssetClassificationStatus} {
			p.MostSevere = moreSevere(p.MostSevere, ClassifyRemark(s))
		}

		for _, h := range acc.History {
			for _, s := range []string{h.PaymentStatus, h.AssetClassificationStatus, h.SuitFiledStatus} {
				p.MostSevere = moreSevere(p.MostSevere, ClassifyRemark(s))
			}

			at, ok := ParseMonthKey(h.Key)
			if !ok {
				continue
			}
			dpd := ParseDPD(h.PaymentStatus)
			switch {
			case dpd > p.MaxDPD:
				p.MaxDPD, p.MaxDPDMonth, maxAt = dpd, h.Key, at
			case dpd == p.MaxDPD && dpd > 0 && at.After(maxAt):
				p.MaxDPDMonth, maxAt = h.Key, at
			}
		}
	}
	return p
}

// HasActiveCreditCard reports whether any open account is a credit card.
func HasActiveCreditCard(r *domain.NormalizedReport) bool {
	for i := range r.Accounts {
		acc := &r.Accounts[i]
		if acc.IsOpen() && IsCreditCard(acc.AccountType) {
			return true
		}
	}
	return false
}
