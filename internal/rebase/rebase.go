// Package rebase derives a report as it stood at an earlier cutoff date, so
// the same scoring engine can re-evaluate the applicant as of that date.
package rebase

import (
	"slices"
	"time"

	"github.com/opensource-finance/kestrel/internal/domain"
	"github.com/opensource-finance/kestrel/internal/extract"
)

// Rebase builds a new report from r as of cutoff. Only the calendar date of
// cutoff is used.
//
//   - accounts opened strictly after the cutoff are dropped
//   - history entries dated after the cutoff's month are dropped; entries
//     with unparsable keys are kept
//   - the reference date becomes the cutoff date
//   - the aggregate summary is carried over as-is and still describes the
//     original report
//
// r is not modified and shares no mutable state with the result.
// Rebasing a rebased report with the same cutoff yields an equal report.
func Rebase(r *domain.NormalizedReport, cutoff time.Time) *domain.NormalizedReport {
	day := time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.UTC)
	lastMonth := extract.MonthStart(day)

	out := &domain.NormalizedReport{
		Name:          r.Name,
		BureauScore:   r.BureauScore,
		Age:           r.Age,
		IdentityIDs:   slices.Clone(r.IdentityIDs),
		ReportDate:    day.Format(time.DateOnly),
		ConsumerFound: r.ConsumerFound,
		Enquiries:     r.Enquiries,
		Summary:       r.Summary,
		QECDate:       r.QECDate,
	}

	for _, acc := range r.Accounts {
		if opened, ok := extract.ParseDate(acc.DateOpened); ok && opened.After(day) {
			continue
		}
		acc.History = truncateHistory(acc.History, lastMonth)
		out.Accounts = append(out.Accounts, acc)
	}

	return out
}

// truncateHistory copies the entries dated on or before lastMonth, plus any
// entry whose key cannot be dated.
func truncateHistory(history []domain.HistoryEntry, lastMonth time.Time) []domain.HistoryEntry {
	var kept []domain.HistoryEntry
	for _, h := range history {
		at, ok := extract.ParseMonthKey(h.Key)
		if ok && at.After(lastMonth) {
			continue
		}
		kept = append(kept, h)
	}
	return kept
}

// AsOfQEC rebases r to its own QEC date. It returns r unchanged and false
// when the report has no usable QEC date.
func AsOfQEC(r *domain.NormalizedReport) (*domain.NormalizedReport, bool) {
	cutoff, ok := extract.ParseCutoff(r.QECDate)
	if !ok {
		return r, false
	}
	return Rebase(r, cutoff), true
}
