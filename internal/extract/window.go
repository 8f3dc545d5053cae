package extract

import (
	"time"

	"github.com/opensource-finance/kestrel/internal/domain"
	"github.com/shopspring/decimal"
)

// TypeFilter restricts which account types an aggregation covers.
type TypeFilter string

// Type filters
const (
	TypeLoans TypeFilter = "LOANS" // excludes credit cards
	TypeCards TypeFilter = "CARDS"
	TypeAll   TypeFilter = "ALL"
)

// StatusFilter restricts aggregations by the account's open flag.
type StatusFilter string

// Status filters
const (
	StatusActive StatusFilter = "Active"
	StatusClosed StatusFilter = "Closed"
	StatusAll    StatusFilter = "ALL"
)

// Filter couples a type and status filter.
type Filter struct {
	Type   TypeFilter
	Status StatusFilter
}

// Matches reports whether the account passes both filters.
func (f Filter) Matches(a *domain.TradeAccount) bool {
	card := IsCreditCard(a.AccountType)
	switch f.Type {
	case TypeLoans:
		if card {
			return false
		}
	case TypeCards:
		if !card {
			return false
		}
	}

	switch f.Status {
	case StatusActive:
		return a.IsOpen()
	case StatusClosed:
		return !a.IsOpen()
	}
	return true
}

// ReferenceDate parses the report's anchor date.
func ReferenceDate(r *domain.NormalizedReport) (time.Time, bool) {
	return ParseDate(r.ReportDate)
}

// MaxDPDInWindow returns the worst DPD severity over payment and asset
// classification codes, for history entries dated within the last months*30
// days of the reference date. Zero when the report has no reference date.
func MaxDPDInWindow(r *domain.NormalizedReport, months int, f Filter) int {
	ref, ok := ReferenceDate(r)
	if !ok {
		return 0
	}
	start := windowStart(ref, months)

	maxDPD := 0
	for i := range r.Accounts {
		acc := &r.Accounts[i]
		if !f.Matches(acc) {
			continue
		}
		for _, h := range acc.History {
			at, ok := ParseMonthKey(h.Key)
			if !ok || !inWindow(at, start, ref) {
				continue
			}
			maxDPD = max(maxDPD, ParseDPD(h.PaymentStatus), ParseDPD(h.AssetClassificationStatus))
		}
	}
	return maxDPD
}

// TotalOverdue sums current past-due amounts of matching accounts.
func TotalOverdue(r *domain.NormalizedReport, f Filter) decimal.Decimal {
	total := decimal.Zero
	for i := range r.Accounts {
		acc := &r.Accounts[i]
		if f.Matches(acc) {
			total = total.Add(ParseAmount(acc.PastDueAmount))
		}
	}
	return total
}

// CountDerogatoryInWindow counts accounts with at least one derogatory
// payment, asset or suit-filed code inside the window.
func CountDerogatoryInWindow(r *domain.NormalizedReport, months int) int {
	ref, ok := ReferenceDate(r)
	if !ok {
		return 0
	}
	start := windowStart(ref, months)

	count := 0
	for i := range r.Accounts {
		for _, h := range r.Accounts[i].History {
			at, ok := ParseMonthKey(h.Key)
			if !ok || !inWindow(at, start, ref) {
				continue
			}
			if IsDerogatory(h.PaymentStatus) || IsDerogatory(h.AssetClassificationStatus) || IsDerogatory(h.SuitFiledStatus) {
				count++
				break
			}
		}
	}
	return count
}

// CountLoansOpenedInWindow counts non-card accounts opened within the window.
func CountLoansOpenedInWindow(r *domain.NormalizedReport, months int) int {
	ref, ok := ReferenceDate(r)
	if !ok {
		return 0
	}
	start := windowStart(ref, months)

	count := 0
	for i := range r.Accounts {
		acc := &r.Accounts[i]
		if IsCreditCard(acc.AccountType) {
			continue
		}
		opened, ok := ParseDate(acc.DateOpened)
		if ok && inWindow(opened, start, ref) {
			count++
		}
	}
	return count
}
