package extract

import (
	"time"

	"github.com/opensource-finance/kestrel/internal/domain"
)

// CreditVintage is the age in years of the oldest account with a parsable
// opening date. Zero without a reference date or any such account.
func CreditVintage(r *domain.NormalizedReport) float64 {
	return vintage(r, func(*domain.TradeAccount) bool { return true })
}

// CategoryVintage is CreditVintage restricted to one category.
func CategoryVintage(r *domain.NormalizedReport, c Category) float64 {
	return vintage(r, func(a *domain.TradeAccount) bool { return Categorize(a.AccountType) == c })
}

func vintage(r *domain.NormalizedReport, keep func(*domain.TradeAccount) bool) float64 {
	ref, ok := ReferenceDate(r)
	if !ok {
		return 0
	}

	var oldest time.Time
	found := false
	for i := range r.Accounts {
		acc := &r.Accounts[i]
		if !keep(acc) {
			continue
		}
		opened, ok := ParseDate(acc.DateOpened)
		if !ok {
			continue
		}
		if !found || opened.Before(oldest) {
			oldest = opened
			found = true
		}
	}
	if !found {
		return 0
	}
	return yearsBetween(oldest, ref)
}
