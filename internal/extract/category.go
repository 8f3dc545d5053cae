// Package extract derives scalar metrics from a normalized bureau report.
// Every function here is pure and tolerates malformed input: unparsable
// fields degrade to zero or "absent", never to an error.
package extract

import "strings"

// Category is the secured/unsecured classification of an account type.
type Category string

// Account categories
const (
	CategorySecured   Category = "Secured"
	CategoryUnsecured Category = "Unsecured"
	CategoryOther     Category = "Other"
)

// SecuredTypes are account-type labels classified as secured lending.
var SecuredTypes = []string{
	"Housing Loan", "Property Loan", "Auto Loan", "Gold Loan", "Two Wheeler Loan",
	"Tractor Loan", "Construction Equipment Loan", "Secured", "Loan Against Shares",
	"Home Loan", "Commercial Vehicle Loan",
}

// UnsecuredTypes are account-type labels classified as unsecured lending.
var UnsecuredTypes = []string{
	"Personal Loan", "Credit Card", "Consumer Loan", "Business Loan",
	"Education Loan", "Overdraft", "Kisan Credit Card", "Unsecured",
	"Professional Loan", "Credit Card Loan",
}

// Categorize classifies a raw account-type label. Exact matches win; otherwise
// a case-insensitive substring match is tried, secured labels first.
func Categorize(accountType string) Category {
	label := strings.TrimSpace(accountType)
	if label == "" {
		return CategoryOther
	}

	for _, s := range SecuredTypes {
		if label == s {
			return CategorySecured
		}
	}
	for _, u := range UnsecuredTypes {
		if label == u {
			return CategoryUnsecured
		}
	}

	lower := strings.ToLower(label)
	for _, s := range SecuredTypes {
		if strings.Contains(lower, strings.ToLower(s)) {
			return CategorySecured
		}
	}
	for _, u := range UnsecuredTypes {
		if strings.Contains(lower, strings.ToLower(u)) {
			return CategoryUnsecured
		}
	}

	return CategoryOther
}

// IsCreditCard reports whether the label denotes a card product.
// The match is case-sensitive, as bureau labels are.
func IsCreditCard(accountType string) bool {
	return strings.Contains(accountType, "Credit Card")
}
