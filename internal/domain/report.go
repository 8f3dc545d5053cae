// Package domain defines the report, rule and result types shared by Kestrel's packages.
package domain

import "strings"

// NormalizedReport is a consumer credit-bureau report in the shape the engine consumes.
// All bureau fields stay raw strings; extractors parse them defensively.
// A report is input-only: nothing in the engine mutates it.
type NormalizedReport struct {
	// Applicant identity
	Name        string   `json:"name"`
	BureauScore string   `json:"score"`
	Age         string   `json:"age"`
	IdentityIDs []string `json:"panList,omitempty"`

	// ReportDate anchors every windowed metric (YYYY-MM-DD or DD-MM-YYYY).
	ReportDate string `json:"reportDate"`

	// ConsumerFound is false for a No Trace Case.
	ConsumerFound bool `json:"consumerFound"`

	Accounts  []TradeAccount `json:"accounts"`
	Enquiries EnquirySummary `json:"enquirySummary"`
	Summary   AccountSummary `json:"summary"`

	// QECDate is an optional point-in-time cutoff (ISO timestamp or date).
	QECDate string `json:"qecDate,omitempty"`
}

// TradeAccount is a single credit facility reported to the bureau.
type TradeAccount struct {
	AccountType    string `json:"accountType"`
	Open           string `json:"open"` // "Yes" = active
	DateOpened     string `json:"dateOpened"`
	Institution    string `json:"institution"`
	PastDueAmount  string `json:"pastDueAmount"`
	SanctionAmount string `json:"sanctionAmount"`

	// Account-level status fields (optional)
	AccountStatus             string `json:"accountStatus,omitempty"`
	SuitFiledStatus           string `json:"suitFiledStatus,omitempty"`
	AssetClassificationStatus string `json:"assetClassificationStatus,omitempty"`

	// History is chronological, keyed by MM-YY, at most 48 entries.
	History []HistoryEntry `json:"history48Months"`
}

// HistoryEntry is one monthly payment record of a trade account.
type HistoryEntry struct {
	Key                       string `json:"key"` // MM-YY
	PaymentStatus             string `json:"paymentStatus"`
	AssetClassificationStatus string `json:"assetClassificationStatus"`
	SuitFiledStatus           string `json:"suitFiledStatus"`
}

// EnquirySummary holds enquiry counts over rolling windows.
type EnquirySummary struct {
	Total        string `json:"total"`
	Past30Days   string `json:"past30Days"`
	Past12Months string `json:"past12Months"`
	Past24Months string `json:"past24Months"`
}

// AccountSummary is the bureau's aggregate view across all accounts.
// It is never recomputed from Accounts, including after rebasing.
type AccountSummary struct {
	NoOfAccounts            string `json:"noOfAccounts"`
	NoOfZeroBalanceAccounts string `json:"noOfZeroBalanceAccounts"`
	TotalBalanceAmount      string `json:"totalBalanceAmount"`
	TotalSanctionAmount     string `json:"totalSanctionAmount"`
	TotalPastDue            string `json:"totalPastDue"`
}

// IsOpen reports whether the bureau flags the account as active.
func (a *TradeAccount) IsOpen() bool {
	return strings.EqualFold(a.Open, "yes")
}
