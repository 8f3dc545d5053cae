package extract

import (
	"strconv"
	"strings"
)

// SevereDPD is the fixed severity assigned to SUB, DBT and LSS classifications.
const SevereDPD = 90

// zeroDPDCodes are status codes that mean "no delinquency" or "not reported".
var zeroDPDCodes = map[string]struct{}{
	"000": {}, "STD": {}, "NEW": {}, "CLSD": {}, "0": {}, "*": {}, "NAP": {},
}

// ParseDPD maps a bureau status code to a days-past-due severity.
// Unparsable codes map to 0.
func ParseDPD(code string) int {
	s := strings.ToUpper(strings.TrimSpace(code))
	if _, ok := zeroDPDCodes[s]; ok {
		return 0
	}
	if strings.Contains(s, "SUB") || strings.Contains(s, "DBT") || strings.Contains(s, "LSS") {
		return SevereDPD
	}

	n, err := strconv.Atoi(strings.ReplaceAll(s, "+", ""))
	if err != nil {
		return 0
	}
	return n
}

// derogatoryKeywords mark a status as derogatory when contained (case-insensitive).
var derogatoryKeywords = []string{
	"suit filed", "sma", "sub", "dbt", "lss", "wilful default",
	"settled", "written off", "wrt", "set",
}

// IsDerogatory reports whether a status string carries a derogatory marking.
func IsDerogatory(status string) bool {
	if status == "" {
		return false
	}
	lower := strings.ToLower(status)
	for _, kw := range derogatoryKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
