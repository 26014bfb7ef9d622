// Package transform normalizes geography and industry keys so that person
// records and reference tables join on identical strings.
package transform

import (
	"fmt"
	"strings"
)

// NormalizeFIPSState normalizes a state FIPS code to 2 digits with zero-padding.
func NormalizeFIPSState(code string) string {
	return padLeft(code, 2)
}

// NormalizeFIPSCounty normalizes a county FIPS code to 3 digits with zero-padding.
func NormalizeFIPSCounty(code string) string {
	return padLeft(code, 3)
}

// NormalizePUMA normalizes a public use microdata area code to 5 digits.
func NormalizePUMA(code string) string {
	return padLeft(code, 5)
}

// CombineFIPS combines state and county FIPS codes into a 5-digit code.
func CombineFIPS(state, county string) string {
	s := NormalizeFIPSState(state)
	c := NormalizeFIPSCounty(county)
	if s == "" || c == "" {
		return ""
	}
	return s + c
}

// CountyKey returns the 5-digit county FIPS for a county code that may be
// given either as the 3-digit county part or already combined with the state.
// Four-digit inputs are combined codes that lost their leading zero.
func CountyKey(state, county string) string {
	county = strings.TrimSpace(county)
	switch len(county) {
	case 0:
		return ""
	case 4:
		return "0" + county
	case 5:
		return county
	default:
		return CombineFIPS(state, county)
	}
}

// FormatFIPS formats a numeric FIPS code with proper zero-padding.
func FormatFIPS(code int, digits int) string {
	return fmt.Sprintf("%0*d", digits, code)
}

func padLeft(code string, width int) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	for len(code) < width {
		code = "0" + code
	}
	return code
}
