package reconcile

import (
	"strings"
	"unicode"
)

// uicCountry maps the two-digit UIC country prefix to an ISO country code.
var uicCountry = map[string]string{
	"87": "FR", "86": "FR",
	"88": "BE",
	"80": "DE", "81": "DE",
	"82": "AT",
	"83": "IT",
	"84": "ES", "71": "ES",
	"85": "PT",
	"70": "GB",
	"74": "CH",
	"79": "NL", "78": "NL",
	"55": "PL",
	"54": "CZ",
	"53": "SK",
}

// spanishOperators are forced to ES regardless of the UIC prefix their feed
// identifiers carry.
var spanishOperators = map[string]bool{
	"RENFE":    true,
	"OUIGO_ES": true,
}

// UICCode extracts the 8-digit UIC code from a stop identifier, or "" when
// the identifier carries none. SNCF identifiers end in "-87391003"; TI
// identifiers embed the code after a letter prefix ("TI:S01700" carries
// none).
func UICCode(stopID string) string {
	run := ""
	best := ""
	for _, r := range stopID {
		if unicode.IsDigit(r) {
			run += string(r)
			continue
		}
		if len(run) == 8 {
			best = run
		}
		run = ""
	}
	if len(run) == 8 {
		best = run
	}
	return best
}

// CountryForStop infers a country code for a stop from its operator and UIC
// code.
func CountryForStop(stopID string) string {
	if i := strings.IndexByte(stopID, ':'); i > 0 && spanishOperators[stopID[:i]] {
		return "ES"
	}
	uic := UICCode(stopID)
	if len(uic) >= 2 {
		return uicCountry[uic[:2]]
	}
	return ""
}
