package validation

import "strings"

// countryRule fixes the expected national digit count and dial prefix per
// supported country code. Unknown codes are rejected outright.
type countryRule struct {
	dialCode       string
	nationalDigits int
}

var countryRules = map[string]countryRule{
	"KE": {dialCode: "254", nationalDigits: 9},
	"UG": {dialCode: "256", nationalDigits: 9},
	"TZ": {dialCode: "255", nationalDigits: 9},
	"RW": {dialCode: "250", nationalDigits: 9},
	"ET": {dialCode: "251", nationalDigits: 9},
	"ZA": {dialCode: "27", nationalDigits: 9},
	"NG": {dialCode: "234", nationalDigits: 10},
	"SO": {dialCode: "252", nationalDigits: 8},
	"DJ": {dialCode: "253", nationalDigits: 8},
	"US": {dialCode: "1", nationalDigits: 10},
	"GB": {dialCode: "44", nationalDigits: 10},
	"IN": {dialCode: "91", nationalDigits: 10},
}

// KnownCountry reports whether a country code has a phone rule. The same
// table gates which countries a report may name.
func KnownCountry(countryCode string) bool {
	_, found := countryRules[strings.ToUpper(strings.TrimSpace(countryCode))]
	return found
}

// ValidatePhoneNumber strips all non-digit characters and compares the
// remaining count against the country's expected national length. A leading
// dial code or trunk zero is tolerated so formatted numbers validate the same
// as raw national input. Unknown country codes are invalid.
func ValidatePhoneNumber(countryCode, s string) Result {
	rule, found := countryRules[strings.ToUpper(strings.TrimSpace(countryCode))]
	if !found {
		return fail(ReasonUnknownCountry)
	}

	digits := stripNonDigits(s)
	if strings.HasPrefix(digits, rule.dialCode) && len(digits) == len(rule.dialCode)+rule.nationalDigits {
		digits = digits[len(rule.dialCode):]
	} else if strings.HasPrefix(digits, "0") && len(digits) == rule.nationalDigits+1 {
		digits = digits[1:]
	}

	if len(digits) != rule.nationalDigits {
		return fail(ReasonLengthMismatch)
	}
	return ok("+" + rule.dialCode + digits)
}

// FormatPhoneNumber renders a national number in international form. The
// output round-trips through ValidatePhoneNumber for the same country.
func FormatPhoneNumber(countryCode, s string) string {
	rule, found := countryRules[strings.ToUpper(strings.TrimSpace(countryCode))]
	if !found {
		return strings.TrimSpace(s)
	}
	digits := stripNonDigits(s)
	if strings.HasPrefix(digits, "0") && len(digits) == rule.nationalDigits+1 {
		digits = digits[1:]
	}
	if strings.HasPrefix(digits, rule.dialCode) && len(digits) == len(rule.dialCode)+rule.nationalDigits {
		return "+" + digits
	}
	return "+" + rule.dialCode + digits
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
