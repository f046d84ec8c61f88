package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minPasswordLength = 12
	maxPasswordLength = 128

	minDisplayNameLength = 2
	maxDisplayNameLength = 50

	minReportContentLength = 10
	maxReportContentLength = 5000
)

// passwordSymbols is the punctuation set that satisfies the symbol class.
const passwordSymbols = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// emailShape enforces local@domain with at least one dot in the domain.
// Static/offline check only; no DNS or MX lookup.
var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks the shape of an email address and normalizes it to
// lowercase trimmed form.
func ValidateEmail(s string) Result {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return fail(ReasonTooShort)
	}
	if len(trimmed) > 254 {
		return fail(ReasonTooLong)
	}
	if strings.Count(trimmed, "@") != 1 || !emailShape.MatchString(trimmed) {
		return fail(ReasonBadFormat)
	}
	return ok(trimmed)
}

// ValidatePasswordStrength enforces the password policy: length of at least
// 12 and one of each character class. The first missing class is reported so
// users get actionable feedback instead of a generic rejection.
func ValidatePasswordStrength(s string) Result {
	if utf8.RuneCountInString(s) < minPasswordLength {
		return fail(ReasonTooShort)
	}
	if utf8.RuneCountInString(s) > maxPasswordLength {
		return fail(ReasonTooLong)
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return fail(ReasonMissingUpper)
	case !hasLower:
		return fail(ReasonMissingLower)
	case !hasDigit:
		return fail(ReasonMissingDigit)
	case !hasSymbol:
		return fail(ReasonMissingSymbol)
	}
	return ok(s)
}

// ValidateDisplayName accepts names of 2..50 runes composed of letters,
// spaces, apostrophes, and hyphens.
func ValidateDisplayName(s string) Result {
	trimmed := strings.TrimSpace(s)
	n := utf8.RuneCountInString(trimmed)
	if n < minDisplayNameLength {
		return fail(ReasonTooShort)
	}
	if n > maxDisplayNameLength {
		return fail(ReasonTooLong)
	}
	for _, r := range trimmed {
		if unicode.IsLetter(r) || r == ' ' || r == '\'' || r == '-' {
			continue
		}
		return fail(ReasonDisallowedChar)
	}
	return ok(trimmed)
}

// ValidateReportContent bounds free-text report bodies to 10..5000 runes
// after trimming. Shorter strings carry no investigable detail; longer ones
// are a storage and DoS concern.
func ValidateReportContent(s string) Result {
	trimmed := strings.TrimSpace(s)
	n := utf8.RuneCountInString(trimmed)
	if n < minReportContentLength {
		return fail(ReasonTooShort)
	}
	if n > maxReportContentLength {
		return fail(ReasonTooLong)
	}
	return ok(trimmed)
}
