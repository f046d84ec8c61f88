package validation

import (
	"path/filepath"
	"strings"
)

// injectionPatterns is the fixed set of SQL meta-character sequences the
// engine recognizes. Pattern matching is a best-effort heuristic gate with
// known false negatives against novel encodings; it is never a substitute
// for parameterized queries downstream.
var injectionPatterns = []string{"'", "\"", "--", ";", "|", "%"}

// ContainsInjectionPattern reports whether any recognized injection marker
// occurs in s. The scan is case-insensitive.
func ContainsInjectionPattern(s string) bool {
	lowered := strings.ToLower(s)
	for _, pattern := range injectionPatterns {
		if strings.Contains(lowered, pattern) {
			return true
		}
	}
	return false
}

// SanitizeInput returns a copy of s with surrounding whitespace trimmed and
// every recognized injection marker removed. Removal repeats until no marker
// remains, so deletions cannot splice a new marker together
// ("a-|-b" must not sanitize to "a--b").
func SanitizeInput(s string) string {
	out := strings.TrimSpace(s)
	for ContainsInjectionPattern(out) {
		for _, pattern := range injectionPatterns {
			out = strings.ReplaceAll(out, pattern, "")
		}
	}
	return strings.TrimSpace(out)
}

// IsValidFileType accepts a filename iff its extension, compared
// case-insensitively, is in the caller-supplied allow-list. Files outside
// the list must be rejected before any upload attempt.
func IsValidFileType(filename string, allowList []string) Result {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(strings.TrimSpace(filename)), "."))
	if ext == "" {
		return fail(ReasonUnsupportedType)
	}
	for _, allowed := range allowList {
		if ext == strings.ToLower(strings.TrimSpace(allowed)) {
			return ok(strings.TrimSpace(filename))
		}
	}
	return fail(ReasonUnsupportedType)
}
