package validation

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		input      string
		valid      bool
		normalized string
		reason     Reason
	}{
		{name: "simple", input: "user@example.com", valid: true, normalized: "user@example.com"},
		{name: "uppercase and padding normalized", input: "  User@Example.COM ", valid: true, normalized: "user@example.com"},
		{name: "empty", input: "", reason: ReasonTooShort},
		{name: "whitespace only", input: "   ", reason: ReasonTooShort},
		{name: "missing at", input: "userexample.com", reason: ReasonBadFormat},
		{name: "double at", input: "user@@example.com", reason: ReasonBadFormat},
		{name: "missing domain dot", input: "user@example", reason: ReasonBadFormat},
		{name: "space inside", input: "us er@example.com", reason: ReasonBadFormat},
		{name: "oversized", input: strings.Repeat("a", 250) + "@example.com", reason: ReasonTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := ValidateEmail(tc.input)
			if res.Valid != tc.valid {
				t.Fatalf("valid = %v, want %v (reason %s)", res.Valid, tc.valid, res.Reason)
			}
			if tc.valid && res.Normalized != tc.normalized {
				t.Fatalf("normalized = %q, want %q", res.Normalized, tc.normalized)
			}
			if !tc.valid && res.Reason != tc.reason {
				t.Fatalf("reason = %s, want %s", res.Reason, tc.reason)
			}
		})
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		input  string
		valid  bool
		reason Reason
	}{
		{name: "all classes", input: "Str0ng&Secure!", valid: true},
		{name: "exactly twelve runes", input: "Ab1!Ab1!Ab1!", valid: true},
		{name: "eleven runes rejected", input: "Ab1!Ab1!Ab1", reason: ReasonTooShort},
		{name: "empty", input: "", reason: ReasonTooShort},
		{name: "no uppercase", input: "weakpass123!", reason: ReasonMissingUpper},
		{name: "no lowercase", input: "WEAKPASS123!", reason: ReasonMissingLower},
		{name: "no digit", input: "WeakPassword!", reason: ReasonMissingDigit},
		{name: "no symbol", input: "WeakPassword123", reason: ReasonMissingSymbol},
		{name: "oversized", input: "Ab1!" + strings.Repeat("a", 130), reason: ReasonTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := ValidatePasswordStrength(tc.input)
			if res.Valid != tc.valid {
				t.Fatalf("valid = %v, want %v (reason %s)", res.Valid, tc.valid, res.Reason)
			}
			if !tc.valid && res.Reason != tc.reason {
				t.Fatalf("reason = %s, want %s", res.Reason, tc.reason)
			}
		})
	}
}

func TestValidateDisplayName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		input  string
		valid  bool
		reason Reason
	}{
		{name: "plain", input: "Amina Yusuf", valid: true},
		{name: "apostrophe and hyphen", input: "N'Dour-Okello", valid: true},
		{name: "trimmed", input: "  Wanjiru  ", valid: true},
		{name: "single rune", input: "A", reason: ReasonTooShort},
		{name: "digits rejected", input: "Agent 47", reason: ReasonDisallowedChar},
		{name: "punctuation rejected", input: "Bob;", reason: ReasonDisallowedChar},
		{name: "oversized", input: strings.Repeat("a", 51), reason: ReasonTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := ValidateDisplayName(tc.input)
			if res.Valid != tc.valid {
				t.Fatalf("valid = %v, want %v (reason %s)", res.Valid, tc.valid, res.Reason)
			}
			if !tc.valid && res.Reason != tc.reason {
				t.Fatalf("reason = %s, want %s", res.Reason, tc.reason)
			}
		})
	}
}

func TestValidateReportContent(t *testing.T) {
	t.Parallel()

	if res := ValidateReportContent("bad"); res.Valid || res.Reason != ReasonTooShort {
		t.Fatalf("short content: got %+v", res)
	}
	if res := ValidateReportContent("        x        "); res.Valid || res.Reason != ReasonTooShort {
		t.Fatalf("whitespace padding must not count toward length: got %+v", res)
	}
	if res := ValidateReportContent(strings.Repeat("a", 5001)); res.Valid || res.Reason != ReasonTooLong {
		t.Fatalf("oversized content: got %+v", res)
	}
	res := ValidateReportContent("  Suspicious vehicle parked outside the gate.  ")
	if !res.Valid {
		t.Fatalf("expected valid content, got reason %s", res.Reason)
	}
	if res.Normalized != "Suspicious vehicle parked outside the gate." {
		t.Fatalf("normalized = %q", res.Normalized)
	}
	if res := ValidateReportContent(strings.Repeat("a", 5000)); !res.Valid {
		t.Fatalf("content at upper bound should pass, got reason %s", res.Reason)
	}
}
