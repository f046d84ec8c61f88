package validation

import "testing"

func TestValidatePhoneNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		country    string
		input      string
		valid      bool
		normalized string
		reason     Reason
	}{
		{name: "kenyan national", country: "KE", input: "712345678", valid: true, normalized: "+254712345678"},
		{name: "kenyan with trunk zero", country: "KE", input: "0712345678", valid: true, normalized: "+254712345678"},
		{name: "kenyan international", country: "KE", input: "+254 712 345 678", valid: true, normalized: "+254712345678"},
		{name: "formatting stripped", country: "KE", input: "(0712)-345-678", valid: true, normalized: "+254712345678"},
		{name: "lowercase country code", country: "ke", input: "712345678", valid: true, normalized: "+254712345678"},
		{name: "too short", country: "KE", input: "71234567", reason: ReasonLengthMismatch},
		{name: "too long", country: "KE", input: "7123456789", reason: ReasonLengthMismatch},
		{name: "nigerian national", country: "NG", input: "8012345678", valid: true, normalized: "+2348012345678"},
		{name: "somali national", country: "SO", input: "61234567", valid: true, normalized: "+25261234567"},
		{name: "us national", country: "US", input: "202-555-0147", valid: true, normalized: "+12025550147"},
		{name: "unknown country", country: "XX", input: "712345678", reason: ReasonUnknownCountry},
		{name: "empty number", country: "KE", input: "", reason: ReasonLengthMismatch},
		{name: "letters only", country: "KE", input: "call me", reason: ReasonLengthMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := ValidatePhoneNumber(tc.country, tc.input)
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

func TestFormatPhoneNumberRoundTrips(t *testing.T) {
	t.Parallel()

	inputs := map[string][]string{
		"KE": {"712345678", "0712345678", "+254712345678"},
		"NG": {"8012345678", "08012345678"},
		"US": {"2025550147", "(202) 555-0147"},
	}
	for country, numbers := range inputs {
		for _, number := range numbers {
			formatted := FormatPhoneNumber(country, number)
			res := ValidatePhoneNumber(country, formatted)
			if !res.Valid {
				t.Fatalf("format(%s, %q) = %q does not validate: %s", country, number, formatted, res.Reason)
			}
			if res.Normalized != formatted {
				t.Fatalf("format(%s, %q) = %q but validate normalizes to %q", country, number, formatted, res.Normalized)
			}
		}
	}
}

func TestKnownCountry(t *testing.T) {
	t.Parallel()

	if !KnownCountry("KE") || !KnownCountry(" ke ") {
		t.Fatalf("expected KE to be known in any casing")
	}
	if KnownCountry("") || KnownCountry("ZZ") {
		t.Fatalf("unexpected country accepted")
	}
}
