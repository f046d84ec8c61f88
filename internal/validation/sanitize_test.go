package validation

import "testing"

func TestContainsInjectionPattern(t *testing.T) {
	t.Parallel()

	hits := []string{
		"'; DROP TABLE reports",
		`say "hello"`,
		"1 -- comment",
		"a;b",
		"a|b",
		"100%",
	}
	for _, s := range hits {
		if !ContainsInjectionPattern(s) {
			t.Fatalf("expected pattern hit for %q", s)
		}
	}

	misses := []string{"", "plain text", "road 12, house 4", "a-b"}
	for _, s := range misses {
		if ContainsInjectionPattern(s) {
			t.Fatalf("unexpected pattern hit for %q", s)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "noop", input: "plain report text", want: "plain report text"},
		{name: "drop table", input: "'; DROP TABLE reports --", want: "DROP TABLE reports"},
		{name: "quotes", input: `he said "stop" and left`, want: "he said stop and left"},
		{name: "trims", input: "   padded   ", want: "padded"},
		{name: "empty", input: "", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeInput(tc.input); got != tc.want {
				t.Fatalf("SanitizeInput(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSanitizeInputNeverSplicesNewPatterns(t *testing.T) {
	t.Parallel()

	// Removing "|" from "a-|-b" yields "a--b"; the sanitizer has to keep
	// going until the output contains no pattern at all.
	inputs := []string{"a-|-b", "-|-|", "%-%-", "';--|\"%"}
	for _, s := range inputs {
		out := SanitizeInput(s)
		if ContainsInjectionPattern(out) {
			t.Fatalf("SanitizeInput(%q) = %q still contains an injection pattern", s, out)
		}
	}
}

func TestIsValidFileType(t *testing.T) {
	t.Parallel()

	allowList := []string{"jpg", "jpeg", "png", "pdf", "doc", "docx"}

	accepted := []string{"photo.jpg", "scan.PDF", "evidence.Docx", "a.b.png"}
	for _, name := range accepted {
		if res := IsValidFileType(name, allowList); !res.Valid {
			t.Fatalf("expected %q accepted, got reason %s", name, res.Reason)
		}
	}

	rejected := []string{"malware.exe", "script.sh", "noextension", "", "archive.tar.gz", "trick.jpg.exe"}
	for _, name := range rejected {
		if res := IsValidFileType(name, allowList); res.Valid {
			t.Fatalf("expected %q rejected", name)
		}
	}
}
