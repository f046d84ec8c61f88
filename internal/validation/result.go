// Package validation checks and normalizes untrusted input before it is
// stored or transmitted. Every function is pure and total: any string input,
// including empty strings, embedded NUL bytes, or oversized payloads, yields
// a Result and never a panic or an error.
package validation

// Reason enumerates why an input was rejected. Codes are stable so callers
// can map them to precise user feedback.
type Reason string

const (
	ReasonTooShort        Reason = "TOO_SHORT"
	ReasonTooLong         Reason = "TOO_LONG"
	ReasonBadFormat       Reason = "BAD_FORMAT"
	ReasonMissingUpper    Reason = "MISSING_UPPERCASE"
	ReasonMissingLower    Reason = "MISSING_LOWERCASE"
	ReasonMissingDigit    Reason = "MISSING_DIGIT"
	ReasonMissingSymbol   Reason = "MISSING_SYMBOL"
	ReasonDisallowedChar  Reason = "DISALLOWED_CHARACTER"
	ReasonUnknownCountry  Reason = "UNKNOWN_COUNTRY"
	ReasonLengthMismatch  Reason = "LENGTH_MISMATCH"
	ReasonUnsupportedType Reason = "UNSUPPORTED_FILE_TYPE"
)

// Result is the transient outcome of a single check. Normalized carries the
// canonical form on success and is what gets persisted, never the raw input.
type Result struct {
	Valid      bool
	Normalized string
	Reason     Reason
}

func ok(normalized string) Result {
	return Result{Valid: true, Normalized: normalized}
}

func fail(reason Reason) Result {
	return Result{Reason: reason}
}
