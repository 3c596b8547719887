// Package ledger holds the tabular data model shared by every stage of a
// revision check: the raw client and home tables, the typed records built
// from them, and the outcome written back onto client rows.
//
// Every cell the engine reads is surfaced as a Value so that "missing" and
// "blank" collapse into a single Unknown state.
package ledger

import "strings"

// Value is an optional cell value. The zero Value is Unknown.
type Value struct {
	text  string
	known bool
}

// Unknown is the absent value.
var Unknown = Value{}

// Text converts raw cell text into a Value. Blank or whitespace-only input
// is Unknown; anything else is known and trimmed.
func Text(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Unknown
	}
	return Value{text: trimmed, known: true}
}

// String returns the trimmed text, or "" for Unknown.
func (v Value) String() string {
	return v.text
}

// IsUnknown reports whether the value is absent.
func (v Value) IsUnknown() bool {
	return !v.known
}

// Known reports whether the value is present.
func (v Value) Known() bool {
	return v.known
}

// Or returns v when known and fallback otherwise.
func (v Value) Or(fallback string) string {
	if v.known {
		return v.text
	}
	return fallback
}
