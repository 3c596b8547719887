// Package normalize converts free-text revision identifiers and dates into
// comparable canonical forms. All functions are pure; unparseable input
// resolves to Unknown or to an opaque string rather than an error.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/agentstation/revcheck/pkg/ledger"
)

var trPrefix = regexp.MustCompile(`(?i)^TR\s*`)

// BasicRevision trims and uppercases a revision, mapping BASIC and BAS to "0".
// Unknown stays Unknown.
func BasicRevision(v ledger.Value) ledger.Value {
	if v.IsUnknown() {
		return ledger.Unknown
	}
	s := strings.ToUpper(v.String())
	if s == "BASIC" || s == "BAS" {
		return ledger.Text("0")
	}
	return ledger.Text(s)
}

// TRString removes all whitespace and uppercases s. Blank input yields "".
func TRString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// StripLeadingZeros removes leading '0' characters. A value made only of
// zeros collapses to "0"; blank input stays blank.
func StripLeadingZeros(s string) string {
	if s == "" {
		return ""
	}
	stripped := strings.TrimLeft(s, "0")
	if stripped == "" {
		return "0"
	}
	return stripped
}

// RevisionsEqual compares two revision identifiers.
//
// Two Unknowns are equal and one Unknown never equals a known value. When
// both sides start with TR the prefix is dropped before comparing. The
// remainders compare as integers (parsed through a float so "02" equals
// "2.0") and fall back to exact string equality when either side is not
// numeric.
func RevisionsEqual(a, b ledger.Value) bool {
	if a.IsUnknown() && b.IsUnknown() {
		return true
	}
	if a.IsUnknown() || b.IsUnknown() {
		return false
	}

	x, y := a.String(), b.String()
	if hasTRPrefix(x) && hasTRPrefix(y) {
		x = trPrefix.ReplaceAllString(x, "")
		y = trPrefix.ReplaceAllString(y, "")
	}

	if nx, ok := revisionNumber(x); ok {
		if ny, ok := revisionNumber(y); ok {
			return nx == ny
		}
	}
	return x == y
}

// RevisionDisplay renders a revision as an integer when it is numeric and
// as its trimmed text otherwise.
func RevisionDisplay(v ledger.Value) string {
	if n, ok := revisionNumber(v.String()); ok {
		return strconv.FormatInt(n, 10)
	}
	return v.String()
}

func hasTRPrefix(s string) bool {
	return len(s) >= 2 && strings.EqualFold(s[:2], "TR")
}

// revisionNumber parses s as a float and truncates it toward zero.
func revisionNumber(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
