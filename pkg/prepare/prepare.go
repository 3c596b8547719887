// Package prepare cleans free-text client revision identifiers and derives
// the Formatted hint that steers verdict classification.
package prepare

import (
	"context"
	"regexp"
	"strings"

	"github.com/agentstation/revcheck/pkg/constants"
	"github.com/agentstation/revcheck/pkg/errors"
	"github.com/agentstation/revcheck/pkg/ledger"
	"github.com/agentstation/revcheck/pkg/logging"
	"github.com/agentstation/revcheck/pkg/normalize"
)

var (
	statementToken = regexp.MustCompile(`(?i)STATEMENT\s+([0-9A-Z-]+)`)
	trToken        = regexp.MustCompile(`(?i)(TR\s*[0-9-]+)`)
)

const statement = "STATEMENT"

// Stats summarises one preparation pass.
type Stats struct {
	Rows     int
	Cleaned  int // rows whose Revision No. changed
	Hinted   int // rows with a non-empty Formatted hint
	Warnings []string
}

// Client cleans every Revision No. cell and writes the Formatted column in
// place. The Formatted column is always present afterwards. A missing
// Revision No. column skips cleaning with a warning and leaves every hint empty.
func Client(ctx context.Context, t *ledger.Table) Stats {
	ctx = logging.WithStage(ctx, "prepare")
	logger := logging.FromContext(ctx)

	stats := Stats{Rows: t.Len()}
	revCol, ok := t.Column(constants.ColumnRevisionNo)
	if !ok {
		err := errors.NewSchemaError(t.Name, "revision cleaning", constants.ColumnRevisionNo)
		logger.Warn().Err(err).Msg("Revision No. column not found")
		stats.Warnings = append(stats.Warnings, err.Error())
	}

	formattedCol := t.EnsureColumn(constants.ColumnFormatted)
	for i, row := range t.Rows {
		row[formattedCol] = ""
		if !ok {
			continue
		}

		original := row[revCol]
		cleaned := CleanRevision(original)
		if cleaned != original {
			stats.Cleaned++
			logger.Trace().Int("row", i+1).Str("from", original).Str("to", cleaned).Msg("Cleaned revision")
		}
		row[revCol] = cleaned

		if hint := DeriveHint(cleaned); hint != "" {
			row[formattedCol] = hint
			stats.Hinted++
		}
	}

	logger.Info().
		Int("rows", stats.Rows).
		Int("cleaned", stats.Cleaned).
		Int("hinted", stats.Hinted).
		Msg("Client revisions prepared")
	return stats
}

// CleanRevision keeps the text before the first comma, plus the text after
// it when that starts with STATEMENT, then strips leading zeros from the
// leading numeral. Blank input yields ""; a blank numeral in front of a
// comma becomes "0".
//
//	"03, TR 005, -006"  -> "3"
//	"3, STATEMENT 5214" -> "3, STATEMENT 5214"
//	"000"               -> "0"
//	", TR 5"            -> "0"
func CleanRevision(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	first, second, hasComma := strings.Cut(s, ",")
	if !hasComma {
		return normalize.StripLeadingZeros(s)
	}
	numeral := normalize.StripLeadingZeros(strings.TrimSpace(first))
	if numeral == "" {
		numeral = "0"
	}
	second = strings.TrimSpace(second)
	if !hasPrefixFold(second, statement) {
		return numeral
	}
	return numeral + ", " + second
}

// DeriveHint returns the Formatted hint for a cleaned revision:
//   - more than one comma: no hint
//   - STATEMENT <token>: the token
//   - one comma followed by a TR token: that token
//   - TR or a dash anywhere: the literal "TR"
func DeriveHint(rev string) string {
	s := strings.TrimSpace(rev)
	if s == "" {
		return ""
	}

	commas := strings.Count(s, ",")
	if commas > 1 {
		return ""
	}

	upper := strings.ToUpper(s)
	if strings.Contains(upper, statement) {
		if m := statementToken.FindStringSubmatch(s); m != nil {
			return m[1]
		}
		return ""
	}

	if commas == 1 && strings.Contains(upper, "TR") {
		_, after, _ := strings.Cut(s, ",")
		if m := trToken.FindStringSubmatch(strings.TrimSpace(after)); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	if strings.Contains(upper, "TR") || strings.Contains(s, "-") {
		return "TR"
	}
	return ""
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
