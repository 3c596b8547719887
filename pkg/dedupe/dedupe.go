// Package dedupe removes redundant entries from the home catalog before
// matching. Both steps are idempotent and keep survivors in input order.
package dedupe

import (
	"context"

	"github.com/agentstation/revcheck/pkg/constants"
	"github.com/agentstation/revcheck/pkg/errors"
	"github.com/agentstation/revcheck/pkg/ledger"
	"github.com/agentstation/revcheck/pkg/logging"
	"github.com/agentstation/revcheck/pkg/normalize"
)

// Stats summarises one deduplication pass.
type Stats struct {
	Rows     int // rows before deduplication
	Kept     int
	Removed  int
	Stripped int // Revision Num cells that lost leading zeros
	Warnings []string
}

// key identifies one logical revision entry.
type key struct {
	callNumber  string
	description string
}

// Home strips leading zeros from Revision Num and then drops every row whose
// (Call Number, Revision Description) pair repeats an earlier row. The table
// is modified in place. Missing columns skip the affected step with a warning.
func Home(ctx context.Context, t *ledger.Table) Stats {
	ctx = logging.WithStage(ctx, "dedupe")
	logger := logging.FromContext(ctx)

	stats := Stats{Rows: t.Len()}
	stats.Stripped, stats.Warnings = stripRevisionNums(ctx, t)

	callCol, okCall := t.Column(constants.ColumnCallNumber)
	descCol, okDesc := t.Column(constants.ColumnRevisionDescription)
	if !okCall || !okDesc {
		err := errors.NewSchemaError(t.Name, "deduplication",
			t.Missing(constants.ColumnCallNumber, constants.ColumnRevisionDescription)...)
		logger.Warn().Err(err).Msg("Skipping duplicate removal")
		stats.Warnings = append(stats.Warnings, err.Error())
		stats.Kept = t.Len()
		return stats
	}

	seen := make(map[key]struct{}, t.Len())
	kept := t.Rows[:0]
	for i, row := range t.Rows {
		k := key{
			callNumber:  ledger.Text(row[callCol]).String(),
			description: ledger.Text(row[descCol]).String(),
		}
		if _, dup := seen[k]; dup {
			logger.Debug().
				Int("row", i+1).
				Str("call_number", k.callNumber).
				Msg("Dropping duplicate home row")
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, row)
	}
	clear(t.Rows[len(kept):])
	t.Rows = kept

	stats.Kept = len(kept)
	stats.Removed = stats.Rows - stats.Kept
	logger.Info().
		Int("rows", stats.Rows).
		Int("removed", stats.Removed).
		Int("kept", stats.Kept).
		Msg("Home catalog deduplicated")
	return stats
}

func stripRevisionNums(ctx context.Context, t *ledger.Table) (int, []string) {
	col, ok := t.Column(constants.ColumnRevisionNum)
	if !ok {
		err := errors.NewSchemaError(t.Name, "leading-zero removal", constants.ColumnRevisionNum)
		logging.FromContext(ctx).Warn().Err(err).Msg("Revision Num column not found")
		return 0, []string{err.Error()}
	}

	stripped := 0
	for _, row := range t.Rows {
		original := row[col]
		cleaned := normalize.StripLeadingZeros(ledger.Text(original).String())
		if cleaned != original {
			stripped++
		}
		row[col] = cleaned
	}
	return stripped, nil
}
