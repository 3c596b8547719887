package dedupe

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/revcheck/pkg/constants"
	"github.com/agentstation/revcheck/pkg/ledger"
)

func homeTable() *ledger.Table {
	tbl := ledger.NewTable("home",
		constants.ColumnDocumentNumber,
		constants.ColumnRevisionNum,
		constants.ColumnRevisionDescription,
		constants.ColumnCallNumber,
	)
	tbl.AppendRow("D1", "02", "Rev 2", "C1")
	tbl.AppendRow("D1", "002", "Rev 2", "C1")
	tbl.AppendRow("D1", "3", "Rev 3", "C1")
	tbl.AppendRow("D2", "000", "Rev 2", "C2")
	tbl.AppendRow("D2", "", "Rev 2 ", "C2")
	tbl.AppendRow("D3", "1", "", "")
	tbl.AppendRow("D4", "1", "  ", "")
	return tbl
}

func TestHome(t *testing.T) {
	tbl := homeTable()

	stats := Home(context.Background(), tbl)

	assert.Equal(t, 7, stats.Rows)
	assert.Equal(t, 3, stats.Removed)
	assert.Equal(t, 4, stats.Kept)
	assert.Equal(t, 3, stats.Stripped)
	assert.Empty(t, stats.Warnings)

	want := [][]string{
		{"D1", "2", "Rev 2", "C1"},
		{"D1", "3", "Rev 3", "C1"},
		{"D2", "0", "Rev 2", "C2"},
		{"D3", "1", "", ""},
	}
	if diff := cmp.Diff(want, tbl.Records()); diff != "" {
		t.Errorf("deduplicated rows mismatch (-want +got):\n%s", diff)
	}
}

func TestHomeIsIdempotent(t *testing.T) {
	tbl := homeTable()
	Home(context.Background(), tbl)
	first := tbl.Clone()

	stats := Home(context.Background(), tbl)

	assert.Equal(t, 0, stats.Removed)
	assert.Equal(t, 0, stats.Stripped)
	if diff := cmp.Diff(first.Records(), tbl.Records()); diff != "" {
		t.Errorf("second pass changed rows (-first +second):\n%s", diff)
	}
}

func TestHomeMissingColumns(t *testing.T) {
	tbl := ledger.NewTable("home", constants.ColumnDocumentNumber, constants.ColumnCallNumber)
	tbl.AppendRow("D1", "C1")
	tbl.AppendRow("D1", "C1")

	stats := Home(context.Background(), tbl)

	assert.Equal(t, 2, tbl.Len(), "catalog passes through unchanged")
	assert.Equal(t, 2, stats.Kept)
	require.Len(t, stats.Warnings, 2)
	assert.Contains(t, stats.Warnings[0], constants.ColumnRevisionNum)
	assert.Contains(t, stats.Warnings[1], constants.ColumnRevisionDescription)
	assert.NotContains(t, stats.Warnings[1], constants.ColumnCallNumber+",")
}
