package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/revcheck/pkg/errors"
	"github.com/agentstation/revcheck/pkg/ledger"
	"github.com/agentstation/revcheck/pkg/logging"
	"github.com/agentstation/revcheck/pkg/reconciler"
	"github.com/agentstation/revcheck/pkg/summary"
)

func sampleResult() *reconciler.Result {
	records := []ledger.ClientRecord{
		{Index: 0, DocNumber: ledger.Text("D1"), RevisionNo: ledger.Text("2"), Result: "Verified", DocCallNumber: "C1"},
		{Index: 1, DocNumber: ledger.Text("D|2"), RevisionNo: ledger.Text("3"), RevisionDate: ledger.Text("01/02/2020"),
			Result: "2/2020-01-02", DocCallNumber: "C2"},
		{Index: 2, DocNumber: ledger.Text("D3"), Result: "Not found"},
	}
	end := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	return &reconciler.Result{
		Records:  records,
		Summary:  summary.Of(records),
		Warnings: []string{"home: missing column Call Number"},
		Metadata: reconciler.ResultMetadata{
			StartTime: end.Add(-time.Second),
			EndTime:   end,
			Duration:  time.Second,
			Tiers:     []string{"document_number", "title_keywords"},
			Stats: reconciler.ResultStatistics{
				HomeRows:          4,
				DuplicatesRemoved: 1,
				TierHits:          map[string]int{"document_number": 2, "custom": 1},
				Unmatched:         1,
			},
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Input{ClientPath: "client.csv", HomePath: "home.xlsx", Result: sampleResult()}))
	out := buf.String()

	assert.Contains(t, out, "# Revision Check Report")
	assert.Contains(t, out, "## Summary")
	assert.Contains(t, out, "Verified (matching)")
	assert.Contains(t, out, "33.3%")
	assert.Contains(t, out, "`client.csv`")
	assert.Contains(t, out, "Output: -")
	assert.NotContains(t, out, "`-`")
	assert.Contains(t, out, "Matched by document_number")
	assert.Contains(t, out, "Matched by custom")
	assert.Contains(t, out, "## Warnings")
	assert.Contains(t, out, "missing column Call Number")
	assert.Contains(t, out, `D\|2`)
	assert.Contains(t, out, "Not found")
	assert.NotContains(t, out, "Every row was verified")
}

func TestWriteAllVerified(t *testing.T) {
	records := []ledger.ClientRecord{{Index: 0, Result: "Verified"}}
	res := &reconciler.Result{Records: records, Summary: summary.Of(records)}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Input{Result: res, GeneratedAt: time.Now()}))
	assert.Contains(t, buf.String(), "Every row was verified.")
	assert.NotContains(t, buf.String(), "## Warnings")
}

func TestWriteNilResult(t *testing.T) {
	err := Write(&bytes.Buffer{}, Input{})
	assert.True(t, errors.IsValidationError(err))
}

func TestWriteFile(t *testing.T) {
	ctx := logging.WithLogger(context.Background(), logging.NewNopLogger())
	path := filepath.Join(t.TempDir(), "nested", "report.md")

	require.NoError(t, WriteFile(ctx, path, Input{Result: sampleResult()}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Rows Needing Attention")
}

func TestFilename(t *testing.T) {
	at := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "revcheck-20240102-150405.md", Filename(at))
}
