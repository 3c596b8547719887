package revcheck

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/revcheck/internal/history"
	"github.com/agentstation/revcheck/internal/tabular"
	"github.com/agentstation/revcheck/pkg/constants"
	"github.com/agentstation/revcheck/pkg/errors"
	"github.com/agentstation/revcheck/pkg/ledger"
	"github.com/agentstation/revcheck/pkg/logging"
	"github.com/agentstation/revcheck/pkg/reconciler"
)

const (
	clientCSV = "Doc. No.,Revision No.,Rev. Date\n" +
		"D1,02,01/02/2020\n" +
		"D2,3,01/02/2020\n" +
		"D3,1,01/02/2020\n"
	homeCSV = "Document Number,Title,Revision Num,Revision Date,Revision Description,Call Number\n" +
		"D1,Manual,002,2020-01-02,Rev A,C1\n" +
		"D2,Guide,4,2020-01-02,Rev B,C2\n"
)

func writeInputs(t *testing.T) (dir, client, home string) {
	t.Helper()
	dir = t.TempDir()
	client = filepath.Join(dir, "client.csv")
	home = filepath.Join(dir, "home.csv")
	require.NoError(t, os.WriteFile(client, []byte(clientCSV), 0o600))
	require.NoError(t, os.WriteFile(home, []byte(homeCSV), 0o600))
	return dir, client, home
}

func testContext() context.Context {
	return logging.WithLogger(context.Background(), logging.NewNopLogger())
}

func TestRun(t *testing.T) {
	dir, client, home := writeInputs(t)
	output := filepath.Join(dir, "out", "result.xlsx")
	formatted := filepath.Join(dir, "client_formatted.csv")
	reportPath := filepath.Join(dir, "report.md")
	historyPath := filepath.Join(dir, "history.db")

	checker, err := New(
		WithClientPath(client),
		WithHomePath(home),
		WithOutputPath(output),
		WithFormattedPath(formatted),
		WithReportPath(reportPath),
		WithHistory(historyPath),
	)
	require.NoError(t, err)

	var unverified []string
	var completed int
	checker.OnUnverified(func(rec ledger.ClientRecord) {
		unverified = append(unverified, rec.DocNumber.String())
	})
	checker.OnComplete(func(*Report) { completed++ })

	rep, err := checker.Run(testContext())
	require.NoError(t, err)

	sum := rep.Summary()
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 1, sum.Verified)
	assert.Equal(t, 1, sum.NeedsCheck)
	assert.Equal(t, 1, sum.NotFound)
	assert.Empty(t, rep.Warnings)
	assert.Equal(t, 2, rep.Styled)
	assert.Equal(t, []string{"D2", "D3"}, unverified)
	assert.Equal(t, 1, completed)

	out, err := tabular.Read(testContext(), output)
	require.NoError(t, err)
	require.Equal(t, 3, out.Len())
	assert.Equal(t, "Verified", out.Cell(0, constants.ColumnResult))
	assert.Equal(t, "4/2020-01-02", out.Cell(1, constants.ColumnResult))
	assert.Equal(t, "Not found", out.Cell(2, constants.ColumnResult))
	assert.Equal(t, "2", out.Cell(0, constants.ColumnRevisionNo))

	prepared, err := tabular.Read(testContext(), formatted)
	require.NoError(t, err)
	assert.True(t, prepared.HasColumns(constants.ColumnFormatted))
	assert.False(t, prepared.HasColumns(constants.ColumnResult))

	md, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "Revision Check Report")

	require.NotNil(t, rep.Run)
	store, err := history.Open(testContext(), historyPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	runs, err := store.List(testContext(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, rep.Run.ID, runs[0].ID)
	assert.Equal(t, 3, runs[0].Total)
}

func TestRunCSVOutputSkipsStyling(t *testing.T) {
	dir, client, home := writeInputs(t)
	output := filepath.Join(dir, "result.csv")

	checker, err := New(
		WithClientPath(client),
		WithHomePath(home),
		WithOutputPath(output),
		WithFormattedPath(""),
	)
	require.NoError(t, err)

	rep, err := checker.Run(testContext())
	require.NoError(t, err)
	assert.Zero(t, rep.Styled)
	assert.Empty(t, rep.FormattedPath)
	assert.Nil(t, rep.Run)
	assert.FileExists(t, output)
	assert.NoFileExists(t, filepath.Join(dir, constants.DefaultFormattedFile))
}

func TestRunMissingColumnWarns(t *testing.T) {
	dir := t.TempDir()
	client := filepath.Join(dir, "client.csv")
	home := filepath.Join(dir, "home.csv")
	require.NoError(t, os.WriteFile(client, []byte("Doc. No.,Rev. Date\nD1,01/02/2020\n"), 0o600))
	require.NoError(t, os.WriteFile(home, []byte(homeCSV), 0o600))

	checker, err := New(
		WithClientPath(client),
		WithHomePath(home),
		WithOutputPath(filepath.Join(dir, "out.csv")),
		WithFormattedPath(""),
	)
	require.NoError(t, err)

	rep, err := checker.Run(testContext())
	require.NoError(t, err)
	assert.NotEmpty(t, rep.Warnings)
	assert.Equal(t, 1, rep.Summary().Total)
}

func TestRunErrors(t *testing.T) {
	dir, client, home := writeInputs(t)

	t.Run("missing client file", func(t *testing.T) {
		checker, err := New(WithClientPath(filepath.Join(dir, "nope.csv")), WithHomePath(home))
		require.NoError(t, err)
		_, err = checker.Run(testContext())
		require.Error(t, err)
		var ioErr *errors.IOError
		assert.ErrorAs(t, err, &ioErr)
	})

	t.Run("unsupported output", func(t *testing.T) {
		checker, err := New(
			WithClientPath(client),
			WithHomePath(home),
			WithOutputPath(filepath.Join(dir, "out.json")),
			WithFormattedPath(""),
		)
		require.NoError(t, err)
		_, err = checker.Run(testContext())
		assert.True(t, errors.IsUnsupportedFormat(err))
	})
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{name: "no client", opts: []Option{WithHomePath("home.csv")}},
		{name: "no home", opts: []Option{WithClientPath("client.csv")}},
		{name: "empty output", opts: []Option{WithClientPath("c.csv"), WithHomePath("h.csv"), WithOutputPath("")}},
		{name: "bad engine option", opts: []Option{
			WithClientPath("c.csv"), WithHomePath("h.csv"),
			WithReconcilerOptions(reconciler.WithConcurrency(0)),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestReportSummaryNil(t *testing.T) {
	var rep *Report
	assert.Zero(t, rep.Summary().Total)
}
