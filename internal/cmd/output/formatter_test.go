package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/revcheck/pkg/summary"
)

type runRow struct {
	ID       int64         `json:"id"`
	Client   string        `json:"client_path"`
	Duration time.Duration `json:"duration"`
	Secret   string        `json:"-"`
	hidden   string
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "table", want: FormatTable},
		{in: "JSON", want: FormatJSON},
		{in: "yaml", want: FormatYAML},
		{in: "wide", want: FormatWide},
		{in: "", want: ""},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestJSONAndYAML(t *testing.T) {
	s := summary.Summary{Total: 2, Verified: 1, NotFound: 1}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, s))
	assert.Contains(t, buf.String(), `"verified": 1`)

	buf.Reset()
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, s))
	assert.Contains(t, buf.String(), "not_found: 1")
}

func TestTableStructSlice(t *testing.T) {
	rows := []runRow{
		{ID: 1, Client: "a.csv", Duration: 1500 * time.Millisecond, Secret: "x", hidden: "y"},
		{ID: 2, Client: "b.csv"},
	}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, rows))
	out := strings.ToUpper(buf.String())
	assert.Contains(t, out, "CLIENT PATH")
	assert.Contains(t, out, "A.CSV")
	assert.Contains(t, out, "1.5S")
	assert.NotContains(t, out, "SECRET")
}

func TestTableSingleStructPointer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, &runRow{ID: 7, Client: "c.csv"}))
	assert.Contains(t, buf.String(), "c.csv")
	assert.Contains(t, strings.ToUpper(buf.String()), "PROPERTY")
}

func TestTableFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]int{"a": 1}))
	assert.Contains(t, buf.String(), `"a": 1`)
}

func TestNarrowTableTruncates(t *testing.T) {
	long := strings.Repeat("x", 80)
	data := Data{Headers: []string{"Value"}, Rows: [][]string{{long}}}

	var narrow, wide bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&narrow, data))
	require.NoError(t, NewFormatter(FormatWide).Format(&wide, data))
	assert.NotContains(t, narrow.String(), long)
	assert.Contains(t, wide.String(), long)
}

func TestSummaryData(t *testing.T) {
	data := SummaryData(summary.Summary{Total: 4, Verified: 2, NeedsCheck: 1, NotFound: 1})
	require.Len(t, data.Rows, 3)
	assert.Equal(t, []string{"Verified (matching)", "2", "50.0%"}, data.Rows[0])
	assert.Equal(t, "4", data.Footer[1])

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))
	assert.Contains(t, buf.String(), "Needs checking (different)")
}

func TestCountsData(t *testing.T) {
	data := CountsData("Tier", []string{"b", "a"}, map[string]int{"a": 3})
	assert.Equal(t, [][]string{{"b", "0"}, {"a", "3"}}, data.Rows)
}
