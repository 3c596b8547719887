package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/revcheck/pkg/constants"
	"github.com/agentstation/revcheck/pkg/ledger"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		result string
		want   Bucket
	}{
		{"Verified", Verified},
		{"Not found", NotFound},
		{"Doc Not found twice", NotFound},
		{"TR not found", NeedsCheck},
		{"2/2020-01-02", NeedsCheck},
		{"5214 not found in Revision Description", NeedsCheck},
		{"", NeedsCheck},
		{"verified", NeedsCheck},
	}
	for _, tt := range tests {
		t.Run(tt.result, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.result))
		})
	}
}

func TestOfBucketsAreExhaustive(t *testing.T) {
	results := []string{"Verified", "Verified", "Not found", "1/", "TR not found", ""}
	records := make([]ledger.ClientRecord, len(results))
	for i, r := range results {
		records[i].Result = r
	}

	s := Of(records)

	assert.Equal(t, Summary{Total: 6, Verified: 2, NeedsCheck: 3, NotFound: 1}, s)
	assert.Equal(t, s.Total, s.Verified+s.NeedsCheck+s.NotFound)
	assert.InDelta(t, 33.333, s.Percent(Verified), 0.001)
	assert.InDelta(t, 50.0, s.Percent(NeedsCheck), 0.001)
}

func TestOfTable(t *testing.T) {
	tbl := ledger.NewTable("client", constants.ColumnDocNo, constants.ColumnResult)
	tbl.AppendRow("D1", "Verified")
	tbl.AppendRow("D2", "Not found")

	assert.Equal(t, Summary{Total: 2, Verified: 1, NotFound: 1}, OfTable(tbl))
}

func TestEmptySummary(t *testing.T) {
	var s Summary
	assert.Equal(t, 0.0, s.Percent(Verified))
	assert.Equal(t, "0.0%", s.Lines()[0].Percent)
	assert.Equal(t, 0, s.Count(Bucket(7)))
}

func TestString(t *testing.T) {
	s := Summary{Total: 4, Verified: 2, NeedsCheck: 1, NotFound: 1}
	want := "Total documents processed: 4\n" +
		"Verified (matching): 2 (50.0%)\n" +
		"Needs checking (different): 1 (25.0%)\n" +
		"Not found: 1 (25.0%)\n"
	assert.Equal(t, want, s.String())
}
