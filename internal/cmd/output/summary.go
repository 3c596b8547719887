package output

import (
	"strconv"

	"github.com/agentstation/revcheck/pkg/summary"
)

// SummaryData lays out a verdict summary as a table with a total footer.
func SummaryData(s summary.Summary) Data {
	lines := s.Lines()
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, []string{line.Category, strconv.Itoa(line.Count), line.Percent})
	}
	return Data{
		Headers:         []string{"Category", "Count", "Percent"},
		Rows:            rows,
		Footer:          []string{"Total", strconv.Itoa(s.Total), ""},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight},
	}
}

// CountsData lays out named counters as a two-column table in the given order.
func CountsData(header string, names []string, counts map[string]int) Data {
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, strconv.Itoa(counts[name])})
	}
	return Data{
		Headers:         []string{header, "Count"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}
