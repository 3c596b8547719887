// Package summary tallies verdicts across an annotated client table.
package summary

import (
	"fmt"
	"strings"

	"github.com/agentstation/revcheck/pkg/constants"
	"github.com/agentstation/revcheck/pkg/ledger"
	"github.com/agentstation/revcheck/pkg/verdict"
)

// Bucket is a verdict category. Every Result falls in exactly one bucket.
type Bucket int

const (
	// Verified rows have Result exactly "Verified".
	Verified Bucket = iota
	// NeedsCheck rows carry any other verdict text.
	NeedsCheck
	// NotFound rows have a Result containing "Not found".
	NotFound
)

// String returns the bucket's label.
func (b Bucket) String() string {
	switch b {
	case Verified:
		return "Verified (matching)"
	case NeedsCheck:
		return "Needs checking (different)"
	case NotFound:
		return "Not found"
	default:
		return "unknown"
	}
}

// Classify places a Result text into its bucket.
func Classify(result string) Bucket {
	switch {
	case verdict.IsVerified(result):
		return Verified
	case verdict.IsNotFound(result):
		return NotFound
	default:
		return NeedsCheck
	}
}

// Summary holds per-bucket row counts.
type Summary struct {
	Total      int `json:"total" yaml:"total"`
	Verified   int `json:"verified" yaml:"verified"`
	NeedsCheck int `json:"needs_check" yaml:"needs_check"`
	NotFound   int `json:"not_found" yaml:"not_found"`
}

// Add counts one Result.
func (s *Summary) Add(result string) {
	s.Total++
	switch Classify(result) {
	case Verified:
		s.Verified++
	case NotFound:
		s.NotFound++
	default:
		s.NeedsCheck++
	}
}

// Of tallies client records.
func Of(records []ledger.ClientRecord) Summary {
	var s Summary
	for _, r := range records {
		s.Add(r.Result)
	}
	return s
}

// OfTable tallies the Result column of an annotated table. A table
// without a Result column counts every row as needing a check.
func OfTable(t *ledger.Table) Summary {
	var s Summary
	for i := range t.Len() {
		s.Add(t.Cell(i, constants.ColumnResult))
	}
	return s
}

// Count returns the rows in bucket b.
func (s Summary) Count(b Bucket) int {
	switch b {
	case Verified:
		return s.Verified
	case NeedsCheck:
		return s.NeedsCheck
	case NotFound:
		return s.NotFound
	default:
		return 0
	}
}

// Percent returns the share of rows in bucket b, 0 for an empty table.
func (s Summary) Percent(b Bucket) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Count(b)) / float64(s.Total) * 100
}

// Line is one bucket rendered for display.
type Line struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
	Percent  string `json:"percent" yaml:"percent"`
}

// Lines returns one line per bucket in report order.
func (s Summary) Lines() []Line {
	buckets := []Bucket{Verified, NeedsCheck, NotFound}
	lines := make([]Line, 0, len(buckets))
	for _, b := range buckets {
		lines = append(lines, Line{
			Category: b.String(),
			Count:    s.Count(b),
			Percent:  fmt.Sprintf("%.1f%%", s.Percent(b)),
		})
	}
	return lines
}

// String renders the summary block printed at the end of a run.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total documents processed: %d\n", s.Total)
	for _, line := range s.Lines() {
		fmt.Fprintf(&b, "%s: %d (%s)\n", line.Category, line.Count, line.Percent)
	}
	return b.String()
}
