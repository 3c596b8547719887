package reconciler

import (
	"time"

	"github.com/agentstation/revcheck/pkg/ledger"
	"github.com/agentstation/revcheck/pkg/summary"
)

// Result represents the outcome of a reconciliation run.
type Result struct {
	// Client is the annotated client table, same rows in the same order.
	Client *ledger.Table
	// Home is the deduplicated home table.
	Home *ledger.Table

	Records []ledger.ClientRecord
	Summary summary.Summary

	// Warnings collects degraded stages, such as a missing column.
	Warnings []string

	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the reconciliation process.
type ResultMetadata struct {
	// StartTime when reconciliation started
	StartTime time.Time

	// EndTime when reconciliation completed
	EndTime time.Time

	// Duration of the reconciliation
	Duration time.Duration

	// Tiers that were tried, in order
	Tiers []string

	// Concurrency used for row classification
	Concurrency int

	// Statistics about the reconciliation
	Stats ResultStatistics
}

// ResultStatistics contains statistics about the reconciliation.
type ResultStatistics struct {
	ClientRows        int            `json:"client_rows" yaml:"client_rows"`
	HomeRows          int            `json:"home_rows" yaml:"home_rows"`
	HomeKept          int            `json:"home_kept" yaml:"home_kept"`
	DuplicatesRemoved int            `json:"duplicates_removed" yaml:"duplicates_removed"`
	RevisionsCleaned  int            `json:"revisions_cleaned" yaml:"revisions_cleaned"`
	Hinted            int            `json:"hinted" yaml:"hinted"`
	TierHits          map[string]int `json:"tier_hits" yaml:"tier_hits"`
	Unmatched         int            `json:"unmatched" yaml:"unmatched"`
	Duplicated        int            `json:"duplicated" yaml:"duplicated"`
	NoRevisionDate    int            `json:"no_revision_date" yaml:"no_revision_date"`
	TotalTimeMs       int64          `json:"total_time_ms" yaml:"total_time_ms"`
}

// HasWarnings returns true if any stage degraded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Unverified returns the records whose Result is not "Verified".
func (r *Result) Unverified() []ledger.ClientRecord {
	var out []ledger.ClientRecord
	for _, rec := range r.Records {
		if summary.Classify(rec.Result) != summary.Verified {
			out = append(out, rec)
		}
	}
	return out
}
