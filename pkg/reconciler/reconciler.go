// Package reconciler runs the full revision check over a client table and a
// home catalog: client preparation, home deduplication, tiered matching with
// verdict classification per row, and the closing summary.
//
// Rows are independent and the home catalog is read-only once deduplicated,
// so rows may be classified in parallel; output is identical either way.
package reconciler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"

	"github.com/agentstation/revcheck/internal/matcher"
	"github.com/agentstation/revcheck/pkg/constants"
	"github.com/agentstation/revcheck/pkg/dedupe"
	"github.com/agentstation/revcheck/pkg/errors"
	"github.com/agentstation/revcheck/pkg/ledger"
	"github.com/agentstation/revcheck/pkg/logging"
	"github.com/agentstation/revcheck/pkg/prepare"
	"github.com/agentstation/revcheck/pkg/summary"
)

// Reconciler annotates a client table against a home catalog.
type Reconciler interface {
	// Reconcile works on copies of both tables; the inputs are not modified.
	// It fails only for nil tables or a canceled context. Schema problems
	// are reported as warnings on the result.
	Reconcile(ctx context.Context, client, home *ledger.Table) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	chain         *matcher.Chain
	classify      matcher.ClassifyFunc
	concurrency   int
	progressEvery int
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &reconciler{
		chain:         matcher.NewChain(options.tiers...),
		classify:      options.classify,
		concurrency:   options.concurrency,
		progressEvery: options.progressEvery,
	}, nil
}

// Reconcile performs the run with a clean step-by-step flow.
func (r *reconciler) Reconcile(ctx context.Context, client, home *ledger.Table) (*Result, error) {
	if client == nil || home == nil {
		return nil, &errors.ValidationError{
			Field:   "tables",
			Message: "client and home tables are required",
		}
	}

	start := time.Now()
	logger := logging.FromContext(ctx)
	result := &Result{
		Client: client.Clone(),
		Home:   home.Clone(),
	}

	// Step 1: Prepare client revisions and hints
	prepStats := prepare.Client(logging.WithTable(ctx, result.Client.Name), result.Client)
	result.Warnings = append(result.Warnings, prepStats.Warnings...)

	// Step 2: Deduplicate the home catalog
	dedupeStats := dedupe.Home(logging.WithTable(ctx, result.Home.Name), result.Home)
	result.Warnings = append(result.Warnings, dedupeStats.Warnings...)

	// Step 3: Match and classify each client row
	catalog := ledger.NewHomeCatalog(result.Home)
	records := ledger.ClientRecords(result.Client)
	outcomes, err := r.classifyAll(logging.WithStage(ctx, "match"), records, catalog)
	if err != nil {
		return nil, err
	}

	// Step 4: Write verdicts back and summarise
	ledger.WriteBack(result.Client, records)
	result.Records = records
	result.Summary = summary.Of(records)

	end := time.Now()
	result.Metadata = ResultMetadata{
		StartTime:   start,
		EndTime:     end,
		Duration:    end.Sub(start),
		Tiers:       r.tierNames(),
		Concurrency: r.concurrency,
		Stats:       r.statistics(prepStats, dedupeStats, outcomes),
	}
	result.Metadata.Stats.TotalTimeMs = result.Metadata.Duration.Milliseconds()

	logger.Info().
		Int("total", result.Summary.Total).
		Int("verified", result.Summary.Verified).
		Int("needs_check", result.Summary.NeedsCheck).
		Int("not_found", result.Summary.NotFound).
		Dur("duration", result.Metadata.Duration).
		Msg("Comparison completed")

	return result, nil
}

// classifyAll resolves every record and applies its verdict. Each worker
// writes only its own record and outcome slot.
func (r *reconciler) classifyAll(ctx context.Context, records []ledger.ClientRecord, catalog *ledger.HomeCatalog) ([]ledger.Outcome, error) {
	logger := logging.FromContext(ctx)
	outcomes := make([]ledger.Outcome, len(records))
	total := len(records)
	var done atomic.Int64

	classifyRow := func(i int) {
		rec := &records[i]
		outcome := r.chain.Resolve(*rec, catalog, r.classify)
		if outcome.Handled {
			rec.Apply(outcome)
		} else {
			rec.Result = constants.ResultNotFound
		}
		outcomes[i] = outcome
		r.logRow(ctx, rec, outcome)

		n := done.Add(1)
		if r.progressEvery > 0 && n%int64(r.progressEvery) == 0 {
			logger.Info().Int64("row", n).Int("total", total).Msg("Processing rows")
		}
	}

	if r.concurrency <= 1 {
		for i := range records {
			if err := ctx.Err(); err != nil {
				return nil, errors.WrapResource("classify", "client rows", "", err)
			}
			classifyRow(i)
		}
		return outcomes, nil
	}

	p := pool.New().WithContext(ctx).WithMaxGoroutines(r.concurrency).WithCancelOnError()
	for i := range records {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			classifyRow(i)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, errors.WrapResource("classify", "client rows", "", err)
	}
	return outcomes, nil
}

func (r *reconciler) logRow(ctx context.Context, rec *ledger.ClientRecord, outcome ledger.Outcome) {
	if logging.FromContext(ctx).GetLevel() > zerolog.DebugLevel {
		return
	}
	logging.FromContext(logging.WithRow(ctx, rec.Index+1)).Debug().
		Str("doc_no", rec.DocNumber.String()).
		Str("revision_no", rec.RevisionNo.String()).
		Str("formatted", rec.FormattedHint.String()).
		Str("tier", outcome.Tier).
		Int("candidates", outcome.Candidates).
		Str("result", rec.Result).
		Msg("Classified client row")
}

func (r *reconciler) tierNames() []string {
	tiers := r.chain.Tiers()
	names := make([]string, len(tiers))
	for i, t := range tiers {
		names[i] = t.Type().String()
	}
	return names
}

func (r *reconciler) statistics(p prepare.Stats, d dedupe.Stats, outcomes []ledger.Outcome) ResultStatistics {
	stats := ResultStatistics{
		ClientRows:        p.Rows,
		HomeRows:          d.Rows,
		HomeKept:          d.Kept,
		DuplicatesRemoved: d.Removed,
		RevisionsCleaned:  p.Cleaned,
		Hinted:            p.Hinted,
		TierHits:          make(map[string]int),
	}
	for _, o := range outcomes {
		if !o.Handled {
			stats.Unmatched++
			continue
		}
		stats.TierHits[o.Tier]++
		if o.Duplicated() {
			stats.Duplicated++
		}
		if o.Note == constants.NoteNoRevisionDate {
			stats.NoRevisionDate++
		}
	}
	return stats
}
