package ledger

import (
	"github.com/agentstation/revcheck/pkg/constants"
)

// ClientRecord is one row of the client ledger. Identity is the row index;
// client records are annotated but never merged or removed.
type ClientRecord struct {
	Index         int
	DocNumber     Value
	RevisionNo    Value
	RevisionDate  Value
	FormattedHint Value

	// Engine-owned output fields.
	Result        string
	DocCallNumber string
	Note          string
}

// HomeRecord is one row of the home catalog.
type HomeRecord struct {
	Index               int
	DocumentNumber      Value
	Title               Value
	RevisionNum         Value
	RevisionDate        Value
	RevisionDescription Value
	CallNumber          Value
}

// Outcome is the verdict produced for one client record by one matching tier.
type Outcome struct {
	// Handled reports whether the tier produced a verdict. Unhandled
	// outcomes leave the record untouched.
	Handled bool

	Result        string
	DocCallNumber string
	Note          string

	// Candidates is the number of home records the verdict was built from.
	Candidates int
	// Tier names the matching tier that produced the candidates.
	Tier string
}

// Duplicated reports whether more than one candidate contributed.
func (o Outcome) Duplicated() bool {
	return o.Candidates > 1
}

// Apply merges a handled outcome into the record's output fields.
func (r *ClientRecord) Apply(o Outcome) {
	if !o.Handled {
		return
	}
	r.Result = o.Result
	r.DocCallNumber = o.DocCallNumber
	r.Note = o.Note
}

// ClientRecords builds a record per client row. Missing columns read as
// Unknown and output fields start empty, so stale verdicts from a previous
// run are never carried over.
func ClientRecords(t *Table) []ClientRecord {
	records := make([]ClientRecord, t.Len())
	for i := range records {
		records[i] = ClientRecord{
			Index:         i,
			DocNumber:     t.Value(i, constants.ColumnDocNo),
			RevisionNo:    t.Value(i, constants.ColumnRevisionNo),
			RevisionDate:  t.Value(i, constants.ColumnRevDate),
			FormattedHint: t.Value(i, constants.ColumnFormatted),
		}
	}
	return records
}

// HomeRecords builds a record per home row.
func HomeRecords(t *Table) []HomeRecord {
	records := make([]HomeRecord, t.Len())
	for i := range records {
		records[i] = HomeRecord{
			Index:               i,
			DocumentNumber:      t.Value(i, constants.ColumnDocumentNumber),
			Title:               t.Value(i, constants.ColumnTitle),
			RevisionNum:         t.Value(i, constants.ColumnRevisionNum),
			RevisionDate:        t.Value(i, constants.ColumnRevisionDate),
			RevisionDescription: t.Value(i, constants.ColumnRevisionDescription),
			CallNumber:          t.Value(i, constants.ColumnCallNumber),
		}
	}
	return records
}

// HomeCatalog is the read-only set of home records matched against.
type HomeCatalog struct {
	records []HomeRecord
}

// NewHomeCatalog builds a catalog from a (deduplicated) home table.
func NewHomeCatalog(t *Table) *HomeCatalog {
	return &HomeCatalog{records: HomeRecords(t)}
}

// CatalogOf wraps already-built records.
func CatalogOf(records ...HomeRecord) *HomeCatalog {
	return &HomeCatalog{records: records}
}

// Records returns the catalog's records. Callers must not modify them.
func (c *HomeCatalog) Records() []HomeRecord {
	if c == nil {
		return nil
	}
	return c.records
}

// Len returns the number of records.
func (c *HomeCatalog) Len() int {
	return len(c.Records())
}

// WriteBack stores every record's output fields in the client table,
// adding the Result, Doc Call Number and Note columns when absent.
func WriteBack(t *Table, records []ClientRecord) {
	resultCol := t.EnsureColumn(constants.ColumnResult)
	callCol := t.EnsureColumn(constants.ColumnDocCallNumber)
	noteCol := t.EnsureColumn(constants.ColumnNote)

	for _, r := range records {
		if r.Index < 0 || r.Index >= len(t.Rows) {
			continue
		}
		row := t.Rows[r.Index]
		row[resultCol] = r.Result
		row[callCol] = r.DocCallNumber
		row[noteCol] = r.Note
	}
}
