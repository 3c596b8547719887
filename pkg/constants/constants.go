// Package constants provides shared constants used throughout the revcheck codebase.
// This includes the column names of the client ledger and home catalog, the verdict
// texts that downstream styling and reporting pattern-match on, file permissions,
// and default file names.
package constants

import "time"

// Client ledger column names as they appear after header normalization.
const (
	// ColumnDocNo is the client document number column.
	ColumnDocNo = "Doc. No."

	// ColumnRevisionNo is the client free-text revision column.
	ColumnRevisionNo = "Revision No."

	// ColumnRevDate is the client revision date column.
	ColumnRevDate = "Rev. Date"

	// ColumnFormatted holds the hint derived from Revision No. during preparation.
	ColumnFormatted = "Formatted"

	// ColumnResult is the engine-owned verdict column.
	ColumnResult = "Result"

	// ColumnDocCallNumber is the engine-owned call number column.
	ColumnDocCallNumber = "Doc Call Number"

	// ColumnNote is the engine-owned note column.
	ColumnNote = "Note"
)

// Home catalog column names.
const (
	ColumnDocumentNumber      = "Document Number"
	ColumnTitle               = "Title"
	ColumnRevisionNum         = "Revision Num"
	ColumnRevisionDate        = "Revision Date"
	ColumnRevisionDescription = "Revision Description"
	ColumnCallNumber          = "Call Number"
)

// Verdict and note texts. Styling and summary collaborators match on these literally.
const (
	// ResultVerified marks a client row whose revision and date were confirmed.
	ResultVerified = "Verified"

	// ResultNotFound marks a client row no tier could locate.
	ResultNotFound = "Not found"

	// ResultTRNotFound is reported by the TR comparison when no candidate carries detail.
	ResultTRNotFound = "TR not found"

	// NoteDuplicated is set when a tier yields more than one candidate.
	NoteDuplicated = "duplicated"

	// NoteNoRevisionDate is set when the client row carries no revision date.
	NoteNoRevisionDate = "No Revision Date is given"

	// CallNumberSeparator joins call numbers of duplicated candidates.
	CallNumberSeparator = ", "
)

// Highlight colours applied to the written workbook.
const (
	// FillNotFound is the background for "Not found" results.
	FillNotFound = "FFCCCC"

	// FillNeedsCheck is the background for mismatches and missing-date notes.
	FillNeedsCheck = "FFFF99"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default values
const (
	// DefaultOutputFile is the annotated workbook written when no output path is given.
	DefaultOutputFile = "result_one.xlsx"

	// DefaultFormattedFile is the intermediate prepared client table.
	DefaultFormattedFile = "client_formatted.csv"

	// DefaultProgressEvery is how many client rows pass between progress log lines.
	DefaultProgressEvery = 100

	// DefaultConcurrency classifies rows sequentially.
	DefaultConcurrency = 1

	// DefaultHistoryLimit is the number of runs listed by the history command.
	DefaultHistoryLimit = 20

	// DefaultSheetName is the sheet written to new workbooks.
	DefaultSheetName = "Sheet1"
)

// Timeout constants
const (
	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// ShutdownTimeout bounds cleanup after a failed command.
	ShutdownTimeout = 5 * time.Second
)

// Format constants
const (
	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm MST"

	// TimeFormatFilename is the format used in generated filenames
	TimeFormatFilename = "20060102-150405"
)
