// Package tabular reads and writes the spreadsheets a revision check works
// on. CSV and Excel workbooks are supported; both load into a ledger.Table
// with normalized headers and write back with the same column order.
package tabular

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	pkgerrors "github.com/agentstation/revcheck/pkg/errors"
	"github.com/agentstation/revcheck/pkg/ledger"
	"github.com/agentstation/revcheck/pkg/logging"
)

// Format is a spreadsheet file format.
type Format string

const (
	// FormatCSV is comma separated text, UTF-8.
	FormatCSV Format = "csv"
	// FormatXLSX is an Office Open XML workbook.
	FormatXLSX Format = "xlsx"
)

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", &pkgerrors.ParseError{
			Format:  strings.TrimPrefix(filepath.Ext(path), "."),
			File:    path,
			Message: "unsupported spreadsheet format (want .csv or .xlsx)",
			Err:     pkgerrors.ErrUnsupportedFormat,
		}
	}
}

// Read loads the spreadsheet at path. The table is named after the file.
func Read(ctx context.Context, path string) (*ledger.Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var t *ledger.Table
	switch format {
	case FormatXLSX:
		t, err = ReadXLSX(f, name)
	default:
		t, err = ReadCSV(f, name)
	}
	if err != nil {
		var parseErr *pkgerrors.ParseError
		if errors.As(err, &parseErr) && parseErr.File == "" {
			parseErr.File = path
		}
		return nil, err
	}

	logging.FromContext(ctx).Debug().
		Str("path", path).
		Str("format", string(format)).
		Int("rows", t.Len()).
		Int("columns", len(t.Columns)).
		Msg("Loaded spreadsheet")
	return t, nil
}

// ReadCSV parses UTF-8 CSV. Ragged rows are tolerated, blank lines skipped.
func ReadCSV(r io.Reader, name string) (*ledger.Table, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && string(head) == bom {
		_, _ = br.Discard(len(bom))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			return nil, &pkgerrors.ParseError{Format: "csv", Line: csvErr.Line, Message: csvErr.Err.Error(), Err: err}
		}
		return nil, pkgerrors.WrapParse("csv", "", err)
	}
	return build(name, records, "csv")
}

// ReadXLSX reads the first worksheet of a workbook.
func ReadXLSX(r io.Reader, name string) (*ledger.Table, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, pkgerrors.WrapParse("xlsx", "", err)
	}
	defer func() { _ = wb.Close() }()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, &pkgerrors.ParseError{Format: "xlsx", Message: "workbook has no sheets"}
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, pkgerrors.WrapParse("xlsx", "", err)
	}
	return build(name, rows, "xlsx")
}

// build turns raw records (header first) into a table, skipping blank rows.
func build(name string, records [][]string, format string) (*ledger.Table, error) {
	var rows [][]string
	for _, rec := range records {
		if !blank(rec) {
			rows = append(rows, rec)
		}
	}
	if len(rows) == 0 {
		return nil, &pkgerrors.ParseError{Format: format, Message: "no header row"}
	}

	width := 0
	for _, rec := range rows {
		width = max(width, len(rec))
	}

	t := ledger.NewTable(name, normalizeHeaders(rows[0], width)...)
	for _, rec := range rows[1:] {
		t.AppendRow(rec...)
	}
	return t, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
