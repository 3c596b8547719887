package tabular

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/revcheck/pkg/constants"
	"github.com/agentstation/revcheck/pkg/errors"
	"github.com/agentstation/revcheck/pkg/ledger"
	"github.com/agentstation/revcheck/pkg/logging"
)

// Write stores t at path in the format implied by its extension. Parent
// directories are created. The file is replaced atomically.
func Write(ctx context.Context, path string, t *ledger.Table) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	err = writeAtomic(path, func(w io.Writer) error {
		if format == FormatXLSX {
			return WriteXLSX(w, t)
		}
		return WriteCSV(w, t)
	})
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Debug().
		Str("path", path).
		Str("format", string(format)).
		Int("rows", t.Len()).
		Msg("Wrote spreadsheet")
	return nil
}

// WriteCSV writes the header and every row in column order.
func WriteCSV(w io.Writer, t *ledger.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Records()); err != nil {
		return err
	}
	return cw.Error()
}

// WriteXLSX writes t to the first sheet of a new workbook.
func WriteXLSX(w io.Writer, t *ledger.Table) error {
	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()

	sheet := constants.DefaultSheetName
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, rec := range t.Records() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := make([]any, len(rec))
		for j, v := range rec {
			row[j] = v
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return wb.Write(w)
}

// writeAtomic writes through a temporary file in the destination directory
// and renames it over path, so readers never observe a partial file.
func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.WrapIO("sync", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.WrapIO("close", path, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		cleanup()
		return errors.WrapIO("chmod", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
