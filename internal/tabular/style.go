package tabular

import (
	"context"
	"io"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/revcheck/pkg/constants"
	"github.com/agentstation/revcheck/pkg/errors"
	"github.com/agentstation/revcheck/pkg/ledger"
	"github.com/agentstation/revcheck/pkg/logging"
)

// Highlights holds the background colors for a row's Result and Note
// cells. An empty color means no fill.
type Highlights struct {
	Result string
	Note   string
}

// Highlight picks fills from the verdict text: red for "Not found", yellow
// for a mismatch detail (any text with "/" other than "Verified") and yellow
// on the note when no revision date was given.
func Highlight(result, note string) Highlights {
	var h Highlights
	switch {
	case strings.Contains(result, constants.ResultNotFound):
		h.Result = constants.FillNotFound
	case strings.Contains(result, "/") && result != constants.ResultVerified:
		h.Result = constants.FillNeedsCheck
	}
	if strings.Contains(note, constants.NoteNoRevisionDate) {
		h.Note = constants.FillNeedsCheck
	}
	return h
}

// StyleWorkbook fills the Result and Note cells of the active sheet at
// path according to Highlight and saves the workbook in place. It returns
// the number of cells filled.
func StyleWorkbook(ctx context.Context, path string) (int, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return 0, errors.WrapIO("open", path, err)
	}
	defer func() { _ = wb.Close() }()

	sheet := wb.GetSheetName(wb.GetActiveSheetIndex())
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return 0, errors.WrapParse("xlsx", path, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	header := ledger.NewTable(path, rows[0]...)
	resultCol := headerIndex(header, constants.ColumnResult)
	noteCol := headerIndex(header, constants.ColumnNote)
	if resultCol < 0 && noteCol < 0 {
		logging.FromContext(ctx).Warn().Str("path", path).Msg("No Result or Note column to style")
		return 0, nil
	}

	styles := map[string]int{}
	fill := func(col, row int, color string) error {
		if color == "" || col < 0 {
			return nil
		}
		id, ok := styles[color]
		if !ok {
			created, styleErr := wb.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
			})
			if styleErr != nil {
				return styleErr
			}
			id = created
			styles[color] = id
		}
		cell, err := excelize.CoordinatesToCellName(col+1, row+1)
		if err != nil {
			return err
		}
		return wb.SetCellStyle(sheet, cell, cell, id)
	}

	filled := 0
	for r := 1; r < len(rows); r++ {
		h := Highlight(cellAt(rows[r], resultCol), cellAt(rows[r], noteCol))
		if err := fill(resultCol, r, h.Result); err != nil {
			return filled, errors.WrapIO("style", path, err)
		}
		if err := fill(noteCol, r, h.Note); err != nil {
			return filled, errors.WrapIO("style", path, err)
		}
		if h.Result != "" && resultCol >= 0 {
			filled++
		}
		if h.Note != "" && noteCol >= 0 {
			filled++
		}
	}

	if err := writeAtomic(path, func(w io.Writer) error { return wb.Write(w) }); err != nil {
		return filled, err
	}

	logging.FromContext(ctx).Debug().Str("path", path).Int("cells", filled).Msg("Applied cell colors")
	return filled, nil
}

// headerIndex locates name the same way the engine does, ignoring case and
// spacing, or returns -1.
func headerIndex(header *ledger.Table, name string) int {
	col, ok := header.Column(name)
	if !ok {
		return -1
	}
	return slices.Index(header.Columns, col)
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
