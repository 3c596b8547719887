// Package report renders a markdown summary of a revision check run.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/revcheck/pkg/constants"
	"github.com/agentstation/revcheck/pkg/errors"
	"github.com/agentstation/revcheck/pkg/logging"
	"github.com/agentstation/revcheck/pkg/reconciler"
)

// Input is everything a report describes.
type Input struct {
	ClientPath string
	HomePath   string
	OutputPath string
	Result     *reconciler.Result
	// GeneratedAt defaults to the result's end time.
	GeneratedAt time.Time
}

// Write renders the report to w.
func Write(w io.Writer, in Input) error {
	if in.Result == nil {
		return &errors.ValidationError{Field: "result", Message: "cannot be nil"}
	}
	res := in.Result
	generated := in.GeneratedAt
	if generated.IsZero() {
		generated = res.Metadata.EndTime
	}

	doc := md.NewMarkdown(w)
	doc.H1("Revision Check Report").LF()
	doc.PlainTextf("Generated %s in %s.", generated.Format(constants.TimeFormatHuman), res.Metadata.Duration.Round(time.Millisecond)).LF().LF()

	doc.H2("Inputs").LF()
	doc.BulletList(
		pathItem("Client", in.ClientPath),
		pathItem("Home", in.HomePath),
		pathItem("Output", in.OutputPath),
	)
	doc.LF()

	doc.H2("Summary").LF()
	rows := [][]string{}
	for _, line := range res.Summary.Lines() {
		rows = append(rows, []string{line.Category, strconv.Itoa(line.Count), line.Percent})
	}
	rows = append(rows, []string{md.Bold("Total"), strconv.Itoa(res.Summary.Total), ""})
	doc.Table(md.TableSet{Header: []string{"Category", "Count", "Percent"}, Rows: rows}).LF()

	doc.H2("Matching").LF()
	doc.Table(md.TableSet{Header: []string{"Measure", "Value"}, Rows: matchingRows(res)}).LF()

	if res.HasWarnings() {
		doc.H2("Warnings").LF()
		doc.BulletList(res.Warnings...)
		doc.LF()
	}

	unverified := res.Unverified()
	doc.H2("Rows Needing Attention").LF()
	if len(unverified) == 0 {
		doc.PlainText("Every row was verified.").LF()
	} else {
		attention := make([][]string, 0, len(unverified))
		for _, rec := range unverified {
			attention = append(attention, []string{
				strconv.Itoa(rec.Index + 1),
				cell(rec.DocNumber.String()),
				cell(rec.RevisionNo.String()),
				cell(rec.RevisionDate.String()),
				cell(rec.Result),
				cell(rec.DocCallNumber),
				cell(rec.Note),
			})
		}
		doc.Table(md.TableSet{
			Header: []string{"Row", constants.ColumnDocNo, constants.ColumnRevisionNo, constants.ColumnRevDate,
				constants.ColumnResult, constants.ColumnDocCallNumber, constants.ColumnNote},
			Rows: attention,
		})
	}

	return doc.Build()
}

// WriteFile renders the report to path, creating parent directories.
func WriteFile(ctx context.Context, path string, in Input) error {
	var buf bytes.Buffer
	if err := Write(&buf, in); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	logging.FromContext(ctx).Info().Str("path", path).Msg("Report written")
	return nil
}

func matchingRows(res *reconciler.Result) [][]string {
	stats := res.Metadata.Stats
	rows := [][]string{
		{"Home rows loaded", strconv.Itoa(stats.HomeRows)},
		{"Home duplicates removed", strconv.Itoa(stats.DuplicatesRemoved)},
		{"Client revisions cleaned", strconv.Itoa(stats.RevisionsCleaned)},
		{"Client rows with a hint", strconv.Itoa(stats.Hinted)},
	}
	for _, tier := range res.Metadata.Tiers {
		rows = append(rows, []string{"Matched by " + tier, strconv.Itoa(stats.TierHits[tier])})
	}
	// Tiers supplied by custom options may not be listed in Metadata.Tiers.
	var extra []string
	for tier := range stats.TierHits {
		if !slices.Contains(res.Metadata.Tiers, tier) {
			extra = append(extra, tier)
		}
	}
	slices.Sort(extra)
	for _, tier := range extra {
		rows = append(rows, []string{"Matched by " + tier, strconv.Itoa(stats.TierHits[tier])})
	}
	rows = append(rows,
		[]string{"Unmatched", strconv.Itoa(stats.Unmatched)},
		[]string{"Duplicated candidates", strconv.Itoa(stats.Duplicated)},
		[]string{"Missing revision date", strconv.Itoa(stats.NoRevisionDate)},
	)
	return rows
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// pathItem renders a path in code style, or a bare dash when it is unset.
func pathItem(label, path string) string {
	if path == "" {
		return label + ": -"
	}
	return label + ": " + md.Code(path)
}

// Filename returns a timestamped report name such as revcheck-20240102-150405.md.
func Filename(t time.Time) string {
	return fmt.Sprintf("revcheck-%s.md", t.Format(constants.TimeFormatFilename))
}
