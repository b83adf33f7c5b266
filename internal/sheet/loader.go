package sheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SourceType tags which of the two management-system exports a workbook is.
type SourceType string

const (
	SourceWarehouse SourceType = "warehouse"
	SourceArticles  SourceType = "articles"
)

// ValidationError is a fatal structural problem in a source workbook. It
// carries enough context for the operator to find and fix the export.
type ValidationError struct {
	File   string
	Sheet  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("%s: sheet %q: %s", e.File, e.Sheet, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Reason)
}

// Table is a validated, concatenated workbook: one header plus all data
// rows from the accepted sheets, in file order.
type Table struct {
	Header []string
	Rows   [][]string
}

// The export tool emits helper columns prefixed with this; they are
// artifacts, not data.
const internalColumnPrefix = "mgs"

// isUnnamed reports whether a header cell is an auto-generated placeholder.
// The export leaves those cells blank.
func isUnnamed(h string) bool {
	return strings.TrimSpace(h) == ""
}

// isFirstSheetHeader checks the signature of the header-bearing sheet:
// positions 1-5 are placeholders while 0 and 6 carry real labels.
func isFirstSheetHeader(header []string) bool {
	if len(header) < 7 {
		return false
	}
	for i := 1; i <= 5; i++ {
		if !isUnnamed(header[i]) {
			return false
		}
	}
	return !isUnnamed(header[0]) && !isUnnamed(header[6])
}

// isContinuationHeader checks the looser signature of follow-on sheets:
// exactly 6 columns with real labels at positions 1 and 2.
func isContinuationHeader(header []string) bool {
	if len(header) != 6 {
		return false
	}
	return !isUnnamed(header[1]) && !isUnnamed(header[2])
}

// LoadWorkbook reads a multi-sheet export, validates the sheet shapes and
// returns one concatenated table. The first sheet must match the header
// signature (fatal otherwise); continuation sheets that do not match their
// signature are skipped silently, everything else is aligned positionally
// to the first sheet's columns.
func LoadWorkbook(path string, src SourceType) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s workbook: %w", src, err)
	}
	defer f.Close()

	return loadWorkbook(f, filepath.Base(path), src)
}

func loadWorkbook(f *excelize.File, name string, src SourceType) (*Table, error) {
	var (
		header    []string
		keepCols  []int
		combined  [][]string
		validated bool
	)

	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
		}
		if len(rows) == 0 {
			if !validated {
				return nil, &ValidationError{File: name, Sheet: sheetName, Reason: "first sheet is empty"}
			}
			continue
		}

		sheetHeader := rows[0]

		if !validated {
			if !isFirstSheetHeader(sheetHeader) {
				return nil, &ValidationError{
					File:   name,
					Sheet:  sheetName,
					Reason: fmt.Sprintf("first sheet does not match the expected %s layout", src),
				}
			}
			// Drop internal export-tool columns; everything downstream is
			// positional against what remains.
			for i, h := range sheetHeader {
				if strings.HasPrefix(strings.TrimSpace(h), internalColumnPrefix) {
					continue
				}
				keepCols = append(keepCols, i)
			}
			header = make([]string, 0, len(keepCols))
			for _, i := range keepCols {
				header = append(header, strings.TrimSpace(sheetHeader[i]))
			}
			combined = appendProjected(combined, rows[1:], keepCols)
			validated = true
			continue
		}

		if !isContinuationHeader(sheetHeader) {
			continue
		}
		// Continuation sheets are aligned by position, not by header name:
		// their labels are reassigned to the first sheet's columns.
		combined = appendAligned(combined, rows[1:], len(header))
	}

	if !validated {
		return nil, &ValidationError{File: name, Reason: fmt.Sprintf("no sheets found in the %s workbook", src)}
	}

	table := &Table{Header: header, Rows: dropArtifactRows(combined)}
	return table, nil
}

// appendProjected keeps only the given column indices of each row, padded
// out to the full width where the sheet left trailing cells empty.
func appendProjected(dst [][]string, rows [][]string, cols []int) [][]string {
	for _, row := range rows {
		out := make([]string, len(cols))
		for j, i := range cols {
			if i < len(row) {
				out[j] = row[i]
			}
		}
		dst = append(dst, out)
	}
	return dst
}

// appendAligned pads or truncates each row to the combined width.
func appendAligned(dst [][]string, rows [][]string, width int) [][]string {
	for _, row := range rows {
		out := make([]string, width)
		copy(out, row)
		dst = append(dst, out)
	}
	return dst
}

// dropArtifactRows removes the export tool's filler rows, recognizable by
// a blank or lone-dot third column. The cell is compared as-is: a padded
// dot is data, not filler.
func dropArtifactRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		v := ""
		if len(row) > 2 {
			v = row[2]
		}
		if v == "" || v == "." {
			continue
		}
		out = append(out, row)
	}
	return out
}
