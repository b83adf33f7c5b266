package sheet

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func setRow(t *testing.T, f *excelize.File, sheet string, n int, cells []interface{}) {
	t.Helper()
	cell, _ := excelize.CoordinatesToCellName(1, n)
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		t.Fatalf("set row %d on %s: %v", n, sheet, err)
	}
}

// newExportWorkbook builds the typical management-system export shape: a
// header-bearing first sheet with the print-flag and internal columns,
// one continuation sheet and one unrelated sheet that must be skipped.
func newExportWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()

	// First sheet: labels at positions 0 and 6 only, the rest blank.
	setRow(t, f, "Sheet1", 1, []interface{}{
		"STAMPA ANAGRAFICA ARTICOLI", "", "", "", "", "", "mgs_internal",
	})
	setRow(t, f, "Sheet1", 2, []interface{}{
		"", "1905983", "IVECO", "CUSCINETTO", "A.12", "5", "x",
	})
	setRow(t, f, "Sheet1", 3, []interface{}{
		"", "77001", "BOSCH", "FILTRO OLIO", "B.03", "2,5", "x",
	})
	// Filler row, recognizable by the lone dot in the brand column.
	setRow(t, f, "Sheet1", 4, []interface{}{
		"", "", ".", "", "", "", "",
	})

	// Continuation sheet: six labeled columns, aligned by position.
	if _, err := f.NewSheet("Pagina2"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	setRow(t, f, "Pagina2", 1, []interface{}{
		"STAMPA", "CODICE", "MARCA", "DESCR", "UBIC", "GIAC",
	})
	setRow(t, f, "Pagina2", 2, []interface{}{
		"", "88002", "FEBI", "GIUNTO", "C.11", "1",
	})

	// Unrelated summary sheet, wrong shape, must be skipped silently.
	if _, err := f.NewSheet("Riepilogo"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	setRow(t, f, "Riepilogo", 1, []interface{}{"TOTALE", "123"})

	return f
}

func TestLoadWorkbookConcatenatesSheets(t *testing.T) {
	t.Parallel()

	f := newExportWorkbook(t)
	t.Cleanup(func() { _ = f.Close() })

	table, err := loadWorkbook(f, "warehouse.xls", SourceWarehouse)
	if err != nil {
		t.Fatalf("load workbook: %v", err)
	}

	if len(table.Header) != 6 {
		t.Fatalf("header width: got %d want 6 (%v)", len(table.Header), table.Header)
	}
	if table.Header[0] != "STAMPA ANAGRAFICA ARTICOLI" {
		t.Fatalf("header[0]: got %q", table.Header[0])
	}

	// Two data rows from the first sheet (filler dropped) plus one from
	// the continuation sheet.
	if len(table.Rows) != 3 {
		t.Fatalf("rows: got %d want 3 (%v)", len(table.Rows), table.Rows)
	}
	if table.Rows[0][1] != "1905983" || table.Rows[0][2] != "IVECO" {
		t.Fatalf("first row mismatch: %v", table.Rows[0])
	}
	if table.Rows[2][1] != "88002" || table.Rows[2][4] != "C.11" {
		t.Fatalf("continuation row mismatch: %v", table.Rows[2])
	}
	for _, row := range table.Rows {
		if len(row) != 6 {
			t.Fatalf("row width: got %d want 6 (%v)", len(row), row)
		}
	}
}

func TestLoadWorkbookDropsInternalColumns(t *testing.T) {
	t.Parallel()

	f := newExportWorkbook(t)
	t.Cleanup(func() { _ = f.Close() })

	table, err := loadWorkbook(f, "warehouse.xls", SourceWarehouse)
	if err != nil {
		t.Fatalf("load workbook: %v", err)
	}
	for _, h := range table.Header {
		if h == "mgs_internal" {
			t.Fatalf("internal column survived: %v", table.Header)
		}
	}
}

func TestDropArtifactRowsExactMatch(t *testing.T) {
	t.Parallel()

	rows := dropArtifactRows([][]string{
		{"", "1", "", "x"},    // blank third cell: filler
		{"", "2", ".", "x"},   // lone dot: filler
		{"", "3", " . ", "x"}, // padded dot is data
		{"", "4", "IVECO", "x"},
	})

	if len(rows) != 2 {
		t.Fatalf("rows: got %d want 2 (%v)", len(rows), rows)
	}
	if rows[0][2] != " . " || rows[1][2] != "IVECO" {
		t.Fatalf("wrong rows survived: %v", rows)
	}
}

func TestLoadWorkbookRejectsBadFirstSheet(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	// Fully labeled header does not match the export signature.
	setRow(t, f, "Sheet1", 1, []interface{}{
		"CODICE", "MARCA", "DESCR", "UBIC", "GIAC", "X", "Y",
	})

	_, err := loadWorkbook(f, "warehouse.xls", SourceWarehouse)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Sheet != "Sheet1" {
		t.Fatalf("error sheet: got %q", verr.Sheet)
	}
}
