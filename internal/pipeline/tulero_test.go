package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"stockfeed/internal/brands"
	"stockfeed/internal/model"
	"stockfeed/internal/oem"
	"stockfeed/internal/pricing"
)

func testOEMTable(t *testing.T, content string) *oem.Table {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "oemsDC1.csv"), []byte(content), 0644); err != nil {
		t.Fatalf("write oem file: %v", err)
	}
	table, err := oem.LoadFolder(dir)
	if err != nil {
		t.Fatalf("load oem folder: %v", err)
	}
	return table
}

func tuleroInputs(t *testing.T, oemCSV string) TuleroInputs {
	t.Helper()
	return TuleroInputs{
		OEM:      testOEMTable(t, oemCSV),
		Synonyms: brands.Synonyms{},
		Ignored:  brands.Ignored,
		Pricing: pricing.Params{
			Markup:   mustDec("1.25"),
			Shipping: mustDec("7.50"),
		},
	}
}

func TestBuildTuleroIgnoredBrandRow(t *testing.T) {
	t.Parallel()

	rows := []model.MergedRow{{
		ProductCode: "1905983",
		Brand:       "IVECO",
		Description: "CUSCINETTO",
		Stock:       mustDec("5"),
		UnitCost:    mustDec("10.00"),
		Location:    "A.12",
	}}

	out := BuildTulero(rows, tuleroInputs(t,
		"article_altc,oem_number,article_alt_brands\n1905983,500012345,IVECO\n"))

	if len(out) != 1 {
		t.Fatalf("rows: got %d want 1", len(out))
	}
	row := out[0]
	if row.OEMCode != "" || row.CrossCodes != "" {
		t.Fatalf("ignored brand kept OE data: %+v", row)
	}
	// 10.00 * 1.25 = 12.50, + 7.50 = 20.00, fraction 0 rounds a unit down.
	if !row.Price.Equal(mustDec("19.9")) {
		t.Fatalf("price: got %s want 19.9", row.Price)
	}
}

func TestBuildTuleroCrossCodes(t *testing.T) {
	t.Parallel()

	rows := []model.MergedRow{
		{ProductCode: "A1", Brand: "BOSCH", Stock: mustDec("1"), UnitCost: mustDec("10")},
		{ProductCode: "B2", Brand: "FEBI", Stock: mustDec("1"), UnitCost: mustDec("10")},
	}

	out := BuildTulero(rows, tuleroInputs(t,
		"article_altc,oem_number,article_alt_brands\n"+
			"A1,12345,BOSCH\n"+
			"B2,12345,FEBI\n"))

	if len(out) != 2 {
		t.Fatalf("rows: got %d want 2", len(out))
	}
	if out[0].OEMCode != "12345" || out[1].OEMCode != "12345" {
		t.Fatalf("oem codes: %+v", out)
	}
	if out[0].CrossCodes != "B2" || out[1].CrossCodes != "A1" {
		t.Fatalf("cross codes not symmetric: %+v", out)
	}
}

func TestBuildTuleroUnknownOE(t *testing.T) {
	t.Parallel()

	rows := []model.MergedRow{
		{ProductCode: "X9", Brand: "UFI", Stock: mustDec("1"), UnitCost: mustDec("10")},
	}

	out := BuildTulero(rows, tuleroInputs(t,
		"article_altc,oem_number,article_alt_brands\nA1,12345,BOSCH\n"))

	if len(out) != 1 || out[0].OEMCode != model.UnknownOE {
		t.Fatalf("unknown OE sentinel missing: %+v", out)
	}
}

func TestBuildTuleroThreshold(t *testing.T) {
	t.Parallel()

	rows := []model.MergedRow{
		{ProductCode: "X9", Brand: "UFI", Stock: mustDec("1"), UnitCost: mustDec("2.00")},
		{ProductCode: "Y8", Brand: "UFI", Stock: mustDec("1"), UnitCost: mustDec("10.00")},
	}

	out := BuildTulero(rows, tuleroInputs(t,
		"article_altc,oem_number,article_alt_brands\nA1,12345,BOSCH\n"))

	if len(out) != 1 || out[0].ProductCode != "Y8" {
		t.Fatalf("cheap row not rejected: %+v", out)
	}
}

func TestBuildTuleroRewriteIntoIgnoredSet(t *testing.T) {
	t.Parallel()

	// "IVECO SPA" is not ignored, so its row resolves an OE reference and
	// takes part in cross-referencing. The synonym rewrite then lands it
	// on the ignored "IVECO", which must blank its own OE data while the
	// crosses it contributed to other rows survive.
	in := tuleroInputs(t,
		"article_altc,oem_number,article_alt_brands\n"+
			"A1,12345,IVECO SPA\n"+
			"B2,12345,BOSCH\n")
	in.Synonyms = brands.Synonyms{"IVECO SPA": "IVECO"}

	rows := []model.MergedRow{
		{ProductCode: "A1", Brand: "IVECO SPA", Stock: mustDec("1"), UnitCost: mustDec("10")},
		{ProductCode: "B2", Brand: "BOSCH", Stock: mustDec("1"), UnitCost: mustDec("10")},
	}
	out := BuildTulero(rows, in)

	if len(out) != 2 {
		t.Fatalf("rows: got %d want 2", len(out))
	}
	rewritten := out[0]
	if rewritten.Brand != "IVECO" {
		t.Fatalf("synonym not applied: %+v", rewritten)
	}
	if rewritten.OEMCode != "" || rewritten.CrossCodes != "" {
		t.Fatalf("row rewritten into the ignored set kept OE data: %+v", rewritten)
	}
	// The alias contributed under its pre-rewrite identity.
	if out[1].OEMCode != "12345" || out[1].CrossCodes != "A1" {
		t.Fatalf("cross contribution lost: %+v", out[1])
	}
}

func TestBuildTuleroSynonymRewrite(t *testing.T) {
	t.Parallel()

	in := tuleroInputs(t,
		"article_altc,oem_number,article_alt_brands\nA1,12345,ERREVI SPA\n")
	in.Synonyms = brands.Synonyms{"ERREVI SPA": "ERREVI"}

	rows := []model.MergedRow{
		{ProductCode: "A1", Brand: "ERREVI SPA", Stock: mustDec("1"), UnitCost: mustDec("10")},
	}
	out := BuildTulero(rows, in)
	if len(out) != 1 || out[0].Brand != "ERREVI" {
		t.Fatalf("synonym not applied: %+v", out)
	}
	if out[0].OEMCode != "12345" {
		t.Fatalf("oem lost on rewrite: %+v", out)
	}
}
