package brands

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTecDocFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tecdoc_brand_id.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write tecdoc file: %v", err)
	}
	return path
}

func loadTestCatalog(t *testing.T) *TecDocTable {
	t.Helper()
	table, err := LoadTecDoc(writeTecDocFile(t,
		"id,name\n"+
			"101,BOSCH\n"+
			"201,FILTEX\n"+
			"202,FILTECH\n"+
			"301,METALCAUCHO\n"+
			"302,MOTORCRAFT\n"))
	if err != nil {
		t.Fatalf("load tecdoc: %v", err)
	}
	return table
}

func TestTecDocResolvePrefixMatch(t *testing.T) {
	t.Parallel()

	table := loadTestCatalog(t)

	brand, id := table.Resolve("BOSCH")
	if brand != "BOSCH" || id != "101" {
		t.Fatalf("exact: got %q/%q", brand, id)
	}

	// First catalog entry starting with the prefix wins; FILTEX precedes
	// FILTECH in the file.
	brand, id = table.Resolve("FILTE")
	if brand != "FILTEX" || id != "201" {
		t.Fatalf("prefix order: got %q/%q", brand, id)
	}
}

func TestTecDocResolveSkipList(t *testing.T) {
	t.Parallel()

	table := loadTestCatalog(t)
	brand, id := table.Resolve("CONTI")
	if brand != "CONTI" || id != MissingTecDocID {
		t.Fatalf("skip list: got %q/%q", brand, id)
	}
}

func TestTecDocResolveManualOverride(t *testing.T) {
	t.Parallel()

	table := loadTestCatalog(t)
	brand, id := table.Resolve("METAL")
	if brand != "METALCAUCHO" || id != "301" {
		t.Fatalf("manual override: got %q/%q", brand, id)
	}
	brand, id = table.Resolve("MOTO")
	if brand != "MOTORCRAFT" || id != "302" {
		t.Fatalf("manual override: got %q/%q", brand, id)
	}
}

func TestTecDocResolveNoMatch(t *testing.T) {
	t.Parallel()

	table := loadTestCatalog(t)
	brand, id := table.Resolve("ZZZZZ")
	if brand != "ZZZZZ" || id != MissingTecDocID {
		t.Fatalf("no match: got %q/%q", brand, id)
	}
}

func TestRenameAndBrandFlags(t *testing.T) {
	t.Parallel()

	if got := Rename("MERC"); got != "MERCEDES" {
		t.Fatalf("rename: got %q", got)
	}
	if got := Rename("BOSCH"); got != "BOSCH" {
		t.Fatalf("rename identity: got %q", got)
	}

	if !IsOriginalEquipment("MERCEDES") || IsOriginalEquipment("BOSCH") {
		t.Fatalf("original-equipment classification wrong")
	}

	if !DroppedBeforeRename("BEX") || !DroppedBeforeRename("RESO") {
		t.Fatalf("pre-rename drop set wrong")
	}
	if !DroppedAfterPricing("RCS") || !DroppedAfterPricing("CC") {
		t.Fatalf("post-pricing drop set wrong")
	}
	if DroppedBeforeRename("BOSCH") || DroppedAfterPricing("BOSCH") {
		t.Fatalf("regular brand in a drop set")
	}
}
