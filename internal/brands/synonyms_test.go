package brands

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSynonymsAndApply(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "brands.csv")
	content := "Brand,Match\n" +
		"ERREVI SPA,ERREVI\n" +
		" FEBI , FEBI BILSTEIN \n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write brands file: %v", err)
	}

	syn, err := LoadSynonyms(path)
	if err != nil {
		t.Fatalf("load synonyms: %v", err)
	}

	if got := syn.Apply("ERREVI SPA"); got != "ERREVI" {
		t.Fatalf("apply: got %q", got)
	}
	// Values are trimmed on load.
	if got := syn.Apply("FEBI"); got != "FEBI BILSTEIN" {
		t.Fatalf("trimmed apply: got %q", got)
	}
	// Unknown brands map to themselves.
	if got := syn.Apply("BOSCH"); got != "BOSCH" {
		t.Fatalf("identity: got %q", got)
	}
}

func TestIgnoredSet(t *testing.T) {
	t.Parallel()

	if !Ignored.Contains("IVECO") || !Ignored.Contains("MERCEDES") {
		t.Fatalf("vehicle makers missing from the ignored set")
	}
	if Ignored.Contains("BOSCH") {
		t.Fatalf("aftermarket brand in the ignored set")
	}
}
