package brands

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Synonyms maps a brand alias as it appears in the management system to
// its canonical marketplace name. Lookup is total: unknown brands map to
// themselves.
type Synonyms map[string]string

// LoadSynonyms reads the externally maintained brands CSV. Expected
// columns: Brand, Match.
func LoadSynonyms(path string) (Synonyms, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open brands file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read brands file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("brands file %s is empty", path)
	}

	header := records[0]
	colBrand, colMatch := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "Brand":
			colBrand = i
		case "Match":
			colMatch = i
		}
	}
	if colBrand < 0 || colMatch < 0 {
		return nil, fmt.Errorf("brands file %s: expected Brand and Match columns", path)
	}

	out := make(Synonyms, len(records)-1)
	for _, rec := range records[1:] {
		if colBrand >= len(rec) || colMatch >= len(rec) {
			continue
		}
		brand := strings.TrimSpace(rec[colBrand])
		match := strings.TrimSpace(rec[colMatch])
		if brand == "" {
			continue
		}
		out[brand] = match
	}
	return out, nil
}

// Apply returns the canonical name for brand, or brand itself when no
// synonym is known.
func (s Synonyms) Apply(brand string) string {
	if canonical, ok := s[brand]; ok {
		return canonical
	}
	return brand
}
