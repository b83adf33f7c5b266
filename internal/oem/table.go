// Package oem links article codes to original-equipment references.
package oem

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"stockfeed/internal/model"
)

const (
	oemFilePrefix = "oemsDC"
	oemFileSuffix = ".csv"

	// joinSep separates multiple OE references cited for one article.
	joinSep = " | "
)

type key struct {
	code  string
	brand string
}

// Table maps (article code, 5-char brand prefix) pairs to the OE codes
// cited for them. A single article can carry several references.
type Table struct {
	refs map[key][]string
}

// LoadFolder reads every oemsDC*.csv file in dir and merges the rows
// into one lookup table. Each file is a 3-column CSV with a header:
// article code, brand, OE code.
func LoadFolder(dir string) (*Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read oem folder: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, oemFilePrefix) && strings.HasSuffix(name, oemFileSuffix) {
			files = append(files, filepath.Join(dir, name))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s*%s files in %s", oemFilePrefix, oemFileSuffix, dir)
	}
	sort.Strings(files)

	t := &Table{refs: make(map[key][]string)}
	for _, path := range files {
		if err := t.loadFile(path); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open oem file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("read oem file %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil
	}

	// Columns are addressed by header name; the export tool has shuffled
	// their order between revisions.
	codeCol, refCol, brandCol := -1, -1, -1
	for i, h := range records[0] {
		switch strings.TrimSpace(h) {
		case "article_altc":
			codeCol = i
		case "oem_number":
			refCol = i
		case "article_alt_brands":
			brandCol = i
		}
	}
	if codeCol < 0 || refCol < 0 || brandCol < 0 {
		return fmt.Errorf("oem file %s: missing expected columns", filepath.Base(path))
	}

	for _, rec := range records[1:] {
		if len(rec) <= codeCol || len(rec) <= refCol || len(rec) <= brandCol {
			continue
		}
		code := strings.TrimSpace(rec[codeCol])
		brand := brandKey(strings.TrimSpace(rec[brandCol]))
		// OE numbers are matched as space-delimited tokens later, so any
		// internal spaces are removed here.
		ref := strings.ReplaceAll(strings.TrimSpace(rec[refCol]), " ", "")
		if code == "" || ref == "" {
			continue
		}
		k := key{code: code, brand: brand}
		t.refs[k] = append(t.refs[k], ref)
	}
	return nil
}

// brandKey truncates a brand name to the 5-character prefix the OEM
// files are keyed on.
func brandKey(brand string) string {
	if len(brand) > 5 {
		return brand[:5]
	}
	return brand
}

// Len returns the number of distinct (code, brand) keys loaded.
func (t *Table) Len() int { return len(t.refs) }

// Resolve returns the joined OE references for an article. Brands on the
// ignore list get an empty reference, unknown articles get the Unknown
// OE sentinel.
func (t *Table) Resolve(code, brand string, ignored bool) string {
	if ignored {
		return ""
	}
	refs, ok := t.refs[key{code: code, brand: brandKey(brand)}]
	if !ok || len(refs) == 0 {
		return model.UnknownOE
	}
	return strings.Join(refs, joinSep)
}
