package brands

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Sentinels for articles that could not be linked to a TecDoc brand.
// ORIGINAL-type brands get the softer sentinel: the manufacturer itself
// is the official supplier, so a missing catalog ID is expected there.
const (
	MissingTecDocID    = "MISSING TECDOC ID"
	OfficialSupplierID = "MISSING / OFFICIAL SUPPLIER"
)

// tecdocSkipPrefixes are 5-character brand prefixes that must never be
// matched against the catalog (ambiguous or in-house codes).
var tecdocSkipPrefixes = map[string]struct{}{
	"CONTI": {},
	"FRA":   {},
	"LEMA":  {},
	"MAX":   {},
	"MIRA":  {},
	"NOVOC": {},
	"STAR":  {},
	"TEKNO": {},
	"TURBO": {},
}

// tecdocManualOverrides pins prefixes whose prefix match would land on
// the wrong catalog entry.
var tecdocManualOverrides = map[string]string{
	"METAL": "METALCAUCHO",
	"MOTO":  "MOTORCRAFT",
}

// tecdocRenames normalizes truncated prefixes to full brand names after
// ID resolution has run.
var tecdocRenames = map[string]string{
	"MERC":       "MERCEDES",
	"NISSA":      "NISSAN",
	"PEUGE":      "PEUGEOUT",
	"PIAGG":      "PIAGGIO",
	"RENAU":      "RENAULT",
	"SCANI":      "SCANIA",
	"TOYOT":      "TOYOTA",
	"VW":         "VOLKSWAGEN",
	"AREXO":      "AREXONS",
	"COSIB":      "COSIBO",
	"COSPE":      "COSPEL",
	"EMMER":      "EMMERRE",
	"ERREV":      "ERREVI",
	"PARTE":      "PARTEX",
	"URANI":      "URANIA",
	"MITSUBOSHI": "MITSUBISHI",
}

// originalEquipmentBrands marks vehicle makers: their rows are typed
// ORIGINAL in the Tyre24 feed, everything else is AFTERMARKET.
var originalEquipmentBrands = map[string]struct{}{
	"FIAT": {}, "IVECO": {}, "MAN": {}, "RENAULT": {}, "ASTRA": {},
	"AUDI": {}, "BPW": {}, "DAF": {}, "FORD": {}, "ISUZU": {},
	"JEEP": {}, "MERCEDES": {}, "MITSUBISHI": {}, "NISSAN": {},
	"PEUGEOUT": {}, "PIAGGIO": {}, "PSA": {}, "SAF": {}, "SCANIA": {},
	"TOYOTA": {}, "VOLVO": {}, "VOLKSWAGEN": {},
}

// Internal brand codes that must not reach the Tyre24 feed. One set is
// struck before the rename pass, the other after pricing.
var (
	droppedBeforeRename = map[string]struct{}{"BEX": {}, "RESO": {}}
	droppedAfterPricing = map[string]struct{}{"RCS": {}, "CC": {}}
)

// TecDocEntry is one row of the external brand-ID catalog.
type TecDocEntry struct {
	ID   string
	Name string
}

// TecDocTable is the brand-ID catalog. Entry order is preserved: prefix
// resolution takes the first name that starts with the prefix, so table
// order is part of the lookup's observable behavior.
type TecDocTable struct {
	entries []TecDocEntry
	byName  map[string]string
}

// LoadTecDoc reads the two-column (id, name) catalog CSV. The first row
// is treated as a header.
func LoadTecDoc(path string) (*TecDocTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tecdoc file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read tecdoc file: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("tecdoc file %s is empty", path)
	}

	t := &TecDocTable{byName: make(map[string]string)}
	for _, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		e := TecDocEntry{
			ID:   strings.TrimSpace(rec[0]),
			Name: strings.TrimSpace(rec[1]),
		}
		if e.Name == "" {
			continue
		}
		t.entries = append(t.entries, e)
		if _, ok := t.byName[e.Name]; !ok {
			t.byName[e.Name] = e.ID
		}
	}
	return t, nil
}

// Len returns the number of catalog entries.
func (t *TecDocTable) Len() int { return len(t.entries) }

// Resolve maps a 5-character brand prefix to a (brand, catalog id) pair,
// in priority order: skip-list, manual override, first catalog name
// starting with the prefix, then the missing-ID sentinel. The returned
// brand is the full catalog name when a match was found, otherwise the
// prefix unchanged.
func (t *TecDocTable) Resolve(prefix string) (brand, id string) {
	if _, skip := tecdocSkipPrefixes[prefix]; skip {
		return prefix, MissingTecDocID
	}

	if full, ok := tecdocManualOverrides[prefix]; ok {
		if catalogID, found := t.byName[full]; found {
			return full, catalogID
		}
		return full, MissingTecDocID
	}

	// First match wins; the catalog's order decides ties between names
	// sharing a prefix.
	for _, e := range t.entries {
		if strings.HasPrefix(e.Name, prefix) {
			return e.Name, e.ID
		}
	}

	return prefix, MissingTecDocID
}

// Rename applies the post-resolution prefix normalization.
func Rename(brand string) string {
	if full, ok := tecdocRenames[brand]; ok {
		return full
	}
	return brand
}

// IsOriginalEquipment reports whether the (final) brand is a vehicle maker.
func IsOriginalEquipment(brand string) bool {
	_, ok := originalEquipmentBrands[brand]
	return ok
}

// DroppedBeforeRename reports whether a resolved brand is struck from the
// Tyre24 feed before renaming runs.
func DroppedBeforeRename(brand string) bool {
	_, ok := droppedBeforeRename[brand]
	return ok
}

// DroppedAfterPricing reports whether a final brand is struck from the
// Tyre24 feed after pricing.
func DroppedAfterPricing(brand string) bool {
	_, ok := droppedAfterPricing[brand]
	return ok
}
