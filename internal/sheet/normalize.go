package sheet

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"stockfeed/internal/model"
)

// Print-flag columns added by the export tool, one per source type.
const (
	warehouseDropColumn = "STAMPA ANAGRAFICA ARTICOLI"
	articlesDropColumn  = "STAMPA LISTINI"
)

// Small-item bins: class letter A/B/C followed by a separator or shelf
// digit. Anything else is bulky stock that stays out of the feeds.
var smallItemPattern = regexp.MustCompile(`^[A-Ca-c](?:\.|[0-9])`)

// Stats aggregates the row-level filtering of one source. Dropped rows are
// a diagnostic, not an error.
type Stats struct {
	TotalRows       int
	Kept            int
	DroppedLocation int
	DroppedStock    int
	DroppedCost     int
}

func (s Stats) String() string {
	return fmt.Sprintf("rows=%d kept=%d dropped(location=%d stock=%d cost=%d)",
		s.TotalRows, s.Kept, s.DroppedLocation, s.DroppedStock, s.DroppedCost)
}

// dropColumn removes the named column and verifies exactly five remain;
// any other shape means the export cannot be interpreted safely.
func dropColumn(t *Table, file, column string) ([][]string, error) {
	idx := -1
	for i, h := range t.Header {
		if h == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &ValidationError{File: file, Reason: fmt.Sprintf("missing expected %q column", column)}
	}
	if len(t.Header)-1 != 5 {
		return nil, &ValidationError{File: file, Reason: fmt.Sprintf("unexpected number of columns: %d", len(t.Header)-1)}
	}

	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		out := make([]string, 0, len(row)-1)
		for i, v := range row {
			if i == idx {
				continue
			}
			out = append(out, v)
		}
		rows = append(rows, out)
	}
	return rows, nil
}

// NormalizeWarehouse turns the raw warehouse table into typed items:
// positional renaming, trimming, the Location Unknown sentinel, comma
// decimal parsing and the small-item location filter.
func NormalizeWarehouse(t *Table, file string) ([]model.WarehouseItem, Stats, error) {
	rows, err := dropColumn(t, file, warehouseDropColumn)
	if err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{TotalRows: len(rows)}
	items := make([]model.WarehouseItem, 0, len(rows))

	for _, row := range rows {
		// Positional: product_code, brand, description, location, stock.
		item := model.WarehouseItem{
			ProductCode: strings.TrimSpace(cell(row, 0)),
			Brand:       strings.TrimSpace(cell(row, 1)),
			Description: strings.TrimSpace(cell(row, 2)),
			Location:    strings.TrimSpace(cell(row, 3)),
		}
		if item.Location == "" {
			item.Location = model.LocationUnknown
		}
		if qty, ok := parseCommaDecimal(cell(row, 4)); ok {
			item.Stock = qty
			item.StockKnown = true
		}

		if !smallItemPattern.MatchString(item.Location) {
			stats.DroppedLocation++
			log.Printf("warehouse: dropping %s / %s at %q (not a small-item bin)",
				item.ProductCode, item.Brand, item.Location)
			continue
		}

		items = append(items, item)
	}

	stats.Kept = len(items)
	return items, stats, nil
}

// NormalizeArticles turns the raw price-list table into typed items and
// keeps only sellable rows: positive stock and a known last purchase price.
func NormalizeArticles(t *Table, file string) ([]model.ArticleItem, Stats, error) {
	rows, err := dropColumn(t, file, articlesDropColumn)
	if err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{TotalRows: len(rows)}
	items := make([]model.ArticleItem, 0, len(rows))

	for _, row := range rows {
		// Positional: product_code, brand, description, stock, unit_cost.
		item := model.ArticleItem{
			ProductCode: strings.TrimSpace(cell(row, 0)),
			Brand:       strings.TrimSpace(cell(row, 1)),
			Description: strings.TrimSpace(cell(row, 2)),
		}

		qty, qtyOK := parseThousandsDecimal(cell(row, 3))
		if !qtyOK || !qty.IsPositive() {
			stats.DroppedStock++
			continue
		}
		cost, costOK := parseCommaDecimal(cell(row, 4))
		if !costOK {
			stats.DroppedCost++
			continue
		}

		item.Stock = qty
		item.UnitCost = cost
		items = append(items, item)
	}

	stats.Kept = len(items)
	return items, stats, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// parseCommaDecimal parses the export's locale convention: comma as the
// decimal separator.
func parseCommaDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// parseThousandsDecimal additionally strips dot thousands separators
// ("1.234,56" -> 1234.56), used by the price list's stock column.
func parseThousandsDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
