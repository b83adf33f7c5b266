package model

import "github.com/shopspring/decimal"

// WarehouseItem is one cleaned row of the warehouse export: where a part
// physically sits and how many are on the shelf.
type WarehouseItem struct {
	ProductCode string
	Brand       string
	Description string
	Location    string
	Stock       decimal.Decimal
	StockKnown  bool
}

// ArticleItem is one cleaned row of the article/price-list export.
type ArticleItem struct {
	ProductCode string
	Brand       string
	Description string
	Stock       decimal.Decimal
	UnitCost    decimal.Decimal
}

// MergedRow is the inner join of an article row with a warehouse location,
// keyed on (product code, brand). This is the snapshot both marketplace
// tails start from.
type MergedRow struct {
	ProductCode string
	Brand       string
	Description string
	Stock       decimal.Decimal
	UnitCost    decimal.Decimal
	Location    string
}

// CloneMerged returns an independent copy of the merged table so the two
// marketplace tails never share mutable state.
func CloneMerged(rows []MergedRow) []MergedRow {
	out := make([]MergedRow, len(rows))
	copy(out, rows)
	return out
}

// UnknownOE marks a product whose OEM reference could not be resolved.
const UnknownOE = "Unknown OE"

// LocationUnknown is the sentinel for warehouse rows with a blank bin code.
const LocationUnknown = "Location Unknown"
