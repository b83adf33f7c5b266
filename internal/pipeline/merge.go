// Package pipeline orchestrates the full run: merge, the two marketplace
// tails, feed writing and uploads.
package pipeline

import (
	"log"
	"regexp"
	"strings"

	"stockfeed/internal/model"
)

// bulkAislePattern matches the C.00 bulk aisle. Articles stored there are
// pallet stock and do not belong in the feeds, with one exception below.
var bulkAislePattern = regexp.MustCompile(`^[cC]\.00`)

// filterKeywords mark filter products, the only article family that is
// legitimately picked from the bulk aisle.
var filterKeywords = []string{"FILTRO", "FILTRI", "filtro", "filtri"}

type mergeKey struct {
	code  string
	brand string
}

// Merge inner-joins the article list with the warehouse on (product code,
// brand). An article stored in several locations yields one merged row
// per location; articles without a warehouse row are dropped, as are
// warehouse rows without a price-list entry.
func Merge(articles []model.ArticleItem, warehouse []model.WarehouseItem) []model.MergedRow {
	locations := make(map[mergeKey][]string)
	for _, w := range warehouse {
		k := mergeKey{code: w.ProductCode, brand: w.Brand}
		locations[k] = append(locations[k], w.Location)
	}

	var out []model.MergedRow
	dropped := 0
	for _, a := range articles {
		locs, ok := locations[mergeKey{code: a.ProductCode, brand: a.Brand}]
		if !ok {
			continue
		}
		for _, loc := range locs {
			if bulkAislePattern.MatchString(loc) && !isFilterProduct(a.Description) {
				dropped++
				continue
			}
			out = append(out, model.MergedRow{
				ProductCode: a.ProductCode,
				Brand:       a.Brand,
				Description: a.Description,
				Stock:       a.Stock,
				UnitCost:    a.UnitCost,
				Location:    loc,
			})
		}
	}
	if dropped > 0 {
		log.Printf("merge: dropped %d bulk-aisle rows", dropped)
	}
	return out
}

func isFilterProduct(description string) bool {
	for _, kw := range filterKeywords {
		if strings.Contains(description, kw) {
			return true
		}
	}
	return false
}
