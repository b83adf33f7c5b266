package pipeline

import (
	"stockfeed/internal/brands"
	"stockfeed/internal/model"
	"stockfeed/internal/pricing"
)

// Tyre24Inputs bundles the brand catalog and the two-country pricing
// knobs for the Tyre24 tail.
type Tyre24Inputs struct {
	TecDoc  *brands.TecDocTable
	Pricing pricing.DualParams
}

// BuildTyre24 runs the Tyre24 tail over an independent copy of the merged
// table: brand-ID resolution on the 5-character prefix, the two brand
// drop-sets, brand typing and two-country pricing. The Italian base price
// gates the minimum threshold for both markets.
func BuildTyre24(rows []model.MergedRow, in Tyre24Inputs) []model.Tyre24Row {
	out := make([]model.Tyre24Row, 0, len(rows))
	for _, r := range rows {
		brand, id := in.TecDoc.Resolve(brandPrefix(r.Brand))
		if brands.DroppedBeforeRename(brand) {
			continue
		}
		brand = brands.Rename(brand)

		brandType := model.BrandTypeAftermarket
		if brands.IsOriginalEquipment(brand) {
			brandType = model.BrandTypeOriginal
			if id == brands.MissingTecDocID {
				id = brands.OfficialSupplierID
			}
		}

		priceIT, priceDE, ok := pricing.FinalDual(r.UnitCost, in.Pricing)
		if !ok {
			continue
		}
		if brands.DroppedAfterPricing(brand) {
			continue
		}

		out = append(out, model.Tyre24Row{
			ArticleID:    r.ProductCode,
			Brand:        brand,
			BrandID:      id,
			Description:  r.Description,
			Quantity:     r.Stock,
			PriceItaly:   priceIT,
			PriceGermany: priceDE,
			BrandType:    brandType,
		})
	}
	return out
}

// brandPrefix truncates a raw brand name to the 5-character prefix the
// catalog is matched on.
func brandPrefix(brand string) string {
	if len(brand) > 5 {
		return brand[:5]
	}
	return brand
}
