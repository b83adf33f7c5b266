package pipeline

import (
	"stockfeed/internal/brands"
	"stockfeed/internal/model"
	"stockfeed/internal/oem"
	"stockfeed/internal/pricing"
)

// TuleroInputs bundles the lookup tables and pricing knobs the Tulero
// tail needs besides the merged stock itself.
type TuleroInputs struct {
	OEM      *oem.Table
	Synonyms brands.Synonyms
	Ignored  brands.IgnoredSet
	Pricing  pricing.Params
}

// BuildTulero runs the Tulero tail over an independent copy of the merged
// table: OE resolution, cross-reference discovery, brand normalization,
// then pricing with the minimum threshold. Row order follows the input.
func BuildTulero(rows []model.MergedRow, in TuleroInputs) []model.TuleroRow {
	n := len(rows)
	codes := make([]string, n)
	oems := make([]string, n)
	ignored := make([]bool, n)

	for i, r := range rows {
		codes[i] = r.ProductCode
		ignored[i] = in.Ignored.Contains(r.Brand)
		oems[i] = in.OEM.Resolve(r.ProductCode, r.Brand, ignored[i])
	}

	crosses := oem.CrossCodes(codes, oems, ignored)

	out := make([]model.TuleroRow, 0, n)
	for i, r := range rows {
		brand := in.Synonyms.Apply(r.Brand)

		// A synonym can map onto a vehicle-maker name; those rows lose
		// their OE data the same way ignored source brands do.
		oeCode, cross := oems[i], crosses[i]
		if in.Ignored.Contains(brand) {
			oeCode, cross = "", ""
		}

		price, ok := pricing.Final(r.UnitCost, in.Pricing)
		if !ok {
			continue
		}

		out = append(out, model.TuleroRow{
			ProductCode: r.ProductCode,
			OEMCode:     oeCode,
			CrossCodes:  cross,
			Brand:       brand,
			Description: r.Description,
			Stock:       r.Stock,
			Price:       price,
		})
	}
	return out
}
