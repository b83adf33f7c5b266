// Package pricing turns unit costs into marketplace sale prices.
package pricing

import "github.com/shopspring/decimal"

// MinPrice is the floor applied to the marked-up cost before shipping is
// added. Rows below it are rejected, not clamped up.
var MinPrice = decimal.NewFromFloat(4.50)

var (
	pointNine = decimal.NewFromFloat(0.9)
	half      = decimal.NewFromFloat(0.5)
	one       = decimal.NewFromInt(1)
)

// Params holds the knobs of a single-market price calculation.
type Params struct {
	Markup   decimal.Decimal
	Shipping decimal.Decimal
}

// DualParams prices the same cost for two destination countries. The
// home-market base price decides whether the row survives the minimum
// threshold at all.
type DualParams struct {
	MarkupHome  decimal.Decimal
	ShipHome    decimal.Decimal
	MarkupOther decimal.Decimal
	ShipOther   decimal.Decimal
}

// Base applies the markup to a unit cost.
func Base(cost, markup decimal.Decimal) decimal.Decimal {
	return cost.Mul(markup)
}

// MeetsMinimum reports whether a marked-up base price clears the
// minimum threshold. Shipping is deliberately not part of this check.
func MeetsMinimum(base decimal.Decimal) bool {
	return base.GreaterThanOrEqual(MinPrice)
}

// CharmRound snaps a price to the nearest psychologically-priced value
// ending in .90. Prices with a fractional part at or below one half drop
// to the previous .90 step, the rest keep their integer part.
//
//	13.40 -> 12.90   13.50 -> 12.90   13.51 -> 13.90   14.00 -> 13.90
func CharmRound(p decimal.Decimal) decimal.Decimal {
	floor := p.Floor()
	frac := p.Sub(floor)
	if frac.LessThanOrEqual(half) {
		return floor.Sub(one).Add(pointNine)
	}
	return floor.Add(pointNine)
}

// Final computes the charm-rounded sale price for one market. The base is
// rounded to cents before the threshold check, so a cost sitting right on
// the boundary behaves like its printed value. ok is false when the row
// fails the minimum threshold and must be dropped.
func Final(cost decimal.Decimal, p Params) (price decimal.Decimal, ok bool) {
	base := Base(cost, p.Markup).Round(2)
	if !MeetsMinimum(base) {
		return decimal.Decimal{}, false
	}
	return CharmRound(base.Add(p.Shipping)), true
}

// FinalDual computes both market prices. The threshold is checked on the
// home-market base only; a row that passes it is priced for both.
func FinalDual(cost decimal.Decimal, p DualParams) (home, other decimal.Decimal, ok bool) {
	baseHome := Base(cost, p.MarkupHome)
	if !MeetsMinimum(baseHome) {
		return decimal.Decimal{}, decimal.Decimal{}, false
	}
	baseOther := Base(cost, p.MarkupOther)
	home = CharmRound(baseHome.Add(p.ShipHome))
	other = CharmRound(baseOther.Add(p.ShipOther))
	return home, other, true
}
