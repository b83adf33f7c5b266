package model

import "github.com/shopspring/decimal"

// TuleroColumns is the column contract of the Tulero marketplace feed.
// Order and presence are fixed by the receiving side; do not reorder.
var TuleroColumns = []string{
	"CODICE PRODOTTO",
	"CODICE OE",
	"CODICI CROSS",
	"BRAND",
	"DESCRIZIONE",
	"LINK IMMAGINE",
	"CATEGORIA",
	"GIACENZA",
	"PREZZO",
	"SCHEDA TECNICA",
	"SCHEDA DI SICUREZZA",
	"CONFEZIONE",
	"QUANTITÀ MINIMA",
	"META.LUNGHEZZA",
	"META.LARGHEZZA",
	"META.PROFONDITA'",
	"META. ...",
}

// TuleroRow is one product in the Tulero feed. The placeholder fields
// (image link, technical/safety sheets, META.*) are part of the contract
// but always empty; category, packaging and minimum quantity are constants.
type TuleroRow struct {
	ProductCode string
	OEMCode     string
	CrossCodes  string
	Brand       string
	Description string
	Stock       decimal.Decimal
	Price       decimal.Decimal
}

// Fixed values for the constant Tulero columns.
const (
	TuleroCategory    = "Ricambio"
	TuleroPackaging   = "1 pz"
	TuleroMinQuantity = "1"
)

// Record renders the row in TuleroColumns order.
func (r *TuleroRow) Record() []string {
	return []string{
		r.ProductCode,
		r.OEMCode,
		r.CrossCodes,
		r.Brand,
		r.Description,
		"", // LINK IMMAGINE
		TuleroCategory,
		r.Stock.String(),
		r.Price.String(),
		"", // SCHEDA TECNICA
		"", // SCHEDA DI SICUREZZA
		TuleroPackaging,
		TuleroMinQuantity,
		"", "", "", "", // META.* placeholders
	}
}

// Tyre24Columns is the column contract of the Tyre24 marketplace feed.
var Tyre24Columns = []string{
	"TecDoc-ID",
	"TecDoc Brand",
	"TecDoc Brand ID",
	"Description",
	"Quantity",
	"Price_Italia",
	"Price_Germany",
	"Brand Type",
}

// Tyre24Row is one product in the Tyre24 feed, priced independently for
// the two destination countries.
type Tyre24Row struct {
	ArticleID    string
	Brand        string
	BrandID      string
	Description  string
	Quantity     decimal.Decimal
	PriceItaly   decimal.Decimal
	PriceGermany decimal.Decimal
	BrandType    string
}

// Brand type values used in the Tyre24 feed.
const (
	BrandTypeOriginal    = "ORIGINAL"
	BrandTypeAftermarket = "AFTERMARKET"
)

// Record renders the row in Tyre24Columns order.
func (r *Tyre24Row) Record() []string {
	return []string{
		r.ArticleID,
		r.Brand,
		r.BrandID,
		r.Description,
		r.Quantity.String(),
		r.PriceItaly.String(),
		r.PriceGermany.String(),
		r.BrandType,
	}
}
