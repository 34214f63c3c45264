package render

import "github.com/emprendia/backend-tienda/internal/quote"

// Line is a display-ready cart line. UnitPrice and LineTotal are produced by
// the quote engine's price derivation; renderers never compute them.
type Line struct {
	Name      string      `json:"name"`
	Qty       int         `json:"qty"`
	UnitPrice quote.Money `json:"unitPrice"`
	LineTotal quote.Money `json:"lineTotal"`
}

// Order groups everything a renderer needs to describe a submitted order.
// All monetary figures come in already computed; this package only formats.
type Order struct {
	StoreName string
	Buyer     string
	Lines     []Line
	Store     quote.StoreConfig
	Sel       quote.Selections
	Quote     quote.Quote
}

func shippingLabel(m quote.ShippingMethod) string {
	switch m {
	case quote.ShipAir:
		return "aéreo"
	case quote.ShipSea:
		return "marítimo"
	default:
		return string(m)
	}
}

func frequencyLabel(f quote.Frequency) string {
	switch f {
	case quote.Weekly:
		return "semanal"
	case quote.Biweekly:
		return "quincenal"
	case quote.Monthly:
		return "mensual"
	default:
		return string(f)
	}
}
