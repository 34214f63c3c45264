package render

import (
	"fmt"

	"github.com/emprendia/backend-tienda/internal/quote"
)

// Symbol maps a currency to its display prefix.
func Symbol(c quote.Currency) string {
	if c == quote.NIO {
		return "C$"
	}
	return "$"
}

// Amount formats a monetary value for display with two decimals. Rounding
// happens only here, after all computation is done.
func Amount(c quote.Currency, v quote.Money) string {
	return fmt.Sprintf("%s%.2f", Symbol(c), v)
}
