package render

import (
	"fmt"
	"strings"

	"github.com/emprendia/backend-tienda/internal/quote"
)

// InvoiceText renders a receipt-style summary of an order. It shares the
// WhatsApp renderer's contract: figures are formatted, never recomputed.
func InvoiceText(o Order) string {
	cur := o.Store.Currency
	var b strings.Builder

	title := o.StoreName
	if title == "" {
		title = "Comprobante de pedido"
	}
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n")
	if o.Buyer != "" {
		fmt.Fprintf(&b, "Cliente: %s\n", o.Buyer)
	}
	b.WriteString("\n")

	for _, line := range o.Lines {
		fmt.Fprintf(&b, "%-30s %3d  %10s  %10s\n",
			truncate(line.Name, 30), line.Qty, Amount(cur, line.UnitPrice), Amount(cur, line.LineTotal))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%-20s %s\n", "Subtotal:", Amount(cur, o.Quote.ProductSubtotal))
	if o.Quote.ExtraCost > quote.Epsilon {
		fmt.Fprintf(&b, "%-20s %s\n", "Costo adicional:", Amount(cur, o.Quote.ExtraCost))
	}
	if o.Quote.DeliveryCost > quote.Epsilon {
		fmt.Fprintf(&b, "%-20s %s\n", "Entrega:", Amount(cur, o.Quote.DeliveryCost))
	}
	fmt.Fprintf(&b, "%-20s %s\n", "Total:", Amount(cur, o.Quote.GrandTotal))

	if o.Sel.PlanPercent < 100 {
		fmt.Fprintf(&b, "%-20s %s\n", "Pagado hoy:", Amount(cur, o.Quote.AmountDueNow))
		fmt.Fprintf(&b, "%-20s %s\n", "Saldo pendiente:", Amount(cur, o.Quote.PendingBalance))
		if plan := o.Quote.Installment; plan != nil {
			fmt.Fprintf(&b, "%-20s %d x %s (%s)\n", "Cuotas:",
				plan.Count, Amount(cur, plan.Amount), frequencyLabel(plan.Frequency))
		}
	}
	if note := strings.TrimSpace(o.Store.Delivery.Note); note != "" {
		fmt.Fprintf(&b, "\nNota de entrega: %s\n", note)
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
