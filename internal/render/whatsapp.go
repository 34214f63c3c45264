package render

import (
	"fmt"
	"strings"

	"github.com/emprendia/backend-tienda/internal/quote"
)

// WhatsAppMessage builds the plain-text order summary sent to the merchant
// via a WhatsApp deep link.
func WhatsAppMessage(o Order) string {
	cur := o.Store.Currency
	var b strings.Builder

	b.WriteString("🛒 *Nuevo pedido*")
	if o.StoreName != "" {
		fmt.Fprintf(&b, " — %s", o.StoreName)
	}
	b.WriteString("\n\n")

	for _, line := range o.Lines {
		fmt.Fprintf(&b, "• %d x %s — %s c/u = %s\n",
			line.Qty, line.Name, Amount(cur, line.UnitPrice), Amount(cur, line.LineTotal))
	}

	if o.Store.StoreType == quote.StoreByOrder {
		fmt.Fprintf(&b, "\nEnvío: %s", shippingLabel(o.Sel.ShippingMethod))
		if o.Quote.TotalWeightLb > 0 {
			fmt.Fprintf(&b, " (%.2f lb)", o.Quote.TotalWeightLb)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nSubtotal: %s\n", Amount(cur, o.Quote.ProductSubtotal))
	if o.Quote.ExtraCost > quote.Epsilon {
		label := strings.TrimSpace(o.Store.ExtraCost.Description)
		if label == "" {
			label = "Costo adicional"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, Amount(cur, o.Quote.ExtraCost))
	}
	b.WriteString(deliverySummary(o))
	fmt.Fprintf(&b, "*Total: %s*\n", Amount(cur, o.Quote.GrandTotal))

	if o.Sel.PlanPercent < 100 {
		fmt.Fprintf(&b, "\nPlan de pago: %d%% de adelanto\n", o.Sel.PlanPercent)
		fmt.Fprintf(&b, "A pagar hoy: %s\n", Amount(cur, o.Quote.AmountDueNow))
		fmt.Fprintf(&b, "Saldo pendiente: %s\n", Amount(cur, o.Quote.PendingBalance))
		if plan := o.Quote.Installment; plan != nil {
			fmt.Fprintf(&b, "Cuotas: %d pagos de %s (%s)\n",
				plan.Count, Amount(cur, plan.Amount), frequencyLabel(plan.Frequency))
		}
	} else {
		fmt.Fprintf(&b, "\nPago completo: %s\n", Amount(cur, o.Quote.AmountDueNow))
	}

	if o.Sel.PaymentMethod != "" {
		fmt.Fprintf(&b, "Método de pago: %s\n", o.Sel.PaymentMethod)
	}
	return b.String()
}

// deliverySummary renders the delivery line. Range bounds are shown but the
// agreed amount stays out of every total.
func deliverySummary(o Order) string {
	cur := o.Store.Currency
	switch o.Store.Delivery.Type {
	case quote.DeliveryFixed:
		if o.Sel.WantsDelivery {
			return fmt.Sprintf("Entrega: %s\n", Amount(cur, o.Quote.DeliveryCost))
		}
	case quote.DeliveryRange:
		if o.Sel.WantsDelivery {
			return fmt.Sprintf("Entrega: %s – %s (a coordinar)\n",
				Amount(cur, o.Store.Delivery.RangeStart), Amount(cur, o.Store.Delivery.RangeEnd))
		}
	case quote.DeliveryIncluded:
		return "Entrega incluida\n"
	}
	return ""
}
