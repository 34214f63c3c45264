package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emprendia/backend-tienda/internal/quote"
	"github.com/emprendia/backend-tienda/internal/render"
)

func sampleOrder() render.Order {
	return render.Order{
		StoreName: "Encargos Managua",
		Buyer:     "María",
		Lines: []render.Line{
			{Name: "Zapatos deportivos", Qty: 2, UnitPrice: 26, LineTotal: 52},
			{Name: "Mochila", Qty: 1, UnitPrice: 48, LineTotal: 48},
		},
		Store: quote.StoreConfig{
			StoreType: quote.StoreByOrder,
			Currency:  quote.USD,
			ExtraCost: quote.ExtraCost{Enabled: true, Value: 10, Type: quote.ExtraPercentOfSubtotal, Description: "Gestión de compra"},
			Delivery:  quote.Delivery{Type: quote.DeliveryFixed, FixedCost: 5},
		},
		Sel: quote.Selections{
			ShippingMethod: quote.ShipAir,
			PaymentMethod:  "transfer",
			PlanPercent:    50,
			WantsDelivery:  true,
		},
		Quote: quote.Quote{
			ProductSubtotal: 100,
			ExtraCost:       10,
			DeliveryCost:    5,
			UpfrontCosts:    15,
			GrandTotal:      115,
			AmountDueNow:    65,
			PendingBalance:  50,
			Installment:     &quote.InstallmentPlan{Frequency: quote.Monthly, Count: 2, Amount: 25},
			TotalWeightLb:   4.5,
			TotalUnits:      3,
		},
	}
}

func TestWhatsAppMessage(t *testing.T) {
	msg := render.WhatsAppMessage(sampleOrder())

	require.Contains(t, msg, "• 2 x Zapatos deportivos — $26.00 c/u = $52.00")
	require.Contains(t, msg, "Envío: aéreo (4.50 lb)")
	require.Contains(t, msg, "Gestión de compra: $10.00")
	require.Contains(t, msg, "Entrega: $5.00")
	require.Contains(t, msg, "*Total: $115.00*")
	require.Contains(t, msg, "A pagar hoy: $65.00")
	require.Contains(t, msg, "Saldo pendiente: $50.00")
	require.Contains(t, msg, "Cuotas: 2 pagos de $25.00 (mensual)")
	require.Contains(t, msg, "Método de pago: transfer")
}

func TestWhatsAppMessageFullPayment(t *testing.T) {
	o := sampleOrder()
	o.Sel.PlanPercent = 100
	o.Quote.AmountDueNow = 115
	o.Quote.PendingBalance = 0
	o.Quote.Installment = nil

	msg := render.WhatsAppMessage(o)
	require.Contains(t, msg, "Pago completo: $115.00")
	require.NotContains(t, msg, "Saldo pendiente")
	require.NotContains(t, msg, "Cuotas")
}

func TestWhatsAppMessageRangeDelivery(t *testing.T) {
	o := sampleOrder()
	o.Store.Delivery = quote.Delivery{Type: quote.DeliveryRange, RangeStart: 3, RangeEnd: 8}
	o.Quote.DeliveryCost = 0
	o.Quote.UpfrontCosts = 10
	o.Quote.GrandTotal = 110
	o.Quote.AmountDueNow = 60

	msg := render.WhatsAppMessage(o)
	require.Contains(t, msg, "Entrega: $3.00 – $8.00 (a coordinar)")
	require.Contains(t, msg, "*Total: $110.00*")
}

func TestWhatsAppMessageNIOSymbol(t *testing.T) {
	o := sampleOrder()
	o.Store.Currency = quote.NIO
	msg := render.WhatsAppMessage(o)
	require.Contains(t, msg, "Subtotal: C$100.00")
}

func TestInvoiceText(t *testing.T) {
	o := sampleOrder()
	o.Store.Delivery.Note = "Entregas solo fines de semana"
	text := render.InvoiceText(o)

	require.True(t, strings.HasPrefix(text, "Encargos Managua\n"))
	require.Contains(t, text, "Cliente: María")
	require.Contains(t, text, "Subtotal:")
	require.Contains(t, text, "$115.00")
	require.Contains(t, text, "Saldo pendiente:")
	require.Contains(t, text, "2 x $25.00 (mensual)")
	require.Contains(t, text, "Nota de entrega: Entregas solo fines de semana")
}

func TestAmountFormatting(t *testing.T) {
	require.Equal(t, "$12.50", render.Amount(quote.USD, 12.5))
	require.Equal(t, "C$0.99", render.Amount(quote.NIO, 0.994))
}
