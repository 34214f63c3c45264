package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/emprendia/backend-tienda/internal/quote"
	"github.com/emprendia/backend-tienda/internal/render"
	"github.com/emprendia/backend-tienda/internal/store"
)

// ErrEmptyCart is returned when a quote is requested with no lines.
var ErrEmptyCart = errors.New("cart is empty")

// LineInput identifies one cart line by product id.
type LineInput struct {
	ProductID string `json:"productId" validate:"required"`
	Qty       int    `json:"qty" validate:"required,min=1"`
}

// Input is the buyer's quote request: cart contents plus checkout
// selections. Selections live only for the duration of the request.
type Input struct {
	Lines          []LineInput              `json:"lines" validate:"required,min=1,dive"`
	ShippingMethod quote.ShippingMethod     `json:"shippingMethod"`
	PaymentMethod  string                   `json:"paymentMethod"`
	PlanPercent    int                      `json:"planPercent" validate:"required"`
	Installment    *quote.InstallmentOption `json:"installment"`
	WantsDelivery  bool                     `json:"wantsDelivery"`
	Buyer          string                   `json:"buyer"`
}

// Result bundles the computed quote with everything renderers need.
type Result struct {
	Store store.Record
	Lines []render.Line
	Sel   quote.Selections
	Quote quote.Quote
}

// Service assembles quote inputs from persisted records and runs the engine.
// It never persists a quote: store config and cart contents are the only
// source of truth and the quote is recomputed on every request.
type Service struct {
	Stores *store.Service
}

// Quote computes the full order quote for the given store and cart.
func (s *Service) Quote(ctx context.Context, storeID string, in Input) (Result, error) {
	if s == nil || s.Stores == nil {
		return Result{}, errors.New("checkout service not configured")
	}
	if len(in.Lines) == 0 {
		return Result{}, ErrEmptyCart
	}
	rec, err := s.Stores.GetStore(ctx, storeID)
	if err != nil {
		return Result{}, err
	}

	sel := quote.Selections{
		ShippingMethod: in.ShippingMethod,
		PaymentMethod:  in.PaymentMethod,
		PlanPercent:    in.PlanPercent,
		Installment:    in.Installment,
		WantsDelivery:  in.WantsDelivery,
	}

	cartLines := make([]quote.CartLine, 0, len(in.Lines))
	products := make([]store.Product, 0, len(in.Lines))
	for _, li := range in.Lines {
		p, err := s.Stores.GetProduct(ctx, storeID, li.ProductID)
		if err != nil {
			return Result{}, fmt.Errorf("product %s: %w", li.ProductID, err)
		}
		cartLines = append(cartLines, quote.CartLine{Pricing: p.Pricing, Qty: li.Qty})
		products = append(products, p)
	}

	q, err := quote.Compute(cartLines, rec.Config, sel)
	if err != nil {
		return Result{}, err
	}

	renderLines := make([]render.Line, 0, len(in.Lines))
	for i, li := range in.Lines {
		unit, total, err := quote.LinePrice(products[i].Pricing, li.Qty, rec.Config, sel.ShippingMethod)
		if err != nil {
			return Result{}, fmt.Errorf("product %s: %w", li.ProductID, err)
		}
		renderLines = append(renderLines, render.Line{
			Name:      products[i].Name,
			Qty:       li.Qty,
			UnitPrice: unit,
			LineTotal: total,
		})
	}

	return Result{Store: rec, Lines: renderLines, Sel: sel, Quote: q}, nil
}

// OrderMessage computes the quote and renders the WhatsApp order summary
// plus a wa.me deep link when the store has a number configured.
func (s *Service) OrderMessage(ctx context.Context, storeID string, in Input) (Result, string, string, error) {
	res, err := s.Quote(ctx, storeID, in)
	if err != nil {
		return Result{}, "", "", err
	}
	msg := render.WhatsAppMessage(render.Order{
		StoreName: res.Store.Name,
		Buyer:     in.Buyer,
		Lines:     res.Lines,
		Store:     res.Store.Config,
		Sel:       res.Sel,
		Quote:     res.Quote,
	})
	link := ""
	if phone := sanitizePhone(res.Store.WhatsApp); phone != "" {
		link = "https://wa.me/" + phone + "?text=" + url.QueryEscape(msg)
	}
	return res, msg, link, nil
}

// Invoice computes the quote and renders the receipt-style summary.
func (s *Service) Invoice(ctx context.Context, storeID string, in Input) (Result, string, error) {
	res, err := s.Quote(ctx, storeID, in)
	if err != nil {
		return Result{}, "", err
	}
	text := render.InvoiceText(render.Order{
		StoreName: res.Store.Name,
		Buyer:     in.Buyer,
		Lines:     res.Lines,
		Store:     res.Store.Config,
		Sel:       res.Sel,
		Quote:     res.Quote,
	})
	return res, text, nil
}

func sanitizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
