package quote

import "fmt"

// Compute calculates the full order quote for a cart under the given store
// configuration and buyer selections. It is pure: no I/O, no shared state,
// identical inputs always produce identical outputs. Unit prices are derived
// from raw product inputs on every call so stale stored derivations can never
// leak into a total.
func Compute(lines []CartLine, s StoreConfig, sel Selections) (Quote, error) {
	if err := s.Validate(); err != nil {
		return Quote{}, err
	}
	if err := s.ValidateSelections(sel); err != nil {
		return Quote{}, err
	}

	var q Quote
	for i, line := range lines {
		if line.Qty <= 0 {
			return Quote{}, fmt.Errorf("line %d: %w", i, ErrInvalidQty)
		}
		derived, err := Derive(line.Pricing, s)
		if err != nil {
			return Quote{}, fmt.Errorf("line %d: %w", i, err)
		}
		unit := derived.UnitPrice(s.StoreType, sel.ShippingMethod)
		q.ProductSubtotal += unit * Money(line.Qty)
		q.TotalWeightLb += line.Pricing.WeightLb * float64(line.Qty)
		q.TotalUnits += line.Qty
	}

	if s.ExtraCost.Enabled && s.ExtraCost.Value > 0 {
		if s.ExtraCost.Type == ExtraPercentOfSubtotal {
			q.ExtraCost = q.ProductSubtotal * (s.ExtraCost.Value / 100)
		} else {
			q.ExtraCost = s.ExtraCost.Value
		}
	}

	// Range delivery never contributes: the final cost is negotiated out of
	// band. Included delivery is already folded into the product price.
	wantsDelivery := sel.WantsDelivery || s.Delivery.Type == DeliveryIncluded
	if wantsDelivery && s.Delivery.Type == DeliveryFixed {
		q.DeliveryCost = s.Delivery.FixedCost
	}

	q.UpfrontCosts = q.ExtraCost + q.DeliveryCost
	downPayment := q.ProductSubtotal * (Money(sel.PlanPercent) / 100)
	q.AmountDueNow = downPayment + q.UpfrontCosts
	q.PendingBalance = q.ProductSubtotal - downPayment
	q.GrandTotal = q.ProductSubtotal + q.UpfrontCosts

	if q.PendingBalance > Epsilon && s.Payment.AcceptsInstallments && sel.Installment != nil {
		q.Installment = &InstallmentPlan{
			Frequency: sel.Installment.Frequency,
			Count:     sel.Installment.MaxInstallments,
			Amount:    q.PendingBalance / Money(sel.Installment.MaxInstallments),
		}
	}
	return q, nil
}
