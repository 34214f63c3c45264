package quote

// Derive turns a product's raw pricing inputs into customer-facing prices
// under the given store configuration. Derived prices are a cache of this
// function, never independent truth: callers must recompute whenever cost,
// weight, margin or store rates change.
func Derive(p ProductPricing, s StoreConfig) (DerivedPrices, error) {
	if err := p.Validate(s.StoreType); err != nil {
		return DerivedPrices{}, err
	}
	if s.StoreType == StoreInStock {
		final := p.PriceBase
		if !p.TaxIncluded {
			final = p.PriceBase * (1 + p.TaxPercent/100)
		}
		return DerivedPrices{FinalPrice: final}, nil
	}

	baseAir := p.BaseCost
	baseSea := p.BaseCost
	if s.LogisticsDual {
		baseAir += p.WeightLb * s.AirRatePerLb
		baseSea += p.WeightLb * s.SeaRatePerLb
	}
	d := DerivedPrices{BaseCostAir: baseAir, BaseCostSea: baseSea}
	if p.MarginType == MarginFixed {
		d.FinalPriceAir = baseAir + p.MarginValue
		d.FinalPriceSea = baseSea + p.MarginValue
	} else {
		d.FinalPriceAir = baseAir * (1 + p.MarginValue/100)
		d.FinalPriceSea = baseSea * (1 + p.MarginValue/100)
	}
	return d, nil
}

// LinePrice derives the unit price and line total for a single cart line.
// It exists so display surfaces can show per-line figures without doing
// their own money math.
func LinePrice(p ProductPricing, qty int, s StoreConfig, method ShippingMethod) (unit, total Money, err error) {
	if qty <= 0 {
		return 0, 0, ErrInvalidQty
	}
	derived, err := Derive(p, s)
	if err != nil {
		return 0, 0, err
	}
	unit = derived.UnitPrice(s.StoreType, method)
	return unit, unit * Money(qty), nil
}

// UnitPrice picks the customer-facing unit price for the given shipping
// method. In-stock stores ignore the method entirely.
func (d DerivedPrices) UnitPrice(storeType StoreType, method ShippingMethod) Money {
	if storeType == StoreInStock {
		return d.FinalPrice
	}
	if method == ShipSea {
		return d.FinalPriceSea
	}
	return d.FinalPriceAir
}
