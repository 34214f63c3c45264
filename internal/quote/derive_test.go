package quote

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b Money) bool {
	return math.Abs(a-b) < 1e-9
}

func dualStore() StoreConfig {
	return StoreConfig{
		StoreType:     StoreByOrder,
		LogisticsDual: true,
		AirRatePerLb:  5.5,
		SeaRatePerLb:  3.0,
		Currency:      USD,
		Delivery:      Delivery{Type: DeliveryNone},
		Payment:       PaymentPolicy{AcceptsFullPayment: true},
	}
}

func TestDeriveDualLogisticsFixedMargin(t *testing.T) {
	p := ProductPricing{BaseCost: 10, WeightLb: 2, MarginType: MarginFixed, MarginValue: 5}
	d, err := Derive(p, dualStore())
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if !almostEqual(d.BaseCostAir, 21.0) || !almostEqual(d.FinalPriceAir, 26.0) {
		t.Fatalf("air prices: base=%v final=%v", d.BaseCostAir, d.FinalPriceAir)
	}
	if !almostEqual(d.BaseCostSea, 16.0) || !almostEqual(d.FinalPriceSea, 21.0) {
		t.Fatalf("sea prices: base=%v final=%v", d.BaseCostSea, d.FinalPriceSea)
	}
}

func TestDerivePercentMargin(t *testing.T) {
	p := ProductPricing{BaseCost: 100, WeightLb: 0, MarginType: MarginPercent, MarginValue: 25}
	d, err := Derive(p, dualStore())
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if !almostEqual(d.FinalPriceAir, d.BaseCostAir*1.25) {
		t.Fatalf("percent margin round-trip broken: base=%v final=%v", d.BaseCostAir, d.FinalPriceAir)
	}
}

func TestDeriveFixedMarginRoundTrip(t *testing.T) {
	p := ProductPricing{BaseCost: 42.5, WeightLb: 1.3, MarginType: MarginFixed, MarginValue: 7.75}
	d, err := Derive(p, dualStore())
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if !almostEqual(d.FinalPriceAir-d.BaseCostAir, p.MarginValue) {
		t.Fatalf("fixed margin round-trip broken: diff=%v", d.FinalPriceAir-d.BaseCostAir)
	}
}

func TestDeriveWithoutDualLogisticsIgnoresWeight(t *testing.T) {
	s := dualStore()
	s.LogisticsDual = false
	p := ProductPricing{BaseCost: 30, WeightLb: 10, MarginType: MarginFixed, MarginValue: 5}
	d, err := Derive(p, s)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if !almostEqual(d.BaseCostAir, 30) || !almostEqual(d.BaseCostSea, 30) {
		t.Fatalf("weight should not apply without dual logistics: air=%v sea=%v", d.BaseCostAir, d.BaseCostSea)
	}
}

func TestDeriveInStockTaxed(t *testing.T) {
	s := StoreConfig{StoreType: StoreInStock, Currency: NIO, Payment: PaymentPolicy{AcceptsFullPayment: true}}
	p := ProductPricing{PriceBase: 50, TaxPercent: 15}
	d, err := Derive(p, s)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if !almostEqual(d.FinalPrice, 57.5) {
		t.Fatalf("expected final price 57.5, got %v", d.FinalPrice)
	}

	p.TaxIncluded = true
	d, err = Derive(p, s)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if !almostEqual(d.FinalPrice, 50) {
		t.Fatalf("tax-included price should be the base price, got %v", d.FinalPrice)
	}
}

func TestDeriveRejectsNegativeInputs(t *testing.T) {
	cases := []ProductPricing{
		{BaseCost: -1, MarginType: MarginFixed},
		{BaseCost: 1, WeightLb: -2, MarginType: MarginFixed},
		{BaseCost: 1, MarginType: MarginFixed, MarginValue: -5},
		{BaseCost: math.NaN(), MarginType: MarginFixed},
	}
	for i, p := range cases {
		if _, err := Derive(p, dualStore()); !errors.Is(err, ErrNegativeAmount) {
			t.Fatalf("case %d: expected ErrNegativeAmount, got %v", i, err)
		}
	}
	if _, err := Derive(ProductPricing{BaseCost: 1, MarginType: "half"}, dualStore()); !errors.Is(err, ErrUnknownMarginType) {
		t.Fatalf("expected ErrUnknownMarginType, got %v", err)
	}
}
