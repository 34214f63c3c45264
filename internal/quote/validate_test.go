package quote

import (
	"errors"
	"testing"
)

func TestStoreConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*StoreConfig)
		wantErr error
	}{
		{"unknown store type", func(s *StoreConfig) { s.StoreType = "consignment" }, ErrUnknownStoreType},
		{"unknown currency", func(s *StoreConfig) { s.Currency = "EUR" }, ErrUnknownCurrency},
		{"negative air rate", func(s *StoreConfig) { s.LogisticsDual = true; s.AirRatePerLb = -1 }, ErrNegativeAmount},
		{"unknown delivery type", func(s *StoreConfig) { s.Delivery.Type = "pickup" }, ErrUnknownDeliveryType},
		{"negative fixed delivery", func(s *StoreConfig) { s.Delivery = Delivery{Type: DeliveryFixed, FixedCost: -3} }, ErrNegativeAmount},
		{"bad advance percent", func(s *StoreConfig) { s.Payment.AdvancePercents = []int{33} }, ErrInvalidAdvancePercent},
		{"zero installment count", func(s *StoreConfig) {
			s.Payment.InstallmentOptions = []InstallmentOption{{Frequency: Weekly, MaxInstallments: 0}}
		}, ErrInvalidInstallmentCount},
		{"unknown frequency", func(s *StoreConfig) {
			s.Payment.InstallmentOptions = []InstallmentOption{{Frequency: "daily", MaxInstallments: 3}}
		}, ErrUnknownFrequency},
		{"bad extra cost type", func(s *StoreConfig) { s.ExtraCost = ExtraCost{Enabled: true, Value: 5, Type: "markup"} }, ErrUnknownExtraCostType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := checkoutStore()
			tc.mutate(&s)
			if err := s.Validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	if err := checkoutStore().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateSelections(t *testing.T) {
	s := checkoutStore()

	if err := s.ValidateSelections(Selections{ShippingMethod: "ground", PlanPercent: 100}); !errors.Is(err, ErrUnknownShippingMethod) {
		t.Fatalf("expected ErrUnknownShippingMethod, got %v", err)
	}

	s.Payment.AcceptsFullPayment = false
	if err := s.ValidateSelections(Selections{ShippingMethod: ShipAir, PlanPercent: 100}); !errors.Is(err, ErrPlanNotOffered) {
		t.Fatalf("full payment disabled must reject 100, got %v", err)
	}
	s.Payment.AcceptsFullPayment = true

	s.Payment.AcceptsAdvance = false
	if err := s.ValidateSelections(Selections{ShippingMethod: ShipAir, PlanPercent: 50}); !errors.Is(err, ErrPlanNotOffered) {
		t.Fatalf("advance disabled must reject 50, got %v", err)
	}
	s.Payment.AcceptsAdvance = true

	s.Payment.Channels = []string{"cash", "transfer"}
	if err := s.ValidateSelections(Selections{ShippingMethod: ShipAir, PlanPercent: 100, PaymentMethod: "paypal"}); !errors.Is(err, ErrChannelNotOffered) {
		t.Fatalf("expected ErrChannelNotOffered, got %v", err)
	}
	if err := s.ValidateSelections(Selections{ShippingMethod: ShipAir, PlanPercent: 100, PaymentMethod: "cash"}); err != nil {
		t.Fatalf("offered channel rejected: %v", err)
	}
}

func TestValidateSelectionsInStockIgnoresShipping(t *testing.T) {
	s := StoreConfig{
		StoreType: StoreInStock,
		Currency:  USD,
		Delivery:  Delivery{Type: DeliveryNone},
		Payment:   PaymentPolicy{AcceptsFullPayment: true},
	}
	if err := s.ValidateSelections(Selections{PlanPercent: 100}); err != nil {
		t.Fatalf("in-stock stores must not require a shipping method: %v", err)
	}
}
