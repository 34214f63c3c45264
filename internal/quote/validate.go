package quote

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNegativeAmount is returned when a cost, weight, rate or margin input
	// is negative or not a finite number.
	ErrNegativeAmount = errors.New("amount must be a non-negative finite number")
	// ErrUnknownStoreType is returned for a store type outside the enum.
	ErrUnknownStoreType = errors.New("unknown store type")
	// ErrUnknownMarginType is returned for a margin type outside the enum.
	ErrUnknownMarginType = errors.New("unknown margin type")
	// ErrUnknownExtraCostType is returned for an extra cost type outside the enum.
	ErrUnknownExtraCostType = errors.New("unknown extra cost type")
	// ErrUnknownDeliveryType is returned for a delivery type outside the enum.
	ErrUnknownDeliveryType = errors.New("unknown delivery type")
	// ErrUnknownFrequency is returned for an installment frequency outside the enum.
	ErrUnknownFrequency = errors.New("unknown installment frequency")
	// ErrUnknownShippingMethod is returned for a shipping method outside the enum.
	ErrUnknownShippingMethod = errors.New("unknown shipping method")
	// ErrUnknownCurrency is returned for a currency outside the enum.
	ErrUnknownCurrency = errors.New("unknown currency")
	// ErrInvalidAdvancePercent is returned when an advance option is not one
	// of the supported percentages.
	ErrInvalidAdvancePercent = errors.New("advance percent must be 10, 25 or 50")
	// ErrInvalidInstallmentCount indicates an installment option with fewer
	// than one installment. Rejecting it here is what keeps the division in
	// the engine safe.
	ErrInvalidInstallmentCount = errors.New("installment count must be at least 1")
	// ErrPlanNotOffered is returned when the selected payment plan percent is
	// not 100 or one of the store's enabled advance options. Callers must
	// surface it, never substitute a default.
	ErrPlanNotOffered = errors.New("payment plan not offered by store")
	// ErrInstallmentNotOffered is returned when the selected installment
	// option does not match any option the store offers.
	ErrInstallmentNotOffered = errors.New("installment option not offered by store")
	// ErrChannelNotOffered is returned when the selected payment method is
	// not one of the store's enabled channels.
	ErrChannelNotOffered = errors.New("payment method not offered by store")
	// ErrInvalidQty is returned for a cart line with a non-positive quantity.
	ErrInvalidQty = errors.New("quantity must be positive")
)

// supported advance percentages, each independently enableable per store.
var advancePercents = map[int]bool{10: true, 25: true, 50: true}

var validationErrors = []error{
	ErrNegativeAmount,
	ErrUnknownStoreType,
	ErrUnknownMarginType,
	ErrUnknownExtraCostType,
	ErrUnknownDeliveryType,
	ErrUnknownFrequency,
	ErrUnknownShippingMethod,
	ErrUnknownCurrency,
	ErrInvalidAdvancePercent,
	ErrInvalidInstallmentCount,
	ErrPlanNotOffered,
	ErrInstallmentNotOffered,
	ErrChannelNotOffered,
	ErrInvalidQty,
}

// IsValidationError reports whether err is one of this package's input
// validation errors, as opposed to an infrastructure failure.
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// Validate checks the product pricing inputs for the given store type. Bad
// input is rejected here so the arithmetic never has to coerce.
func (p ProductPricing) Validate(storeType StoreType) error {
	switch storeType {
	case StoreByOrder:
		if !validAmount(p.BaseCost) {
			return fmt.Errorf("baseCost: %w", ErrNegativeAmount)
		}
		if !validAmount(p.WeightLb) {
			return fmt.Errorf("weightLb: %w", ErrNegativeAmount)
		}
		if p.MarginType != MarginFixed && p.MarginType != MarginPercent {
			return fmt.Errorf("%w: %q", ErrUnknownMarginType, p.MarginType)
		}
		if !validAmount(p.MarginValue) {
			return fmt.Errorf("marginValue: %w", ErrNegativeAmount)
		}
	case StoreInStock:
		if !validAmount(p.PriceBase) {
			return fmt.Errorf("priceBase: %w", ErrNegativeAmount)
		}
		if !validAmount(p.TaxPercent) {
			return fmt.Errorf("taxPercent: %w", ErrNegativeAmount)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStoreType, storeType)
	}
	return nil
}

// Validate checks the whole store configuration at the persistence boundary.
func (s StoreConfig) Validate() error {
	if s.StoreType != StoreByOrder && s.StoreType != StoreInStock {
		return fmt.Errorf("%w: %q", ErrUnknownStoreType, s.StoreType)
	}
	if s.Currency != USD && s.Currency != NIO {
		return fmt.Errorf("%w: %q", ErrUnknownCurrency, s.Currency)
	}
	if s.LogisticsDual {
		if !validAmount(s.AirRatePerLb) {
			return fmt.Errorf("airRatePerLb: %w", ErrNegativeAmount)
		}
		if !validAmount(s.SeaRatePerLb) {
			return fmt.Errorf("seaRatePerLb: %w", ErrNegativeAmount)
		}
	}
	if s.ExtraCost.Enabled {
		if s.ExtraCost.Type != ExtraFixedAmount && s.ExtraCost.Type != ExtraPercentOfSubtotal {
			return fmt.Errorf("%w: %q", ErrUnknownExtraCostType, s.ExtraCost.Type)
		}
		if !validAmount(s.ExtraCost.Value) {
			return fmt.Errorf("extraCost.value: %w", ErrNegativeAmount)
		}
	}
	switch s.Delivery.Type {
	case DeliveryNone, DeliveryIncluded:
	case DeliveryFixed:
		if !validAmount(s.Delivery.FixedCost) {
			return fmt.Errorf("delivery.fixedCost: %w", ErrNegativeAmount)
		}
	case DeliveryRange:
		if !validAmount(s.Delivery.RangeStart) || !validAmount(s.Delivery.RangeEnd) {
			return fmt.Errorf("delivery.range: %w", ErrNegativeAmount)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDeliveryType, s.Delivery.Type)
	}
	for _, pct := range s.Payment.AdvancePercents {
		if !advancePercents[pct] {
			return fmt.Errorf("%w: got %d", ErrInvalidAdvancePercent, pct)
		}
	}
	for _, opt := range s.Payment.InstallmentOptions {
		if err := opt.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single installment option.
func (o InstallmentOption) Validate() error {
	switch o.Frequency {
	case Weekly, Biweekly, Monthly:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFrequency, o.Frequency)
	}
	if o.MaxInstallments < 1 {
		return ErrInvalidInstallmentCount
	}
	return nil
}

// ValidateSelections checks the buyer's checkout choices against what the
// store offers. An unrecognized plan percent is a caller contract violation
// and is rejected rather than defaulted.
func (s StoreConfig) ValidateSelections(sel Selections) error {
	if s.StoreType == StoreByOrder {
		if sel.ShippingMethod != ShipAir && sel.ShippingMethod != ShipSea {
			return fmt.Errorf("%w: %q", ErrUnknownShippingMethod, sel.ShippingMethod)
		}
	}
	if !s.planOffered(sel.PlanPercent) {
		return fmt.Errorf("%w: got %d", ErrPlanNotOffered, sel.PlanPercent)
	}
	if sel.Installment != nil {
		if err := sel.Installment.Validate(); err != nil {
			return err
		}
		if !s.Payment.AcceptsInstallments || !s.installmentOffered(*sel.Installment) {
			return ErrInstallmentNotOffered
		}
	}
	if sel.PaymentMethod != "" && len(s.Payment.Channels) > 0 && !s.channelOffered(sel.PaymentMethod) {
		return fmt.Errorf("%w: %q", ErrChannelNotOffered, sel.PaymentMethod)
	}
	return nil
}

func (s StoreConfig) planOffered(percent int) bool {
	if percent == 100 {
		return s.Payment.AcceptsFullPayment
	}
	if !s.Payment.AcceptsAdvance {
		return false
	}
	for _, pct := range s.Payment.AdvancePercents {
		if pct == percent {
			return true
		}
	}
	return false
}

func (s StoreConfig) installmentOffered(sel InstallmentOption) bool {
	for _, opt := range s.Payment.InstallmentOptions {
		if opt.Frequency == sel.Frequency && opt.MaxInstallments == sel.MaxInstallments {
			return true
		}
	}
	return false
}

func (s StoreConfig) channelOffered(method string) bool {
	for _, ch := range s.Payment.Channels {
		if ch == method {
			return true
		}
	}
	return false
}
