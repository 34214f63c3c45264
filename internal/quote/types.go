package quote

// StoreType selects which product pricing shape and delivery fields apply.
type StoreType string

const (
	// StoreByOrder resells import-sourced products; prices depend on the
	// chosen shipping method.
	StoreByOrder StoreType = "by_order"
	// StoreInStock sells local inventory at a single, optionally taxed price.
	StoreInStock StoreType = "in_stock"
)

// MarginType determines how the merchant margin is applied on top of cost.
type MarginType string

const (
	MarginFixed   MarginType = "fixed"
	MarginPercent MarginType = "percent"
)

// ShippingMethod is the buyer's logistics choice for by-order stores.
type ShippingMethod string

const (
	ShipAir ShippingMethod = "air"
	ShipSea ShippingMethod = "sea"
)

// ExtraCostType determines how a store-level surcharge is computed.
type ExtraCostType string

const (
	ExtraFixedAmount       ExtraCostType = "fixed"
	ExtraPercentOfSubtotal ExtraCostType = "percent"
)

// DeliveryType describes the store's delivery policy.
type DeliveryType string

const (
	DeliveryNone  DeliveryType = "none"
	DeliveryFixed DeliveryType = "fixed"
	// DeliveryRange is display-only: the final cost is negotiated out of band
	// and never contributes to a computed total.
	DeliveryRange DeliveryType = "range"
	// DeliveryIncluded is folded into the product price by the merchant and
	// contributes zero on top.
	DeliveryIncluded DeliveryType = "included"
)

// Frequency is the cadence of an installment plan.
type Frequency string

const (
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
)

// Currency identifies the display currency. All arithmetic is
// currency-agnostic.
type Currency string

const (
	USD Currency = "USD"
	NIO Currency = "NIO"
)

// ProductPricing carries the raw pricing inputs of a single product. The
// store type selects which field group applies: by-order stores use
// cost/weight/margin, in-stock stores use base price and tax.
type ProductPricing struct {
	BaseCost    Money      `json:"baseCost"`
	WeightLb    float64    `json:"weightLb"`
	MarginType  MarginType `json:"marginType"`
	MarginValue float64    `json:"marginValue"`

	PriceBase   Money   `json:"priceBase"`
	TaxPercent  float64 `json:"taxPercent"`
	TaxIncluded bool    `json:"taxIncluded"`
}

// DerivedPrices holds the customer-facing prices computed from a product's
// raw inputs and the store rates. For in-stock stores only FinalPrice is
// populated.
type DerivedPrices struct {
	BaseCostAir   Money `json:"baseCostAir"`
	BaseCostSea   Money `json:"baseCostSea"`
	FinalPriceAir Money `json:"finalPriceAir"`
	FinalPriceSea Money `json:"finalPriceSea"`
	FinalPrice    Money `json:"finalPrice"`
}

// ExtraCost is an optional store-level surcharge applied once per order.
type ExtraCost struct {
	Enabled     bool          `json:"enabled"`
	Value       float64       `json:"value"`
	Type        ExtraCostType `json:"type"`
	Description string        `json:"description"`
}

// Delivery captures the store's delivery policy. RangeStart/RangeEnd are
// display-only bounds for DeliveryRange.
type Delivery struct {
	Type       DeliveryType `json:"type"`
	FixedCost  Money        `json:"fixedCost"`
	RangeStart Money        `json:"rangeStart"`
	RangeEnd   Money        `json:"rangeEnd"`
	Note       string       `json:"note"`
}

// InstallmentOption is one financing cadence the store offers.
type InstallmentOption struct {
	Frequency       Frequency `json:"frequency"`
	MaxInstallments int       `json:"maxInstallments"`
}

// PaymentPolicy enumerates how the store accepts payment. Channels are
// informational for display and play no part in the arithmetic.
type PaymentPolicy struct {
	AcceptsFullPayment  bool                `json:"acceptsFullPayment"`
	AcceptsAdvance      bool                `json:"acceptsAdvance"`
	AdvancePercents     []int               `json:"advancePercents"`
	AcceptsInstallments bool                `json:"acceptsInstallments"`
	InstallmentOptions  []InstallmentOption `json:"installmentOptions"`
	Channels            []string            `json:"channels"`
}

// StoreConfig is the full pricing-relevant store configuration snapshot.
type StoreConfig struct {
	StoreType     StoreType     `json:"storeType"`
	LogisticsDual bool          `json:"logisticsDual"`
	AirRatePerLb  Money         `json:"airRatePerLb"`
	SeaRatePerLb  Money         `json:"seaRatePerLb"`
	Currency      Currency      `json:"currency"`
	ExtraCost     ExtraCost     `json:"extraCost"`
	Delivery      Delivery      `json:"delivery"`
	Payment       PaymentPolicy `json:"payment"`
}

// Selections are the buyer's in-progress checkout choices. They live only in
// the checkout session and are never persisted.
type Selections struct {
	ShippingMethod ShippingMethod     `json:"shippingMethod"`
	PaymentMethod  string             `json:"paymentMethod"`
	PlanPercent    int                `json:"planPercent"`
	Installment    *InstallmentOption `json:"installment"`
	WantsDelivery  bool               `json:"wantsDelivery"`
}

// CartLine pairs a product's pricing inputs with a quantity.
type CartLine struct {
	Pricing ProductPricing
	Qty     int
}

// InstallmentPlan is the computed financing breakdown for a pending balance.
type InstallmentPlan struct {
	Frequency Frequency `json:"frequency"`
	Count     int       `json:"count"`
	Amount    Money     `json:"amount"`
}

// Quote is the computed order breakdown. It is a pure function of its inputs
// and must never be persisted as independent truth.
type Quote struct {
	ProductSubtotal Money            `json:"productSubtotal"`
	ExtraCost       Money            `json:"extraCost"`
	DeliveryCost    Money            `json:"deliveryCost"`
	UpfrontCosts    Money            `json:"upfrontCosts"`
	GrandTotal      Money            `json:"grandTotal"`
	AmountDueNow    Money            `json:"amountDueNow"`
	PendingBalance  Money            `json:"pendingBalance"`
	Installment     *InstallmentPlan `json:"installment"`
	TotalWeightLb   float64          `json:"totalWeightLb"`
	TotalUnits      int              `json:"totalUnits"`
}
