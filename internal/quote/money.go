package quote

// Money is a decimal amount expressed in the store's currency. The store
// builder keeps amounts as decimals end to end, so arithmetic stays in
// float64 and display rounding is left entirely to renderers.
type Money = float64

// Epsilon is the threshold below which an amount is not meaningfully
// positive. Positivity checks must use it instead of comparing to zero.
const Epsilon Money = 0.01
