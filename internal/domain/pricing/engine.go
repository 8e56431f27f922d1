// Package pricing turns line items into the price breakdowns shown in the
// cart and checkout views. It performs no I/O.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Default business rules
const (
	DefaultDiscountRate   = "0.04"
	DefaultCouponDiscount = int64(117)
	DefaultPlatformFee    = int64(4)
)

// Rules holds the overridable pricing constants
type Rules struct {
	DiscountRate   decimal.Decimal
	CouponDiscount int64
	PlatformFee    int64
}

// DefaultRules returns the storefront's standard rules
func DefaultRules() Rules {
	return Rules{
		DiscountRate:   decimal.RequireFromString(DefaultDiscountRate),
		CouponDiscount: DefaultCouponDiscount,
		PlatformFee:    DefaultPlatformFee,
	}
}

// ParseRules builds rules from a decimal rate string and the fixed amounts
func ParseRules(rate string, coupon, fee int64) (Rules, error) {
	r, err := decimal.NewFromString(rate)
	if err != nil {
		return Rules{}, fmt.Errorf("invalid discount rate %q: %w", rate, err)
	}
	if r.IsNegative() {
		return Rules{}, fmt.Errorf("discount rate must not be negative")
	}
	return Rules{DiscountRate: r, CouponDiscount: coupon, PlatformFee: fee}, nil
}

// Line is one priced entry; quantities below 1 are priced as 1
type Line struct {
	Price    int64
	Quantity int
}

// Breakdown is a computed price summary in currency minor units
type Breakdown struct {
	ItemCount      int   `json:"itemCount"`
	Subtotal       int64 `json:"subtotal"`
	Discount       int64 `json:"discount"`
	CouponDiscount int64 `json:"couponDiscount"`
	PlatformFee    int64 `json:"platformFee"`
	Total          int64 `json:"total"`
	Savings        int64 `json:"savings"`
}

// Engine applies Rules to line items
type Engine struct {
	rules Rules
}

// NewEngine creates an engine for rules
func NewEngine(rules Rules) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the engine's rules
func (e *Engine) Rules() Rules {
	return e.rules
}

// CartTotals is the cart view breakdown, without the platform fee
func (e *Engine) CartTotals(lines []Line) Breakdown {
	return e.compute(lines, false)
}

// CheckoutTotals is the checkout breakdown, platform fee included
func (e *Engine) CheckoutTotals(lines []Line) Breakdown {
	return e.compute(lines, true)
}

func (e *Engine) compute(lines []Line, checkout bool) Breakdown {
	var b Breakdown
	for _, l := range lines {
		qty := l.Quantity
		if qty < 1 {
			qty = 1
		}
		b.ItemCount += qty
		b.Subtotal += l.Price * int64(qty)
	}

	b.Discount = decimal.NewFromInt(b.Subtotal).Mul(e.rules.DiscountRate).Floor().IntPart()
	if len(lines) > 0 {
		b.CouponDiscount = e.rules.CouponDiscount
	}
	if checkout {
		b.PlatformFee = e.rules.PlatformFee
	}

	b.Savings = b.Discount + b.CouponDiscount
	b.Total = b.Subtotal - b.Discount - b.CouponDiscount + b.PlatformFee
	return b
}
