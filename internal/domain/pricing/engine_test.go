package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartTotals(t *testing.T) {
	e := NewEngine(DefaultRules())

	b := e.CartTotals([]Line{{Price: 1000, Quantity: 2}, {Price: 2500, Quantity: 1}})

	assert.Equal(t, Breakdown{
		ItemCount:      3,
		Subtotal:       4500,
		Discount:       180,
		CouponDiscount: 117,
		Total:          4203,
		Savings:        297,
	}, b)
}

func TestCheckoutTotals(t *testing.T) {
	e := NewEngine(DefaultRules())

	b := e.CheckoutTotals([]Line{{Price: 5000, Quantity: 1}})

	assert.Equal(t, int64(5000), b.Subtotal)
	assert.Equal(t, int64(200), b.Discount)
	assert.Equal(t, int64(117), b.CouponDiscount)
	assert.Equal(t, int64(4), b.PlatformFee)
	assert.Equal(t, int64(4687), b.Total)
}

func TestDiscountFloors(t *testing.T) {
	e := NewEngine(DefaultRules())

	// 999 * 0.04 = 39.96
	assert.Equal(t, int64(39), e.CartTotals([]Line{{Price: 999, Quantity: 1}}).Discount)
}

func TestEmptyCartHasNoCoupon(t *testing.T) {
	e := NewEngine(DefaultRules())

	assert.Equal(t, Breakdown{}, e.CartTotals(nil))
	assert.Equal(t, int64(4), e.CheckoutTotals(nil).Total)
}

func TestQuantityBelowOnePricedAsOne(t *testing.T) {
	e := NewEngine(DefaultRules())

	b := e.CartTotals([]Line{{Price: 1000, Quantity: 0}, {Price: 1000, Quantity: -3}})
	assert.Equal(t, int64(2000), b.Subtotal)
	assert.Equal(t, 2, b.ItemCount)
}

func TestTotalNotClamped(t *testing.T) {
	e := NewEngine(DefaultRules())

	b := e.CartTotals([]Line{{Price: 50, Quantity: 1}})
	assert.Equal(t, int64(50-2-117), b.Total)
}

func TestParseRules(t *testing.T) {
	rules, err := ParseRules("0.10", 0, 10)
	require.NoError(t, err)

	b := NewEngine(rules).CheckoutTotals([]Line{{Price: 1000, Quantity: 1}})
	assert.Equal(t, int64(1000-100+10), b.Total)

	_, err = ParseRules("abc", 0, 0)
	assert.Error(t, err)
	_, err = ParseRules("-0.1", 0, 0)
	assert.Error(t, err)
}
