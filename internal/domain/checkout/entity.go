// internal/domain/checkout/entity.go
package checkout

import (
	"time"

	"github.com/your-org/ecart-storefront/internal/domain/cart"
	"github.com/your-org/ecart-storefront/internal/domain/pricing"
)

// DefaultCollection is the remote collection holding orders
const DefaultCollection = "orders"

// State is a step of the commit state machine
type State string

const (
	StateIdle              State = "idle"
	StateOrderSubmitted    State = "order_submitted"
	StateCartDrainInFlight State = "cart_drain_in_flight"
	StateDone              State = "done"
)

// PaymentMethod is a selectable payment label; no gateway is involved
type PaymentMethod struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// DefaultPaymentMethods are the storefront's payment choices
func DefaultPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{Code: "cod", Label: "Cash on Delivery"},
		{Code: "gpay", Label: "Google Pay (UPI)"},
		{Code: "phonepe", Label: "PhonePe (UPI)"},
	}
}

// Order is an immutable snapshot of a committed cart
type Order struct {
	ID             string          `json:"-"`
	Username       string          `json:"username"`
	Items          []cart.LineItem `json:"items"`
	PaymentMethod  string          `json:"paymentMethod"`
	Subtotal       int64           `json:"subtotal"`
	Discount       int64           `json:"discount"`
	CouponDiscount int64           `json:"couponDiscount"`
	PlatformFee    int64           `json:"platformFee"`
	Total          int64           `json:"total"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// Preview is what the checkout view shows before committing
type Preview struct {
	Items          []cart.LineItem   `json:"items"`
	Totals         pricing.Breakdown `json:"totals"`
	PaymentMethods []PaymentMethod   `json:"paymentMethods"`
}

// Result reports a successful commit. Stale lists line items whose delete
// failed; they remain in the cart and need manual reconciliation.
type Result struct {
	Order   Order    `json:"order"`
	OrderID string   `json:"orderId"`
	Drained int      `json:"drained"`
	Stale   []string `json:"stale,omitempty"`
}
