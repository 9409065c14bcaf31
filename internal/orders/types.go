package orders

import (
	"time"

	"github.com/ayzahstore/ayzah-backend/internal/cart"
	"github.com/ayzahstore/ayzah-backend/internal/users"
)

// Order lifecycle statuses. fit_adjustment_in_progress is only ever a
// creation-time status; it cannot be reached by a later transition.
const (
	StatusConfirmed     = "confirmed"
	StatusProcessing    = "processing"
	StatusFitAdjustment = "fit_adjustment_in_progress"
	StatusShipped       = "shipped"
	StatusDelivered     = "delivered"
)

// Payment statuses. Independent of the order lifecycle.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

var statusTransitions = map[string][]string{
	StatusConfirmed:     {StatusProcessing},
	StatusProcessing:    {StatusShipped},
	StatusFitAdjustment: {StatusShipped},
	StatusShipped:       {StatusDelivered},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanSetPayment reports whether the payment flag may change as requested.
func CanSetPayment(from, to string) bool {
	return from == PaymentPending && (to == PaymentPaid || to == PaymentFailed)
}

// OrderItem is a line item frozen into an order, carrying its fit-adjustment
// terms verbatim from the cart.
type OrderItem struct {
	ProductID     string              `json:"productId" dynamodbav:"product_id"`
	ProductName   string              `json:"productName" dynamodbav:"product_name"`
	ProductImage  string              `json:"productImage" dynamodbav:"product_image"`
	Size          string              `json:"size" dynamodbav:"size"`
	Quantity      int                 `json:"quantity" dynamodbav:"quantity"`
	Price         float64             `json:"price" dynamodbav:"price"`
	FitAdjustment *cart.FitAdjustment `json:"fitAdjustment,omitempty" dynamodbav:"fit_adjustment,omitempty"`
}

// Order is the immutable checkout snapshot stored in the orders table.
// Only the status fields and tracking number mutate after creation.
type Order struct {
	ID                string        `json:"id" dynamodbav:"id"` // PK
	UserID            string        `json:"userId" dynamodbav:"user_id"`
	OrderNumber       string        `json:"orderNumber" dynamodbav:"order_number"`
	Items             []OrderItem   `json:"items" dynamodbav:"items"`
	ShippingAddress   users.Address `json:"shippingAddress" dynamodbav:"shipping_address"`
	Subtotal          float64       `json:"subtotal" dynamodbav:"subtotal"`
	Discount          float64       `json:"discount" dynamodbav:"discount"`
	FitAdjustmentFee  float64       `json:"fitAdjustmentFee" dynamodbav:"fit_adjustment_fee"`
	DeliveryFee       float64       `json:"deliveryFee" dynamodbav:"delivery_fee"`
	Total             float64       `json:"total" dynamodbav:"total"`
	PaymentMethod     string        `json:"paymentMethod,omitempty" dynamodbav:"payment_method,omitempty"`
	PaymentStatus     string        `json:"paymentStatus" dynamodbav:"payment_status"`
	OrderStatus       string        `json:"orderStatus" dynamodbav:"order_status"`
	CouponCode        string        `json:"couponCode,omitempty" dynamodbav:"coupon_code,omitempty"`
	TrackingNumber    string        `json:"trackingNumber,omitempty" dynamodbav:"tracking_number,omitempty"`
	EstimatedDelivery time.Time     `json:"estimatedDelivery" dynamodbav:"estimated_delivery"`
	CreatedAt         time.Time     `json:"createdAt" dynamodbav:"created_at"`
}
