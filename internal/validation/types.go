package validation

// RegisterRequest is the payload for POST /api/auth/register
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest is the payload for POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FitAdjustmentPayload opts a cart line item into tailoring. The fee and
// lead-time terms are set server-side after the eligibility check.
type FitAdjustmentPayload struct {
	ProfileID string `json:"profileId" validate:"required"`
}

// AddToCartRequest is the payload for POST /api/cart/add
type AddToCartRequest struct {
	UserID        string                `json:"userId" validate:"required"`
	ProductID     string                `json:"productId" validate:"required"`
	Size          string                `json:"size" validate:"required"`
	Quantity      int                   `json:"quantity,omitempty" validate:"omitempty,min=1"` // defaults to 1
	FitAdjustment *FitAdjustmentPayload `json:"fitAdjustment,omitempty"`
}

// UpdateCartItemRequest is the payload for POST /api/cart/update.
// Quantity 0 removes the line item.
type UpdateCartItemRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=0"`
}

// RemoveFromCartRequest is the payload for POST /api/cart/remove
type RemoveFromCartRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size" validate:"required"`
}

// ValidateFitRequest is the payload for POST /api/measurements/validate
type ValidateFitRequest struct {
	ProductID    string `json:"productId" validate:"required"`
	SelectedSize string `json:"selectedSize" validate:"required"`
	ProfileID    string `json:"profileId" validate:"required"`
}

// AddMeasurementProfileRequest is the payload for POST /api/measurements/add
type AddMeasurementProfileRequest struct {
	UserID       string             `json:"userId" validate:"required"`
	ProfileName  string             `json:"profileName" validate:"required"`
	Measurements map[string]float64 `json:"measurements" validate:"required,min=1"`
	Notes        string             `json:"notes,omitempty"`
}

// AddAddressRequest is the payload for POST /api/addresses/add
type AddAddressRequest struct {
	UserID       string `json:"userId" validate:"required"`
	Label        string `json:"label" validate:"required"`
	FullName     string `json:"fullName" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
	Country      string `json:"country" validate:"required"`
	IsDefault    bool   `json:"isDefault"`
}

// UpdateUserRequest is the payload for PUT /api/users/:userId
type UpdateUserRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

// WishlistRequest is the payload for wishlist add/remove.
type WishlistRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
}

// ValidateCouponRequest is the payload for POST /api/coupons/validate
type ValidateCouponRequest struct {
	Code      string  `json:"code" validate:"required"`
	CartTotal float64 `json:"cartTotal" validate:"gte=0"`
	UserID    string  `json:"userId" validate:"required"`
}

// CreateOrderRequest is the payload for POST /api/orders/create
type CreateOrderRequest struct {
	UserID            string `json:"userId" validate:"required"`
	ShippingAddressID string `json:"shippingAddressId" validate:"required"`
	CouponCode        string `json:"couponCode,omitempty"`
	PaymentMethod     string `json:"paymentMethod,omitempty" validate:"omitempty,oneof=card cod"`
}

// UpdateOrderStatusRequest is the payload for PUT /api/orders/:orderId/status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=processing shipped delivered"`
}

// UpdatePaymentRequest is the payload for PUT /api/orders/:orderId/payment
type UpdatePaymentRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required,oneof=paid failed"`
}
