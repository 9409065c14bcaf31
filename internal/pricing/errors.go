package pricing

import (
	"errors"
	"fmt"
)

// Coupon rejection reasons. Not-found, expired/not-yet-valid, and
// below-minimum must stay distinguishable so the storefront can render the
// right message.
var (
	ErrCouponNotFound    = errors.New("invalid coupon code")
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrCouponNotYetValid = errors.New("coupon is not valid yet")
	ErrUnknownCouponKind = errors.New("unknown coupon type")
)

// MinCartValueError reports a cart below the coupon's minimum, carrying the
// threshold so the message can name it.
type MinCartValueError struct {
	Required float64
}

func (e *MinCartValueError) Error() string {
	return fmt.Sprintf("minimum cart value is QAR %g", e.Required)
}
