package coupons

import "time"

// Coupon kinds.
const (
	KindPercentage   = "percentage"
	KindFlat         = "flat"
	KindFreeDelivery = "freedelivery"
)

// Coupon is the item stored in the coupons table, keyed by its code
// (codes are unique and matched case-sensitively).
type Coupon struct {
	ID                 string    `json:"id" dynamodbav:"id"`
	Code               string    `json:"code" dynamodbav:"code"` // PK
	Kind               string    `json:"type" dynamodbav:"kind"` // percentage | flat | freedelivery
	Value              float64   `json:"value" dynamodbav:"value"`
	MinCartValue       float64   `json:"minCartValue" dynamodbav:"min_cart_value"`
	MaxDiscount        *float64  `json:"maxDiscount,omitempty" dynamodbav:"max_discount,omitempty"`
	ValidFrom          time.Time `json:"validFrom" dynamodbav:"valid_from"`
	ValidTo            time.Time `json:"validTo" dynamodbav:"valid_to"`
	UsageLimit         int       `json:"usageLimit" dynamodbav:"usage_limit"`
	UsedCount          int       `json:"usedCount" dynamodbav:"used_count"`
	EligibleCategories []string  `json:"eligibleCategories,omitempty" dynamodbav:"eligible_categories,omitempty"`
	FirstOrderOnly     bool      `json:"firstOrderOnly" dynamodbav:"first_order_only"`
	IsActive           bool      `json:"isActive" dynamodbav:"is_active"`
}

// Exhausted reports whether the usage limit has been reached.
func (c *Coupon) Exhausted() bool {
	return c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit
}
