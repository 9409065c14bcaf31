// Package pricing computes cart and order totals: subtotal, coupon discount,
// fit-adjustment fees, delivery fee, and the estimated delivery date.
package pricing

import (
	"time"

	"github.com/ayzahstore/ayzah-backend/internal/cart"
	"github.com/ayzahstore/ayzah-backend/internal/catalog"
	"github.com/ayzahstore/ayzah-backend/internal/coupons"
)

// Delivery and lead-time policy. Fixed defaults; the validate-coupon response
// and order math both depend on these exact values.
const (
	DeliveryFee           = 15.0 // QAR, charged under the free-delivery threshold
	FreeDeliveryThreshold = 200.0
	BaseLeadDays          = 5
	FitAdjustmentLeadDays = 3 // flat surcharge, applied once per order
)

// Item is a cart line item enriched with resolved product data.
// ItemTotal includes the per-unit fit-adjustment fee when one is attached.
type Item struct {
	ProductID     string              `json:"productId"`
	ProductName   string              `json:"productName"`
	ProductImage  string              `json:"productImage"`
	Size          string              `json:"size"`
	Quantity      int                 `json:"quantity"`
	Price         float64             `json:"price"`
	FitAdjustment *cart.FitAdjustment `json:"fitAdjustment,omitempty"`
	ItemTotal     float64             `json:"itemTotal"`
}

// CartValue is the result of valuing a cart's line items.
// Subtotal excludes fit fees; FitAdjustmentFee aggregates them separately so
// the order breakdown can report each on its own line.
type CartValue struct {
	Items            []Item
	Subtotal         float64
	FitAdjustmentFee float64
	Unavailable      []string // product ids that no longer resolve
}

// Total is the amount the cart view shows: priced items plus their fit fees.
func (v CartValue) Total() float64 {
	return v.Subtotal + v.FitAdjustmentFee
}

// HasFitAdjustment reports whether any priced item carries an adjustment.
func (v CartValue) HasFitAdjustment() bool {
	for _, it := range v.Items {
		if it.FitAdjustment != nil {
			return true
		}
	}
	return false
}

// ValueCart resolves and prices each line item. The effective unit price is
// the discounted price when present, the list price otherwise. Items whose
// product is missing from the lookup are excluded from pricing and reported
// in Unavailable rather than dropped silently.
func ValueCart(items []cart.LineItem, products map[string]catalog.Product) CartValue {
	var v CartValue
	for _, li := range items {
		p, ok := products[li.ProductID]
		if !ok {
			v.Unavailable = append(v.Unavailable, li.ProductID)
			continue
		}

		price := p.EffectivePrice()
		lineTotal := price * float64(li.Quantity)
		v.Subtotal += lineTotal

		itemTotal := lineTotal
		if li.FitAdjustment != nil {
			fee := li.FitAdjustment.Fee * float64(li.Quantity)
			v.FitAdjustmentFee += fee
			itemTotal += fee
		}

		image := ""
		if len(p.Images) > 0 {
			image = p.Images[0]
		}
		v.Items = append(v.Items, Item{
			ProductID:     li.ProductID,
			ProductName:   p.Name,
			ProductImage:  image,
			Size:          li.Size,
			Quantity:      li.Quantity,
			Price:         price,
			FitAdjustment: li.FitAdjustment,
			ItemTotal:     itemTotal,
		})
	}
	return v
}

// ApplyCoupon validates a coupon against the cart subtotal and returns the
// discount amount. The caller resolves the coupon by exact code; a nil or
// inactive coupon reports the same error as an unknown code.
//
// Flat discounts are not clamped to the subtotal here; BuildOrderTotals
// floors the final total at zero. Free-delivery coupons report the standard
// delivery fee as their discount. At checkout the fee is waived instead, so
// the saving is never counted twice.
func ApplyCoupon(c *coupons.Coupon, cartSubtotal float64, now time.Time) (float64, error) {
	if c == nil || !c.IsActive {
		return 0, ErrCouponNotFound
	}
	if now.Before(c.ValidFrom) {
		return 0, ErrCouponNotYetValid
	}
	if now.After(c.ValidTo) {
		return 0, ErrCouponExpired
	}
	if cartSubtotal < c.MinCartValue {
		return 0, &MinCartValueError{Required: c.MinCartValue}
	}

	switch c.Kind {
	case coupons.KindPercentage:
		discount := cartSubtotal * c.Value / 100
		if c.MaxDiscount != nil && discount > *c.MaxDiscount {
			discount = *c.MaxDiscount
		}
		return discount, nil
	case coupons.KindFlat:
		return c.Value, nil
	case coupons.KindFreeDelivery:
		return DeliveryFee, nil
	default:
		return 0, ErrUnknownCouponKind
	}
}

// Totals is the computed monetary tail of an order.
type Totals struct {
	DeliveryFee       float64
	Total             float64
	EstimatedDelivery time.Time
}

// BuildOrderTotals assembles the delivery fee, grand total, and estimated
// delivery date. The fit-adjustment lead surcharge applies once per order no
// matter how many items need adjustment. The total is floored at zero: a flat
// coupon larger than the cart cannot produce a negative receivable.
func BuildOrderTotals(subtotal, discount, fitAdjustmentFee float64, hasFitAdjustment, freeDelivery bool, now time.Time) Totals {
	deliveryFee := 0.0
	if subtotal < FreeDeliveryThreshold && !freeDelivery {
		deliveryFee = DeliveryFee
	}

	total := subtotal - discount + fitAdjustmentFee + deliveryFee
	if total < 0 {
		total = 0
	}

	leadDays := BaseLeadDays
	if hasFitAdjustment {
		leadDays += FitAdjustmentLeadDays
	}

	return Totals{
		DeliveryFee:       deliveryFee,
		Total:             total,
		EstimatedDelivery: now.AddDate(0, 0, leadDays),
	}
}
