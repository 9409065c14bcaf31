package cart

import "time"

// FitAdjustment is the tailoring descriptor attached to a line item once the
// eligibility check has passed. It is copied verbatim into the order item at
// checkout.
type FitAdjustment struct {
	ProfileID   string  `json:"profileId" dynamodbav:"profile_id"`
	ProfileName string  `json:"profileName" dynamodbav:"profile_name"`
	Fee         float64 `json:"fee" dynamodbav:"fee"`
	ExtraDays   int     `json:"extraDays" dynamodbav:"extra_days"`
}

// LineItem is one product/size entry in a cart.
type LineItem struct {
	ProductID     string         `json:"productId" dynamodbav:"product_id"`
	Size          string         `json:"size" dynamodbav:"size"`
	Quantity      int            `json:"quantity" dynamodbav:"quantity"`
	FitAdjustment *FitAdjustment `json:"fitAdjustment,omitempty" dynamodbav:"fit_adjustment,omitempty"`
}

// Cart is the per-user cart document. Version guards every mutation so
// concurrent writers cannot silently drop each other's items.
type Cart struct {
	UserID    string     `json:"userId" dynamodbav:"user_id"` // PK
	Items     []LineItem `json:"items" dynamodbav:"items"`
	UpdatedAt time.Time  `json:"updatedAt" dynamodbav:"updated_at"`
	Version   int64      `json:"-" dynamodbav:"version"`
}

// ItemIndex returns the index of the line item matching product and size, or -1.
func (c *Cart) ItemIndex(productID, size string) int {
	for i, it := range c.Items {
		if it.ProductID == productID && it.Size == size {
			return i
		}
	}
	return -1
}

// HasFitAdjustment reports whether any line item carries an adjustment.
func (c *Cart) HasFitAdjustment() bool {
	for _, it := range c.Items {
		if it.FitAdjustment != nil {
			return true
		}
	}
	return false
}
