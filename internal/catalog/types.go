package catalog

import "time"

// SizeChart holds the maximum supported body measurements for one size label.
type SizeChart struct {
	BustMax     float64 `json:"bust_max" dynamodbav:"bust_max"`
	WaistMax    float64 `json:"waist_max" dynamodbav:"waist_max"`
	HipsMax     float64 `json:"hips_max" dynamodbav:"hips_max"`
	ShoulderMax float64 `json:"shoulder_max" dynamodbav:"shoulder_max"`
}

// Product is the item stored in the products table.
// When FitAdjustmentEnabled is true a SizeChart should be present; its absence
// means the adjustment is simply unavailable, not an error.
type Product struct {
	ID                   string               `json:"id" dynamodbav:"id"` // PK
	Name                 string               `json:"name" dynamodbav:"name"`
	Description          string               `json:"description" dynamodbav:"description"`
	Price                float64              `json:"price" dynamodbav:"price"`
	DiscountPrice        *float64             `json:"discountPrice,omitempty" dynamodbav:"discount_price,omitempty"`
	Category             string               `json:"category" dynamodbav:"category"`
	Subcategory          string               `json:"subcategory,omitempty" dynamodbav:"subcategory,omitempty"`
	Images               []string             `json:"images" dynamodbav:"images"`
	Sizes                []string             `json:"sizes" dynamodbav:"sizes"`
	FitAdjustmentEnabled bool                 `json:"fitAdjustmentEnabled" dynamodbav:"fit_adjustment_enabled"`
	SizeChart            map[string]SizeChart `json:"sizeChart,omitempty" dynamodbav:"size_chart,omitempty"`
	Stock                int                  `json:"stock" dynamodbav:"stock"`
	Fabric               string               `json:"fabric" dynamodbav:"fabric"`
	Occasion             string               `json:"occasion" dynamodbav:"occasion"`
	Tags                 []string             `json:"tags,omitempty" dynamodbav:"tags,omitempty"`
	WhatsIncluded        string               `json:"whatsIncluded" dynamodbav:"whats_included"`
	CareInstructions     string               `json:"careInstructions" dynamodbav:"care_instructions"`
	IsActive             bool                 `json:"isActive" dynamodbav:"is_active"`
	CreatedAt            time.Time            `json:"createdAt" dynamodbav:"created_at"`
}

// EffectivePrice is the unit price a customer pays: the discounted price when
// one is set, the list price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// Category is a storefront navigation entry.
type Category struct {
	ID    string `json:"id" dynamodbav:"id"` // PK
	Name  string `json:"name" dynamodbav:"name"`
	Image string `json:"image" dynamodbav:"image"`
	Order int    `json:"order" dynamodbav:"display_order"`
}
