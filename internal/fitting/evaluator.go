// Package fitting decides whether a customer's measurements are compatible
// with a garment size, unlocking the paid fit-adjustment service.
package fitting

import (
	"fmt"
	"strings"

	"github.com/ayzahstore/ayzah-backend/internal/catalog"
	"github.com/ayzahstore/ayzah-backend/internal/users"
)

// Fit-adjustment policy. The adjustable dimensions are what the tailor can
// alter, fixed per service, not derived from which measurements passed.
const (
	AdjustmentFee  = 30.0 // QAR
	ExtraLeadDays  = 3
	MsgUnavailable = "Fit adjustment not available for this product"
	MsgNoSizeChart = "Size chart not available"
)

// AdjustableDimensions lists what the tailoring service can modify.
var AdjustableDimensions = []string{"length", "sleeve", "waist"}

// checkedDimensions are compared against the size chart, in this fixed order.
var checkedDimensions = []struct {
	name    string
	ceiling func(sc catalog.SizeChart) float64
}{
	{"bust", func(sc catalog.SizeChart) float64 { return sc.BustMax }},
	{"waist", func(sc catalog.SizeChart) float64 { return sc.WaistMax }},
	{"hips", func(sc catalog.SizeChart) float64 { return sc.HipsMax }},
	{"shoulder", func(sc catalog.SizeChart) float64 { return sc.ShoulderMax }},
}

// Decision is the outcome of an eligibility evaluation. It is never persisted
// as-is; an accepted decision is copied into the cart line item.
type Decision struct {
	Eligible    bool     `json:"eligible"`
	Reasons     []string `json:"reasons,omitempty"`
	Message     string   `json:"message,omitempty"`
	Fee         float64  `json:"fee,omitempty"`
	ExtraDays   int      `json:"extraDays,omitempty"`
	Adjustments []string `json:"adjustments,omitempty"`
	ProfileName string   `json:"profileName,omitempty"`
}

// Evaluate compares the profile's measurements against the size chart ceiling
// for the selected size. A measurement strictly greater than its ceiling
// fails; equality passes; a missing measurement counts as 0. Pure function.
func Evaluate(product *catalog.Product, selectedSize string, profile *users.MeasurementProfile) Decision {
	if !product.FitAdjustmentEnabled || len(product.SizeChart) == 0 {
		return Decision{Eligible: false, Message: MsgUnavailable}
	}

	chart, ok := product.SizeChart[selectedSize]
	if !ok {
		// A size outside the chart's keys is a data inconsistency, not a fault.
		return Decision{Eligible: false, Message: MsgNoSizeChart}
	}

	var reasons []string
	for _, dim := range checkedDimensions {
		if profile.Measurement(dim.name) > dim.ceiling(chart) {
			reasons = append(reasons, dim.name)
		}
	}

	if len(reasons) > 0 {
		return Decision{
			Eligible: false,
			Reasons:  reasons,
			Message: fmt.Sprintf("These measurements exceed the selected size (%s). Please choose a larger size.",
				strings.Join(reasons, ", ")),
		}
	}

	return Decision{
		Eligible:    true,
		Fee:         AdjustmentFee,
		ExtraDays:   ExtraLeadDays,
		Adjustments: AdjustableDimensions,
		ProfileName: profile.ProfileName,
	}
}
