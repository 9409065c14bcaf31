package catalog

import (
	"time"

	"github.com/google/uuid"
)

func floatPtr(v float64) *float64 { return &v }

// SampleCategories returns the storefront's launch categories.
func SampleCategories() []Category {
	names := []string{"Chikankari", "Pakistani Suits", "Jaipuri", "Lehengas", "Sarees"}
	cats := make([]Category, 0, len(names))
	for i, n := range names {
		cats = append(cats, Category{
			ID:    uuid.NewString(),
			Name:  n,
			Order: i + 1,
		})
	}
	return cats
}

// SampleProducts returns the launch catalog used by POST /api/seed.
func SampleProducts(now time.Time) []Product {
	return []Product{
		{
			ID:                   uuid.NewString(),
			Name:                 "Chikankari Kurta Set - Ivory",
			Description:          "Beautiful hand-embroidered Chikankari work on pure cotton fabric. Perfect for Ramadan.",
			Price:                349,
			DiscountPrice:        floatPtr(249),
			Category:             "Chikankari",
			Images:               []string{""},
			Sizes:                []string{"S", "M", "L", "XL", "XXL"},
			FitAdjustmentEnabled: true,
			SizeChart: map[string]SizeChart{
				"S":   {BustMax: 90, WaistMax: 70, HipsMax: 95, ShoulderMax: 38},
				"M":   {BustMax: 95, WaistMax: 75, HipsMax: 100, ShoulderMax: 40},
				"L":   {BustMax: 100, WaistMax: 80, HipsMax: 105, ShoulderMax: 42},
				"XL":  {BustMax: 105, WaistMax: 85, HipsMax: 110, ShoulderMax: 44},
				"XXL": {BustMax: 110, WaistMax: 90, HipsMax: 115, ShoulderMax: 46},
			},
			Stock:            25,
			Fabric:           "Cotton",
			Occasion:         "Ramadan",
			Tags:             []string{"bestseller", "ramadan"},
			WhatsIncluded:    "3pc set - Kurta, Palazzo, Dupatta",
			CareInstructions: "Dry clean recommended",
			IsActive:         true,
			CreatedAt:        now,
		},
		{
			ID:                   uuid.NewString(),
			Name:                 "Pakistani Lawn Suit - Pastel Pink",
			Description:          "Elegant Pakistani lawn suit with intricate embroidery. Lightweight and comfortable.",
			Price:                449,
			DiscountPrice:        floatPtr(329),
			Category:             "Pakistani Suits",
			Images:               []string{""},
			Sizes:                []string{"S", "M", "L", "XL"},
			FitAdjustmentEnabled: true,
			SizeChart: map[string]SizeChart{
				"S":  {BustMax: 88, WaistMax: 68, HipsMax: 93, ShoulderMax: 37},
				"M":  {BustMax: 93, WaistMax: 73, HipsMax: 98, ShoulderMax: 39},
				"L":  {BustMax: 98, WaistMax: 78, HipsMax: 103, ShoulderMax: 41},
				"XL": {BustMax: 103, WaistMax: 83, HipsMax: 108, ShoulderMax: 43},
			},
			Stock:            18,
			Fabric:           "Lawn",
			Occasion:         "Eid",
			Tags:             []string{"eid", "newin"},
			WhatsIncluded:    "2pc set",
			CareInstructions: "Dry clean recommended",
			IsActive:         true,
			CreatedAt:        now,
		},
		{
			ID:               uuid.NewString(),
			Name:             "Jaipuri Block Print Kurta",
			Description:      "Traditional Jaipuri block print on soft cotton. Vibrant colors and patterns.",
			Price:            299,
			DiscountPrice:    floatPtr(199),
			Category:         "Jaipuri",
			Images:           []string{""},
			Sizes:            []string{"S", "M", "L", "XL"},
			Stock:            30,
			Fabric:           "Cotton",
			Occasion:         "Casual",
			Tags:             []string{"under199"},
			WhatsIncluded:    "2pc set",
			CareInstructions: "Dry clean recommended",
			IsActive:         true,
			CreatedAt:        now,
		},
		{
			ID:                   uuid.NewString(),
			Name:                 "Designer Lehenga - Royal Blue",
			Description:          "Stunning designer lehenga with zari work. Perfect for special occasions.",
			Price:                1299,
			DiscountPrice:        floatPtr(999),
			Category:             "Lehengas",
			Images:               []string{""},
			Sizes:                []string{"S", "M", "L", "XL"},
			FitAdjustmentEnabled: true,
			SizeChart: map[string]SizeChart{
				"S":  {BustMax: 86, WaistMax: 66, HipsMax: 91, ShoulderMax: 36},
				"M":  {BustMax: 91, WaistMax: 71, HipsMax: 96, ShoulderMax: 38},
				"L":  {BustMax: 96, WaistMax: 76, HipsMax: 101, ShoulderMax: 40},
				"XL": {BustMax: 101, WaistMax: 81, HipsMax: 106, ShoulderMax: 42},
			},
			Stock:            12,
			Fabric:           "Silk",
			Occasion:         "Wedding",
			Tags:             []string{"premium"},
			WhatsIncluded:    "2pc set",
			CareInstructions: "Dry clean recommended",
			IsActive:         true,
			CreatedAt:        now,
		},
		{
			ID:               uuid.NewString(),
			Name:             "Banarasi Silk Saree - Magenta",
			Description:      "Authentic Banarasi silk saree with golden zari border. Timeless elegance.",
			Price:            899,
			DiscountPrice:    floatPtr(699),
			Category:         "Sarees",
			Images:           []string{""},
			Sizes:            []string{"One Size"},
			Stock:            20,
			Fabric:           "Silk",
			Occasion:         "Festive",
			Tags:             []string{"traditional"},
			WhatsIncluded:    "2pc set",
			CareInstructions: "Dry clean recommended",
			IsActive:         true,
			CreatedAt:        now,
		},
	}
}
