package validation

import (
	"testing"
)

func TestAddToCartRequest_Valid(t *testing.T) {
	v := New()

	req := AddToCartRequest{
		UserID:    "u1",
		ProductID: "p1",
		Size:      "M",
		Quantity:  2,
	}
	if err := v.Struct(req); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}

	// quantity omitted is fine; the handler defaults it to 1
	req.Quantity = 0
	if err := v.Struct(req); err != nil {
		t.Fatalf("expected valid with omitted quantity, got error: %v", err)
	}
}

func TestAddToCartRequest_MissingFields(t *testing.T) {
	v := New()

	req := AddToCartRequest{ProductID: "p1"}
	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation errors for missing required fields, got nil")
	}
}

func TestAddMeasurementProfileRequest_NegativeMeasurement(t *testing.T) {
	v := New()

	req := AddMeasurementProfileRequest{
		UserID:      "u1",
		ProfileName: "Me",
		Measurements: map[string]float64{
			"bust":  90,
			"waist": -5,
		},
	}
	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for negative measurement, got nil")
	}
}

func TestAddMeasurementProfileRequest_Valid(t *testing.T) {
	v := New()

	req := AddMeasurementProfileRequest{
		UserID:      "u1",
		ProfileName: "Mother",
		Measurements: map[string]float64{
			"bust":     96,
			"waist":    78,
			"hips":     102,
			"shoulder": 39,
		},
		Notes: "prefers loose fits",
	}
	if err := v.Struct(req); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
}

func TestRegisterRequest_ShortPassword(t *testing.T) {
	v := New()

	req := RegisterRequest{Name: "A", Email: "a@example.com", Password: "abc"}
	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for short password, got nil")
	}
}

func TestUpdateOrderStatusRequest_RejectsUnknownStatus(t *testing.T) {
	v := New()

	if err := v.Struct(UpdateOrderStatusRequest{Status: "shipped"}); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
	if err := v.Struct(UpdateOrderStatusRequest{Status: "teleported"}); err == nil {
		t.Fatal("expected validation error for unknown status, got nil")
	}
	// fit_adjustment_in_progress is creation-time only, never a target
	if err := v.Struct(UpdateOrderStatusRequest{Status: "fit_adjustment_in_progress"}); err == nil {
		t.Fatal("expected validation error, got nil")
	}
}
