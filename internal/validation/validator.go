package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with custom struct-level validation registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// measurement values are lengths in centimeters; negatives are always
	// client bugs, not data.
	v.RegisterStructValidation(measurementProfileStructValidation, AddMeasurementProfileRequest{})

	return v
}

func measurementProfileStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(AddMeasurementProfileRequest)

	for name, value := range req.Measurements {
		if value < 0 {
			sl.ReportError(req.Measurements, "measurements", "Measurements", "measurement_non_negative", name)
		}
	}
}
