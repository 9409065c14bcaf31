package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ayzahstore/ayzah-backend/internal/users"
	"github.com/ayzahstore/ayzah-backend/internal/validation"
)

func (a *api) listMeasurements(c *gin.Context) {
	ctx := c.Request.Context()

	u, err := a.users.Get(ctx, c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if u == nil {
		respondError(c, users.ErrNotFound)
		return
	}
	profiles := u.MeasurementProfiles
	if profiles == nil {
		profiles = []users.MeasurementProfile{}
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

func (a *api) addMeasurementProfile(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.AddMeasurementProfileRequest
	if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
		return
	}

	profile := users.MeasurementProfile{
		ID:           uuid.NewString(),
		ProfileName:  req.ProfileName,
		Measurements: req.Measurements,
		Notes:        req.Notes,
	}
	if err := a.users.AddMeasurementProfile(ctx, req.UserID, profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"profileId": profile.ID})
}

// validateFit runs the eligibility evaluation without touching the cart.
// Ineligibility is a 200 carrying the decision, not an error.
func (a *api) validateFit(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.ValidateFitRequest
	if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
		return
	}

	decision, err := a.checkout.ValidateFitAdjustment(ctx, req.ProductID, req.SelectedSize, req.ProfileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, decision)
}
