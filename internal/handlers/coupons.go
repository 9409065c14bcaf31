package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayzahstore/ayzah-backend/internal/coupons"
	"github.com/ayzahstore/ayzah-backend/internal/validation"
)

func (a *api) listCoupons(c *gin.Context) {
	ctx := c.Request.Context()

	list, err := a.coupons.ListActive(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []coupons.Coupon{}
	}
	c.JSON(http.StatusOK, gin.H{"coupons": list})
}

// validateCoupon checks a coupon against a quoted cart total without
// consuming a use. For free-delivery coupons the discount is the fee the
// customer would have paid.
func (a *api) validateCoupon(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.ValidateCouponRequest
	if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
		return
	}

	discount, err := a.checkout.ValidateCoupon(ctx, req.Code, req.CartTotal, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":      true,
		"code":       req.Code,
		"discount":   discount,
		"finalTotal": req.CartTotal - discount,
	})
}
