package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayzahstore/ayzah-backend/internal/cart"
	"github.com/ayzahstore/ayzah-backend/internal/pricing"
	"github.com/ayzahstore/ayzah-backend/internal/validation"
)

// getCart returns the cart valued through the pricing engine. Products that
// no longer resolve are reported under unavailableItems instead of being
// silently dropped.
func (a *api) getCart(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("userId")

	userCart, err := a.carts.Get(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if userCart == nil {
		c.JSON(http.StatusOK, gin.H{
			"userId": userID, "items": []pricing.Item{}, "subtotal": 0,
			"fitAdjustmentFee": 0, "total": 0, "unavailableItems": []string{},
		})
		return
	}

	ids := make([]string, 0, len(userCart.Items))
	for _, it := range userCart.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := a.catalog.GetMany(ctx, ids)
	if err != nil {
		respondError(c, err)
		return
	}

	value := pricing.ValueCart(userCart.Items, products)
	unavailable := value.Unavailable
	if unavailable == nil {
		unavailable = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"userId":           userID,
		"items":            value.Items,
		"subtotal":         value.Subtotal,
		"fitAdjustmentFee": value.FitAdjustmentFee,
		"total":            value.Total(),
		"unavailableItems": unavailable,
		"updatedAt":        userCart.UpdatedAt,
	})
}

func (a *api) addToCart(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.AddToCartRequest
	if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := a.catalog.Get(ctx, req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	if product == nil || !product.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	item := cart.LineItem{
		ProductID: req.ProductID,
		Size:      req.Size,
		Quantity:  req.Quantity,
	}

	// An attached adjustment is only stored once the evaluator accepts it;
	// the client-supplied profile id is never trusted with fee terms.
	if req.FitAdjustment != nil {
		decision, err := a.checkout.ValidateFitAdjustment(ctx, req.ProductID, req.Size, req.FitAdjustment.ProfileID)
		if err != nil {
			respondError(c, err)
			return
		}
		if !decision.Eligible {
			c.JSON(http.StatusBadRequest, gin.H{"error": "fit_adjustment_not_eligible", "decision": decision})
			return
		}
		item.FitAdjustment = &cart.FitAdjustment{
			ProfileID:   req.FitAdjustment.ProfileID,
			ProfileName: decision.ProfileName,
			Fee:         decision.Fee,
			ExtraDays:   decision.ExtraDays,
		}
	}

	if err := a.carts.AddItem(ctx, req.UserID, item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item added to cart"})
}

func (a *api) updateCartItem(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.UpdateCartItemRequest
	if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
		return
	}

	if req.Quantity == 0 {
		if err := a.carts.RemoveItem(ctx, req.UserID, req.ProductID, req.Size); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "item removed"})
		return
	}

	if err := a.carts.UpdateQuantity(ctx, req.UserID, req.ProductID, req.Size, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart updated"})
}

func (a *api) removeFromCart(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.RemoveFromCartRequest
	if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
		return
	}

	if err := a.carts.RemoveItem(ctx, req.UserID, req.ProductID, req.Size); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item removed"})
}

func (a *api) clearCart(c *gin.Context) {
	ctx := c.Request.Context()

	if err := a.carts.Clear(ctx, c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
