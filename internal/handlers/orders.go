package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayzahstore/ayzah-backend/internal/checkout"
	"github.com/ayzahstore/ayzah-backend/internal/orders"
	"github.com/ayzahstore/ayzah-backend/internal/validation"
)

func (a *api) createOrder(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.CreateOrderRequest
	if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
		return
	}

	order, unavailable, err := a.checkout.CreateOrder(ctx, checkout.CreateOrderInput{
		UserID:            req.UserID,
		ShippingAddressID: req.ShippingAddressID,
		CouponCode:        req.CouponCode,
		PaymentMethod:     req.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if unavailable == nil {
		unavailable = []string{}
	}

	c.JSON(http.StatusCreated, gin.H{"order": order, "unavailableItems": unavailable})
}

func (a *api) listOrders(c *gin.Context) {
	ctx := c.Request.Context()

	list, err := a.orders.ListByUser(ctx, c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []orders.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

func (a *api) getOrder(c *gin.Context) {
	ctx := c.Request.Context()

	o, err := a.orders.Get(ctx, c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if o == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, o)
}

func (a *api) updateOrderStatus(c *gin.Context) {
	ctx := c.Request.Context()
	orderID := c.Param("orderId")

	var req validation.UpdateOrderStatusRequest
	if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
		return
	}

	o, err := a.orders.Get(ctx, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	if o == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	if err := a.orders.UpdateStatus(ctx, orderID, o.OrderStatus, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orderId": orderID, "orderStatus": req.Status})
}

func (a *api) updatePaymentStatus(c *gin.Context) {
	ctx := c.Request.Context()
	orderID := c.Param("orderId")

	var req validation.UpdatePaymentRequest
	if err := validation.BindAndValidate(c, &req, a.validate); err != nil {
		return
	}

	if err := a.orders.SetPaymentStatus(ctx, orderID, orders.PaymentPending, req.PaymentStatus); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orderId": orderID, "paymentStatus": req.PaymentStatus})
}
