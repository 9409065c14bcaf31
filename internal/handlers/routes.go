// Package handlers wires the HTTP surface: route registration, request
// binding, and the mapping from domain errors to status codes.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/ayzahstore/ayzah-backend/internal/auth"
	"github.com/ayzahstore/ayzah-backend/internal/aws"
	"github.com/ayzahstore/ayzah-backend/internal/cart"
	"github.com/ayzahstore/ayzah-backend/internal/catalog"
	"github.com/ayzahstore/ayzah-backend/internal/checkout"
	"github.com/ayzahstore/ayzah-backend/internal/coupons"
	"github.com/ayzahstore/ayzah-backend/internal/orders"
	"github.com/ayzahstore/ayzah-backend/internal/pricing"
	"github.com/ayzahstore/ayzah-backend/internal/users"
	"github.com/ayzahstore/ayzah-backend/internal/validation"
)

// Config groups dependencies for the API handlers.
type Config struct {
	DynamoDBClient aws.DynamoDBAPI
	SQSClient      aws.SQSAPI

	UsersTable      string
	ProductsTable   string
	CategoriesTable string
	CartsTable      string
	CouponsTable    string
	OrdersTable     string

	OrdersQueueURL string
}

type api struct {
	validate *validatorv10.Validate
	auth     auth.Service

	users    *users.Store
	catalog  *catalog.Store
	carts    *cart.Store
	coupons  *coupons.Store
	orders   *orders.Store
	checkout *checkout.Service
}

// Register builds the stores from cfg and mounts every route under /api.
func Register(r *gin.Engine, cfg Config) {
	userStore := users.NewStore(cfg.DynamoDBClient, cfg.UsersTable)
	catalogStore := catalog.NewStore(cfg.DynamoDBClient, cfg.ProductsTable, cfg.CategoriesTable)
	cartStore := cart.NewStore(cfg.DynamoDBClient, cfg.CartsTable)
	couponStore := coupons.NewStore(cfg.DynamoDBClient, cfg.CouponsTable)
	orderStore := orders.NewStore(cfg.DynamoDBClient, cfg.OrdersTable, cfg.CartsTable, cfg.CouponsTable)

	var events checkout.EventPublisher
	if cfg.SQSClient != nil && cfg.OrdersQueueURL != "" {
		events = aws.NewPublisher(cfg.SQSClient, cfg.OrdersQueueURL)
	}

	a := &api{
		validate: validation.New(),
		auth:     auth.NewService(auth.DefaultParams),
		users:    userStore,
		catalog:  catalogStore,
		carts:    cartStore,
		coupons:  couponStore,
		orders:   orderStore,
		checkout: checkout.NewService(cartStore, userStore, catalogStore, couponStore, orderStore, events),
	}

	g := r.Group("/api")

	g.POST("/auth/register", a.register)
	g.POST("/auth/login", a.login)
	g.POST("/auth/guest", a.guestSession)

	g.GET("/products", a.listProducts)
	g.GET("/products/:productId", a.getProduct)
	g.GET("/categories", a.listCategories)

	g.GET("/cart/:userId", a.getCart)
	g.POST("/cart/add", a.addToCart)
	g.POST("/cart/update", a.updateCartItem)
	g.POST("/cart/remove", a.removeFromCart)
	g.DELETE("/cart/:userId", a.clearCart)

	g.GET("/measurements/:userId", a.listMeasurements)
	g.POST("/measurements/add", a.addMeasurementProfile)
	g.POST("/measurements/validate", a.validateFit)

	g.POST("/orders/create", a.createOrder)
	g.GET("/orders/:userId", a.listOrders)
	g.GET("/orders/detail/:orderId", a.getOrder)
	g.PUT("/orders/:orderId/status", a.updateOrderStatus)
	g.PUT("/orders/:orderId/payment", a.updatePaymentStatus)

	g.GET("/coupons", a.listCoupons)
	g.POST("/coupons/validate", a.validateCoupon)

	g.GET("/users/:userId", a.getUser)
	g.PUT("/users/:userId", a.updateUser)
	g.POST("/addresses/add", a.addAddress)
	g.GET("/addresses/:userId", a.listAddresses)

	g.POST("/wishlist/add", a.addToWishlist)
	g.POST("/wishlist/remove", a.removeFromWishlist)
	g.GET("/wishlist/:userId", a.getWishlist)

	g.POST("/seed", a.seed)
}

// respondError translates domain errors into the API's status codes:
// unknown resources are 404, business-rule rejections 400, lost concurrency
// races 409, everything else 500.
func respondError(c *gin.Context, err error) {
	var minErr *pricing.MinCartValueError

	switch {
	case errors.Is(err, users.ErrNotFound),
		errors.Is(err, cart.ErrNotFound),
		errors.Is(err, checkout.ErrUserNotFound),
		errors.Is(err, checkout.ErrProductNotFound),
		errors.Is(err, checkout.ErrProfileNotFound),
		errors.Is(err, checkout.ErrAddressNotFound),
		errors.Is(err, pricing.ErrCouponNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, checkout.ErrCartEmpty),
		errors.Is(err, checkout.ErrCouponExhausted),
		errors.Is(err, checkout.ErrCouponFirstOrderOnly),
		errors.Is(err, checkout.ErrCouponNotApplicable),
		errors.Is(err, pricing.ErrCouponExpired),
		errors.Is(err, pricing.ErrCouponNotYetValid),
		errors.Is(err, pricing.ErrUnknownCouponKind),
		errors.Is(err, orders.ErrInvalidTransition),
		errors.As(err, &minErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, users.ErrVersionConflict),
		errors.Is(err, cart.ErrVersionConflict),
		errors.Is(err, users.ErrEmailTaken),
		errors.Is(err, orders.ErrCheckoutConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "detail": err.Error()})
	}
}
