// Package checkout orchestrates the order pipeline: cart valuation, coupon
// application, fit-adjustment validation, and the transactional order write.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/ayzahstore/ayzah-backend/internal/aws"
	"github.com/ayzahstore/ayzah-backend/internal/cart"
	"github.com/ayzahstore/ayzah-backend/internal/catalog"
	"github.com/ayzahstore/ayzah-backend/internal/coupons"
	"github.com/ayzahstore/ayzah-backend/internal/fitting"
	"github.com/ayzahstore/ayzah-backend/internal/orders"
	"github.com/ayzahstore/ayzah-backend/internal/pricing"
	"github.com/ayzahstore/ayzah-backend/internal/users"
	"github.com/google/uuid"
)

var (
	ErrCartEmpty            = errors.New("cart is empty")
	ErrUserNotFound         = errors.New("user not found")
	ErrAddressNotFound      = errors.New("address not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrProfileNotFound      = errors.New("measurement profile not found")
	ErrCouponExhausted      = errors.New("coupon usage limit reached")
	ErrCouponFirstOrderOnly = errors.New("coupon is valid on first orders only")
	ErrCouponNotApplicable  = errors.New("coupon does not apply to items in cart")
)

// CartReader reads the user's cart.
type CartReader interface {
	Get(ctx context.Context, userID string) (*cart.Cart, error)
}

// UserReader resolves users and measurement-profile ownership.
type UserReader interface {
	Get(ctx context.Context, userID string) (*users.User, error)
	FindByProfileID(ctx context.Context, profileID string) (*users.User, error)
}

// ProductReader resolves products for pricing and fit validation.
type ProductReader interface {
	Get(ctx context.Context, productID string) (*catalog.Product, error)
	GetMany(ctx context.Context, ids []string) (map[string]catalog.Product, error)
}

// CouponReader resolves coupons by exact code.
type CouponReader interface {
	GetByCode(ctx context.Context, code string) (*coupons.Coupon, error)
}

// OrderWriter commits checkout and answers first-order checks.
type OrderWriter interface {
	CreateFromCart(ctx context.Context, order orders.Order, cartVersion int64, couponCode string) error
	CountByUser(ctx context.Context, userID string) (int, error)
}

// EventPublisher emits the order-created event. May be nil when no queue is
// configured (local development).
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, evt aws.OrderCreatedEvent) error
}

// Service wires the stores into the checkout pipeline.
type Service struct {
	Carts    CartReader
	Users    UserReader
	Products ProductReader
	Coupons  CouponReader
	Orders   OrderWriter
	Events   EventPublisher

	nowFunc func() time.Time
}

// NewService builds a checkout Service over the given collaborators.
func NewService(carts CartReader, userStore UserReader, products ProductReader, couponStore CouponReader, orderStore OrderWriter, events EventPublisher) *Service {
	return &Service{
		Carts:    carts,
		Users:    userStore,
		Products: products,
		Coupons:  couponStore,
		Orders:   orderStore,
		Events:   events,
		nowFunc:  time.Now,
	}
}

// ValidateFitAdjustment runs the eligibility evaluation for a product/size
// against the owner of the given measurement profile.
func (s *Service) ValidateFitAdjustment(ctx context.Context, productID, selectedSize, profileID string) (fitting.Decision, error) {
	product, err := s.Products.Get(ctx, productID)
	if err != nil {
		return fitting.Decision{}, err
	}
	if product == nil {
		return fitting.Decision{}, ErrProductNotFound
	}

	owner, err := s.Users.FindByProfileID(ctx, profileID)
	if err != nil {
		return fitting.Decision{}, err
	}
	if owner == nil {
		return fitting.Decision{}, ErrUserNotFound
	}
	profile := owner.ProfileByID(profileID)
	if profile == nil {
		return fitting.Decision{}, ErrProfileNotFound
	}

	return fitting.Evaluate(product, selectedSize, profile), nil
}

// ValidateCoupon resolves and fully validates a coupon for a cart total,
// returning the discount it would grant.
func (s *Service) ValidateCoupon(ctx context.Context, code string, cartTotal float64, userID string) (float64, error) {
	coupon, err := s.Coupons.GetByCode(ctx, code)
	if err != nil {
		return 0, err
	}

	discount, err := pricing.ApplyCoupon(coupon, cartTotal, s.nowFunc())
	if err != nil {
		return 0, err
	}

	if err := s.checkCouponPolicy(ctx, coupon, userID); err != nil {
		return 0, err
	}
	return discount, nil
}

// checkCouponPolicy enforces the counters the pricing engine cannot see:
// usage limit, first-order restriction, and category eligibility.
func (s *Service) checkCouponPolicy(ctx context.Context, coupon *coupons.Coupon, userID string) error {
	if coupon.Exhausted() {
		return ErrCouponExhausted
	}
	if coupon.FirstOrderOnly {
		n, err := s.Orders.CountByUser(ctx, userID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrCouponFirstOrderOnly
		}
	}
	if len(coupon.EligibleCategories) == 0 {
		return nil
	}

	c, err := s.Carts.Get(ctx, userID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCouponNotApplicable
	}
	eligible := make(map[string]bool, len(coupon.EligibleCategories))
	for _, cat := range coupon.EligibleCategories {
		eligible[cat] = true
	}
	for _, it := range c.Items {
		p, err := s.Products.Get(ctx, it.ProductID)
		if err != nil {
			return err
		}
		if p != nil && eligible[p.Category] {
			return nil
		}
	}
	return ErrCouponNotApplicable
}

// CreateOrderInput is the checkout request.
type CreateOrderInput struct {
	UserID            string
	ShippingAddressID string
	CouponCode        string
	PaymentMethod     string
}

// CreateOrder runs the full pipeline: value the cart, apply the coupon,
// assemble totals and lead time, and commit the order transactionally
// (order put + cart delete + coupon usage increment).
//
// The returned unavailable list names cart products that no longer resolve;
// they are excluded from the order rather than failing the checkout.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*orders.Order, []string, error) {
	userCart, err := s.Carts.Get(ctx, in.UserID)
	if err != nil {
		return nil, nil, err
	}
	if userCart == nil || len(userCart.Items) == 0 {
		return nil, nil, ErrCartEmpty
	}

	user, err := s.Users.Get(ctx, in.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}
	shipping := user.AddressByID(in.ShippingAddressID)
	if shipping == nil {
		return nil, nil, ErrAddressNotFound
	}

	ids := make([]string, 0, len(userCart.Items))
	for _, it := range userCart.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.Products.GetMany(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	value := pricing.ValueCart(userCart.Items, products)
	if len(value.Items) == 0 {
		return nil, value.Unavailable, ErrCartEmpty
	}

	now := s.nowFunc()
	discount := 0.0
	freeDelivery := false
	if in.CouponCode != "" {
		coupon, err := s.Coupons.GetByCode(ctx, in.CouponCode)
		if err != nil {
			return nil, nil, err
		}
		discount, err = pricing.ApplyCoupon(coupon, value.Subtotal, now)
		if err != nil {
			return nil, nil, err
		}
		if err := s.checkCouponPolicy(ctx, coupon, in.UserID); err != nil {
			return nil, nil, err
		}
		if coupon.Kind == coupons.KindFreeDelivery {
			// The saving is realized by waiving the fee, not as a discount line.
			discount = 0
			freeDelivery = true
		}
	}

	hasFit := value.HasFitAdjustment()
	totals := pricing.BuildOrderTotals(value.Subtotal, discount, value.FitAdjustmentFee, hasFit, freeDelivery, now)

	status := orders.StatusProcessing
	if hasFit {
		status = orders.StatusFitAdjustment
	}

	items := make([]orders.OrderItem, 0, len(value.Items))
	for _, it := range value.Items {
		items = append(items, orders.OrderItem{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			ProductImage:  it.ProductImage,
			Size:          it.Size,
			Quantity:      it.Quantity,
			Price:         it.Price,
			FitAdjustment: it.FitAdjustment,
		})
	}

	order := orders.Order{
		ID:                uuid.NewString(),
		UserID:            in.UserID,
		OrderNumber:       newOrderNumber(),
		Items:             items,
		ShippingAddress:   *shipping,
		Subtotal:          value.Subtotal,
		Discount:          discount,
		FitAdjustmentFee:  value.FitAdjustmentFee,
		DeliveryFee:       totals.DeliveryFee,
		Total:             totals.Total,
		PaymentMethod:     in.PaymentMethod,
		PaymentStatus:     orders.PaymentPending,
		OrderStatus:       status,
		CouponCode:        in.CouponCode,
		EstimatedDelivery: totals.EstimatedDelivery,
		CreatedAt:         now,
	}

	if err := s.Orders.CreateFromCart(ctx, order, userCart.Version, in.CouponCode); err != nil {
		return nil, nil, err
	}

	if s.Events != nil {
		evt := aws.OrderCreatedEvent{
			OrderID:          order.ID,
			OrderNumber:      order.OrderNumber,
			UserID:           order.UserID,
			Total:            order.Total,
			HasFitAdjustment: hasFit,
		}
		// Best effort: the order exists either way; the worker only feeds
		// notifications and metrics.
		if err := s.Events.PublishOrderCreated(ctx, evt); err != nil {
			log.Printf("publish order.created for %s: %v", order.ID, err)
		}
	}

	return &order, value.Unavailable, nil
}

func newOrderNumber() string {
	return fmt.Sprintf("ORD%06d", 100000+rand.Intn(900000))
}
