package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/ayzahstore/ayzah-backend/internal/aws"
	"github.com/ayzahstore/ayzah-backend/internal/cart"
	"github.com/ayzahstore/ayzah-backend/internal/catalog"
	"github.com/ayzahstore/ayzah-backend/internal/coupons"
	"github.com/ayzahstore/ayzah-backend/internal/orders"
	"github.com/ayzahstore/ayzah-backend/internal/pricing"
	"github.com/ayzahstore/ayzah-backend/internal/users"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeCarts struct{ c *cart.Cart }

func (f *fakeCarts) Get(ctx context.Context, userID string) (*cart.Cart, error) { return f.c, nil }

type fakeUsers struct{ u *users.User }

func (f *fakeUsers) Get(ctx context.Context, userID string) (*users.User, error) {
	if f.u != nil && f.u.ID == userID {
		return f.u, nil
	}
	return nil, nil
}

func (f *fakeUsers) FindByProfileID(ctx context.Context, profileID string) (*users.User, error) {
	if f.u != nil && f.u.ProfileByID(profileID) != nil {
		return f.u, nil
	}
	return nil, nil
}

type fakeProducts map[string]catalog.Product

func (f fakeProducts) Get(ctx context.Context, id string) (*catalog.Product, error) {
	if p, ok := f[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f fakeProducts) GetMany(ctx context.Context, ids []string) (map[string]catalog.Product, error) {
	out := map[string]catalog.Product{}
	for _, id := range ids {
		if p, ok := f[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakeCoupons map[string]*coupons.Coupon

func (f fakeCoupons) GetByCode(ctx context.Context, code string) (*coupons.Coupon, error) {
	return f[code], nil
}

type fakeOrders struct {
	created     []orders.Order
	cartVersion int64
	couponCode  string
	priorOrders int
}

func (f *fakeOrders) CreateFromCart(ctx context.Context, o orders.Order, cartVersion int64, couponCode string) error {
	f.created = append(f.created, o)
	f.cartVersion = cartVersion
	f.couponCode = couponCode
	return nil
}

func (f *fakeOrders) CountByUser(ctx context.Context, userID string) (int, error) {
	return f.priorOrders, nil
}

type fakeEvents struct{ published []aws.OrderCreatedEvent }

func (f *fakeEvents) PublishOrderCreated(ctx context.Context, evt aws.OrderCreatedEvent) error {
	f.published = append(f.published, evt)
	return nil
}

// --- fixtures ---

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func discounted(v float64) *float64 { return &v }

func fixtureService(c *cart.Cart, orderStore *fakeOrders, couponSet fakeCoupons, events *fakeEvents) *Service {
	user := &users.User{
		ID: "u1",
		Addresses: []users.Address{
			{ID: "a1", Label: "Home", FullName: "Test Customer", City: "Doha", Country: "Qatar"},
		},
		MeasurementProfiles: []users.MeasurementProfile{
			{ID: "mp1", ProfileName: "Me", Measurements: map[string]float64{"bust": 90, "waist": 70, "hips": 95, "shoulder": 38}},
		},
	}
	products := fakeProducts{
		"kurta": {ID: "kurta", Name: "Chikankari Kurta Set", Category: "Chikankari", Images: []string{"img"}, Price: 349, DiscountPrice: discounted(249)},
		"saree": {ID: "saree", Name: "Banarasi Saree", Category: "Sarees", Images: []string{"img"}, Price: 100},
	}
	var ep EventPublisher
	if events != nil {
		ep = events
	}
	s := NewService(&fakeCarts{c: c}, &fakeUsers{u: user}, products, couponSet, orderStore, ep)
	s.nowFunc = func() time.Time { return fixedNow }
	return s
}

// --- tests ---

func TestCreateOrder_EmptyCart(t *testing.T) {
	s := fixtureService(nil, &fakeOrders{}, fakeCoupons{}, nil)
	_, _, err := s.CreateOrder(context.Background(), CreateOrderInput{UserID: "u1", ShippingAddressID: "a1"})
	require.ErrorIs(t, err, ErrCartEmpty)
}

func TestCreateOrder_AddressNotFound(t *testing.T) {
	c := &cart.Cart{UserID: "u1", Items: []cart.LineItem{{ProductID: "saree", Size: "One Size", Quantity: 1}}, Version: 1}
	s := fixtureService(c, &fakeOrders{}, fakeCoupons{}, nil)
	_, _, err := s.CreateOrder(context.Background(), CreateOrderInput{UserID: "u1", ShippingAddressID: "nope"})
	require.ErrorIs(t, err, ErrAddressNotFound)
}

func TestCreateOrder_PlainOrderUnderThreshold(t *testing.T) {
	c := &cart.Cart{UserID: "u1", Items: []cart.LineItem{{ProductID: "saree", Size: "One Size", Quantity: 1}}, Version: 4}
	store := &fakeOrders{}
	s := fixtureService(c, store, fakeCoupons{}, nil)

	order, unavailable, err := s.CreateOrder(context.Background(), CreateOrderInput{UserID: "u1", ShippingAddressID: "a1"})
	require.NoError(t, err)
	require.Empty(t, unavailable)

	require.Equal(t, 100.0, order.Subtotal)
	require.Equal(t, 15.0, order.DeliveryFee)
	require.Equal(t, 115.0, order.Total)
	require.Equal(t, orders.StatusProcessing, order.OrderStatus)
	require.Equal(t, orders.PaymentPending, order.PaymentStatus)
	require.Equal(t, fixedNow.AddDate(0, 0, 5), order.EstimatedDelivery)
	require.Regexp(t, `^ORD\d{6}$`, order.OrderNumber)

	// Transaction gets the version the cart was read at.
	require.Equal(t, int64(4), store.cartVersion)
}

func TestCreateOrder_FitAdjustmentSeedsStatusAndLeadTime(t *testing.T) {
	adj := &cart.FitAdjustment{ProfileID: "mp1", ProfileName: "Me", Fee: 30, ExtraDays: 3}
	c := &cart.Cart{UserID: "u1", Items: []cart.LineItem{
		{ProductID: "kurta", Size: "M", Quantity: 1, FitAdjustment: adj},
		{ProductID: "saree", Size: "One Size", Quantity: 1, FitAdjustment: adj},
	}, Version: 1}
	store := &fakeOrders{}
	s := fixtureService(c, store, fakeCoupons{}, nil)

	order, _, err := s.CreateOrder(context.Background(), CreateOrderInput{UserID: "u1", ShippingAddressID: "a1"})
	require.NoError(t, err)

	require.Equal(t, 349.0, order.Subtotal) // 249 + 100
	require.Equal(t, 60.0, order.FitAdjustmentFee)
	require.Equal(t, orders.StatusFitAdjustment, order.OrderStatus)
	// Surcharge applies once even with two adjusted items.
	require.Equal(t, fixedNow.AddDate(0, 0, 8), order.EstimatedDelivery)
	require.Equal(t, 409.0, order.Total) // 349 + 60, free delivery over 200
}

func TestCreateOrder_FlatCoupon(t *testing.T) {
	c := &cart.Cart{UserID: "u1", Items: []cart.LineItem{{ProductID: "saree", Size: "One Size", Quantity: 3}}, Version: 1}
	store := &fakeOrders{}
	couponSet := fakeCoupons{"FIRST50": {
		Code: "FIRST50", Kind: coupons.KindFlat, Value: 50, MinCartValue: 300,
		ValidFrom: fixedNow.Add(-time.Hour), ValidTo: fixedNow.Add(time.Hour),
		UsageLimit: 100, FirstOrderOnly: true, IsActive: true,
	}}
	s := fixtureService(c, store, couponSet, nil)

	order, _, err := s.CreateOrder(context.Background(), CreateOrderInput{UserID: "u1", ShippingAddressID: "a1", CouponCode: "FIRST50"})
	require.NoError(t, err)
	require.Equal(t, 300.0, order.Subtotal)
	require.Equal(t, 50.0, order.Discount)
	require.Equal(t, 250.0, order.Total)
	require.Equal(t, "FIRST50", store.couponCode)
}

func TestCreateOrder_FreeDeliveryWaivesFeeInsteadOfDiscount(t *testing.T) {
	c := &cart.Cart{UserID: "u1", Items: []cart.LineItem{{ProductID: "saree", Size: "One Size", Quantity: 1}}, Version: 1}
	couponSet := fakeCoupons{"FREESHIP": {
		Code: "FREESHIP", Kind: coupons.KindFreeDelivery,
		ValidFrom: fixedNow.Add(-time.Hour), ValidTo: fixedNow.Add(time.Hour),
		UsageLimit: 100, IsActive: true,
	}}
	s := fixtureService(c, &fakeOrders{}, couponSet, nil)

	order, _, err := s.CreateOrder(context.Background(), CreateOrderInput{UserID: "u1", ShippingAddressID: "a1", CouponCode: "FREESHIP"})
	require.NoError(t, err)
	require.Zero(t, order.Discount)
	require.Zero(t, order.DeliveryFee) // waived, not double counted
	require.Equal(t, 100.0, order.Total)
}

func TestCreateOrder_FirstOrderOnlyRejected(t *testing.T) {
	c := &cart.Cart{UserID: "u1", Items: []cart.LineItem{{ProductID: "saree", Size: "One Size", Quantity: 3}}, Version: 1}
	couponSet := fakeCoupons{"FIRST50": {
		Code: "FIRST50", Kind: coupons.KindFlat, Value: 50,
		ValidFrom: fixedNow.Add(-time.Hour), ValidTo: fixedNow.Add(time.Hour),
		UsageLimit: 100, FirstOrderOnly: true, IsActive: true,
	}}
	s := fixtureService(c, &fakeOrders{priorOrders: 2}, couponSet, nil)

	_, _, err := s.CreateOrder(context.Background(), CreateOrderInput{UserID: "u1", ShippingAddressID: "a1", CouponCode: "FIRST50"})
	require.ErrorIs(t, err, ErrCouponFirstOrderOnly)
}

func TestCreateOrder_UnavailableProductSurfaced(t *testing.T) {
	c := &cart.Cart{UserID: "u1", Items: []cart.LineItem{
		{ProductID: "saree", Size: "One Size", Quantity: 1},
		{ProductID: "discontinued", Size: "M", Quantity: 1},
	}, Version: 1}
	s := fixtureService(c, &fakeOrders{}, fakeCoupons{}, nil)

	order, unavailable, err := s.CreateOrder(context.Background(), CreateOrderInput{UserID: "u1", ShippingAddressID: "a1"})
	require.NoError(t, err)
	require.Equal(t, []string{"discontinued"}, unavailable)
	require.Len(t, order.Items, 1)
	require.Equal(t, 100.0, order.Subtotal)
}

func TestCreateOrder_PublishesEvent(t *testing.T) {
	c := &cart.Cart{UserID: "u1", Items: []cart.LineItem{{ProductID: "saree", Size: "One Size", Quantity: 1}}, Version: 1}
	events := &fakeEvents{}
	s := fixtureService(c, &fakeOrders{}, fakeCoupons{}, events)

	order, _, err := s.CreateOrder(context.Background(), CreateOrderInput{UserID: "u1", ShippingAddressID: "a1"})
	require.NoError(t, err)
	require.Len(t, events.published, 1)
	require.Equal(t, order.ID, events.published[0].OrderID)
	require.Equal(t, order.Total, events.published[0].Total)
	require.False(t, events.published[0].HasFitAdjustment)
}

func TestValidateCoupon_PercentageClamp(t *testing.T) {
	max := 50.0
	couponSet := fakeCoupons{"RAMADAN15": {
		Code: "RAMADAN15", Kind: coupons.KindPercentage, Value: 15, MinCartValue: 200, MaxDiscount: &max,
		ValidFrom: fixedNow.Add(-time.Hour), ValidTo: fixedNow.Add(time.Hour),
		UsageLimit: 100, IsActive: true,
	}}
	s := fixtureService(nil, &fakeOrders{}, couponSet, nil)

	discount, err := s.ValidateCoupon(context.Background(), "RAMADAN15", 400, "u1")
	require.NoError(t, err)
	require.Equal(t, 50.0, discount)
}

func TestValidateCoupon_UnknownCode(t *testing.T) {
	s := fixtureService(nil, &fakeOrders{}, fakeCoupons{}, nil)
	_, err := s.ValidateCoupon(context.Background(), "NOPE", 400, "u1")
	require.ErrorIs(t, err, pricing.ErrCouponNotFound)
}

func TestValidateCoupon_Exhausted(t *testing.T) {
	couponSet := fakeCoupons{"TIRED": {
		Code: "TIRED", Kind: coupons.KindFlat, Value: 10,
		ValidFrom: fixedNow.Add(-time.Hour), ValidTo: fixedNow.Add(time.Hour),
		UsageLimit: 5, UsedCount: 5, IsActive: true,
	}}
	s := fixtureService(nil, &fakeOrders{}, couponSet, nil)
	_, err := s.ValidateCoupon(context.Background(), "TIRED", 400, "u1")
	require.ErrorIs(t, err, ErrCouponExhausted)
}

func TestValidateFitAdjustment(t *testing.T) {
	products := fakeProducts{
		"kurta": {
			ID: "kurta", Name: "Kurta", FitAdjustmentEnabled: true,
			SizeChart: map[string]catalog.SizeChart{"M": {BustMax: 95, WaistMax: 75, HipsMax: 100, ShoulderMax: 40}},
		},
	}
	user := &users.User{ID: "u1", MeasurementProfiles: []users.MeasurementProfile{
		{ID: "mp1", ProfileName: "Me", Measurements: map[string]float64{"bust": 90, "waist": 70, "hips": 95, "shoulder": 38}},
	}}
	s := NewService(&fakeCarts{}, &fakeUsers{u: user}, products, fakeCoupons{}, &fakeOrders{}, nil)

	decision, err := s.ValidateFitAdjustment(context.Background(), "kurta", "M", "mp1")
	require.NoError(t, err)
	require.True(t, decision.Eligible)
	require.Equal(t, "Me", decision.ProfileName)

	_, err = s.ValidateFitAdjustment(context.Background(), "missing", "M", "mp1")
	require.ErrorIs(t, err, ErrProductNotFound)

	_, err = s.ValidateFitAdjustment(context.Background(), "kurta", "M", "unknown-profile")
	require.ErrorIs(t, err, ErrUserNotFound)
}
