package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/biblion/internal/checkout"
	"github.com/Skotchmaster/biblion/internal/kv"
	"github.com/Skotchmaster/biblion/internal/models"
	"github.com/Skotchmaster/biblion/internal/mykafka"
	"github.com/Skotchmaster/biblion/internal/repo"
)

func shippingAddr() models.ShippingAddress {
	return models.ShippingAddress{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Phone: "555-0100",
		Address: "12 Analytical St", City: "London", State: "LDN", ZipCode: "10001",
	}
}

func card() checkout.Payment {
	return checkout.Payment{CardNumber: "4242 4242 4242 4242", CardName: "Ada Lovelace", Expiry: "12/29", CVV: "123"}
}

func newCheckout(t *testing.T) (*CheckoutService, *repo.GormRepo, *fakePublisher) {
	t.Helper()
	r, pub := setup(t)
	return &CheckoutService{Repo: r, Events: pub, Idempotency: kv.NewMemoryIdempotency(), Now: fixedNow}, r, pub
}

func fillCart(t *testing.T, r *repo.GormRepo, user uuid.UUID, bookIDs ...uint) {
	t.Helper()
	for _, id := range bookIDs {
		_, err := r.AddToCart(context.Background(), user, id, 1)
		require.NoError(t, err)
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	svc, r, pub := newCheckout(t)
	ctx := context.Background()
	user := newUser(t, r)
	fillCart(t, r, user, 1, 4)

	v, err := svc.Get(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, checkout.StepCart, v.Session.Step)
	assert.Equal(t, "33.98", v.Totals.Subtotal.StringFixed(2))
	assert.Equal(t, "4.99", v.Totals.Shipping.StringFixed(2))
	assert.Equal(t, "2.72", v.Totals.Tax.StringFixed(2))
	assert.Equal(t, "41.69", v.Totals.Total.StringFixed(2))
	assert.Equal(t, "1.02", v.Totals.FreeShippingRemaining.StringFixed(2))

	v, err = svc.Start(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, checkout.StepShipping, v.Session.Step)

	v, err = svc.Shipping(ctx, user, shippingAddr())
	require.NoError(t, err)
	assert.Equal(t, checkout.StepPayment, v.Session.Step)
	assert.Equal(t, checkout.DefaultCountry, v.Session.Shipping.Country)

	v, err = svc.Pay(ctx, user, card(), "")
	require.NoError(t, err)
	assert.Equal(t, checkout.StepConfirmation, v.Session.Step)
	assert.True(t, strings.HasPrefix(v.Session.OrderNumber, "BIB-"))
	require.NotNil(t, v.Order)
	assert.Equal(t, "4242", v.Order.CardLast4)
	assert.Equal(t, "41.69", v.Order.Total.StringFixed(2))
	assert.Len(t, v.Order.Items, 2)
	assert.Empty(t, v.Cart.Items, "cart is cleared after the order")

	assert.Equal(t, []string{mykafka.EventOrderPlaced}, pub.types())

	orders := &OrderService{Repo: r}
	total, list, err := orders.List(ctx, user, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, v.Session.OrderNumber, list[0].Number)

	_, err = orders.Get(ctx, user, "BIB-NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckoutFreeShipping(t *testing.T) {
	svc, r, _ := newCheckout(t)
	user := newUser(t, r)
	fillCart(t, r, user, 1, 4, 2)

	v, err := svc.Get(context.Background(), user)
	require.NoError(t, err)
	assert.True(t, v.Totals.FreeShipping)
	assert.True(t, v.Totals.Shipping.IsZero())
	assert.Equal(t, "55.05", v.Totals.Total.StringFixed(2))
}

func TestCheckoutCannotSkipSteps(t *testing.T) {
	svc, r, _ := newCheckout(t)
	ctx := context.Background()
	user := newUser(t, r)

	_, err := svc.Start(ctx, user)
	assert.ErrorIs(t, err, ErrEmptyCart)

	fillCart(t, r, user, 3)

	_, err = svc.Pay(ctx, user, card(), "")
	assert.ErrorIs(t, err, ErrInvalidStep)

	_, err = svc.Start(ctx, user)
	require.NoError(t, err)

	_, err = svc.Pay(ctx, user, card(), "")
	assert.ErrorIs(t, err, ErrInvalidStep, "payment before shipping")

	bad := shippingAddr()
	bad.Email = "not-an-email"
	_, err = svc.Shipping(ctx, user, bad)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Shipping(ctx, user, shippingAddr())
	require.NoError(t, err)

	badCard := card()
	badCard.Expiry = "13/29"
	_, err = svc.Pay(ctx, user, badCard, "")
	assert.ErrorIs(t, err, ErrValidation)

	v, err := svc.Back(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, checkout.StepShipping, v.Session.Step)
	v, err = svc.Back(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, checkout.StepCart, v.Session.Step)
	_, err = svc.Back(ctx, user)
	assert.ErrorIs(t, err, ErrInvalidStep)

	svc.Reset(ctx, user)
	_, err = svc.Shipping(ctx, user, shippingAddr())
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestCheckoutIdempotentPayment(t *testing.T) {
	svc, r, pub := newCheckout(t)
	ctx := context.Background()
	user := newUser(t, r)
	fillCart(t, r, user, 5)

	_, err := svc.Start(ctx, user)
	require.NoError(t, err)
	_, err = svc.Shipping(ctx, user, shippingAddr())
	require.NoError(t, err)

	first, err := svc.Pay(ctx, user, card(), "key-1")
	require.NoError(t, err)
	again, err := svc.Pay(ctx, user, card(), "key-1")
	require.NoError(t, err)
	assert.Equal(t, first.Session.OrderNumber, again.Session.OrderNumber)
	assert.Len(t, pub.types(), 1)

	total, _, err := (&OrderService{Repo: r}).List(ctx, user, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestCheckoutPaymentHonorsCancellation(t *testing.T) {
	svc, r, _ := newCheckout(t)
	svc.PaymentDelay = time.Second
	user := newUser(t, r)
	fillCart(t, r, user, 6)

	ctx := context.Background()
	_, err := svc.Start(ctx, user)
	require.NoError(t, err)
	_, err = svc.Shipping(ctx, user, shippingAddr())
	require.NoError(t, err)

	cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = svc.Pay(cctx, user, card(), "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	v, err := svc.Get(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, checkout.StepPayment, v.Session.Step)
	assert.Len(t, v.Cart.Items, 1)
}

func TestCheckoutStartsOverAfterConfirmation(t *testing.T) {
	svc, r, _ := newCheckout(t)
	ctx := context.Background()
	user := newUser(t, r)
	fillCart(t, r, user, 7)

	_, err := svc.Start(ctx, user)
	require.NoError(t, err)
	_, err = svc.Shipping(ctx, user, shippingAddr())
	require.NoError(t, err)
	_, err = svc.Pay(ctx, user, card(), "")
	require.NoError(t, err)

	_, err = svc.Start(ctx, user)
	assert.ErrorIs(t, err, ErrEmptyCart)

	fillCart(t, r, user, 8)
	v, err := svc.Start(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, checkout.StepShipping, v.Session.Step)
	assert.Empty(t, v.Session.OrderNumber)
}
