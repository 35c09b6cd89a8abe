package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/biblion/internal/checkout"
	"github.com/Skotchmaster/biblion/internal/models"
	"github.com/Skotchmaster/biblion/internal/service"
	"github.com/Skotchmaster/biblion/internal/util"
	"github.com/Skotchmaster/biblion/pkg/logging"
)

const HeaderIdempotencyKey = "Idempotency-Key"

type CheckoutHTTP struct {
	Svc    *service.CheckoutService
	Orders *service.OrderService
}

func (h *CheckoutHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.get")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "checkout_get_error")
	}
	v, err := h.Svc.Get(ctx, uid)
	if err != nil {
		return fail(l, "checkout_get_error", err, "cannot load checkout")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *CheckoutHTTP) Start(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.start")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "checkout_start_error")
	}
	v, err := h.Svc.Start(ctx, uid)
	if err != nil {
		return fail(l, "checkout_start_error", err, "cannot start checkout")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *CheckoutHTTP) Shipping(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.shipping")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "checkout_shipping_error")
	}
	var addr models.ShippingAddress
	if err := c.Bind(&addr); err != nil {
		l.Warn("checkout_shipping_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	v, err := h.Svc.Shipping(ctx, uid, addr)
	if err != nil {
		return fail(l, "checkout_shipping_error", err, "cannot save shipping details")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *CheckoutHTTP) Payment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.payment")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "checkout_payment_error")
	}
	var p checkout.Payment
	if err := c.Bind(&p); err != nil {
		l.Warn("checkout_payment_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	v, err := h.Svc.Pay(ctx, uid, p, c.Request().Header.Get(HeaderIdempotencyKey))
	if err != nil {
		return fail(l, "checkout_payment_error", err, "payment failed")
	}
	l.Info("checkout_completed", "order_number", v.Session.OrderNumber)
	return c.JSON(http.StatusOK, v)
}

func (h *CheckoutHTTP) Back(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.back")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "checkout_back_error")
	}
	v, err := h.Svc.Back(ctx, uid)
	if err != nil {
		return fail(l, "checkout_back_error", err, "cannot go back")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *CheckoutHTTP) Reset(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.reset")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "checkout_reset_error")
	}
	h.Svc.Reset(ctx, uid)
	return c.NoContent(http.StatusNoContent)
}

func (h *CheckoutHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.list")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "orders_list_error")
	}
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, orders, err := h.Orders.List(ctx, uid, offset, limit)
	if err != nil {
		return fail(l, "orders_list_error", err, "cannot list orders")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": orders,
		"meta": util.Meta(page, offset, limit, total),
	})
}

func (h *CheckoutHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.get")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "order_get_error")
	}
	order, err := h.Orders.Get(ctx, uid, c.Param("number"))
	if err != nil {
		return fail(l, "order_get_error", err, "cannot load order")
	}
	return c.JSON(http.StatusOK, order)
}
