package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/biblion/internal/service"
	"github.com/Skotchmaster/biblion/internal/transport"
	"github.com/Skotchmaster/biblion/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "get_cart_error")
	}
	cart, err := h.Svc.Get(ctx, uid)
	if err != nil {
		return fail(l, "get_cart_error", err, "cannot load cart")
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "add_to_cart_error")
	}
	var req transport.AddItemRequest
	if err := bindValid(c, &req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return err
	}

	item, err := h.Svc.Add(ctx, uid, req.BookID)
	if err != nil {
		return fail(l, "add_to_cart_error", err, "cannot add to cart")
	}
	l.Info("add_to_cart_success", "book_id", req.BookID, "quantity", item.Quantity)
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "update_cart_error")
	}
	bookID, err := parseID(c, "bookId")
	if err != nil {
		return err
	}
	var req transport.UpdateQuantityRequest
	if err := bindValid(c, &req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return err
	}

	item, err := h.Svc.UpdateQuantity(ctx, uid, bookID, *req.Quantity)
	if err != nil {
		return fail(l, "update_cart_error", err, "cannot update cart")
	}
	if item == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "remove_from_cart_error")
	}
	bookID, err := parseID(c, "bookId")
	if err != nil {
		return err
	}
	if err := h.Svc.Remove(ctx, uid, bookID); err != nil {
		return fail(l, "remove_from_cart_error", err, "cannot remove from cart")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) DecrementItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.decrement")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "decrement_cart_error")
	}
	bookID, err := parseID(c, "bookId")
	if err != nil {
		return err
	}

	deleted, item, err := h.Svc.DecrementOne(ctx, uid, bookID)
	if err != nil {
		return fail(l, "decrement_cart_error", err, "cannot update cart")
	}
	resp := transport.DecrementResponse{BookID: bookID, Deleted: deleted}
	if !deleted {
		resp.Quantity = item.Quantity
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "clear_cart_error")
	}
	if err := h.Svc.Clear(ctx, uid); err != nil {
		return fail(l, "clear_cart_error", err, "cannot clear cart")
	}
	l.Info("cart_cleared")
	return c.NoContent(http.StatusNoContent)
}
