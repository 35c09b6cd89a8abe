package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/biblion/internal/service"
	"github.com/Skotchmaster/biblion/internal/transport"
	"github.com/Skotchmaster/biblion/pkg/logging"
)

type WishlistHTTP struct {
	Svc *service.WishlistService
}

func (h *WishlistHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.list")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "wishlist_list_error")
	}
	items, err := h.Svc.List(ctx, uid)
	if err != nil {
		return fail(l, "wishlist_list_error", err, "cannot load wishlist")
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items, "count": len(items)})
}

func (h *WishlistHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.add")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "wishlist_add_error")
	}
	var req transport.AddItemRequest
	if err := bindValid(c, &req); err != nil {
		l.Warn("wishlist_add_error", "status", 400, "error", err)
		return err
	}

	item, created, err := h.Svc.Add(ctx, uid, req.BookID)
	if err != nil {
		return fail(l, "wishlist_add_error", err, "cannot add to wishlist")
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, item)
}

func (h *WishlistHTTP) Contains(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.contains")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "wishlist_contains_error")
	}
	bookID, err := parseID(c, "bookId")
	if err != nil {
		return err
	}
	ok, err := h.Svc.Contains(ctx, uid, bookID)
	if err != nil {
		return fail(l, "wishlist_contains_error", err, "cannot read wishlist")
	}
	return c.JSON(http.StatusOK, transport.ContainsResponse{BookID: bookID, Contains: ok})
}

func (h *WishlistHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.remove")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "wishlist_remove_error")
	}
	bookID, err := parseID(c, "bookId")
	if err != nil {
		return err
	}
	if err := h.Svc.Remove(ctx, uid, bookID); err != nil {
		return fail(l, "wishlist_remove_error", err, "cannot remove from wishlist")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WishlistHTTP) Toggle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.toggle")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "wishlist_toggle_error")
	}
	bookID, err := parseID(c, "bookId")
	if err != nil {
		return err
	}
	added, err := h.Svc.Toggle(ctx, uid, bookID)
	if err != nil {
		return fail(l, "wishlist_toggle_error", err, "cannot update wishlist")
	}
	return c.JSON(http.StatusOK, transport.ToggleResponse{BookID: bookID, Added: added})
}
