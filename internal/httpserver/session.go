package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/biblion/internal/service"
	"github.com/Skotchmaster/biblion/internal/transport"
	"github.com/Skotchmaster/biblion/pkg/logging"
)

type SessionHTTP struct {
	Recent *service.SearchHistoryService
	Import *service.ImportService
}

func (h *SessionHTTP) ListRecent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.recent_list")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "recent_list_error")
	}
	list, err := h.Recent.List(ctx, uid)
	if err != nil {
		return fail(l, "recent_list_error", err, "cannot load recent searches")
	}
	return c.JSON(http.StatusOK, map[string]any{"data": list})
}

func (h *SessionHTTP) AddRecent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.recent_add")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "recent_add_error")
	}
	var req transport.RecentSearchRequest
	if err := bindValid(c, &req); err != nil {
		l.Warn("recent_add_error", "status", 400, "error", err)
		return err
	}
	list, err := h.Recent.Record(ctx, uid, req.Query)
	if err != nil {
		return fail(l, "recent_add_error", err, "cannot save search")
	}
	return c.JSON(http.StatusOK, map[string]any{"data": list})
}

func (h *SessionHTTP) ClearRecent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.recent_clear")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "recent_clear_error")
	}
	if err := h.Recent.Clear(ctx, uid); err != nil {
		return fail(l, "recent_clear_error", err, "cannot clear recent searches")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SessionHTTP) ImportSnapshot(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "session.import")

	uid, err := userID(c)
	if err != nil {
		return unauthorized(l, "session_import_error")
	}
	var req transport.ImportRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("session_import_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	res, err := h.Import.Import(ctx, uid, req.Values)
	if err != nil {
		return fail(l, "session_import_error", err, "cannot import session")
	}
	return c.JSON(http.StatusOK, res)
}
