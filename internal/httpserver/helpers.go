package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/biblion/internal/service"
	middleware "github.com/Skotchmaster/biblion/pkg/middleware/auth"
)

var errUnauthenticated = errors.New("unauthorized")

func userID(c echo.Context) (uuid.UUID, error) {
	s, ok := c.Get(middleware.CtxUserID).(string)
	if !ok || s == "" {
		return uuid.Nil, errUnauthenticated
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errUnauthenticated
	}
	return id, nil
}

func parseID(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return uint(v), nil
}

var sentinels = []error{
	service.ErrValidation,
	service.ErrNotFound,
	service.ErrConflict,
	service.ErrUnauthorized,
	service.ErrEmptyCart,
	service.ErrInvalidStep,
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrEmptyCart), errors.Is(err, service.ErrInvalidStep):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// publicMessage drops the trailing sentinel text from a wrapped error.
func publicMessage(err error) string {
	msg := err.Error()
	for _, s := range sentinels {
		msg = strings.TrimSuffix(msg, ": "+s.Error())
	}
	return msg
}

// fail logs and converts a service error. Server errors keep their details out of the response.
func fail(l *slog.Logger, event string, err error, internalMsg string) error {
	code := statusOf(err)
	if code >= http.StatusInternalServerError {
		l.Error(event, "status", code, "reason", internalMsg, "error", err)
		return echo.NewHTTPError(code, internalMsg)
	}
	l.Warn(event, "status", code, "reason", publicMessage(err))
	return echo.NewHTTPError(code, publicMessage(err))
}

func unauthorized(l *slog.Logger, event string) error {
	l.Warn(event, "status", 401, "reason", "no user in context")
	return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
}

func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
