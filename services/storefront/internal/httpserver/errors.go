package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/telco_shop/services/storefront/internal/domain"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/service"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/transport"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrNotEditing):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrPremiseValidationFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail logs err under event and writes the matching status. Internal errors
// are not echoed back to the caller.
func fail(c echo.Context, l *slog.Logger, event string, err error, msgs []domain.Message) error {
	status := statusFor(err)
	resp := transport.ErrorResponse{Error: err.Error(), Messages: msgs}
	if status == http.StatusInternalServerError {
		l.Error(event, "status", status, "error", err)
		resp.Error = "internal error"
	} else {
		l.Warn(event, "status", status, "error", err)
	}
	return c.JSON(status, resp)
}

func badRequest(c echo.Context, l *slog.Logger, event, msg string, err error) error {
	l.Warn(event, "status", http.StatusBadRequest, "error", err)
	return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: msg})
}
