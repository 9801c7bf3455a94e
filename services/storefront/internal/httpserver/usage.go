package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/telco_shop/pkg/logging"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/service"
)

type UsageHTTP struct {
	Svc *service.UsageService
}

func (h *UsageHTTP) GetUsage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.usage")

	report, err := h.Svc.Report(ctx, c.Param("subscriptionId"))
	if err != nil {
		return fail(c, l, "get_usage_error", err, nil)
	}
	return c.JSON(http.StatusOK, report)
}
