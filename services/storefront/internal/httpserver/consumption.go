package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/telco_shop/pkg/logging"
	middleware "github.com/Skotchmaster/telco_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/domain"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/i18n"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/service"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/transport"
)

type ConsumptionHTTP struct {
	Svc        *service.ConsumptionService
	Cart       *service.CartService
	Translator service.Translator
}

// cartOverride returns the estimate on the cart entry named by the cartId
// and entry query parameters, or nil outside cart edit mode.
func (h *ConsumptionHTTP) cartOverride(c echo.Context) (*string, error) {
	cartID, rawEntry := c.QueryParam("cartId"), c.QueryParam("entry")
	if cartID == "" || rawEntry == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(rawEntry)
	if err != nil {
		return nil, fmt.Errorf("entry %q: %w", rawEntry, service.ErrValidation)
	}
	entry, err := h.Cart.GetEntry(c.Request().Context(), cartID, n)
	if err != nil {
		return nil, err
	}
	view := service.NewEntryView(*entry, "")
	if view.AverageConsumption == "" {
		return nil, nil
	}
	return &view.AverageConsumption, nil
}

func (h *ConsumptionHTTP) GetConsumption(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.consumption")

	override, err := h.cartOverride(c)
	if err != nil {
		return fail(c, l, "get_consumption_error", err, nil)
	}

	res, err := h.Svc.Resolve(ctx, service.ResolveRequest{
		Owner:                  middleware.Owner(c),
		ProductSpecificationID: c.Param("productSpecification"),
		UsageUnitID:            c.Param("usageUnit"),
		Query:                  c.QueryParam(domain.ConsumptionParam),
		CartOverride:           override,
	})
	if errors.Is(err, service.ErrConfigurationMissing) {
		l.Warn("get_consumption_missing_configuration", "error", err)
		return c.JSON(http.StatusOK, res)
	}
	if err != nil {
		return fail(c, l, "get_consumption_error", err, nil)
	}

	return c.JSON(http.StatusOK, res)
}

func (h *ConsumptionHTTP) PutConsumption(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "put.consumption")

	var req transport.ConsumptionValueRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "put_consumption_error", "invalid body", err)
	}

	change, err := h.Svc.SaveOverride(ctx, middleware.Owner(c), c.Param("productSpecification"), c.Param("usageUnit"), req.Value)
	if errors.Is(err, service.ErrValidation) {
		return fail(c, l, "put_consumption_error", err, []domain.Message{{
			Text: h.Translator.Translate(i18n.ConsumptionInvalid, nil),
			Type: domain.MessageError,
		}})
	}
	if err != nil {
		return fail(c, l, "put_consumption_error", err, nil)
	}

	l.Info("consumption override saved", "product_specification", change.ProductSpecification)
	return c.JSON(http.StatusOK, change)
}

func (h *ConsumptionHTTP) GetComponents(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.consumption.components")

	views, err := h.Svc.Components(ctx, middleware.Owner(c), c.QueryParam(domain.ConsumptionParam))
	if err != nil {
		return fail(c, l, "get_consumption_components_error", err, nil)
	}
	return c.JSON(http.StatusOK, views)
}
