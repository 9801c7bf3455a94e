package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/telco_shop/pkg/middleware/auth"
)

type Deps struct {
	ConsumptionHandler *ConsumptionHTTP
	CartHandler        *CartHTTP
	UsageHandler       *UsageHTTP
	Identity           *middleware.Identity
	Metrics            http.Handler
	Ready              func() error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(); err != nil {
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics))
	}

	identity := d.Identity.Resolve

	consumption := e.Group("/consumption", identity)
	consumption.GET("/components", d.ConsumptionHandler.GetComponents)
	consumption.GET("/:productSpecification/:usageUnit", d.ConsumptionHandler.GetConsumption)
	consumption.PUT("/:productSpecification/:usageUnit", d.ConsumptionHandler.PutConsumption)

	carts := e.Group("/sites/:site/carts/:cartId", identity)
	carts.PATCH("", d.CartHandler.UpdateCart)
	carts.POST("/entries", d.CartHandler.AddEntry)
	carts.GET("/entries", d.CartHandler.ListEntries)
	carts.GET("/entries/:entry", d.CartHandler.GetEntry)
	carts.DELETE("/entries/:entry", d.CartHandler.RemoveEntry)
	carts.PUT("/entries/:entry/consumption", d.CartHandler.UpdateConsumption)
	carts.POST("/entries/:entry/premise", d.CartHandler.ApplyPremise)
	carts.PUT("/entries/:entry/purchase-reason", d.CartHandler.SavePurchaseReason)

	e.PUT("/checklist/purchase-reason", d.CartHandler.SaveChecklistPurchaseReason, identity)

	e.GET("/subscriptions/:subscriptionId/usage", d.UsageHandler.GetUsage, identity)
}
