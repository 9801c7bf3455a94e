package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/telco_shop/pkg/logging"
	middleware "github.com/Skotchmaster/telco_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/domain"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/models"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/service"
	"github.com/Skotchmaster/telco_shop/services/storefront/internal/transport"
)

type CartHTTP struct {
	Svc         *service.CartService
	Consumption *service.ConsumptionService
}

func entryNumber(c echo.Context) (int, error) {
	n, err := strconv.Atoi(c.Param("entry"))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("entry %q: %w", c.Param("entry"), service.ErrValidation)
	}
	return n, nil
}

func (h *CartHTTP) view(entry models.CartEntry) service.EntryView {
	unit := ""
	if h.Consumption != nil {
		unit = h.Consumption.UsageUnitAndBillingFrequency(entry.ProductSpecificationID)
	}
	return service.NewEntryView(entry, unit)
}

func (h *CartHTTP) AddEntry(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.entry")

	var req transport.AddEntryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "add_entry_error", "invalid body", err)
	}

	entry, err := h.Svc.AddEntry(ctx, service.AddEntryRequest{
		BaseSiteID:             c.Param("site"),
		CartID:                 c.Param("cartId"),
		OwnerID:                middleware.Owner(c),
		ProductCode:            req.ProductCode,
		ProductSpecificationID: req.ProductSpecificationID,
		Quantity:               req.Quantity,
		Characteristics:        req.Characteristics,
		InstallationAddressID:  req.InstallationAddressID,
		AppointmentID:          req.AppointmentID,
	})
	if err != nil {
		return fail(c, l, "add_entry_error", err, nil)
	}

	l.Info("entry added to cart", "cart_id", entry.CartID, "entry", entry.EntryNumber)
	return c.JSON(http.StatusCreated, h.view(*entry))
}

func (h *CartHTTP) ListEntries(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.entries")

	entries, err := h.Svc.ListEntries(ctx, c.Param("cartId"))
	if err != nil {
		return fail(c, l, "list_entries_error", err, nil)
	}

	views := make([]service.EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, h.view(e))
	}
	return c.JSON(http.StatusOK, views)
}

func (h *CartHTTP) GetEntry(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.entry")

	n, err := entryNumber(c)
	if err != nil {
		return fail(c, l, "get_entry_error", err, nil)
	}
	entry, err := h.Svc.GetEntry(ctx, c.Param("cartId"), n)
	if err != nil {
		return fail(c, l, "get_entry_error", err, nil)
	}
	return c.JSON(http.StatusOK, h.view(*entry))
}

func (h *CartHTTP) RemoveEntry(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "remove.entry")

	n, err := entryNumber(c)
	if err != nil {
		return fail(c, l, "remove_entry_error", err, nil)
	}
	if err := h.Svc.RemoveEntry(ctx, c.Param("cartId"), n); err != nil {
		return fail(c, l, "remove_entry_error", err, nil)
	}

	l.Info("entry removed from cart", "cart_id", c.Param("cartId"), "entry", n)
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) UpdateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update.cart")

	var cart domain.ShoppingCart
	if err := c.Bind(&cart); err != nil {
		return badRequest(c, l, "update_cart_error", "invalid body", err)
	}
	cart.ID = c.Param("cartId")
	cart.BaseSiteID = c.Param("site")
	if len(cart.RelatedParty) == 0 {
		cart.RelatedParty = []domain.RelatedParty{{ID: service.RelatedPartyID(middleware.UserID(c))}}
	}

	entries, err := h.Svc.UpdateCart(ctx, cart)
	if err != nil {
		return fail(c, l, "update_cart_error", err, nil)
	}

	views := make([]service.EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, h.view(e))
	}
	l.Info("cart updated", "cart_id", cart.ID, "items", len(cart.CartItem))
	return c.JSON(http.StatusOK, views)
}

func (h *CartHTTP) UpdateConsumption(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update.entry.consumption")

	n, err := entryNumber(c)
	if err != nil {
		return fail(c, l, "update_consumption_error", err, nil)
	}
	var req transport.ConsumptionValueRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "update_consumption_error", "invalid body", err)
	}

	entry, err := h.Svc.UpdateConsumption(ctx, c.Param("site"), c.Param("cartId"), n, middleware.UserID(c), req.Value)
	if err != nil {
		return fail(c, l, "update_consumption_error", err, nil)
	}
	return c.JSON(http.StatusOK, h.view(*entry))
}

func (h *CartHTTP) ApplyPremise(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "apply.entry.premise")

	n, err := entryNumber(c)
	if err != nil {
		return fail(c, l, "apply_premise_error", err, nil)
	}
	var premise domain.PremiseDetail
	if err := c.Bind(&premise); err != nil {
		return badRequest(c, l, "apply_premise_error", "invalid body", err)
	}

	var msgs service.Messages
	entry, err := h.Svc.ApplyPremiseDetails(ctx, c.Param("site"), c.Param("cartId"), n, middleware.UserID(c), premise, &msgs)
	if err != nil {
		return fail(c, l, "apply_premise_error", err, msgs)
	}

	l.Info("premise details applied", "cart_id", c.Param("cartId"), "entry", n)
	return c.JSON(http.StatusOK, h.view(*entry))
}

func (h *CartHTTP) SavePurchaseReason(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "save.purchase.reason")

	n, err := entryNumber(c)
	if err != nil {
		return fail(c, l, "save_purchase_reason_error", err, nil)
	}
	var in service.PurchaseReasonInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, l, "save_purchase_reason_error", "invalid body", err)
	}

	var msgs service.Messages
	entry, err := h.Svc.SavePurchaseReason(ctx, c.Param("site"), c.Param("cartId"), n, middleware.UserID(c), in, &msgs)
	if err != nil {
		return fail(c, l, "save_purchase_reason_error", err, msgs)
	}
	return c.JSON(http.StatusOK, h.view(*entry))
}

func (h *CartHTTP) SaveChecklistPurchaseReason(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "save.checklist.purchase.reason")

	var in service.PurchaseReasonInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, l, "save_checklist_purchase_reason_error", "invalid body", err)
	}

	var msgs service.Messages
	actions, err := h.Svc.SaveChecklistPurchaseReason(ctx, middleware.Owner(c), in, &msgs)
	if err != nil {
		return fail(c, l, "save_checklist_purchase_reason_error", err, msgs)
	}
	return c.JSON(http.StatusOK, actions)
}
