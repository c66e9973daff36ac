package handler

import (
	"net/http"
	"treadmill-storefront/internal/dto"
	"treadmill-storefront/internal/middleware"
	"treadmill-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	storefrontService service.StorefrontService
}

func NewCartHandler(storefrontService service.StorefrontService) *CartHandler {
	return &CartHandler{
		storefrontService: storefrontService,
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	store := middleware.Store(c)

	return c.JSON(http.StatusOK, h.storefrontService.Cart(store))
}

func (h *CartHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	store := middleware.Store(c)

	var req dto.AddItemRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return mapError(err)
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if err := h.storefrontService.AddToCart(ctx, store, req.ProductID, quantity); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, h.storefrontService.Cart(store))
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	store := middleware.Store(c)

	var req dto.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return mapError(err)
	}

	if err := h.storefrontService.UpdateQuantity(ctx, store, c.Param("id"), *req.Quantity); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, h.storefrontService.Cart(store))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	store := middleware.Store(c)

	h.storefrontService.RemoveItem(c.Request().Context(), store, c.Param("id"))

	return c.JSON(http.StatusOK, h.storefrontService.Cart(store))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	store := middleware.Store(c)

	h.storefrontService.ClearCart(c.Request().Context(), store)

	return c.JSON(http.StatusOK, h.storefrontService.Cart(store))
}

func (h *CartHandler) UpdatePayer(c echo.Context) error {
	store := middleware.Store(c)

	var req dto.PayerRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return mapError(err)
	}

	if err := h.storefrontService.UpdatePayer(store, req); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, h.storefrontService.Cart(store))
}

func (h *CartHandler) UpdateRecipient(c echo.Context) error {
	store := middleware.Store(c)

	var req dto.RecipientRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return mapError(err)
	}

	if err := h.storefrontService.UpdateRecipient(store, req); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, h.storefrontService.Cart(store))
}

func (h *CartHandler) Checkout(c echo.Context) error {
	store := middleware.Store(c)

	order := h.storefrontService.Checkout(c.Request().Context(), store)

	return c.JSON(http.StatusCreated, order)
}

func (h *CartHandler) LastOrder(c echo.Context) error {
	store := middleware.Store(c)

	order, err := h.storefrontService.LastOrder(store)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, order)
}
