package handler

import (
	"net/http"
	"treadmill-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	storefrontService service.StorefrontService
}

func NewCatalogHandler(storefrontService service.StorefrontService) *CatalogHandler {
	return &CatalogHandler{
		storefrontService: storefrontService,
	}
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.storefrontService.ListProducts(ctx)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.storefrontService.GetProduct(ctx, c.Param("id"))
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) ListSlides(c echo.Context) error {
	ctx := c.Request().Context()

	slides, err := h.storefrontService.ListSlides(ctx)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, slides)
}
