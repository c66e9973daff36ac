package server

import (
	"context"
	"net/http"
	"treadmill-storefront/internal/handler"
	"treadmill-storefront/internal/middleware"
	"treadmill-storefront/internal/service"
	"treadmill-storefront/internal/session"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	echo           *echo.Echo
	catalogHandler *handler.CatalogHandler
	cartHandler    *handler.CartHandler
	registry       *session.Registry
	cookieName     string
}

func NewServer(
	storefrontService service.StorefrontService,
	registry *session.Registry,
	cookieName string,
	logger *zap.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()

	e.Use(middleware.Logger(logger))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	s := &Server{
		echo:           e,
		catalogHandler: handler.NewCatalogHandler(storefrontService),
		cartHandler:    handler.NewCartHandler(storefrontService),
		registry:       registry,
		cookieName:     cookieName,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"sessions": s.registry.Len(),
		})
	})

	// -------- catalog --------
	api.GET("/slides", s.catalogHandler.ListSlides)
	api.GET("/products", s.catalogHandler.ListProducts)
	api.GET("/products/:id", s.catalogHandler.GetProduct)

	// -------- cart --------
	sessions := middleware.Session(s.registry, s.cookieName)

	cartGroup := api.Group("/cart", sessions)
	cartGroup.GET("", s.cartHandler.GetCart)
	cartGroup.DELETE("", s.cartHandler.ClearCart)
	cartGroup.POST("/items", s.cartHandler.AddItem)
	cartGroup.PATCH("/items/:id", s.cartHandler.UpdateQuantity)
	cartGroup.DELETE("/items/:id", s.cartHandler.RemoveItem)
	cartGroup.PUT("/payer", s.cartHandler.UpdatePayer)
	cartGroup.PUT("/recipient", s.cartHandler.UpdateRecipient)
	cartGroup.POST("/checkout", s.cartHandler.Checkout)

	api.GET("/orders/last", s.cartHandler.LastOrder, sessions)
	api.DELETE("/session", middleware.EndSession(s.registry, s.cookieName))
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
