package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"nofa-store-service/internal/app"
	"nofa-store-service/internal/config"
	"nofa-store-service/internal/ports/inbound"
	"nofa-store-service/internal/ports/outbound"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Server wires the HTTP handlers onto an echo instance
type Server struct {
	echo    *echo.Echo
	handler *Handler
	config  *config.Config
	logger  zerolog.Logger
}

type ServerParams struct {
	Config      *config.Config
	ItemService inbound.ItemService
	BidService  inbound.BidService
	Notifier    outbound.Notifier
	Gate        *app.AdminGate
	Logger      zerolog.Logger
}

// NewServer creates the HTTP server with all routes registered
func NewServer(params ServerParams) *Server {
	handler := NewHandler(HandlerParams{
		ItemService: params.ItemService,
		BidService:  params.BidService,
		Notifier:    params.Notifier,
		Logger:      params.Logger,
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	// Public routes
	e.GET("/health", handler.Health)
	e.GET("/items", handler.ListItems)
	e.GET("/items/:id", handler.GetItem)
	e.POST("/items/:id/bids", handler.PlaceBid)

	// Admin routes: gated, credential re-supplied on every request
	admin := e.Group("/admin", AdminAuth(params.Gate, params.Logger))
	admin.GET("/items", handler.AdminListItems)
	admin.POST("/items", handler.CreateItem)
	admin.POST("/items/:id/close", handler.CloseItem)
	admin.PUT("/items/:id", handler.UpdateItem)
	admin.POST("/items/:id/images", handler.AddItemImage)
	admin.DELETE("/images/:id", handler.RemoveItemImage)
	admin.GET("/test-email", handler.TestEmail)

	return &Server{
		echo:    e,
		handler: handler,
		config:  params.Config,
		logger:  params.Logger.With().Str("component", "http_server").Logger(),
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info().Str("addr", addr).Msg("Starting HTTP server")

	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info().Msg("Stopping HTTP server...")

	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}
