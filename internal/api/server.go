package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/storeldb/storeapi/internal/api/docs"
	"github.com/storeldb/storeapi/internal/api/dto"
	"github.com/storeldb/storeapi/internal/api/handler"
	"github.com/storeldb/storeapi/internal/api/middleware"
	"github.com/storeldb/storeapi/internal/core/service"
	"github.com/storeldb/storeapi/pkg/config"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
	logger *slog.Logger
}

// NewServer creates a new API server
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	store Pinger,
	authService *service.AuthService,
	clientService *service.ClientService,
	productService *service.ProductService,
	orderService *service.OrderService,
	excelService *service.ExcelService,
) *Server {
	// Amounts are JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandlerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	var guard gin.HandlerFunc
	if cfg.AuthEnabled() {
		guard = middleware.AuthMiddleware(authService)
	}

	api := router.Group("/api")

	handler.NewClientHandler(clientService, excelService).Register(api.Group("/Clientes"), guard)
	handler.NewProductHandler(productService).Register(api.Group("/Productos"), guard)
	handler.NewOrderHandler(orderService, excelService).Register(api.Group("/Orders"), guard)

	router.GET("/health", healthHandler(store))

	if cfg.IsDevMode() {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.APIPort)
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return &Server{
		router: router,
		config: cfg,
		logger: logger,
	}
}

// healthHandler godoc
// @Summary Liveness and store ping
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func healthHandler(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := store.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable"})
			return
		}
		c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.APIHost, s.config.APIPort)

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start with or without SSL
	if s.config.SSLCert != "" && s.config.SSLKey != "" {
		s.logger.Info("starting HTTPS server", "addr", addr)
		return s.srv.ListenAndServeTLS(s.config.SSLCert, s.config.SSLKey)
	}

	s.logger.Info("starting HTTP server", "addr", addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
