package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/daybook/core/docs"
	httpHandlers "github.com/daybook/core/internal/adapters/http"
	"github.com/daybook/core/internal/adapters/ical"
	"github.com/daybook/core/internal/adapters/recognition"
	"github.com/daybook/core/internal/adapters/repository"
	"github.com/daybook/core/internal/adapters/seed"
	"github.com/daybook/core/internal/application/services"
	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/infrastructure/config"
	"github.com/daybook/core/internal/infrastructure/logger"
	"github.com/daybook/core/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo         *echo.Echo
	config       *config.Config
	logger       *logger.Logger
	seedWatcher  *seed.Watcher
	eventRepo    ports.EventRepository
	shoppingRepo ports.ShoppingRepository
	startedAt    time.Time
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	// Initialize repositories
	eventRepo := repository.NewEventRepository()
	shoppingRepo := repository.NewShoppingRepository()
	userRepo := repository.NewUserRepository()

	server := &Server{
		echo:         e,
		config:       cfg,
		logger:       appLogger,
		eventRepo:    eventRepo,
		shoppingRepo: shoppingRepo,
		startedAt:    time.Now(),
	}

	// Load seed data and optionally watch the file for edits
	if cfg.Seed.Path != "" {
		if _, err := os.Stat(cfg.Seed.Path); err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := seed.Apply(ctx, cfg.Seed.Path, eventRepo, shoppingRepo); err != nil {
				cancel()
				return nil, fmt.Errorf("failed to apply seed data: %w", err)
			}
			cancel()

			if cfg.Seed.Watch {
				watcher, err := seed.NewWatcher(cfg.Seed.Path, eventRepo, shoppingRepo, appLogger)
				if err != nil {
					return nil, fmt.Errorf("failed to watch seed file: %w", err)
				}
				server.seedWatcher = watcher
			}
		} else {
			appLogger.Warnw("Seed file not found, starting empty", "path", cfg.Seed.Path)
		}
	}

	// Initialize services
	exporter := ical.NewExporter(cfg.App.Name, cfg.App.Version)
	authService := services.NewAuthService(userRepo, cfg.JWT, appLogger)
	gridParams := services.GridParamsFromConfig(cfg.Calendar)
	eventService := services.NewEventService(eventRepo, exporter, gridParams, appLogger)
	calendarService := services.NewCalendarService(eventRepo, gridParams, appLogger)
	shoppingService := services.NewShoppingService(shoppingRepo, appLogger)
	scannerService := services.NewScannerService(recognition.NewMockRecognizer(), eventService, shoppingService, appLogger)

	// Initialize handlers
	authHandler := httpHandlers.NewAuthHandler(authService, appLogger)
	eventHandler := httpHandlers.NewEventHandler(eventService, appLogger)
	calendarHandler := httpHandlers.NewCalendarHandler(calendarService, appLogger)
	shoppingHandler := httpHandlers.NewShoppingHandler(shoppingService, appLogger)
	scanHandler := httpHandlers.NewScanHandler(scannerService, appLogger)

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(authHandler, eventHandler, calendarHandler, shoppingHandler, scanHandler, authService)

	// Setup metrics
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(authHandler *httpHandlers.AuthHandler, eventHandler *httpHandlers.EventHandler, calendarHandler *httpHandlers.CalendarHandler, shoppingHandler *httpHandlers.ShoppingHandler, scanHandler *httpHandlers.ScanHandler, authService *services.AuthService) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Auth routes (public)
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout, s.authMiddleware(authService))

	// Event routes (authenticated)
	eventGroup := v1.Group("/events", s.authMiddleware(authService))
	eventGroup.GET("", eventHandler.ListEvents)
	eventGroup.POST("", eventHandler.CreateEvent)
	eventGroup.GET("/export.ics", eventHandler.ExportICS)
	eventGroup.GET("/:id", eventHandler.GetEvent)
	eventGroup.PUT("/:id", eventHandler.UpdateEvent)
	eventGroup.DELETE("/:id", eventHandler.DeleteEvent)
	eventGroup.PATCH("/:id/reschedule", eventHandler.RescheduleEvent)

	// Calendar grid routes (authenticated)
	calendarGroup := v1.Group("/calendar", s.authMiddleware(authService))
	calendarGroup.GET("/day", calendarHandler.DayGrid)
	calendarGroup.GET("/week", calendarHandler.WeekGrid)
	calendarGroup.POST("/window", calendarHandler.ApplyWindow)

	// Shopping routes (authenticated)
	shoppingGroup := v1.Group("/shopping", s.authMiddleware(authService))
	shoppingGroup.GET("", shoppingHandler.ListItems)
	shoppingGroup.POST("", shoppingHandler.CreateItem)
	shoppingGroup.GET("/categories", shoppingHandler.Categories)
	shoppingGroup.GET("/:id", shoppingHandler.GetItem)
	shoppingGroup.PUT("/:id", shoppingHandler.UpdateItem)
	shoppingGroup.DELETE("/:id", shoppingHandler.DeleteItem)
	shoppingGroup.PATCH("/:id/toggle", shoppingHandler.TogglePurchased)

	// Scanner routes (authenticated)
	scanGroup := v1.Group("/scan", s.authMiddleware(authService))
	scanGroup.POST("", scanHandler.Scan)
	scanGroup.POST("/accept", scanHandler.AcceptScan)

	// Admin routes
	adminGroup := v1.Group("/admin", s.authMiddleware(authService), s.requireRole(entities.UserRoleAdmin))
	adminGroup.POST("/seed/reload", s.reloadSeed)
}

// reloadSeed re-applies the seed file on demand, replacing all stored data.
func (s *Server) reloadSeed(c echo.Context) error {
	if s.config.Seed.Path == "" {
		return echo.NewHTTPError(http.StatusNotFound, "No seed file configured")
	}
	if err := seed.Apply(c.Request().Context(), s.config.Seed.Path, s.eventRepo, s.shoppingRepo); err != nil {
		s.logger.Errorw("Seed reload failed", "error", err, "path", s.config.Seed.Path)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s.logger.Infow("Seed data reloaded", "path", s.config.Seed.Path)
	return c.JSON(http.StatusOK, map[string]string{"message": "Seed data reloaded"})
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	path := s.config.Metrics.Path
	if path == "" {
		path = "/metrics"
	}
	s.echo.GET(path, echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": s.config.App.Version,
	})
}

// detailedHealthCheck adds store sizes and the seed watcher state to the
// plain health payload.
func (s *Server) detailedHealthCheck(c echo.Context) error {
	ctx := c.Request().Context()

	eventCount, err := s.eventRepo.Count(ctx, ports.EventFilter{})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Health check failed")
	}
	itemCount, err := s.shoppingRepo.Count(ctx, ports.ShoppingFilter{})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Health check failed")
	}

	seedWatcher := "disabled"
	if s.seedWatcher != nil {
		seedWatcher = "active"
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().UTC().Format(time.RFC3339),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
		"uptime":      time.Since(s.startedAt).Round(time.Second).String(),
		"checks": map[string]interface{}{
			"events":         eventCount,
			"shopping_items": itemCount,
			"seed_watcher":   seedWatcher,
		},
	})
}

func (s *Server) readinessCheck(c echo.Context) error {
	// All state is in memory, the server is ready as soon as it is up.
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	if s.seedWatcher != nil {
		if err := s.seedWatcher.Close(); err != nil {
			s.logger.Warnw("Failed to close seed watcher", "error", err)
		}
	}
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if e, ok := err.(validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": e.Error()}
		} else {
			msg = map[string]string{"message": http.StatusText(code)}
		}

		if code == http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
