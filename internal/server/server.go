package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/username/lunar-calendar/internal/calendar"
	"github.com/username/lunar-calendar/internal/config"
	"github.com/username/lunar-calendar/pkg/lunar"
)

// Server represents the HTTP API server
type Server struct {
	echo     *echo.Echo
	config   config.ServerConfig
	export   config.ExportConfig
	calendar calendar.Calendar
	logger   *zap.Logger
	now      func() time.Time
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
func New(cfg *config.Config, cal calendar.Calendar, logger *zap.Logger) *Server {
	e := echo.New()

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = customErrorHandler(logger)

	s := &Server{
		echo:     e,
		config:   cfg.Server,
		export:   cfg.Export,
		calendar: cal,
		logger:   logger,
		now:      time.Now,
	}

	s.setupMiddleware()

	// Metrics wrap the rate limiter so rejected requests are counted too
	if cfg.Server.Metrics {
		s.setupMetrics()
	}

	s.setupRateLimiter()
	s.setupRoutes()

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return uuid.New().String()
		},
	}))

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", values.Method),
				zap.String("uri", values.URI),
				zap.Int("status", values.Status),
				zap.Duration("latency", values.Latency),
				zap.String("remote_ip", values.RemoteIP),
				zap.String("request_id", values.RequestID),
			}

			if values.Error != nil {
				s.logger.Warn("HTTP request failed", append(fields, zap.Error(values.Error))...)
			} else {
				s.logger.Debug("HTTP request", fields...)
			}
			return nil
		},
	}))
}

// setupRateLimiter limits requests per client IP when server.rate_limit is set
func (s *Server) setupRateLimiter() {
	if s.config.RateLimit <= 0 {
		return
	}

	window := s.config.GetRateWindow()
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(float64(s.config.RateLimit) / window.Seconds()),
				Burst:     s.config.RateLimit,
				ExpiresIn: window,
			},
		),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		},
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)

	v1 := s.echo.Group("/api/v1")
	v1.GET("/lunar/:date", s.getLunar)
	v1.GET("/gregorian", s.getGregorian)
	v1.GET("/years/:year", s.getYear)
	v1.GET("/months/:year/:month", s.getMonth)
	v1.GET("/calendar.ics", s.getICS)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lunar_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lunar_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(
		requestsTotal,
		requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			} else if err != nil {
				status = errorStatus(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			requestsTotal.WithLabelValues(
				c.Request().Method,
				path,
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				path,
			).Observe(time.Since(start).Seconds())

			return err
		}
	})

	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}

// ServeHTTP lets the server be mounted or tested as a plain handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start starts the HTTP server and blocks until it stops.
// A graceful shutdown is not reported as an error.
func (s *Server) Start() error {
	s.logger.Info("Starting server", zap.String("address", s.config.Address))
	if err := s.echo.Start(s.config.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// errorStatus maps domain errors to HTTP status codes
func errorStatus(err error) int {
	if errorType(err) != "" {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// errorType returns the machine-readable type of a client error, or "" if err is not one
func errorType(err error) string {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return "validation_failed"
	case errors.Is(err, lunar.ErrInvalidYear):
		return "invalid_year"
	case errors.Is(err, lunar.ErrInvalidMonth):
		return "invalid_month"
	case errors.Is(err, lunar.ErrInvalidDay):
		return "invalid_day"
	case errors.Is(err, lunar.ErrInvalidDateString):
		return "invalid_date"
	case errors.Is(err, lunar.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, calendar.ErrInvalidRange):
		return "invalid_range"
	}
	return ""
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := map[string]interface{}{"message": http.StatusText(code), "type": "internal"}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			msg = map[string]interface{}{"message": he.Message, "type": "http"}
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if t := errorType(err); t != "" {
			code = http.StatusBadRequest
			msg = map[string]interface{}{"message": err.Error(), "type": t}
		}

		if code == http.StatusInternalServerError {
			logger.Error("Internal server error",
				zap.Error(err),
				zap.String("path", c.Request().URL.Path))
		}

		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Error("Error sending response", zap.Error(err))
			}
		}
	}
}
