package server

import (
	"crypto/tls"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/gofiber/storage/redis/v3"
	"github.com/gofiber/template/html/v3"

	"autosuggest/internal/config"
	"autosuggest/internal/models"
)

// Server wraps the Fiber app and configuration.
type Server struct {
	App *fiber.App
	Cfg *config.Config

	limiterStorage *redis.Storage
}

// Options overrides filesystem locations, mainly for tests.
type Options struct {
	ViewsDir  string
	StaticDir string
}

// New creates a new server with middleware configured.
func New(cfg *config.Config) *Server {
	return NewWithOptions(cfg, Options{ViewsDir: "./views", StaticDir: "./static"})
}

// NewWithOptions creates a new server using the given asset directories.
func NewWithOptions(cfg *config.Config, opts Options) *Server {
	engine := html.New(opts.ViewsDir, ".html")
	engine.Reload(cfg.IsDev())

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: errorHandler,
	})

	s := &Server{App: app, Cfg: cfg}

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())

	if cfg.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Split(cfg.CORSOrigins, ","),
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
			MaxAge:       86400,
		}))
	}

	limiterCfg := limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: 1 * time.Minute,
		Next:       skipLimiter,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Rate limit exceeded. Please try again later.",
			})
		},
	}
	// Share counters across replicas when Redis is available
	if cfg.RedisURL != "" {
		s.limiterStorage = redis.New(redis.Config{URL: cfg.RedisURL})
		limiterCfg.Storage = s.limiterStorage
		slog.Info("rate limiter using redis storage")
	}
	app.Use(limiter.New(limiterCfg))

	// Static files
	app.Get("/static/*", static.New(opts.StaticDir))

	return s
}

// Start starts the server with the configured address and TLS settings.
func (s *Server) Start() error {
	if s.Cfg.TLSEnabled {
		slog.Info("starting server with TLS", "addr", s.Cfg.ServerAddr)
		return s.App.Listen(s.Cfg.ServerAddr, fiber.ListenConfig{
			CertFile:              s.Cfg.TLSCertFile,
			CertKeyFile:           s.Cfg.TLSKeyFile,
			TLSConfigFunc:         func(tc *tls.Config) { tc.MinVersion = tls.VersionTLS12 },
			DisableStartupMessage: !s.Cfg.IsDev(),
		})
	}
	slog.Info("starting server", "addr", s.Cfg.ServerAddr)
	return s.App.Listen(s.Cfg.ServerAddr, fiber.ListenConfig{
		DisableStartupMessage: !s.Cfg.IsDev(),
	})
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	err := s.App.Shutdown()
	if s.limiterStorage != nil {
		if cerr := s.limiterStorage.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}
	return err
}

// errorHandler answers every unhandled error with a JSON body.
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	} else {
		slog.Error("unhandled request error", "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(models.ErrorResponse{Error: message})
}

// skipLimiter exempts probes and scrapes from rate limiting.
func skipLimiter(c fiber.Ctx) bool {
	switch c.Path() {
	case "/healthz", "/readyz", "/metrics":
		return true
	}
	return false
}
