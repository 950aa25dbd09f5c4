package main

import (
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"notable/internal/caching"
	"notable/internal/config"
	"notable/internal/handlers"
	"notable/internal/middleware"
	"notable/internal/repositories"
	"notable/internal/services"
	"notable/pkg/database"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	pool, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := database.Migrate(cfg.DatabaseURL, "migrations"); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	tenantRepo := repositories.NewTenantRepo(pool)
	noteRepo := repositories.NewNoteRepo(pool)

	// Services
	authSvc := services.NewAuthService(cfg.JWTSecret)
	tenantSvc := services.NewTenantService(tenantRepo, cacheSvc)
	noteSvc := services.NewNoteService(noteRepo)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(userRepo, tenantSvc, authSvc)
	noteHandlers := handlers.NewNoteHandlers(noteSvc)
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	e := newRouter(logger)

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// Authentication routes (no JWT required for login)
	e.POST("/auth/login", authHandlers.Login)

	// Protected routes
	protected := e.Group("")
	protected.Use(middleware.JWT(authSvc))

	protected.GET("/auth/me", authHandlers.Me)

	protected.GET("/notes", noteHandlers.ListNotes)
	protected.POST("/notes", noteHandlers.CreateNote)
	protected.GET("/notes/:id", noteHandlers.GetNote)
	protected.PUT("/notes/:id", noteHandlers.UpdateNote)
	protected.DELETE("/notes/:id", noteHandlers.DeleteNote)

	protected.POST("/tenants/:slug/upgrade", tenantHandlers.UpgradePlan)

	logger.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
	if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// newRouter builds the Echo instance with the error handler and global
// middleware. Trailing-slash rewriting has to happen before the router
// matches, so it is registered with Pre.
func newRouter(logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(logger)

	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Err(v.Error).
				Msg("request")
			return nil
		},
	}))

	return e
}
