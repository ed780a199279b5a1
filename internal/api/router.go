// Package api wires together the HTTP routes of the agapay read API.
//
// Route groups:
//   - /health and /ready are unauthenticated liveness and readiness checks.
//   - /v1 serves recipients, organizations and accounts and always requires a bearer
//     API key (see middleware.APIKeyAuthMiddleware).
//
// Every error response is rendered by apierr.Middleware so clients see one shape.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/chariot-giving/agapay/internal/api/accounts"
	"github.com/chariot-giving/agapay/internal/api/apierr"
	"github.com/chariot-giving/agapay/internal/api/organizations"
	"github.com/chariot-giving/agapay/internal/api/recipients"
	"github.com/chariot-giving/agapay/internal/config"
	"github.com/chariot-giving/agapay/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Version is reported by GET /version.
const Version = "0.1.0"

// BackgroundServices holds goroutine-owning resources created by NewRouter.
// The caller must call Shutdown after the HTTP server has drained.
type BackgroundServices struct {
	rateLimiters []*middleware.RateLimiter
}

// Shutdown stops all background goroutines.
func (bg *BackgroundServices) Shutdown() {
	for _, rl := range bg.rateLimiters {
		rl.Stop()
	}
	slog.Info("background services stopped")
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, db *sqlx.DB, logger *slog.Logger) (*gin.Engine, *BackgroundServices) {
	if logger == nil {
		logger = slog.Default()
	}
	bg := &BackgroundServices{}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.SecurityHeadersMiddleware(middleware.APISecurityHeadersConfig()))
	router.Use(apierr.Middleware(logger))

	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(apierr.NewNotFound("route not found", nil))
	})

	router.GET("/health", healthCheckHandler())
	router.GET("/ready", readinessHandler(db))
	router.GET("/version", versionHandler())

	v1 := router.Group("/v1")
	v1.Use(middleware.APIKeyAuthMiddleware(cfg.Auth.APIKeyHash))
	if cfg.Server.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerMinute: cfg.Server.RateLimit.RequestsPerMinute,
			BurstSize:         cfg.Server.RateLimit.Burst,
			CleanupInterval:   middleware.DefaultRateLimitConfig().CleanupInterval,
		})
		bg.rateLimiters = append(bg.rateLimiters, limiter)
		v1.Use(middleware.RateLimitMiddleware(limiter))
	}

	recipientHandlers := recipients.NewHandlers(db)
	v1.GET("/recipients", recipientHandlers.ListHandler())
	v1.GET("/recipients/:id", recipientHandlers.GetHandler())

	organizationHandlers := organizations.NewHandlers(db)
	v1.GET("/organizations/:id", organizationHandlers.GetHandler())

	accountHandlers := accounts.NewHandlers(db)
	v1.GET("/accounts", accountHandlers.ListHandler())
	v1.GET("/accounts/:id", accountHandlers.GetHandler())

	return router, bg
}

// @Summary      Liveness check
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status: healthy"
// @Router       /health [get]
// healthCheckHandler reports that the process is serving requests.
func healthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// @Summary      Readiness check
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "ready: true"
// @Failure      503  {object}  map[string]interface{}  "ready: false"
// @Router       /ready [get]
// readinessHandler reports whether the database is reachable.
func readinessHandler(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"ready":  false,
				"checks": gin.H{"database": "unhealthy"},
				"error":  "database not ready",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"ready":  true,
			"checks": gin.H{"database": "healthy"},
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func versionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": Version})
	}
}
