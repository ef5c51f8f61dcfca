package router

import (
	"fmt"
	"log/slog"

	"restaurantscorer/internal/config"
	"restaurantscorer/internal/microservices/http-api/handler"
	"restaurantscorer/internal/microservices/http-api/middleware"
	"restaurantscorer/internal/microservices/http-api/service"
	"restaurantscorer/internal/microservices/http-api/views"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the engine with every route. Health endpoints are not
// rate limited.
func SetupRouter(cfg *config.Config, svc service.ScoreEntryService, logger *slog.Logger) (*gin.Engine, error) {
	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(logger))

	handler.NewHealthHandler(svc).RegisterRoutes(r)

	app := r.Group("/")
	if cfg.RateLimitEnabled {
		app.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)))
		logger.Info("Rate limiting enabled", "rps", cfg.RateLimitRPS, "burst", cfg.RateLimitBurst)
	}
	handler.NewScoreEntryHandler(svc).RegisterRoutes(app)

	return r, nil
}
