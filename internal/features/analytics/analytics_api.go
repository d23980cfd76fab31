package analytics

import (
	"wellness-analytics/internal/common/api"
	"wellness-analytics/internal/config"
	"wellness-analytics/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsApi struct {
	Controller *AnalyticsController
	Config     *config.Config
}

func NewAnalyticsApi(controller *AnalyticsController, config *config.Config) api.Route {
	return &AnalyticsApi{Controller: controller, Config: config}
}

func (a *AnalyticsApi) Setup(app *fiber.App) {
	// per-route middleware; /api/analytics/reports carries its own chain
	analytics := app.Group("/api/analytics")
	auth := middleware.AuthMiddleware(a.Config.SkipAuth)
	readers := middleware.RequireRoles(middleware.RoleAdmin, middleware.RoleManager)

	for _, def := range Definitions {
		analytics.Get(def.Path, auth, readers, a.Controller.Metric(def))
	}
}
