package system

import (
	"wellness-analytics/internal/common/api"
	"wellness-analytics/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

type SwaggerApi struct {
	config *config.Config
}

func NewSwaggerApi(cfg *config.Config) api.Route {
	return &SwaggerApi{config: cfg}
}

// Setup serves the API docs UI; it is left out in production.
func (h *SwaggerApi) Setup(app *fiber.App) {
	if h.config.IsProduction() {
		return
	}
	app.Get("/swagger/*", swagger.New(swagger.Config{
		Title:        "Wellness Analytics API",
		DeepLinking:  true,
		DocExpansion: "list",
	}))
}
