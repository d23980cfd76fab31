package report

import (
	"wellness-analytics/internal/common/api"
	"wellness-analytics/internal/config"
	"wellness-analytics/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReportApi struct {
	ReportController *ReportController
	Config           *config.Config
}

func NewReportApi(reportController *ReportController, config *config.Config) api.Route {
	return &ReportApi{
		ReportController: reportController,
		Config:           config,
	}
}

func (a *ReportApi) Setup(app *fiber.App) {
	group := app.Group("/api/analytics/reports", middleware.AuthMiddleware(a.Config.SkipAuth))

	readers := middleware.RequireRoles(middleware.RoleAdmin, middleware.RoleManager)

	group.Post("/", readers, a.ReportController.Create)
	group.Get("/", readers, a.ReportController.List)
	group.Get("/export", readers, a.ReportController.Export)
	group.Get("/:id", readers, a.ReportController.Get)
	group.Put("/:id", readers, a.ReportController.Update)
	group.Delete("/:id", middleware.RequireRoles(middleware.RoleAdmin), a.ReportController.Delete)
}
