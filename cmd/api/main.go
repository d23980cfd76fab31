package main

import (
	"context"
	"fmt"
	"log"

	common_api "wellness-analytics/internal/common/api"
	"wellness-analytics/internal/config"
	"wellness-analytics/internal/database"
	"wellness-analytics/internal/features/analytics"
	"wellness-analytics/internal/features/metrics"
	"wellness-analytics/internal/features/report"
	"wellness-analytics/internal/features/system"
	"wellness-analytics/internal/logger"
	"wellness-analytics/internal/middleware"
	"wellness-analytics/internal/telemetry"
	"wellness-analytics/pkg/utils"

	_ "wellness-analytics/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(cfg *config.Config, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	app.Use(middleware.RequestLogger(logger))

	return app
}

// AsRoute tags the constructor so Fx adds it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes calls Setup() on every member of the "routes" group.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	log.Printf("Registering %d routes...\n", len(routes))
	for i, route := range routes {
		log.Printf("Setting up route %d: %T\n", i+1, route)
		route.Setup(app)
	}
	log.Println("All routes registered successfully")
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer starts Fiber in a goroutine and shuts it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// StartSnapshots runs the metric snapshot scheduler for the app's lifetime.
func StartSnapshots(lc fx.Lifecycle, scheduler *analytics.SnapshotScheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return scheduler.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return scheduler.Stop()
		},
	})
}

// @title           Wellness Analytics API
// @version         1.0
// @description     Aggregated wellness metrics and the report audit log.

// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,

			database.NewSQLDatabase,
			database.NewMongoDatabase,

			logger.NewLogger,
			telemetry.NewTelemetry,

			NewFiberServer,

			// Repositories
			report.NewReportRepository,
			metrics.NewActivityRepository,
			metrics.NewGoalRepository,
			metrics.NewChallengeRepository,
			metrics.NewUserRepository,
			metrics.NewProgramRepository,

			// Services
			report.NewReportService,
			analytics.NewSources,
			analytics.NewAnalyticsService,
			analytics.NewSnapshotScheduler,

			// Every computed metric is audited through the report log
			func(s report.ReportService) analytics.Auditor { return s },

			// Controllers
			report.NewReportController,
			analytics.NewAnalyticsController,
			system.NewHealthController,
			system.NewDebugController,

			// API Routes
			AsRoute(report.NewReportApi),
			AsRoute(analytics.NewAnalyticsApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewDebugApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) { utils.SetSecret(cfg.JWTSecret) },
			RegisterAllRoutesWithAnnotation,
			StartServer,
			StartSnapshots,
		),
	)

	app.Run()
}
