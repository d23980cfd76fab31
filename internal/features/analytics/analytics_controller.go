package analytics

import (
	"errors"

	"wellness-analytics/internal/features/series"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalyticsController struct {
	Service AnalyticsService
	Logger  *zap.Logger
}

func NewAnalyticsController(service AnalyticsService, logger *zap.Logger) *AnalyticsController {
	return &AnalyticsController{Service: service, Logger: logger}
}

// Metric returns the handler serving def's series.
// @Summary Metric series
// @Tags analytics
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/analytics/{metric} [get]
func (c *AnalyticsController) Metric(def Definition) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		result, err := c.Service.Compute(ctx.UserContext(), def.Key)
		if err != nil {
			if errors.Is(err, series.ErrTypeMismatch) {
				return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Metric data could not be read"})
			}
			c.Logger.Error("metric failed", zap.String("metric", def.Key), zap.Error(err))
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		}
		return ctx.JSON(result)
	}
}
