package system

import (
	"context"
	"time"

	"wellness-analytics/internal/database"

	"github.com/gofiber/fiber/v2"
)

type HealthController struct {
	SQL   *database.SQLDB
	Mongo *database.MongodbDB
}

func NewHealthController(sqlDB *database.SQLDB, mongoDB *database.MongodbDB) *HealthController {
	return &HealthController{SQL: sqlDB, Mongo: mongoDB}
}

// HealthCheck godoc
// @Summary      Health Check
// @Description  Check if the server is up
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "OK"
// @Router       /health [get]
func (h *HealthController) HealthCheck(c *fiber.Ctx) error {
	return c.SendString("OK")
}

// Ready godoc
// @Summary      Readiness Check
// @Description  Ping the relational store and, when configured, MongoDB
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health/ready [get]
func (h *HealthController) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.Map{"sql": "up"}
	code := fiber.StatusOK

	if h.SQL == nil || h.SQL.DB == nil {
		status["sql"] = "not configured"
		code = fiber.StatusServiceUnavailable
	} else if err := h.SQL.DB.PingContext(ctx); err != nil {
		status["sql"] = err.Error()
		code = fiber.StatusServiceUnavailable
	}

	if h.Mongo != nil && h.Mongo.DB != nil {
		status["mongo"] = "up"
		if err := h.Mongo.DB.Client().Ping(ctx, nil); err != nil {
			status["mongo"] = err.Error()
			code = fiber.StatusServiceUnavailable
		}
	}

	return c.Status(code).JSON(status)
}
