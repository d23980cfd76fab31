package report

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ReportController struct {
	ReportService ReportService
	Logger        *zap.Logger
}

func NewReportController(reportService ReportService, logger *zap.Logger) *ReportController {
	return &ReportController{ReportService: reportService, Logger: logger}
}

// Create godoc
// @Summary      Create report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        report  body      ReportRequest  true  "Report"
// @Success      201     {object}  Report
// @Router       /api/analytics/reports [post]
func (c *ReportController) Create(ctx *fiber.Ctx) error {
	var req ReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	report, err := c.ReportService.CreateReport(ctx.UserContext(), req)
	if err != nil {
		return c.fail(ctx, 0, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(report)
}

// List godoc
// @Summary      List reports
// @Tags         reports
// @Produce      json
// @Success      200  {array}  Report
// @Router       /api/analytics/reports [get]
func (c *ReportController) List(ctx *fiber.Ctx) error {
	reports, err := c.ReportService.ListReports(ctx.UserContext())
	if err != nil {
		return c.fail(ctx, 0, err)
	}
	return ctx.JSON(reports)
}

// Get godoc
// @Summary      Get report
// @Tags         reports
// @Produce      json
// @Param        id   path      int  true  "Report ID"
// @Success      200  {object}  Report
// @Failure      404  {object}  map[string]string
// @Router       /api/analytics/reports/{id} [get]
func (c *ReportController) Get(ctx *fiber.Ctx) error {
	id, err := reportID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid report id"})
	}
	report, err := c.ReportService.GetReport(ctx.UserContext(), id)
	if err != nil {
		return c.fail(ctx, id, err)
	}
	return ctx.JSON(report)
}

// Update godoc
// @Summary      Update report scope and metrics
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        id      path      int            true  "Report ID"
// @Param        report  body      ReportRequest  true  "Report"
// @Success      200     {object}  Report
// @Failure      404     {object}  map[string]string
// @Router       /api/analytics/reports/{id} [put]
func (c *ReportController) Update(ctx *fiber.Ctx) error {
	id, err := reportID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid report id"})
	}
	var req ReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	report, err := c.ReportService.UpdateReport(ctx.UserContext(), id, req)
	if err != nil {
		return c.fail(ctx, id, err)
	}
	return ctx.JSON(report)
}

// Delete godoc
// @Summary      Delete report
// @Tags         reports
// @Produce      plain
// @Param        id   path      int  true  "Report ID"
// @Success      200  {string}  string  "Report deleted successfully"
// @Router       /api/analytics/reports/{id} [delete]
func (c *ReportController) Delete(ctx *fiber.Ctx) error {
	id, err := reportID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid report id"})
	}
	if err := c.ReportService.DeleteReport(ctx.UserContext(), id); err != nil {
		return c.fail(ctx, id, err)
	}
	return ctx.Status(fiber.StatusOK).SendString("Report deleted successfully")
}

// Export godoc
// @Summary      Export all reports
// @Tags         reports
// @Produce      octet-stream
// @Param        format  query  string  false  "csv or xlsx"
// @Router       /api/analytics/reports/export [get]
func (c *ReportController) Export(ctx *fiber.Ctx) error {
	format := ctx.Query("format", ExportCSV)
	if format != ExportCSV && format != ExportXLSX {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("unsupported format: %s", format)})
	}

	data, filename, err := c.ReportService.ExportReports(ctx.UserContext(), format)
	if err != nil {
		return c.fail(ctx, 0, err)
	}

	if format == ExportXLSX {
		ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	} else {
		ctx.Set("Content-Type", "text/csv")
	}
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return ctx.Send(data)
}

func (c *ReportController) fail(ctx *fiber.Ctx, id int64, err error) error {
	switch {
	case errors.Is(err, ErrReportNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": fmt.Sprintf("Report not found with id %d", id)})
	case errors.Is(err, ErrInvalidReport):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		c.Logger.Error("report request failed",
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.Path()),
			zap.Error(err),
		)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}

func reportID(ctx *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(ctx.Params("id"), 10, 64)
}
