package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-admin/internal/application/analytics"
	"github.com/jhoicas/Inventario-admin/internal/application/dto"
)

// ReportHandler inicio y reportes.
type ReportHandler struct {
	dashboard *analytics.DashboardUseCase
	reports   *analytics.ReportsUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(dashboard *analytics.DashboardUseCase, reports *analytics.ReportsUseCase) *ReportHandler {
	return &ReportHandler{dashboard: dashboard, reports: reports}
}

// Dashboard godoc
// @Summary      Tarjetas de conteo del inicio
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.DashboardView}
// @Router       /dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, h.dashboard.Summary(c.UserContext(), GetSession(c)))
}

// Reports godoc
// @Summary      Página de reportes (ADMIN)
// @Tags         reports
// @Produce      json
// @Param        fechaInicio  query  string  false  "YYYY-MM-DD (por defecto hace 30 días)"
// @Param        fechaFin     query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Success      200  {object}  dto.Envelope{data=dto.ReportsView}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /reports [get]
func (h *ReportHandler) Reports(c *fiber.Ctx) error {
	var q dto.ReportsQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.reports.Load(c.UserContext(), GetSession(c), q)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Export godoc
// @Summary      Exportar un reporte (ADMIN)
// @Tags         reports
// @Accept       json
// @Produce      application/octet-stream
// @Param        body  body  dto.ExportRequest  true  "tipoReporte, formato, rango"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /reports/export [post]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	file, err := h.reports.Export(c.UserContext(), GetSession(c), in)
	if err != nil {
		return fail(c, err)
	}
	return sendFile(c, file)
}
