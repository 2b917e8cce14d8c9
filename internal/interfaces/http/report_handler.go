package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rice-stock/internal/application/dashboard"
	"github.com/jhoicas/rice-stock/internal/application/dto"
)

// ReportHandler descarga del reporte de inventario.
type ReportHandler struct {
	dash     *dashboard.Orchestrator
	renderer dashboard.ReportRenderer
}

// NewReportHandler construye el handler.
func NewReportHandler(dash *dashboard.Orchestrator, renderer dashboard.ReportRenderer) *ReportHandler {
	return &ReportHandler{dash: dash, renderer: renderer}
}

// StockPDF godoc
// @Summary      Reporte de inventario en PDF con el último estado cargado
// @Tags         reports
// @Produce      application/pdf
// @Success      200
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/reports/stock.pdf [get]
func (h *ReportHandler) StockPDF(c *fiber.Ctx) error {
	report := h.dash.StockReport()
	out, err := h.renderer.RenderStockReport(c.UserContext(), report)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="rice-stock-%s.pdf"`, report.GeneratedAt.Format("20060102-1504")))
	return c.Send(out)
}
