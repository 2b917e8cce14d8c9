package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rice-stock/internal/application/dashboard"
	"github.com/jhoicas/rice-stock/internal/application/dto"
	"github.com/jhoicas/rice-stock/internal/domain/entity"
	"github.com/jhoicas/rice-stock/pkg/validator"
)

// DashboardHandler expone el estado y las intenciones de UI del tablero.
type DashboardHandler struct {
	dash *dashboard.Orchestrator
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(dash *dashboard.Orchestrator) *DashboardHandler {
	return &DashboardHandler{dash: dash}
}

// State devuelve la vista actual. KPIs en cero si el almacén no respondió.
// GET /api/state
func (h *DashboardHandler) State(c *fiber.Ctx) error {
	return c.JSON(h.dash.View())
}

// Refresh recarga las seis consultas y devuelve la vista resultante.
// POST /api/refresh
func (h *DashboardHandler) Refresh(c *fiber.Ctx) error {
	if err := h.dash.RefreshAll(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.dash.View())
}

// Search PUT /api/ui/search
func (h *DashboardHandler) Search(c *fiber.Ctx) error {
	var in dto.SearchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	h.dash.SetSearch(in.Query)
	return c.JSON(h.dash.View())
}

// Tab PUT /api/ui/tab
func (h *DashboardHandler) Tab(c *fiber.Ctx) error {
	var in dto.TabRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Summary(errs)})
	}
	if err := h.dash.SetTab(dashboard.Tab(in.Tab)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.dash.View())
}

// OpenModal POST /api/ui/modal. Desde una fila de producto llega con producto y tipo preseleccionados.
func (h *DashboardHandler) OpenModal(c *fiber.Ctx) error {
	var in dto.OpenModalRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	in.Type = strings.ToUpper(strings.TrimSpace(in.Type))
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Summary(errs)})
	}
	if err := h.dash.OpenModal(strings.TrimSpace(in.ProductID), entity.TxnType(in.Type)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.dash.View())
}

// CloseModal DELETE /api/ui/modal
func (h *DashboardHandler) CloseModal(c *fiber.Ctx) error {
	h.dash.CloseModal()
	return c.JSON(h.dash.View())
}
