package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rice-stock/internal/application/dashboard"
	"github.com/jhoicas/rice-stock/internal/application/dto"
)

// InventoryHandler altas de productos y movimientos.
type InventoryHandler struct {
	dash *dashboard.Orchestrator
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(dash *dashboard.Orchestrator) *InventoryHandler {
	return &InventoryHandler{dash: dash}
}

// CreateProduct godoc
// @Summary      Crear producto (el sku lo genera el sistema)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductForm  true  "Datos del producto"
// @Success      201   {object}  dto.DashboardView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductForm
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.dash.SubmitProduct(c.UserContext(), in); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.dash.View())
}

// CreateTransaction godoc
// @Summary      Registrar movimiento IN / OUT / ADJUST
// @Description  El almacén valida el saldo; un rechazo devuelve 422 con su mensaje y el modal sigue abierto.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionForm  true  "Movimiento"
// @Success      201   {object}  dto.DashboardView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *InventoryHandler) CreateTransaction(c *fiber.Ctx) error {
	var in dto.CreateTransactionForm
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.dash.SubmitTransaction(c.UserContext(), in); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.dash.View())
}
