package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rice-stock/internal/application/auth"
	"github.com/jhoicas/rice-stock/internal/application/dashboard"
	"github.com/jhoicas/rice-stock/internal/application/dto"
	"github.com/jhoicas/rice-stock/pkg/validator"
)

// AuthHandler maneja la puerta de acceso.
type AuthHandler struct {
	dash *dashboard.Orchestrator
}

// NewAuthHandler construye el handler de acceso.
func NewAuthHandler(dash *dashboard.Orchestrator) *AuthHandler {
	return &AuthHandler{dash: dash}
}

// Login godoc
// @Summary      Abrir la puerta de acceso
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  auth.Credentials  true  "username, password"
// @Success      200   {object}  dto.DashboardView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in auth.Credentials
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Summary(errs)})
	}
	if !h.dash.Login(c.UserContext(), in) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: dashboard.AuthFailedMessage})
	}
	return c.JSON(h.dash.View())
}

// Logout godoc
// @Summary      Cerrar la sesión y borrar el indicador persistido
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.DashboardView
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.dash.Logout(c.UserContext())
	return c.JSON(h.dash.View())
}
