package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rice-stock/internal/application/dashboard"
	"github.com/jhoicas/rice-stock/internal/application/dto"
)

// loginGate lo mínimo que necesita el middleware; lo implementa *dashboard.Orchestrator.
type loginGate interface {
	LoggedIn() bool
}

// RequireLogin corta con 401 mientras el indicador de sesión esté apagado.
func RequireLogin(gate loginGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !gate.LoggedIn() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: dashboard.AuthFailedMessage,
			})
		}
		return c.Next()
	}
}
