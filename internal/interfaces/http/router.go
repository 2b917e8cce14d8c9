package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/rice-stock/internal/application/dashboard"
	"github.com/jhoicas/rice-stock/internal/interfaces/ws"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	Dashboard *dashboard.Orchestrator
	Reports   dashboard.ReportRenderer
	Hub       *ws.Hub // opcional; sin hub no se expone /ws
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Acceso (público)
	authHandler := NewAuthHandler(deps.Dashboard)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	dashHandler := NewDashboardHandler(deps.Dashboard)
	api.Get("/state", dashHandler.State)

	// Rutas protegidas por el indicador de sesión. La puerta va en cada ruta y no como Use del grupo,
	// así una ruta desconocida bajo /api sigue respondiendo 404.
	gate := RequireLogin(deps.Dashboard)
	api.Post("/refresh", gate, dashHandler.Refresh)

	ui := api.Group("/ui")
	ui.Put("/search", gate, dashHandler.Search)
	ui.Put("/tab", gate, dashHandler.Tab)
	ui.Post("/modal", gate, dashHandler.OpenModal)
	ui.Delete("/modal", gate, dashHandler.CloseModal)

	invHandler := NewInventoryHandler(deps.Dashboard)
	api.Post("/products", gate, invHandler.CreateProduct)
	api.Post("/transactions", gate, invHandler.CreateTransaction)

	if deps.Reports != nil {
		reportHandler := NewReportHandler(deps.Dashboard, deps.Reports)
		api.Get("/reports/stock.pdf", gate, reportHandler.StockPDF)
	}

	if deps.Hub != nil {
		app.Get("/ws", gate, ws.UpgradeOnly, deps.Hub.Handler(deps.Dashboard.View))
	}
}
