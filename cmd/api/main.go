package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/rice-stock/internal/application/auth"
	"github.com/jhoicas/rice-stock/internal/application/dashboard"
	"github.com/jhoicas/rice-stock/internal/domain/repository"
	infrapdf "github.com/jhoicas/rice-stock/internal/infrastructure/pdf"
	"github.com/jhoicas/rice-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/rice-stock/internal/infrastructure/session"
	httpRouter "github.com/jhoicas/rice-stock/internal/interfaces/http"
	"github.com/jhoicas/rice-stock/internal/interfaces/ws"
	"github.com/jhoicas/rice-stock/pkg/config"
	"github.com/jhoicas/rice-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("org_id", cfg.Org.ID).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	inventoryRepo := postgres.NewInventoryRepository(pool, cfg.Org.ID)

	// Indicador de sesión: Redis si está configurado, si no un archivo local.
	var flags repository.LoginFlagStore
	if cfg.Redis.Enabled() {
		redisStore, err := session.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Org.ID)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer redisStore.Close()
		flags = redisStore
		log.Info().Str("addr", cfg.Redis.Addr).Msg("indicador de sesión en Redis")
	} else {
		flags = session.NewFileStore(cfg.Session.File)
		log.Info().Str("file", cfg.Session.File).Msg("indicador de sesión en archivo")
	}

	authenticator, err := auth.NewStaticAuthenticator(cfg.Auth.Username, cfg.Auth.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("autenticador")
	}

	dash := dashboard.New(inventoryRepo, authenticator, flags, log.Component("dashboard"), dashboard.Config{
		FetchTimeout: cfg.App.FetchTimeout,
	})

	hub := ws.NewHub(log.Component("ws"))
	go hub.Run(ctx)
	dash.Subscribe(hub.Publish)

	// Lectura única del indicador persistido; con sesión abierta se recarga todo.
	dash.Init(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		Dashboard: dash,
		Reports:   infrapdf.NewStockReportGenerator(cfg.App.Name),
		Hub:       hub,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
