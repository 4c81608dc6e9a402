// @title        Tienda Admin API
// @version      1.0
// @description  Backend del dashboard de administración de la tienda demo: CRUD de productos, usuarios y órdenes con caché local, dashboard de ventas y exportaciones.
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/tienda-admin-api/internal/app"
	httpRouter "github.com/jhoicas/tienda-admin-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-admin-api/pkg/config"
	"github.com/jhoicas/tienda-admin-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("remote", cfg.Remote.BaseURL).
		Msg("iniciando aplicación")

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	container, err := app.New(startCtx, cfg, log)
	cancelStart()
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar dependencias")
	}
	defer container.Close()

	fiberApp := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // el PDF puede tardar con colecciones grandes
		IdleTimeout:  time.Second * 60,
	})
	fiberApp.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	fiberApp.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda Admin API",
	}))

	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(fiberApp, httpRouter.RouterDeps{
		ProductUC:   container.Products,
		UserUC:      container.Users,
		OrderUC:     container.Orders,
		CacheUC:     container.Cache,
		DashboardUC: container.Dashboard,
		ExportUC:    container.Export,
		Log:         log.Component("http"),
	})

	go func() {
		if err := fiberApp.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
