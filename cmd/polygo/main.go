package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"polygo/internal/common/config"
	"polygo/internal/common/middleware"
	"polygo/internal/pattern/compositor"
	"polygo/internal/pattern/handlers"
	"polygo/internal/pattern/repository"
	"polygo/internal/pattern/service"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Pattern Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3001"
	}
	if cfg.Environment != "production" {
		compositor.SetLogger(slog.Default())
	}

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background(), cfg.MigrationsPath); err != nil {
		log.Fatalf("init db: %v", err)
	}

	surface := compositor.Surface{Width: cfg.CanvasWidth, Height: cfg.CanvasHeight}
	if err := surface.Validate(); err != nil {
		log.Fatalf("canvas: %v", err)
	}

	patternHandler := handlers.NewPatternHandler(
		service.NewStore(),
		repo,
		service.NewExportStorage(cfg.ExportDir),
		surface,
	)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Pattern Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("PATTERN"))
	app.Use(middleware.CORS(cfg.AllowOrigins))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	app.Get("/health/ready", patternHandler.Ready)

	// ============================================================
	// Pattern Routes
	// ============================================================

	patternHandler.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Pattern Service on %s (env: %s, canvas %dx%d)", addr, cfg.Environment, surface.Width, surface.Height)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
