package main

import (
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/benbeisheim/fogchess-backend/internal/config"
	"github.com/benbeisheim/fogchess-backend/internal/controller"
	"github.com/benbeisheim/fogchess-backend/internal/model"
	"github.com/benbeisheim/fogchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Debug {
		log.SetLevel(log.LevelDebug)
	} else {
		log.SetLevel(log.LevelInfo)
	}
	layout, err := cfg.Layout()
	if err != nil {
		log.Fatalf("layout: %v", err)
	}

	app := fiber.New(fiber.Config{AppName: "fogchess"})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Origins, ", "),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: !slices.Contains(cfg.Origins, "*"),
	}))
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	settings := service.Settings{
		Defaults: model.Options{
			Mode:       model.ModeOnline,
			Layout:     layout,
			Clock:      cfg.Clock,
			BotDepth:   cfg.BotDepth,
			BotWidth:   cfg.BotWidth,
			BotWorkers: cfg.SearchWorkers,
		},
		MatchInterval: cfg.MatchInterval,
	}
	gameManager := service.NewGameManager(settings)
	defer gameManager.Close()
	gameService := service.NewGameService(gameManager)

	controller.Register(app, gameService, cfg.Origins)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	log.Infof("listening on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
