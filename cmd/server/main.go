package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/NightFury2415/CSC648-Personal-Project/internal/apperr"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/config"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/database"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/email"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/routes"
	"github.com/NightFury2415/CSC648-Personal-Project/internal/store"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	mailer, err := email.New(cfg)
	if err != nil {
		log.Fatalf("mailer setup failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Gator Market Backend",
		ErrorHandler: apperr.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, store.NewGorm(db), cfg, mailer)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
