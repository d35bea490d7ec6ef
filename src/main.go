package main

import (
	_ "formforge-backend/docs"
	"formforge-backend/src/config"
	"formforge-backend/src/database"
	"formforge-backend/src/routes"
	"formforge-backend/src/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	err = database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	app := fiber.New()

	// Credentialed cookies require a concrete origin, not a wildcard.
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	tokens := utils.NewTokenService(cfg.JWTSecret)
	routes.InitRoutes(app, tokens)

	log.Println("Server is running on port " + cfg.Port)
	err = app.Listen(":" + cfg.Port)
	if err != nil {
		log.Fatal(err)
	}

}
