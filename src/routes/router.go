package routes

import (
	"formforge-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

func InitRoutes(app *fiber.App, tokens *utils.TokenService) {
	authRoutes(app, tokens)
	formRoutes(app, tokens)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API is running...")
	})
}
