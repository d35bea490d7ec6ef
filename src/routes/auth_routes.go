package routes

import (
	"formforge-backend/src/controllers"
	"formforge-backend/src/middleware"
	"formforge-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

// authRoutes wires login/register/logout plus the gated session lookup.
func authRoutes(app *fiber.App, tokens *utils.TokenService) {
	ac := controllers.NewAuthController(tokens)

	auth := app.Group("/auth")

	auth.Post("/register", ac.Register)
	auth.Post("/login", ac.Login)
	auth.Post("/logout", ac.Logout)
	auth.Get("/getUser", middleware.AuthRequired(tokens), ac.GetUser)
}
