package routes

import (
	"formforge-backend/src/controllers"
	"formforge-backend/src/middleware"
	"formforge-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

// formRoutes wires form management behind the auth gate. The two share-link
// endpoints stay public so anyone holding the link can render and submit.
func formRoutes(app *fiber.App, tokens *utils.TokenService) {
	fc := controllers.NewFormController()
	authRequired := middleware.AuthRequired(tokens)

	forms := app.Group("/api/forms")

	// public, keyed by share link
	forms.Post("/content", fc.GetFormContent)
	forms.Post("/submit", fc.SubmitForm)

	// /stats before /:id so it is not swallowed by the param route
	forms.Get("/stats", authRequired, fc.GetFormStats)
	forms.Post("/create", authRequired, fc.CreateForm)
	forms.Get("/", authRequired, fc.GetForms)
	forms.Get("/:id", authRequired, fc.GetFormByID)
	forms.Put("/:id/content", authRequired, fc.UpdateFormContent)
	forms.Put("/:id/publish", authRequired, fc.PublishForm)
	forms.Get("/:id/submissions", authRequired, fc.GetFormSubmissions)
	forms.Delete("/:id", authRequired, fc.DeleteForm)
	forms.Put("/:id/delete-element", authRequired, fc.DeleteFormElement)
}
