package middleware

import (
	"errors"

	"formforge-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired gates a route on the session cookie. Three terminal outcomes:
// no cookie or a bad token rejects 401, an unexpected verification failure
// rejects 500, a valid token puts userId/email into Locals and continues.
func AuthRequired(tokens *utils.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies("token")
		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "User unauthorized",
				"success": false,
			})
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			if errors.Is(err, utils.ErrInvalidToken) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Invalid token",
					"success": false,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal server error",
				"success": false,
			})
		}

		c.Locals("userId", claims.UserID)
		c.Locals("email", claims.Email)

		return c.Next()
	}
}
