package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"formforge-backend/src/models"
	userSvc "formforge-backend/src/services/users"
	"formforge-backend/src/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserService is the slice of the users service the controller depends on.
// Production wiring uses userSvc.Service; tests substitute a mock.
type UserService interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
}

// AuthController handles registration, login, logout and session lookup.
// The token service comes in through the constructor so the signing secret
// never lives in package state.
type AuthController struct {
	tokens   *utils.TokenService
	users    UserService
	validate *validator.Validate
}

func NewAuthController(tokens *utils.TokenService) *AuthController {
	return NewAuthControllerWith(tokens, userSvc.Service{})
}

func NewAuthControllerWith(tokens *utils.TokenService, users UserService) *AuthController {
	return &AuthController{
		tokens:   tokens,
		users:    users,
		validate: validator.New(),
	}
}

// Fields are required-but-otherwise-opaque: a filled email of any shape
// proceeds to the duplicate check rather than failing as missing.
type registerRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request format",
			"success": false,
		})
	}

	if err := ac.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please fill all fields",
			"success": false,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := ac.users.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, userSvc.ErrUserExists) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "User already exists",
				"success": false,
			})
		}
		log.Printf("Error registering user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
			"success": false,
		})
	}

	token, err := ac.tokens.Generate(user.ID.Hex(), user.Email)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
			"success": false,
		})
	}

	ac.setSessionCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"data":    user,
		"token":   token,
		"success": true,
	})
}

// Login godoc
// @Summary      Log a user in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request format",
			"success": false,
		})
	}

	if err := ac.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please fill all fields",
			"success": false,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := ac.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, userSvc.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
				"success": false,
			})
		case errors.Is(err, userSvc.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid credentials",
				"success": false,
			})
		default:
			log.Printf("Error logging in user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal server error",
				"success": false,
			})
		}
	}

	token, err := ac.tokens.Generate(user.ID.Hex(), user.Email)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
			"success": false,
		})
	}

	// Dual delivery: the cookie carries the session, the body returns the
	// token for clients that keep it themselves.
	ac.setSessionCookie(c, token)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User logged in successfully",
		"data":    user,
		"token":   token,
		"success": true,
	})
}

// Logout clears the session cookie. Idempotent: succeeds whether or not a
// session existed.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User logged out successfully",
	})
}

// GetUser returns the authenticated user's record. Runs behind the auth
// gate, so Locals always carries a userId here.
func (ac *AuthController) GetUser(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(string)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := ac.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userSvc.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
				"success": false,
			})
		}
		log.Printf("Error fetching user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
			"success": false,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    user,
		"success": true,
	})
}

func (ac *AuthController) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(utils.SessionTTL),
		MaxAge:   int(utils.SessionTTL.Seconds()),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
