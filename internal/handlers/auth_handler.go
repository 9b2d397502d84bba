package handlers

import (
	"shopapi/internal/middleware"
	"shopapi/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the authentication routes. authRequired guards
// the routes that act on the current token.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	router.Post("/register", h.HandleRegister)
	router.Post("/login", h.HandleLogin)
	router.Post("/logout", authRequired, h.HandleLogout)
	router.Get("/user", authRequired, h.HandleCurrentUser)
}

// HandleRegister creates an account and returns it with a fresh token.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	fields, err := readFields(c, "name", "email", "password", "password_confirmation")
	if err != nil {
		return err
	}

	result, err := h.authService.Register(c.UserContext(), services.RegisterInput{
		Name:                 fields["name"],
		Email:                fields["email"],
		Password:             fields["password"],
		PasswordConfirmation: fields["password_confirmation"],
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// HandleLogin exchanges credentials for a new token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	fields, err := readFields(c, "email", "password")
	if err != nil {
		return err
	}

	result, err := h.authService.Login(c.UserContext(), services.LoginInput{
		Email:    fields["email"],
		Password: fields["password"],
	})
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// HandleLogout revokes the token the request was authenticated with.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), middleware.PrincipalFrom(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// HandleCurrentUser returns the authenticated user.
func (h *AuthHandler) HandleCurrentUser(c *fiber.Ctx) error {
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		return services.ErrUnauthenticated
	}
	return c.JSON(principal.User)
}
