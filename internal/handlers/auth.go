package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/tavola/internal/config"
	"github.com/example/tavola/internal/forms"
	"github.com/example/tavola/internal/middleware"
	"github.com/example/tavola/internal/repository"
	"github.com/example/tavola/internal/services"
	"github.com/example/tavola/internal/utils"
)

// AuthHandler bundles dependencies for back-office authentication.
type AuthHandler struct {
	users   repository.UserRepository
	monitor *services.SecurityMonitor
	cfg     *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(users repository.UserRepository, monitor *services.SecurityMonitor, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, monitor: monitor, cfg: cfg}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an admin account and issues a JWT. Every attempt,
// successful or not, lands in the security_events log.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	email := forms.SanitizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing credentials")
	}

	user, err := h.users.GetByEmail(c.UserContext(), email)
	if err != nil {
		return err
	}
	if user == nil || !utils.CheckPassword(user.PasswordHash, req.Password) {
		h.monitor.LoginFailed(c.UserContext(), email, c.IP())
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	h.monitor.LoginSuccess(c.UserContext(), email, c.IP())

	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":           user.ID,
			"email":        user.Email,
			"display_name": user.DisplayName,
		},
		"token": token,
	})
}

// Logout records a logout event for the authenticated user. The token itself
// stays valid until expiry; the client discards it.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "not authenticated")
	}

	user, err := h.users.GetByID(c.UserContext(), userID)
	if err != nil {
		return err
	}
	if user != nil {
		h.monitor.Logout(c.UserContext(), user.Email, c.IP())
	}

	return c.JSON(fiber.Map{"success": true})
}
