package server

import (
	"time"

	"tastebook/internal/models"
	"tastebook/internal/service"
	"tastebook/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Register handles POST /api/auth/register. A successful registration logs
// the new user in and lands on the timeline.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Register(c.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return respondError(c, err)
	}

	return s.startSession(c, user, fiber.StatusCreated)
}

// Login handles POST /api/auth/login.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return s.startSession(c, user, fiber.StatusOK)
}

// Logout handles POST /api/auth/logout: back to the auth page, session
// identifiers cleared.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.session.Logout()
	s.screen.Refresh()
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) startSession(c *fiber.Ctx, user *models.User, status int) error {
	token, err := s.generateToken(user)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	s.session.Login(user.ID)
	if err := s.session.Navigate(session.PageTimeline); err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	s.screen.Refresh()

	return c.Status(status).JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.DisplayName(),
		},
	})
}

func (s *Server) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
