package server

import (
	"time"

	"kindling/internal/models"
	"kindling/internal/service"

	"github.com/gofiber/fiber/v2"
)

// setSessionCookie attaches the opaque session token to the response. The
// cookie is HttpOnly so the SPA never touches the token directly.
func (s *Server) setSessionCookie(c *fiber.Ctx, session *models.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    session.ID,
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// Signup handles POST /auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, session, err := s.authService.Signup(c.UserContext(), service.SignupInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	s.setSessionCookie(c, session)
	return models.Respond(c, fiber.StatusCreated, "Signup successful", user)
}

// Login handles POST /auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, session, err := s.authService.Login(c.UserContext(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	s.setSessionCookie(c, session)
	return models.Respond(c, fiber.StatusOK, "Login successful", user)
}

// Logout handles POST /auth/logout
func (s *Server) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(SessionCookieName); token != "" {
		if err := s.authService.Logout(c.UserContext(), token); err != nil {
			return respondAppError(c, err)
		}
	}

	s.clearSessionCookie(c)
	return models.Respond(c, fiber.StatusOK, "Logout successful", nil)
}

// Me handles GET /auth/me
func (s *Server) Me(c *fiber.Ctx) error {
	user, ok := s.identity(c).User()
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}
	return models.Respond(c, fiber.StatusOK, "Current user", user)
}
