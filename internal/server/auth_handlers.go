package server

import (
	"time"

	"inkwell/internal/identity"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetOAuthRedirectURL handles GET /api/oauth/google/redirect_url
func (s *Server) GetOAuthRedirectURL(c *fiber.Ctx) error {
	redirectURL, err := s.identityClient.GetOAuthRedirectURL(c.UserContext(), "google")
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"redirect_url": redirectURL})
}

// CreateSession handles POST /api/sessions. It exchanges the OAuth
// authorization code for a session token and sets it as an HttpOnly cookie.
func (s *Server) CreateSession(c *fiber.Ctx) error {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No authorization code provided"))
	}

	token, err := s.identityClient.ExchangeCodeForSessionToken(c.UserContext(), req.Code)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     identity.SessionCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
		MaxAge:   int(identity.SessionCookieMaxAge.Seconds()),
	})

	return c.JSON(fiber.Map{"success": true})
}

// Logout handles GET /api/logout. The session is revoked at the identity
// service best-effort and the cookie is always cleared.
func (s *Server) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(identity.SessionCookieName); token != "" {
		_ = s.identityClient.DeleteSession(c.UserContext(), token)
	}

	c.Cookie(&fiber.Cookie{
		Name:     identity.SessionCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
		Expires:  time.Unix(0, 0),
	})

	return c.JSON(fiber.Map{"success": true})
}
