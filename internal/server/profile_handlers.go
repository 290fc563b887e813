package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMe handles GET /api/users/me. The profile row is created lazily on the
// first authenticated call; the first profile ever created becomes admin.
func (s *Server) GetMe(c *fiber.Ctx) error {
	user := s.currentUser(c)
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication required"))
	}

	profile, err := s.profileService.Me(c.UserContext(), user)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"id":         user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"avatar_url": user.AvatarURL,
		"profile":    profile,
	})
}

// UpdateProfile handles PUT /api/profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var req struct {
		Username  *string `json:"username"`
		Bio       *string `json:"bio"`
		AvatarURL *string `json:"avatar_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	err := s.profileService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		ExternalID: userID,
		Username:   req.Username,
		Bio:        req.Bio,
		AvatarURL:  req.AvatarURL,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
