package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetModerationQueue handles GET /api/admin/articles
func (s *Server) GetModerationQueue(c *fiber.Ctx) error {
	articles, err := s.moderationService.Queue(c.UserContext())
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(articles)
}

// SetArticleStatus handles PUT /api/admin/articles/:id/status
func (s *Server) SetArticleStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status     string `json:"status"`
		AdminNotes string `json:"admin_notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	err = s.moderationService.SetStatus(c.UserContext(), service.SetStatusInput{
		ArticleID:  id,
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
