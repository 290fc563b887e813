package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetArticles handles GET /api/articles
func (s *Server) GetArticles(c *fiber.Ctx) error {
	var tags []string
	for _, raw := range c.Context().QueryArgs().PeekMulti("tags") {
		if len(raw) > 0 {
			tags = append(tags, string(raw))
		}
	}

	articles, err := s.feedService.ListArticles(c.UserContext(), service.ListArticlesInput{
		Query:  c.Query("query"),
		Tags:   tags,
		Author: c.Query("author"),
		SortBy: c.Query("sortBy"),
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(articles)
}

// GetTrendingArticles handles GET /api/articles/trending
func (s *Server) GetTrendingArticles(c *fiber.Ctx) error {
	articles, err := s.feedService.Trending(c.UserContext())
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(articles)
}

// GetArticleBySlug handles GET /api/articles/:slug
func (s *Server) GetArticleBySlug(c *fiber.Ctx) error {
	article, err := s.articleService.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(article)
}

// CreateArticle handles POST /api/articles
func (s *Server) CreateArticle(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var req struct {
		Title         string   `json:"title"`
		Content       string   `json:"content"`
		Excerpt       string   `json:"excerpt"`
		CoverImageURL string   `json:"cover_image_url"`
		Tags          []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	article, err := s.articleService.CreateArticle(c.UserContext(), service.CreateArticleInput{
		AuthorID:      userID,
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		CoverImageURL: req.CoverImageURL,
		Tags:          req.Tags,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":   article.ID,
		"slug": article.Slug,
	})
}

// UpdateArticle handles PUT /api/articles/:id
func (s *Server) UpdateArticle(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title         *string   `json:"title"`
		Content       *string   `json:"content"`
		Excerpt       *string   `json:"excerpt"`
		CoverImageURL *string   `json:"cover_image_url"`
		Tags          *[]string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateArticleInput{
		AuthorID:      userID,
		ArticleID:     id,
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		CoverImageURL: req.CoverImageURL,
	}
	if req.Tags != nil {
		in.Tags = *req.Tags
		in.TagsProvided = true
	}

	if err := s.articleService.UpdateArticle(c.UserContext(), in); err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetArticleForEdit handles GET /api/articles/:id/edit
func (s *Server) GetArticleForEdit(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	article, err := s.articleService.GetForEdit(c.UserContext(), id, userID)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(article)
}

// ToggleLike handles POST /api/articles/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, err := s.articleService.ToggleLike(c.UserContext(), id, userID)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}
