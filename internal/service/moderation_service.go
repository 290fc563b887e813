package service

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

// ModerationService backs the admin review queue and status decisions.
type ModerationService struct {
	articleRepo repository.ArticleRepository
}

type SetStatusInput struct {
	ArticleID  uint
	Status     string
	AdminNotes string
}

// NewModerationService returns a new ModerationService.
func NewModerationService(articleRepo repository.ArticleRepository) *ModerationService {
	return &ModerationService{articleRepo: articleRepo}
}

// Queue lists pending, published, and hidden articles, newest first.
// Drafts stay private to their authors and rejected articles leave the queue.
func (s *ModerationService) Queue(ctx context.Context) ([]models.Article, error) {
	return s.articleRepo.ListForModeration(ctx)
}

// SetStatus records a moderation decision. Any of the five statuses is an
// accepted target; the transition graph is deliberately unconstrained so
// admins can always repair a bad state.
func (s *ModerationService) SetStatus(ctx context.Context, in SetStatusInput) error {
	status := models.ArticleStatus(in.Status)
	if !models.ValidStatus(status) {
		return models.NewValidationError("Invalid status value")
	}

	article, err := s.articleRepo.GetByID(ctx, in.ArticleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Article", in.ArticleID)
		}
		return err
	}

	if err := s.articleRepo.SetStatus(ctx, in.ArticleID, status, in.AdminNotes); err != nil {
		return err
	}

	middleware.ModerationDecisions.WithLabelValues(in.Status).Inc()
	cache.InvalidateArticle(ctx, article.Slug)
	cache.InvalidateTrending(ctx)
	return nil
}
