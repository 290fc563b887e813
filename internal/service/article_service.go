// Package service contains the business logic between handlers and repositories.
package service

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"gorm.io/gorm"
)

// ArticleService handles authoring: create, update, edit fetch, and likes.
type ArticleService struct {
	articleRepo repository.ArticleRepository
	tagRepo     repository.TagRepository
}

type CreateArticleInput struct {
	AuthorID      string
	Title         string
	Content       string
	Excerpt       string
	CoverImageURL string
	Tags          []string
}

type UpdateArticleInput struct {
	AuthorID      string
	ArticleID     uint
	Title         *string
	Content       *string
	Excerpt       *string
	CoverImageURL *string
	Tags          []string
	TagsProvided  bool
}

// NewArticleService returns a new ArticleService.
func NewArticleService(articleRepo repository.ArticleRepository, tagRepo repository.TagRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo, tagRepo: tagRepo}
}

// CreateArticle validates the submission and stores it as pending review.
func (s *ArticleService) CreateArticle(ctx context.Context, in CreateArticleInput) (*models.Article, error) {
	if err := validation.ValidateTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateExcerpt(in.Excerpt); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateURL(in.CoverImageURL); err != nil {
		return nil, models.NewValidationError("cover image: " + err.Error())
	}
	if err := validation.ValidateTags(in.Tags); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	article := &models.Article{
		Title:         in.Title,
		Slug:          validation.Slugify(in.Title, time.Now()),
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		CoverImageURL: in.CoverImageURL,
		AuthorID:      in.AuthorID,
		Status:        models.StatusPending,
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	if len(in.Tags) > 0 {
		if err := s.tagRepo.ReplaceForArticle(ctx, article.ID, in.Tags); err != nil {
			return nil, err
		}
	}
	return article, nil
}

// UpdateArticle applies a partial update to the caller's own article.
// A missing article and someone else's article are indistinguishable to the
// caller: both come back NOT_FOUND.
func (s *ArticleService) UpdateArticle(ctx context.Context, in UpdateArticleInput) error {
	if _, err := s.articleRepo.GetByIDForAuthor(ctx, in.ArticleID, in.AuthorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Article", in.ArticleID)
		}
		return err
	}

	fields := map[string]any{}
	if in.Title != nil {
		if err := validation.ValidateTitle(*in.Title); err != nil {
			return models.NewValidationError(err.Error())
		}
		fields["title"] = *in.Title
	}
	if in.Content != nil {
		if err := validation.ValidateContent(*in.Content); err != nil {
			return models.NewValidationError(err.Error())
		}
		fields["content"] = *in.Content
	}
	if in.Excerpt != nil {
		if err := validation.ValidateExcerpt(*in.Excerpt); err != nil {
			return models.NewValidationError(err.Error())
		}
		fields["excerpt"] = *in.Excerpt
	}
	if in.CoverImageURL != nil {
		if err := validation.ValidateURL(*in.CoverImageURL); err != nil {
			return models.NewValidationError("cover image: " + err.Error())
		}
		fields["cover_image_url"] = *in.CoverImageURL
	}

	if err := s.articleRepo.UpdateFields(ctx, in.ArticleID, fields); err != nil {
		return err
	}

	// Slug is immutable, so the cache key survives edits and must be dropped.
	if article, err := s.articleRepo.GetByID(ctx, in.ArticleID); err == nil {
		cache.InvalidateArticle(ctx, article.Slug)
	}

	if in.TagsProvided {
		if err := validation.ValidateTags(in.Tags); err != nil {
			return models.NewValidationError(err.Error())
		}
		if err := s.tagRepo.ReplaceForArticle(ctx, in.ArticleID, in.Tags); err != nil {
			return err
		}
	}
	return nil
}

// GetForEdit returns the raw article, tags included, for its author only.
func (s *ArticleService) GetForEdit(ctx context.Context, articleID uint, authorID string) (*models.Article, error) {
	article, err := s.articleRepo.GetByIDForAuthor(ctx, articleID, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Article", articleID)
		}
		return nil, err
	}
	article.FlattenTags()
	return article, nil
}

// GetBySlug returns a published article and registers the view. The returned
// body carries the count from before this request's increment.
func (s *ArticleService) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Article", slug)
		}
		return nil, err
	}

	if err := s.articleRepo.IncrementViews(ctx, article.ID); err != nil {
		return nil, err
	}
	middleware.ArticleViews.Inc()

	article.FlattenTags()
	return article, nil
}

// ToggleLike flips the caller's like and reports the resulting state.
func (s *ArticleService) ToggleLike(ctx context.Context, articleID uint, userID string) (bool, error) {
	if _, err := s.articleRepo.GetByID(ctx, articleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, models.NewNotFoundError("Article", articleID)
		}
		return false, err
	}

	liked, err := s.articleRepo.ToggleLike(ctx, articleID, userID)
	if err != nil {
		return false, err
	}
	if liked {
		middleware.LikeToggles.WithLabelValues("liked").Inc()
	} else {
		middleware.LikeToggles.WithLabelValues("unliked").Inc()
	}
	return liked, nil
}
