// Package repository contains the GORM data access layer.
package repository

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// ListFilter carries the browse/search parameters for the public article list.
type ListFilter struct {
	Query  string
	Tags   []string
	Author string
	SortBy string
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	List(ctx context.Context, filter ListFilter) ([]models.Article, error)
	Trending(ctx context.Context, now time.Time) ([]models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	GetByID(ctx context.Context, id uint) (*models.Article, error)
	GetByIDForAuthor(ctx context.Context, id uint, authorID string) (*models.Article, error)
	Create(ctx context.Context, article *models.Article) error
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	IncrementViews(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, articleID uint, userID string) (bool, error)
	ListForModeration(ctx context.Context) ([]models.Article, error)
	SetStatus(ctx context.Context, id uint, status models.ArticleStatus, adminNotes string) error
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

const publicListLimit = 50
const trendingLimit = 10
const trendingWindow = 7 * 24 * time.Hour

func (r *articleRepository) List(ctx context.Context, filter ListFilter) ([]models.Article, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Article{}).
		Select("articles.*").
		Where("articles.status = ?", models.StatusPublished)

	if filter.Query != "" {
		// LOWER() LIKE keeps the filter case-insensitive on both postgres
		// and the sqlite test driver.
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		q = q.Where(
			"(LOWER(articles.title) LIKE ? OR LOWER(articles.content) LIKE ? OR LOWER(articles.excerpt) LIKE ?)",
			pattern, pattern, pattern,
		)
	}

	if filter.Author != "" {
		q = q.Joins("LEFT JOIN user_profiles ON user_profiles.external_id = articles.author_id").
			Where("user_profiles.username = ?", filter.Author)
	}

	if len(filter.Tags) > 0 {
		tags := make([]string, 0, len(filter.Tags))
		for _, t := range filter.Tags {
			tags = append(tags, strings.ToLower(strings.TrimSpace(t)))
		}
		// AND semantics: an article qualifies only when it carries every
		// requested tag.
		q = q.Joins("JOIN article_tags ON article_tags.article_id = articles.id").
			Where("article_tags.tag_name IN ?", tags).
			Group("articles.id").
			Having("COUNT(DISTINCT article_tags.tag_name) = ?", len(tags))
	}

	switch filter.SortBy {
	case "oldest":
		q = q.Order("articles.published_at ASC")
	case "popular":
		q = q.Order("articles.likes_count DESC, articles.views_count DESC")
	case "trending":
		q = q.Order("(articles.likes_count + articles.comments_count) DESC, articles.published_at DESC")
	default: // latest
		q = q.Order("articles.published_at DESC")
	}

	var articles []models.Article
	err := q.Limit(publicListLimit).
		Preload("Author").
		Preload("TagRows").
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) Trending(ctx context.Context, now time.Time) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("status = ? AND published_at > ?", models.StatusPublished, now.Add(-trendingWindow)).
		Order("(likes_count * 2 + comments_count + views_count * 0.1) DESC").
		Limit(trendingLimit).
		Preload("Author").
		Preload("TagRows").
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).
		Where("slug = ? AND status = ?", slug, models.StatusPublished).
		Preload("Author").
		Preload("TagRows").
		First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetByIDForAuthor(ctx context.Context, id uint, authorID string) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		Preload("TagRows").
		First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *articleRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *articleRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

// ToggleLike flips the caller's like on an article. Both the ledger row and
// the denormalized counter move in the same transaction.
func (r *articleRepository) ToggleLike(ctx context.Context, articleID uint, userID string) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ArticleLike
		err := tx.Where("article_id = ? AND user_id = ?", articleID, userID).
			First(&existing).Error

		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Article{}).
				Where("id = ?", articleID).
				UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error; err != nil {
				return err
			}
			liked = false
			return nil
		case err == gorm.ErrRecordNotFound:
			like := models.ArticleLike{ArticleID: articleID, UserID: userID}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Article{}).
				Where("id = ?", articleID).
				UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error; err != nil {
				return err
			}
			liked = true
			return nil
		default:
			return err
		}
	})
	return liked, err
}

func (r *articleRepository) ListForModeration(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.WithContext(ctx).
		Where("status IN ?", []models.ArticleStatus{
			models.StatusPending,
			models.StatusPublished,
			models.StatusHidden,
		}).
		Order("created_at DESC").
		Preload("Author").
		Find(&articles).Error
	return articles, err
}

// SetStatus writes the moderation decision. PublishedAt is stamped only on
// the first transition to published and survives later hide/restore cycles.
func (r *articleRepository) SetStatus(ctx context.Context, id uint, status models.ArticleStatus, adminNotes string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.First(&article, id).Error; err != nil {
			return err
		}

		fields := map[string]any{
			"status":      status,
			"admin_notes": adminNotes,
		}
		if status == models.StatusPublished && article.PublishedAt == nil {
			fields["published_at"] = time.Now()
		}

		return tx.Model(&models.Article{}).
			Where("id = ?", id).
			Updates(fields).Error
	})
}
