package repository

import (
	"context"
	"strings"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	ReplaceForArticle(ctx context.Context, articleID uint, tags []string) error
	ForArticle(ctx context.Context, articleID uint) ([]string, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// ReplaceForArticle swaps an article's tag set wholesale. Input is lowercased
// and de-duplicated; delete and reinsert happen in one transaction.
func (r *tagRepository) ReplaceForArticle(ctx context.Context, articleID uint, tags []string) error {
	seen := make(map[string]struct{}, len(tags))
	rows := make([]models.ArticleTag, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		rows = append(rows, models.ArticleTag{ArticleID: articleID, TagName: t})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", articleID).
			Delete(&models.ArticleTag{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func (r *tagRepository) ForArticle(ctx context.Context, articleID uint) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.ArticleTag{}).
		Where("article_id = ?", articleID).
		Pluck("tag_name", &names).Error
	return names, err
}
