// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

var tagPool = []string{
	"golang", "databases", "writing", "travel", "productivity",
	"opinion", "tutorial", "review", "design", "career",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateProfile persists a sample user profile. Optional override functions
// may modify the generated profile before saving.
func (f *Factory) CreateProfile(overrides ...func(*models.UserProfile)) (*models.UserProfile, error) {
	profile := &models.UserProfile{
		ExternalID: "seed-" + gofakeit.UUID(),
		Username:   gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Bio:        gofakeit.Sentence(10),
		AvatarURL:  fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(profile)
	}
	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// CreateArticle persists a sample article for the given author. Most seeded
// articles are published with a created/published time spread over the last
// 90 days so sorting and trending have something to chew on.
func (f *Factory) CreateArticle(author *models.UserProfile, overrides ...func(*models.Article)) (*models.Article, error) {
	title := strings.TrimSuffix(gofakeit.Sentence(f.rng.Intn(6)+3), ".")
	createdAt := time.Now().Add(-time.Duration(f.rng.Intn(90*24)) * time.Hour)

	article := &models.Article{
		Title:         title,
		Slug:          validation.Slugify(title, createdAt),
		Content:       gofakeit.Paragraph(4, 6, 12, "\n\n"),
		Excerpt:       gofakeit.Sentence(15),
		CoverImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID()),
		AuthorID:      author.ExternalID,
		Status:        models.StatusPublished,
		ViewsCount:    f.rng.Intn(2000),
	}
	article.CreatedAt = createdAt
	publishedAt := createdAt.Add(time.Duration(f.rng.Intn(48)) * time.Hour)
	article.PublishedAt = &publishedAt

	for _, override := range overrides {
		override(article)
	}
	if article.Status != models.StatusPublished {
		article.PublishedAt = nil
	}

	if err := f.db.Create(article).Error; err != nil {
		return nil, err
	}

	tags := f.pickTags()
	for _, tag := range tags {
		row := models.ArticleTag{ArticleID: article.ID, TagName: tag}
		if err := f.db.Create(&row).Error; err != nil {
			return nil, err
		}
	}
	return article, nil
}

// LikeArticle records a like from the profile and bumps the counter.
func (f *Factory) LikeArticle(article *models.Article, liker *models.UserProfile) error {
	like := models.ArticleLike{ArticleID: article.ID, UserID: liker.ExternalID}
	if err := f.db.Create(&like).Error; err != nil {
		return err
	}
	return f.db.Model(&models.Article{}).
		Where("id = ?", article.ID).
		UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
}

func (f *Factory) pickTags() []string {
	n := f.rng.Intn(4)
	picked := make(map[string]struct{}, n)
	for len(picked) < n {
		picked[tagPool[f.rng.Intn(len(tagPool))]] = struct{}{}
	}
	tags := make([]string, 0, n)
	for t := range picked {
		tags = append(tags, t)
	}
	return tags
}
