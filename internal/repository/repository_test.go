package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.UserProfile{},
		&models.Article{},
		&models.ArticleTag{},
		&models.ArticleLike{},
		&models.Comment{},
	)
	if err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func TestReplaceForArticleDedupAndIdempotent(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	article := models.Article{Title: "t", Slug: "t-1", Content: "c", AuthorID: "a"}
	require.NoError(t, db.Create(&article).Error)

	require.NoError(t, repo.ReplaceForArticle(ctx, article.ID, []string{"Go", "go", " GO ", "web", ""}))
	tags, err := repo.ForArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"go", "web"}, tags)

	// Replaying the same input changes nothing.
	require.NoError(t, repo.ReplaceForArticle(ctx, article.ID, []string{"go", "web"}))
	tags, err = repo.ForArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"go", "web"}, tags)

	// An empty list wipes the set.
	require.NoError(t, repo.ReplaceForArticle(ctx, article.ID, nil))
	tags, err = repo.ForArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestEnsureProfileBootstrapsSingleAdmin(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	first, err := repo.EnsureProfile(ctx, "ext-1", "ada", "")
	require.NoError(t, err)
	assert.True(t, first.IsAdmin)

	second, err := repo.EnsureProfile(ctx, "ext-2", "grace", "")
	require.NoError(t, err)
	assert.False(t, second.IsAdmin)

	// Re-ensuring returns the existing row untouched.
	again, err := repo.EnsureProfile(ctx, "ext-1", "different-name", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "ada", again.Username)

	var admins int64
	require.NoError(t, db.Model(&models.UserProfile{}).
		Where("is_admin = ?", true).Count(&admins).Error)
	assert.Equal(t, int64(1), admins)
}

func TestToggleLikeIndependentPerUser(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	article := models.Article{Title: "t", Slug: "liked-1", Content: "c", AuthorID: "a", Status: models.StatusPublished}
	require.NoError(t, db.Create(&article).Error)

	// Distinct users each hold an independent like.
	for i := 0; i < 5; i++ {
		liked, err := repo.ToggleLike(ctx, article.ID, fmt.Sprintf("user-%d", i))
		require.NoError(t, err)
		assert.True(t, liked)
	}

	var reloaded models.Article
	require.NoError(t, db.First(&reloaded, article.ID).Error)
	assert.Equal(t, 5, reloaded.LikesCount)

	// One user retracting leaves the others in place.
	liked, err := repo.ToggleLike(ctx, article.ID, "user-0")
	require.NoError(t, err)
	assert.False(t, liked)

	require.NoError(t, db.First(&reloaded, article.ID).Error)
	assert.Equal(t, 4, reloaded.LikesCount)
}

func TestListCapsAtFiftyRows(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	now := time.Now()
	for i := 0; i < 60; i++ {
		ts := now.Add(-time.Duration(i) * time.Minute)
		article := models.Article{
			Title:       fmt.Sprintf("a %d", i),
			Slug:        fmt.Sprintf("cap-%d", i),
			Content:     "c",
			AuthorID:    "a",
			Status:      models.StatusPublished,
			PublishedAt: &ts,
		}
		require.NoError(t, db.Create(&article).Error)
	}

	articles, err := repo.List(ctx, ListFilter{SortBy: "latest"})
	require.NoError(t, err)
	assert.Len(t, articles, 50)
	assert.Equal(t, "cap-0", articles[0].Slug, "latest sorts published_at DESC")
}

func TestTrendingLimitAndWindow(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	now := time.Now()
	recent := now.Add(-24 * time.Hour)
	stale := now.Add(-8 * 24 * time.Hour)
	for i := 0; i < 12; i++ {
		ts := recent
		article := models.Article{
			Title:       fmt.Sprintf("t %d", i),
			Slug:        fmt.Sprintf("trend-%d", i),
			Content:     "c",
			AuthorID:    "a",
			Status:      models.StatusPublished,
			PublishedAt: &ts,
			LikesCount:  i,
		}
		require.NoError(t, db.Create(&article).Error)
	}
	hot := models.Article{
		Title: "old but hot", Slug: "old-hot", Content: "c", AuthorID: "a",
		Status: models.StatusPublished, PublishedAt: &stale, LikesCount: 9000,
	}
	require.NoError(t, db.Create(&hot).Error)

	articles, err := repo.Trending(ctx, now)
	require.NoError(t, err)
	require.Len(t, articles, 10)
	assert.Equal(t, "trend-11", articles[0].Slug)
	for _, a := range articles {
		assert.NotEqual(t, "old-hot", a.Slug)
	}
}
