package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubArticleRepo implements repository.ArticleRepository with overridable
// function fields. Unset methods fail the test if reached.
type stubArticleRepo struct {
	t             *testing.T
	listFn        func(context.Context, repository.ListFilter) ([]models.Article, error)
	trendingFn    func(context.Context, time.Time) ([]models.Article, error)
	getBySlugFn   func(context.Context, string) (*models.Article, error)
	getByIDFn     func(context.Context, uint) (*models.Article, error)
	getForAuthor  func(context.Context, uint, string) (*models.Article, error)
	createFn      func(context.Context, *models.Article) error
	updateFn      func(context.Context, uint, map[string]any) error
	incViewsFn    func(context.Context, uint) error
	toggleLikeFn  func(context.Context, uint, string) (bool, error)
	moderationFn  func(context.Context) ([]models.Article, error)
	setStatusFn   func(context.Context, uint, models.ArticleStatus, string) error
}

func (s *stubArticleRepo) List(ctx context.Context, f repository.ListFilter) ([]models.Article, error) {
	if s.listFn == nil {
		s.t.Fatal("unexpected List call")
	}
	return s.listFn(ctx, f)
}

func (s *stubArticleRepo) Trending(ctx context.Context, now time.Time) ([]models.Article, error) {
	if s.trendingFn == nil {
		s.t.Fatal("unexpected Trending call")
	}
	return s.trendingFn(ctx, now)
}

func (s *stubArticleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	if s.getBySlugFn == nil {
		s.t.Fatal("unexpected GetBySlug call")
	}
	return s.getBySlugFn(ctx, slug)
}

func (s *stubArticleRepo) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	if s.getByIDFn == nil {
		s.t.Fatal("unexpected GetByID call")
	}
	return s.getByIDFn(ctx, id)
}

func (s *stubArticleRepo) GetByIDForAuthor(ctx context.Context, id uint, authorID string) (*models.Article, error) {
	if s.getForAuthor == nil {
		s.t.Fatal("unexpected GetByIDForAuthor call")
	}
	return s.getForAuthor(ctx, id, authorID)
}

func (s *stubArticleRepo) Create(ctx context.Context, a *models.Article) error {
	if s.createFn == nil {
		s.t.Fatal("unexpected Create call")
	}
	return s.createFn(ctx, a)
}

func (s *stubArticleRepo) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if s.updateFn == nil {
		s.t.Fatal("unexpected UpdateFields call")
	}
	return s.updateFn(ctx, id, fields)
}

func (s *stubArticleRepo) IncrementViews(ctx context.Context, id uint) error {
	if s.incViewsFn == nil {
		s.t.Fatal("unexpected IncrementViews call")
	}
	return s.incViewsFn(ctx, id)
}

func (s *stubArticleRepo) ToggleLike(ctx context.Context, id uint, userID string) (bool, error) {
	if s.toggleLikeFn == nil {
		s.t.Fatal("unexpected ToggleLike call")
	}
	return s.toggleLikeFn(ctx, id, userID)
}

func (s *stubArticleRepo) ListForModeration(ctx context.Context) ([]models.Article, error) {
	if s.moderationFn == nil {
		s.t.Fatal("unexpected ListForModeration call")
	}
	return s.moderationFn(ctx)
}

func (s *stubArticleRepo) SetStatus(ctx context.Context, id uint, status models.ArticleStatus, notes string) error {
	if s.setStatusFn == nil {
		s.t.Fatal("unexpected SetStatus call")
	}
	return s.setStatusFn(ctx, id, status, notes)
}

type stubTagRepo struct {
	replaced map[uint][]string
}

func (s *stubTagRepo) ReplaceForArticle(_ context.Context, articleID uint, tags []string) error {
	if s.replaced == nil {
		s.replaced = map[uint][]string{}
	}
	s.replaced[articleID] = tags
	return nil
}

func (s *stubTagRepo) ForArticle(context.Context, uint) ([]string, error) {
	return nil, nil
}

func TestCreateArticleValidatesBeforeTouchingRepo(t *testing.T) {
	t.Parallel()
	repo := &stubArticleRepo{t: t}
	svc := NewArticleService(repo, &stubTagRepo{})

	cases := []CreateArticleInput{
		{AuthorID: "a", Title: "", Content: "x"},
		{AuthorID: "a", Title: strings.Repeat("x", 201), Content: "x"},
		{AuthorID: "a", Title: "ok", Content: ""},
		{AuthorID: "a", Title: "ok", Content: "x", Excerpt: strings.Repeat("e", 501)},
		{AuthorID: "a", Title: "ok", Content: "x", CoverImageURL: "nope"},
	}
	for _, in := range cases {
		_, err := svc.CreateArticle(context.Background(), in)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr, "input %+v", in)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	}
}

func TestCreateArticleSetsSlugAndPending(t *testing.T) {
	t.Parallel()
	var created *models.Article
	repo := &stubArticleRepo{
		t: t,
		createFn: func(_ context.Context, a *models.Article) error {
			a.ID = 7
			created = a
			return nil
		},
	}
	tags := &stubTagRepo{}
	svc := NewArticleService(repo, tags)

	article, err := svc.CreateArticle(context.Background(), CreateArticleInput{
		AuthorID: "writer",
		Title:    "A Fine Day",
		Content:  "body",
		Tags:     []string{"Life"},
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.True(t, strings.HasPrefix(article.Slug, "a-fine-day-"))
	assert.Equal(t, []string{"Life"}, tags.replaced[7])
}

func TestUpdateArticleOwnershipMapsToNotFound(t *testing.T) {
	t.Parallel()
	repo := &stubArticleRepo{
		t: t,
		getForAuthor: func(context.Context, uint, string) (*models.Article, error) {
			return nil, errors.New("record not found")
		},
	}
	// gorm.ErrRecordNotFound specifically triggers the 404 mapping; any other
	// error passes through untouched.
	svc := NewArticleService(repo, &stubTagRepo{})
	err := svc.UpdateArticle(context.Background(), UpdateArticleInput{AuthorID: "x", ArticleID: 1})
	require.Error(t, err)
	var appErr *models.AppError
	assert.False(t, errors.As(err, &appErr))
}

func TestListArticlesRejectsUnknownSort(t *testing.T) {
	t.Parallel()
	svc := NewFeedService(&stubArticleRepo{t: t})
	_, err := svc.ListArticles(context.Background(), ListArticlesInput{SortBy: "spicy"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	t.Parallel()
	svc := NewModerationService(&stubArticleRepo{t: t})
	err := svc.SetStatus(context.Background(), SetStatusInput{ArticleID: 1, Status: "archived"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
