package service

import (
	"context"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// FeedService serves the public read side: browse, search, and trending.
type FeedService struct {
	articleRepo repository.ArticleRepository
}

type ListArticlesInput struct {
	Query  string
	Tags   []string
	Author string
	SortBy string
}

// NewFeedService returns a new FeedService.
func NewFeedService(articleRepo repository.ArticleRepository) *FeedService {
	return &FeedService{articleRepo: articleRepo}
}

var validSorts = map[string]struct{}{
	"": {}, "latest": {}, "oldest": {}, "popular": {}, "trending": {},
}

// ListArticles returns up to 50 published articles matching the filters.
func (s *FeedService) ListArticles(ctx context.Context, in ListArticlesInput) ([]models.Article, error) {
	if _, ok := validSorts[in.SortBy]; !ok {
		return nil, models.NewValidationError("Invalid sortBy value")
	}

	articles, err := s.articleRepo.List(ctx, repository.ListFilter{
		Query:  in.Query,
		Tags:   in.Tags,
		Author: in.Author,
		SortBy: in.SortBy,
	})
	if err != nil {
		return nil, err
	}
	for i := range articles {
		articles[i].FlattenTags()
	}
	return articles, nil
}

// Trending returns the top scored articles published in the last seven days.
// The result is briefly cached so a hot front page does not hammer the DB.
func (s *FeedService) Trending(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := cache.Aside(ctx, cache.TrendingKey, &articles, cache.TrendingTTL, func() error {
		var err error
		articles, err = s.articleRepo.Trending(ctx, time.Now())
		if err != nil {
			return err
		}
		for i := range articles {
			articles[i].FlattenTags()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return articles, nil
}
