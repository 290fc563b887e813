package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ArticleKeyPrefix  = "article:%s"
	TrendingKey       = "articles:trending"
	IdentityKeyPrefix = "identity:session:%s"
)

const (
	ArticleTTL  = 5 * time.Minute
	TrendingTTL = 60 * time.Second
	IdentityTTL = 5 * time.Minute
)

func ArticleKey(slug string) string {
	return fmt.Sprintf(ArticleKeyPrefix, slug)
}

func IdentityKey(token string) string {
	return fmt.Sprintf(IdentityKeyPrefix, token)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateArticle(ctx context.Context, slug string) {
	Invalidate(ctx, ArticleKey(slug))
}

func InvalidateTrending(ctx context.Context) {
	Invalidate(ctx, TrendingKey)
}
