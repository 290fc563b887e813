package models

import "time"

// ArticleTag is one lowercase label attached to an article. The tag set for
// an article is replaced wholesale whenever the author supplies a new list;
// tags have no identity beyond (article, text).
type ArticleTag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"not null;uniqueIndex:idx_article_tag" json:"article_id"`
	TagName   string    `gorm:"size:64;not null;uniqueIndex:idx_article_tag" json:"tag_name"`
	CreatedAt time.Time `json:"created_at"`
}
