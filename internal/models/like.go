package models

import "time"

// ArticleLike records a user's like on an article.
// The combination of ArticleID and UserID must be unique. Every insert or
// delete of a row here is paired with a ±1 on the article's likes_count
// inside the same transaction.
type ArticleLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"not null;uniqueIndex:idx_article_user" json:"article_id"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_article_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
