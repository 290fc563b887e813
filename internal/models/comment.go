package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a reader comment on an article, optionally threaded under a
// parent comment. The table is migrated and counted into the article's
// comments_count, but no HTTP endpoint writes it yet.
type Comment struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	ArticleID       uint           `gorm:"not null;index" json:"article_id"`
	AuthorID        string         `gorm:"size:64;not null" json:"author_id"`
	Content         string         `gorm:"size:1000;not null" json:"content"`
	ParentCommentID *uint          `json:"parent_comment_id,omitempty"`
	IsHidden        bool           `gorm:"not null;default:false" json:"is_hidden"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
