// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// ArticleStatus is the moderation state of an article.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPending   ArticleStatus = "pending"
	StatusPublished ArticleStatus = "published"
	StatusRejected  ArticleStatus = "rejected"
	StatusHidden    ArticleStatus = "hidden"
)

// ValidStatus reports whether s is one of the five known status values.
func ValidStatus(s ArticleStatus) bool {
	switch s {
	case StatusDraft, StatusPending, StatusPublished, StatusRejected, StatusHidden:
		return true
	}
	return false
}

// Article is a unit of authored content. Slug is immutable once assigned and
// globally unique. PublishedAt is stamped the first time the article enters
// the published status and never cleared afterwards.
type Article struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Title         string        `gorm:"size:200;not null" json:"title"`
	Slug          string        `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Content       string        `gorm:"type:text;not null" json:"content"`
	Excerpt       string        `gorm:"size:500" json:"excerpt"`
	CoverImageURL string        `json:"cover_image_url"`
	AuthorID      string        `gorm:"size:64;not null;index" json:"author_id"`
	Status        ArticleStatus `gorm:"size:16;not null;default:'pending';index" json:"status"`
	PublishedAt   *time.Time    `json:"published_at"`
	ViewsCount    int           `gorm:"not null;default:0" json:"views_count"`
	LikesCount    int           `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int           `gorm:"not null;default:0" json:"comments_count"`
	AdminNotes    string        `json:"admin_notes,omitempty"`

	// Author is the profile joined on AuthorID -> user_profiles.external_id.
	Author *UserProfile `gorm:"foreignKey:AuthorID;references:ExternalID" json:"author,omitempty"`
	// TagRows is the raw child table; Tags is the flattened list exposed in responses.
	TagRows []ArticleTag `gorm:"foreignKey:ArticleID" json:"-"`
	Tags    []string     `gorm:"-" json:"tags"`
	// Liked indicates whether the current requesting user liked this article (computed).
	Liked bool `gorm:"-" json:"liked"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// FlattenTags fills Tags from the preloaded TagRows.
func (a *Article) FlattenTags() {
	a.Tags = make([]string, 0, len(a.TagRows))
	for _, row := range a.TagRows {
		a.Tags = append(a.Tags, row.TagName)
	}
}

// TrendingScore is the continuous ranking used by the dedicated trending
// endpoint. It is intentionally distinct from the "trending" sort mode of the
// list endpoint, which orders by likes+comments only.
func (a *Article) TrendingScore() float64 {
	return float64(a.LikesCount)*2 + float64(a.CommentsCount) + float64(a.ViewsCount)*0.1
}
