// Package validation holds input validation rules for articles and profiles.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	TitleMaxLength   = 200
	ExcerptMaxLength = 500
	BioMaxLength     = 500
	UsernameMin      = 3
	UsernameMax      = 30
	MaxTagsPerPost   = 10
	TagMaxLength     = 40
)

var slugStripRegex = regexp.MustCompile(`[^a-z0-9 -]`)
var hyphenRunRegex = regexp.MustCompile(`-+`)

// ValidateTitle checks article title constraints.
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > TitleMaxLength {
		return fmt.Errorf("title must be at most %d characters", TitleMaxLength)
	}
	return nil
}

// ValidateContent checks that the article body is present.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}

// ValidateExcerpt checks the optional excerpt length.
func ValidateExcerpt(excerpt string) error {
	if len(excerpt) > ExcerptMaxLength {
		return fmt.Errorf("excerpt must be at most %d characters", ExcerptMaxLength)
	}
	return nil
}

// ValidateTags checks tag count and individual tag shape.
func ValidateTags(tags []string) error {
	if len(tags) > MaxTagsPerPost {
		return fmt.Errorf("at most %d tags are allowed", MaxTagsPerPost)
	}
	for _, tag := range tags {
		t := strings.TrimSpace(tag)
		if t == "" {
			return fmt.Errorf("tags must not be empty")
		}
		if len(t) > TagMaxLength {
			return fmt.Errorf("tag %q exceeds %d characters", t, TagMaxLength)
		}
	}
	return nil
}

// ValidateUsername checks display name length.
func ValidateUsername(username string) error {
	n := len(strings.TrimSpace(username))
	if n < UsernameMin || n > UsernameMax {
		return fmt.Errorf("username must be %d-%d characters", UsernameMin, UsernameMax)
	}
	return nil
}

// ValidateBio checks profile bio length.
func ValidateBio(bio string) error {
	if len(bio) > BioMaxLength {
		return fmt.Errorf("bio must be at most %d characters", BioMaxLength)
	}
	return nil
}

// ValidateURL accepts empty strings and well-formed absolute http(s) URLs.
func ValidateURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("must be a valid http or https URL")
	}
	return nil
}

// Slugify derives a URL slug from a title: lowercase, strip everything but
// letters, digits, spaces and hyphens, turn spaces into hyphens, collapse
// hyphen runs, then append a millisecond timestamp for uniqueness.
func Slugify(title string, now time.Time) string {
	s := strings.ToLower(title)
	s = slugStripRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", "-")
	s = hyphenRunRegex.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return fmt.Sprintf("%s-%d", s, now.UnixMilli())
}
