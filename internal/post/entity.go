// AngelaMos | 2026
// entity.go

package post

import (
	"regexp"
	"strings"
	"time"

	"github.com/zingbizz/blog-backend/internal/core"
)

type Post struct {
	ID            string          `db:"id" json:"id"`
	Title         string          `db:"title" json:"title"`
	Slug          string          `db:"slug" json:"slug"`
	Excerpt       string          `db:"excerpt" json:"excerpt"`
	Content       string          `db:"content" json:"content"`
	Author        string          `db:"author" json:"author"`
	AuthorID      string          `db:"author_id" json:"author_id"`
	FeaturedImage string          `db:"featured_image" json:"featured_image,omitempty"`
	Tags          core.StringList `db:"tags" json:"tags"`
	Published     bool            `db:"published" json:"published"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

var (
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)
)

// GenerateSlug derives the URL-safe slug from a title: lowercase, whitespace
// runs become single hyphens, everything else outside [a-z0-9-] is stripped.
// Deterministic and idempotent. Uniqueness is not enforced; two posts with
// the same title share a slug and slug lookup picks one of them.
func GenerateSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugInvalid.ReplaceAllString(slug, "")
	return slug
}

// CanModify is the single access rule shared by update, delete and publish:
// ADMIN may act on any post, everyone else only on their own.
func (p *Post) CanModify(callerID string, callerIsAdmin bool) bool {
	return callerIsAdmin || p.AuthorID == callerID
}
