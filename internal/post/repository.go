// AngelaMos | 2026
// repository.go

package post

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/zingbizz/blog-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id string) error
	Publish(ctx context.Context, id string) (*Post, error)
	SetFeaturedImage(ctx context.Context, id, imageURL string) error

	ListPublished(ctx context.Context, p PageParams) ([]Post, error)
	CountPublished(ctx context.Context) (int, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*Post, error)
	ListPublishedByTag(ctx context.Context, tag string, p PageParams) ([]Post, error)
	CountPublishedByTag(ctx context.Context, tag string) (int, error)
	SearchPublished(ctx context.Context, query string, p PageParams) ([]Post, error)
	CountSearchPublished(ctx context.Context, query string) (int, error)

	ListAll(ctx context.Context, p PageParams) ([]Post, error)
	CountAll(ctx context.Context) (int, error)
	ListByAuthor(ctx context.Context, authorID string, p PageParams) ([]Post, error)
	CountByAuthor(ctx context.Context, authorID string) (int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const postColumns = `
	id, title, slug, excerpt, content, author, author_id,
	featured_image, tags, published, created_at, updated_at`

func (r *repository) Create(ctx context.Context, post *Post) error {
	query := `
		INSERT INTO posts (
			id, title, slug, excerpt, content, author, author_id,
			featured_image, tags, published
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, post, query,
		post.ID,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Content,
		post.Author,
		post.AuthorID,
		post.FeaturedImage,
		post.Tags,
		post.Published,
	)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Post, error) {
	query := `SELECT` + postColumns + `
	FROM posts
	WHERE id = $1`

	var post Post
	err := r.db.GetContext(ctx, &post, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get post: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

// Update overwrites the mutable fields only. Authorship, creation time and
// publication state never change through this path.
func (r *repository) Update(ctx context.Context, post *Post) error {
	query := `
		UPDATE posts
		SET title = $2, slug = $3, excerpt = $4, content = $5,
		    tags = $6, featured_image = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &post.UpdatedAt, query,
		post.ID,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Content,
		post.Tags,
		post.FeaturedImage,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update post: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete post: %w", core.ErrNotFound)
	}

	return nil
}

// Publish is one-way and idempotent: an already-published post just gets a
// fresh updated_at.
func (r *repository) Publish(ctx context.Context, id string) (*Post, error) {
	query := `
		UPDATE posts
		SET published = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING` + postColumns

	var post Post
	err := r.db.GetContext(ctx, &post, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("publish post: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("publish post: %w", err)
	}

	return &post, nil
}

func (r *repository) SetFeaturedImage(
	ctx context.Context,
	id, imageURL string,
) error {
	query := `
		UPDATE posts
		SET featured_image = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, imageURL)
	if err != nil {
		return fmt.Errorf("set featured image: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set featured image: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set featured image: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListPublished(
	ctx context.Context,
	p PageParams,
) ([]Post, error) {
	query := `SELECT` + postColumns + `
	FROM posts
	WHERE published = TRUE
	ORDER BY created_at DESC
	LIMIT $1 OFFSET $2`

	return r.list(ctx, query, p.Size, p.Offset())
}

func (r *repository) CountPublished(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts WHERE published = TRUE`)
}

// GetPublishedBySlug returns one published post for the slug. Slugs are not
// unique; on collision the newest post wins.
func (r *repository) GetPublishedBySlug(
	ctx context.Context,
	slug string,
) (*Post, error) {
	query := `SELECT` + postColumns + `
	FROM posts
	WHERE slug = $1 AND published = TRUE
	ORDER BY created_at DESC
	LIMIT 1`

	var post Post
	err := r.db.GetContext(ctx, &post, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get post by slug: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get post by slug: %w", err)
	}

	return &post, nil
}

func (r *repository) ListPublishedByTag(
	ctx context.Context,
	tag string,
	p PageParams,
) ([]Post, error) {
	query := `SELECT` + postColumns + `
	FROM posts
	WHERE published = TRUE AND tags @> $1
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3`

	return r.list(ctx, query, core.StringList{tag}, p.Size, p.Offset())
}

func (r *repository) CountPublishedByTag(
	ctx context.Context,
	tag string,
) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM posts WHERE published = TRUE AND tags @> $1`,
		core.StringList{tag},
	)
}

func (r *repository) SearchPublished(
	ctx context.Context,
	query string,
	p PageParams,
) ([]Post, error) {
	sqlQuery := `SELECT` + postColumns + `
	FROM posts
	WHERE published = TRUE AND (title ILIKE $1 OR content ILIKE $1)
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3`

	return r.list(ctx, sqlQuery, likePattern(query), p.Size, p.Offset())
}

func (r *repository) CountSearchPublished(
	ctx context.Context,
	query string,
) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM posts
		 WHERE published = TRUE AND (title ILIKE $1 OR content ILIKE $1)`,
		likePattern(query),
	)
}

func (r *repository) ListAll(
	ctx context.Context,
	p PageParams,
) ([]Post, error) {
	query := `SELECT` + postColumns + `
	FROM posts
	ORDER BY created_at DESC
	LIMIT $1 OFFSET $2`

	return r.list(ctx, query, p.Size, p.Offset())
}

func (r *repository) CountAll(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM posts`)
}

func (r *repository) ListByAuthor(
	ctx context.Context,
	authorID string,
	p PageParams,
) ([]Post, error) {
	query := `SELECT` + postColumns + `
	FROM posts
	WHERE author_id = $1
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3`

	return r.list(ctx, query, authorID, p.Size, p.Offset())
}

func (r *repository) CountByAuthor(
	ctx context.Context,
	authorID string,
) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM posts WHERE author_id = $1`,
		authorID,
	)
}

func (r *repository) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]Post, error) {
	posts := []Post{}
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *repository) count(
	ctx context.Context,
	query string,
	args ...any,
) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// likePattern escapes LIKE metacharacters in user input so a search for "50%"
// matches the literal text.
func likePattern(query string) string {
	escaped := make([]rune, 0, len(query)+2)
	for _, c := range query {
		if c == '%' || c == '_' || c == '\\' {
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, c)
	}
	return "%" + string(escaped) + "%"
}
