// AngelaMos | 2026
// service.go

package post

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/zingbizz/blog-backend/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreatePost always creates a draft. Authorship is forced to the caller's
// identity regardless of the request body, so authors cannot be spoofed.
func (s *Service) CreatePost(
	ctx context.Context,
	req CreatePostRequest,
	authorID, authorName string,
) (*Post, error) {
	p := &Post{
		ID:            uuid.New().String(),
		Title:         req.Title,
		Slug:          GenerateSlug(req.Title),
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		Author:        authorName,
		AuthorID:      authorID,
		FeaturedImage: req.FeaturedImage,
		Tags:          req.Tags,
		Published:     false,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) GetPostByID(ctx context.Context, id string) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdatePost overwrites title, excerpt, content, tags and featured image on
// the existing post and re-derives the slug. Authorship, creation time and
// publication state are untouched. The existence check runs before the
// access check, so an unknown id is a NotFound even for forbidden callers.
func (s *Service) UpdatePost(
	ctx context.Context,
	id string,
	req UpdatePostRequest,
	callerID string,
	callerIsAdmin bool,
) (*Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !p.CanModify(callerID, callerIsAdmin) {
		return nil, fmt.Errorf("update post: %w", core.ErrForbidden)
	}

	p.Title = req.Title
	p.Slug = GenerateSlug(req.Title)
	p.Excerpt = req.Excerpt
	p.Content = req.Content
	p.Tags = req.Tags
	p.FeaturedImage = req.FeaturedImage

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) DeletePost(
	ctx context.Context,
	id, callerID string,
	callerIsAdmin bool,
) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !p.CanModify(callerID, callerIsAdmin) {
		return fmt.Errorf("delete post: %w", core.ErrForbidden)
	}

	return s.repo.Delete(ctx, id)
}

// PublishPost is idempotent: publishing an already-published post succeeds
// and just refreshes updated_at. There is no unpublish.
func (s *Service) PublishPost(
	ctx context.Context,
	id, callerID string,
	callerIsAdmin bool,
) (*Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !p.CanModify(callerID, callerIsAdmin) {
		return nil, fmt.Errorf("publish post: %w", core.ErrForbidden)
	}

	return s.repo.Publish(ctx, id)
}

func (s *Service) SetFeaturedImage(
	ctx context.Context,
	id, imageURL, callerID string,
	callerIsAdmin bool,
) (*Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !p.CanModify(callerID, callerIsAdmin) {
		return nil, fmt.Errorf("set featured image: %w", core.ErrForbidden)
	}

	if err := s.repo.SetFeaturedImage(ctx, id, imageURL); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetPublishedPosts(
	ctx context.Context,
	p PageParams,
) ([]Post, int, error) {
	posts, err := s.repo.ListPublished(ctx, p)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountPublished(ctx)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (s *Service) GetPublishedPostBySlug(
	ctx context.Context,
	slug string,
) (*Post, error) {
	return s.repo.GetPublishedBySlug(ctx, slug)
}

func (s *Service) GetPublishedPostsByTag(
	ctx context.Context,
	tag string,
	p PageParams,
) ([]Post, int, error) {
	posts, err := s.repo.ListPublishedByTag(ctx, tag, p)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountPublishedByTag(ctx, tag)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (s *Service) SearchPublishedPosts(
	ctx context.Context,
	query string,
	p PageParams,
) ([]Post, int, error) {
	posts, err := s.repo.SearchPublished(ctx, query, p)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountSearchPublished(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (s *Service) GetAllPosts(
	ctx context.Context,
	p PageParams,
) ([]Post, int, error) {
	posts, err := s.repo.ListAll(ctx, p)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (s *Service) GetPostsByAuthorID(
	ctx context.Context,
	authorID string,
	p PageParams,
) ([]Post, int, error) {
	posts, err := s.repo.ListByAuthor(ctx, authorID, p)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountByAuthor(ctx, authorID)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}
