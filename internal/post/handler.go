// AngelaMos | 2026
// handler.go

package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/zingbizz/blog-backend/internal/core"
	"github.com/zingbizz/blog-backend/internal/middleware"
)

const maxImageSize = 10 << 20 // 10 MiB

// ImageStorage stores uploaded featured images. Upload returns the object's
// public URL; Delete takes that URL back to remove a replaced image.
type ImageStorage interface {
	Upload(
		ctx context.Context,
		objectName string,
		reader io.Reader,
		size int64,
		contentType string,
	) (string, error)
	Delete(ctx context.Context, imageURL string) error
}

type Handler struct {
	service   *Service
	storage   ImageStorage
	validator *validator.Validate
}

func NewHandler(service *Service, storage ImageStorage) *Handler {
	return &Handler{
		service:   service,
		storage:   storage,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterPublicRoutes mounts the unauthenticated read-only feed.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Route("/posts/public", func(r chi.Router) {
		r.Get("/", h.ListPublished)
		r.Get("/search", h.SearchPublished)
		r.Get("/tags/{tag}", h.ListPublishedByTag)
		r.Get("/{slug}", h.GetPublishedBySlug)
	})
}

// RegisterRoutes mounts the CMS surface. Every route requires an EDITOR or
// ADMIN session.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, editorOnly func(http.Handler) http.Handler,
) {
	r.Route("/posts", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(editorOnly)

		r.Get("/", h.ListPosts)
		r.Post("/", h.CreatePost)
		r.Get("/{postID}", h.GetPost)
		r.Put("/{postID}", h.UpdatePost)
		r.Delete("/{postID}", h.DeletePost)
		r.Put("/{postID}/publish", h.PublishPost)

		if h.storage != nil {
			r.Post("/{postID}/image", h.UploadFeaturedImage)
		}
	})
}

func (h *Handler) ListPublished(w http.ResponseWriter, r *http.Request) {
	params := ParsePageParams(r)

	posts, total, err := h.service.GetPublishedPosts(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, posts, params.Page, params.Size, total)
}

func (h *Handler) GetPublishedBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.service.GetPublishedPostBySlug(r.Context(), slug)
	if err != nil {
		if core.IsNotFound(err) {
			core.NotFound(w, "post")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, post)
}

func (h *Handler) ListPublishedByTag(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	params := ParsePageParams(r)

	posts, total, err := h.service.GetPublishedPostsByTag(
		r.Context(), tag, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, posts, params.Page, params.Size, total)
}

func (h *Handler) SearchPublished(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	params := ParsePageParams(r)

	posts, total, err := h.service.SearchPublishedPosts(
		r.Context(), query, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, posts, params.Page, params.Size, total)
}

// ListPosts is the CMS listing: ADMIN sees every post, an EDITOR only their
// own. The branch is decided here at the boundary.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	params := ParsePageParams(r)

	var (
		posts []Post
		total int
		err   error
	)

	if middleware.IsAdmin(r.Context()) {
		posts, total, err = h.service.GetAllPosts(r.Context(), params)
	} else {
		posts, total, err = h.service.GetPostsByAuthorID(
			r.Context(), middleware.GetUserID(r.Context()), params)
	}
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, posts, params.Page, params.Size, total)
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	post, err := h.service.GetPostByID(r.Context(), postID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	core.OK(w, post)
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	post, err := h.service.CreatePost(
		r.Context(),
		req,
		middleware.GetUserID(r.Context()),
		middleware.GetUsername(r.Context()),
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, post)
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	post, err := h.service.UpdatePost(
		r.Context(),
		postID,
		req,
		middleware.GetUserID(r.Context()),
		middleware.IsAdmin(r.Context()),
	)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	core.OK(w, post)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	err := h.service.DeletePost(
		r.Context(),
		postID,
		middleware.GetUserID(r.Context()),
		middleware.IsAdmin(r.Context()),
	)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "post deleted successfully"})
}

func (h *Handler) PublishPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	post, err := h.service.PublishPost(
		r.Context(),
		postID,
		middleware.GetUserID(r.Context()),
		middleware.IsAdmin(r.Context()),
	)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	core.OK(w, post)
}

func (h *Handler) UploadFeaturedImage(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	// Resolve and authorize before touching object storage so forbidden
	// callers cannot leave orphaned uploads behind.
	existing, err := h.service.GetPostByID(r.Context(), postID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	callerID := middleware.GetUserID(r.Context())
	callerIsAdmin := middleware.IsAdmin(r.Context())
	if !existing.CanModify(callerID, callerIsAdmin) {
		core.Forbidden(w, "")
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		core.BadRequest(w, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		core.BadRequest(w, "image file is required")
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		core.BadRequest(w, "image exceeds maximum size")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		core.BadRequest(w, "file must be an image")
		return
	}

	objectName := fmt.Sprintf("posts/%s%s", postID, path.Ext(header.Filename))

	imageURL, err := h.storage.Upload(
		r.Context(),
		objectName,
		file,
		header.Size,
		contentType,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	post, err := h.service.SetFeaturedImage(
		r.Context(),
		postID,
		imageURL,
		callerID,
		callerIsAdmin,
	)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	// The replaced image is unreferenced now; removal is best effort.
	if existing.FeaturedImage != "" && existing.FeaturedImage != imageURL {
		if err := h.storage.Delete(r.Context(), existing.FeaturedImage); err != nil {
			slog.Warn("failed to delete replaced featured image",
				"post_id", postID,
				"image_url", existing.FeaturedImage,
				"error", err,
			)
		}
	}

	core.OK(w, post)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "post")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "")
	default:
		core.InternalServerError(w, err)
	}
}
