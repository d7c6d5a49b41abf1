// AngelaMos | 2026
// dto.go

package post

import (
	"net/http"
	"strconv"
)

type CreatePostRequest struct {
	Title         string   `json:"title"          validate:"required,max=200"`
	Excerpt       string   `json:"excerpt"        validate:"required,max=500"`
	Content       string   `json:"content"        validate:"required"`
	Tags          []string `json:"tags"           validate:"omitempty,dive,min=1,max=50"`
	FeaturedImage string   `json:"featured_image" validate:"omitempty,max=512"`
}

type UpdatePostRequest struct {
	Title         string   `json:"title"          validate:"required,max=200"`
	Excerpt       string   `json:"excerpt"        validate:"required,max=500"`
	Content       string   `json:"content"        validate:"required"`
	Tags          []string `json:"tags"           validate:"omitempty,dive,min=1,max=50"`
	FeaturedImage string   `json:"featured_image" validate:"omitempty,max=512"`
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageParams is the zero-based pagination window shared by every list
// endpoint.
type PageParams struct {
	Page int
	Size int
}

func (p PageParams) Offset() int {
	return p.Page * p.Size
}

// ParsePageParams reads page and size query parameters, falling back to
// page 0 size 10 on absent or malformed values and capping size at 100.
func ParsePageParams(r *http.Request) PageParams {
	params := PageParams{Page: 0, Size: defaultPageSize}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page >= 0 {
			params.Page = page
		}
	}

	if raw := r.URL.Query().Get("size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			params.Size = size
		}
	}

	if params.Size > maxPageSize {
		params.Size = maxPageSize
	}

	return params
}
