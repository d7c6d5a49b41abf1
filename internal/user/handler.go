// AngelaMos | 2026
// handler.go

package user

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/zingbizz/blog-backend/internal/core"
)

// SessionRevoker invalidates outstanding session tokens for a user that no
// longer exists. Implemented by the auth service's redis denylist.
type SessionRevoker interface {
	RevokeUserSessions(ctx context.Context, userID string) error
}

type Handler struct {
	service   *Service
	revoker   SessionRevoker
	validator *validator.Validate
}

func NewHandler(service *Service, revoker SessionRevoker) *Handler {
	return &Handler{
		service:   service,
		revoker:   revoker,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterAdminRoutes mounts the ADMIN-only user management endpoints under
// /auth/users, matching the public API surface.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/auth/users", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.ListUsers)
		r.Get("/count", h.CountUsers)
		r.Delete("/{userID}", h.DeleteUser)
		r.Put("/{userID}/role", h.SetUserRole)
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponseList(users))
}

func (h *Handler) CountUsers(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, CountResponse{Count: count})
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if err := h.service.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	if h.revoker != nil {
		if err := h.revoker.RevokeUserSessions(r.Context(), userID); err != nil {
			slog.Warn("failed to revoke sessions for deleted user",
				"user_id", userID,
				"error", err,
			)
		}
	}

	core.OK(w, MessageResponse{Message: "user deleted successfully"})
}

func (h *Handler) SetUserRole(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.SetRole(r.Context(), userID, req.Role); err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "invalid role")
		case errors.Is(err, core.ErrRoleNotSeeded):
			core.JSONError(w, core.ConfigurationError("role seed data missing"))
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "user")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, MessageResponse{Message: "user role updated successfully"})
}
