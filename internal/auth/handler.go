// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/zingbizz/blog-backend/internal/core"
	"github.com/zingbizz/blog-backend/internal/middleware"
	"github.com/zingbizz/blog-backend/internal/user"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/signin", h.Signin)
	r.Post("/auth/signup", h.Signup)
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, token, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.Unauthorized(w, "invalid username or password")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, SigninResponse{
		Token:    token,
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Roles:    u.Roles,
	})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if _, err := h.service.Register(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, ErrUsernameExists):
			core.BadRequest(w, "username is already taken")
		case errors.Is(err, ErrEmailExists):
			core.BadRequest(w, "email is already in use")
		case errors.Is(err, core.ErrRoleNotSeeded):
			core.JSONError(w, core.ConfigurationError("role seed data missing"))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, MessageResponse{Message: "user registered successfully"})
}

// Me returns the identity claims of the presented session token. Handy for
// frontends restoring a session after reload.
func (h *Handler) Me(users *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.GetClaims(r.Context())
		if claims == nil {
			core.Unauthorized(w, "")
			return
		}

		u, err := users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if core.IsNotFound(err) {
				core.NotFound(w, "user")
				return
			}
			core.InternalServerError(w, err)
			return
		}

		core.OK(w, user.ToUserResponse(u))
	}
}
