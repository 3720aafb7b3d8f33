package user

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vtuboss/vtuboss-api/internal/middleware"
	"github.com/vtuboss/vtuboss-api/internal/pkg/response"
	"github.com/vtuboss/vtuboss-api/internal/pkg/validator"
)

// Handler handles user HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates user handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Signup registers a new account
// POST /auth/signup
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	u, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		if err == ErrEmailTaken {
			response.Conflict(w, "Email already registered")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, u)
}

// Login exchanges credentials for an access token
// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	token, u, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid email or password")
		case ErrBlocked:
			response.Forbidden(w, "Your account has been blocked")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, &AuthResponse{Token: token, User: u})
}

// Me returns the authenticated account
// GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Get(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, u)
}

// List returns users, paginated
// GET /admin/users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, page := parsePagination(r)

	users, total, err := h.service.List(r.Context(), limit, (page-1)*limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, users, response.Meta{Total: total, Page: page, Limit: limit})
}

// ChangeRole updates a user's role
// PATCH /admin/users/{id}/role
func (h *Handler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req ChangeRoleRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.service.ChangeRole(r.Context(), id, Role(req.Role)); err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]string{"message": "Role updated"})
}

// ChangeStatus updates a user's status
// PATCH /admin/users/{id}/status
func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req ChangeStatusRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.service.ChangeStatus(r.Context(), id, Status(req.Status)); err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]string{"message": "Status updated"})
}

func parsePagination(r *http.Request) (limit, page int) {
	limit = 20
	page = 1
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	return limit, page
}
