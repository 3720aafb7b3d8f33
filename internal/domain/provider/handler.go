package provider

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vtuboss/vtuboss-api/internal/pkg/response"
	"github.com/vtuboss/vtuboss-api/internal/pkg/validator"
)

// Handler handles provider registry HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates provider handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List returns all providers
// GET /admin/providers
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	providers, err := h.repo.List(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, providers)
}

// Get returns one provider
// GET /admin/providers/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid provider ID")
		return
	}

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.InternalError(w)
		return
	}
	if p == nil {
		response.NotFound(w, "Provider not found")
		return
	}
	response.OK(w, p)
}

// Create registers a provider
// POST /admin/providers
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	now := time.Now()
	p := &Provider{
		ID:            uuid.New(),
		Name:          req.Name,
		BaseURL:       req.BaseURL,
		Status:        statusOrDefault(req.Status),
		Priority:      priorityOrDefault(req.Priority),
		AuthScheme:    req.AuthScheme,
		APIKey:        req.APIKey,
		APISecret:     req.APISecret,
		CustomHeaders: req.CustomHeaders,
		TxnCharge:     req.TxnCharge,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.repo.Create(r.Context(), p); err != nil {
		response.InternalError(w)
		return
	}
	response.Created(w, p)
}

// Update replaces a provider's configuration
// PUT /admin/providers/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid provider ID")
		return
	}

	var req UpsertRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	p := &Provider{
		ID:            id,
		Name:          req.Name,
		BaseURL:       req.BaseURL,
		Status:        statusOrDefault(req.Status),
		Priority:      priorityOrDefault(req.Priority),
		AuthScheme:    req.AuthScheme,
		APIKey:        req.APIKey,
		APISecret:     req.APISecret,
		CustomHeaders: req.CustomHeaders,
		TxnCharge:     req.TxnCharge,
	}

	if err := h.repo.Update(r.Context(), p); err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "Provider not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, p)
}

// Delete removes a provider
// DELETE /admin/providers/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid provider ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "Provider not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.NoContent(w)
}

func statusOrDefault(s string) Status {
	if s == "" {
		return StatusActive
	}
	return Status(s)
}

func priorityOrDefault(p string) Priority {
	if p == "" {
		return PriorityPrimary
	}
	return Priority(p)
}
