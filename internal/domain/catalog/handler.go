package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vtuboss/vtuboss-api/internal/pkg/response"
	"github.com/vtuboss/vtuboss-api/internal/pkg/validator"
)

// Handler handles catalog HTTP requests
type Handler struct {
	catalog *Catalog
}

// NewHandler creates catalog handler
func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// ListServices returns the purchasable catalog
// GET /services
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") == ""
	services, err := h.catalog.ListServices(r.Context(), activeOnly)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, services)
}

// GetService returns one service with its variations
// GET /services/{id}
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	svc, err := h.catalog.GetService(r.Context(), id)
	if err != nil {
		if err == ErrServiceNotFound {
			response.NotFound(w, "Service not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, svc)
}

// CreateService creates a service
// POST /admin/services
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	svc := &Service{
		Name:        req.Name,
		ProviderKey: req.ProviderKey,
		Category:    Category(req.Category),
		Variations:  variationsFromInput(req.Variations),
	}
	if req.ProviderID != "" {
		pid, err := uuid.Parse(req.ProviderID)
		if err != nil {
			response.BadRequest(w, "Invalid provider ID")
			return
		}
		svc.ProviderID = uuid.NullUUID{UUID: pid, Valid: true}
	}

	if err := h.catalog.CreateService(r.Context(), svc); err != nil {
		response.InternalError(w)
		return
	}
	response.Created(w, svc)
}

// UpdateService replaces a service's fields and variation list
// PUT /admin/services/{id}
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	var req UpdateServiceRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	svc := &Service{
		ID:          id,
		Name:        req.Name,
		ProviderKey: req.ProviderKey,
		Category:    Category(req.Category),
		Status:      Status(req.Status),
		Variations:  variationsFromInput(req.Variations),
	}
	if req.ProviderID != "" {
		pid, err := uuid.Parse(req.ProviderID)
		if err != nil {
			response.BadRequest(w, "Invalid provider ID")
			return
		}
		svc.ProviderID = uuid.NullUUID{UUID: pid, Valid: true}
	}

	if err := h.catalog.UpdateService(r.Context(), svc); err != nil {
		if err == ErrServiceNotFound {
			response.NotFound(w, "Service not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, svc)
}

// DeleteService removes a service
// DELETE /admin/services/{id}
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	if err := h.catalog.DeleteService(r.Context(), id); err != nil {
		if err == ErrServiceNotFound {
			response.NotFound(w, "Service not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.NoContent(w)
}

// BulkAdjustFees applies a percentage or fixed delta to every fee
// POST /admin/services/fees/bulk
func (h *Handler) BulkAdjustFees(w http.ResponseWriter, r *http.Request) {
	var req BulkFeeRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	touched, err := h.catalog.BulkAdjustFees(r.Context(), AdjustMode(req.Mode), req.Value)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]int{"services_updated": touched})
}
