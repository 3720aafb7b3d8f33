package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns public catalog routes
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Get("/", h.ListServices)
	r.Get("/{id}", h.GetService)

	return r
}

// AdminRoutes returns admin catalog management routes
func (h *Handler) AdminRoutes(authMiddleware, adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(adminMiddleware)

	r.Post("/", h.CreateService)
	r.Put("/{id}", h.UpdateService)
	r.Delete("/{id}", h.DeleteService)
	r.Post("/fees/bulk", h.BulkAdjustFees)

	return r
}
