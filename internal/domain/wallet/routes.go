package wallet

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns wallet routes for authenticated users
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Get("/", h.Balance)
	r.Post("/fund", h.Fund)
	r.Get("/transactions", h.ListMine)

	return r
}

// AdminRoutes returns admin wallet and transaction routes
func (h *Handler) AdminRoutes(authMiddleware, adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(adminMiddleware)

	r.Post("/wallet/fund", h.FundByEmail)
	r.Post("/wallet/{id}/fund", h.ManualFund)
	r.Post("/wallet/{id}/deduct", h.ManualDeduct)
	r.Get("/transactions", h.ListAll)
	r.Patch("/transactions/{id}/status", h.OverrideStatus)

	return r
}
