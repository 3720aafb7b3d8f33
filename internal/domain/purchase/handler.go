package purchase

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vtuboss/vtuboss-api/internal/domain/wallet"
	"github.com/vtuboss/vtuboss-api/internal/middleware"
	"github.com/vtuboss/vtuboss-api/internal/pkg/billing"
	"github.com/vtuboss/vtuboss-api/internal/pkg/response"
	"github.com/vtuboss/vtuboss-api/internal/pkg/validator"
)

// Handler handles purchase HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates purchase handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Purchase executes a purchase for the caller
// POST /purchases
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	t, err := h.service.Purchase(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		var apiErr *billing.APIError
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, ErrUserBlocked):
			response.Forbidden(w, "Account is blocked")
		case errors.Is(err, ErrServiceNotFound):
			response.NotFound(w, "Service not found")
		case errors.Is(err, ErrServiceInactive):
			response.Conflict(w, "Service is not available for purchase")
		case errors.Is(err, ErrInvalidVariation):
			response.BadRequest(w, "Unknown variation for this service")
		case errors.Is(err, ErrInvalidAmount):
			response.BadRequest(w, "Amount must be greater than zero")
		case errors.Is(err, ErrMissingInput):
			response.BadRequest(w, err.Error())
		case errors.Is(err, wallet.ErrInsufficientFunds):
			response.PaymentRequired(w, "Insufficient wallet balance")
		case errors.As(err, &apiErr):
			response.BadGateway(w, apiErr.Message)
		case errors.Is(err, ErrDeliveryFailed):
			response.BadGateway(w, "Purchase could not be delivered")
		default:
			response.InternalError(w)
		}
		return
	}
	response.Created(w, t)
}

// Routes returns purchase routes for authenticated users
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Post("/", h.Purchase)

	return r
}
