package wallet

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vtuboss/vtuboss-api/internal/middleware"
	"github.com/vtuboss/vtuboss-api/internal/pkg/response"
	"github.com/vtuboss/vtuboss-api/internal/pkg/validator"
)

// Handler handles wallet HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates wallet handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Balance returns the caller's wallet balance
// GET /wallet
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.service.Balance(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if err == ErrUserNotFound {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, &BalanceResponse{Balance: balance})
}

// Fund credits the caller's own wallet
// POST /wallet/fund
func (h *Handler) Fund(w http.ResponseWriter, r *http.Request) {
	var req FundRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	t, err := h.service.Fund(r.Context(), middleware.GetUserID(r.Context()), req.Amount)
	if err != nil {
		switch err {
		case ErrUserNotFound:
			response.NotFound(w, "User not found")
		case ErrInvalidAmount:
			response.BadRequest(w, "Amount must be greater than zero")
		default:
			response.InternalError(w)
		}
		return
	}
	response.Created(w, t)
}

// FundByEmail credits a wallet by email, creating the account if absent.
// This is the payment-confirmation path.
// POST /admin/wallet/fund
func (h *Handler) FundByEmail(w http.ResponseWriter, r *http.Request) {
	var req EmailFundRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	t, err := h.service.FundWallet(r.Context(), &req)
	if err != nil {
		if err == ErrInvalidAmount {
			response.BadRequest(w, "Amount must be greater than zero")
			return
		}
		response.InternalError(w)
		return
	}
	response.Created(w, t)
}

// ListMine lists the caller's transactions
// GET /wallet/transactions
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	limit, page := parsePagination(r)

	list, total, err := h.service.ListByUser(r.Context(), middleware.GetUserID(r.Context()), limit, (page-1)*limit)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.WithMeta(w, list, response.Meta{Total: total, Page: page, Limit: limit})
}

// ListAll lists every transaction
// GET /admin/transactions
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	limit, page := parsePagination(r)

	list, total, err := h.service.List(r.Context(), limit, (page-1)*limit)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.WithMeta(w, list, response.Meta{Total: total, Page: page, Limit: limit})
}

// ManualFund credits a user's wallet on behalf of an admin
// POST /admin/wallet/{id}/fund
func (h *Handler) ManualFund(w http.ResponseWriter, r *http.Request) {
	h.manualAdjust(w, r, true)
}

// ManualDeduct debits a user's wallet on behalf of an admin
// POST /admin/wallet/{id}/deduct
func (h *Handler) ManualDeduct(w http.ResponseWriter, r *http.Request) {
	h.manualAdjust(w, r, false)
}

func (h *Handler) manualAdjust(w http.ResponseWriter, r *http.Request, fund bool) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req ManualAdjustRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	adminID := middleware.GetUserID(r.Context())

	var t *Transaction
	if fund {
		t, err = h.service.ManualFund(r.Context(), userID, req.Amount, adminID)
	} else {
		t, err = h.service.ManualDeduct(r.Context(), userID, req.Amount, adminID)
	}
	if err != nil {
		switch err {
		case ErrUserNotFound:
			response.NotFound(w, "User not found")
		case ErrInsufficientFunds:
			response.PaymentRequired(w, "Insufficient wallet balance")
		case ErrInvalidAmount:
			response.BadRequest(w, "Amount must be greater than zero")
		default:
			response.InternalError(w)
		}
		return
	}
	response.Created(w, t)
}

// OverrideStatus resolves a pending transaction
// PATCH /admin/transactions/{id}/status
func (h *Handler) OverrideStatus(w http.ResponseWriter, r *http.Request) {
	txID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	var req OverrideStatusRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	err = h.service.OverrideStatus(r.Context(), txID, TxStatus(req.Status), middleware.GetUserID(r.Context()))
	if err != nil {
		switch err {
		case ErrTransactionNotFound:
			response.NotFound(w, "Transaction not found")
		case ErrNotPending:
			response.Conflict(w, "Only pending transactions can be overridden")
		case ErrInvalidStatus:
			response.BadRequest(w, "Status must be successful or failed")
		default:
			response.InternalError(w)
		}
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
