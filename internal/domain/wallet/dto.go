package wallet

// FundRequest for POST /wallet/fund. The funded wallet is always the
// caller's own; the target identity comes from the access token.
type FundRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// EmailFundRequest for POST /admin/wallet/fund, the payment-confirmation
// path: keyed on email so first-time funding can create the account.
type EmailFundRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	FullName string  `json:"full_name" validate:"max=100"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

// ManualAdjustRequest for POST /admin/wallet/{id}/fund and /deduct
type ManualAdjustRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// OverrideStatusRequest for PATCH /admin/transactions/{id}/status
type OverrideStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=successful failed"`
}

// BalanceResponse for GET /wallet
type BalanceResponse struct {
	Balance float64 `json:"balance"`
}
