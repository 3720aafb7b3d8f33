package purchase

import "github.com/google/uuid"

// Request is the purchase payload. RequestID is the caller-supplied
// idempotency key; Amount is only consulted for categories priced by the
// caller (airtime, electricity).
type Request struct {
	RequestID   uuid.UUID         `json:"request_id" validate:"required"`
	ServiceID   uuid.UUID         `json:"service_id" validate:"required"`
	VariationID string            `json:"variation_id" validate:"required"`
	Amount      float64           `json:"amount" validate:"omitempty,gt=0"`
	Inputs      map[string]string `json:"inputs"`
}
