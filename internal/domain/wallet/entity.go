package wallet

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TxType represents the direction of a ledger entry
type TxType string

const (
	TxCredit TxType = "credit"
	TxDebit  TxType = "debit"
)

// TxStatus represents the state of a ledger entry
type TxStatus string

const (
	StatusSuccessful TxStatus = "successful"
	StatusPending    TxStatus = "pending"
	StatusFailed     TxStatus = "failed"
)

// Transaction is an append-only ledger entry. Amount is signed: credits are
// positive, debits negative. Status is the only mutable field — the purchase
// engine finalizes pending rows and admins may override stuck ones.
type Transaction struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	UserEmail   string    `db:"user_email" json:"user_email"`
	Description string    `db:"description" json:"description"`
	Amount      float64   `db:"amount" json:"amount"`
	Type        TxType    `db:"type" json:"type"`
	Status      TxStatus  `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// Structured purchase linkage (nullable for plain wallet entries)
	RequestID   uuid.NullUUID `db:"request_id" json:"request_id,omitempty"`
	ServiceID   uuid.NullUUID `db:"service_id" json:"service_id,omitempty"`
	VariationID *string       `db:"variation_id" json:"variation_id,omitempty"`

	// Acting admin for manual adjustments
	AdminID uuid.NullUUID `db:"admin_id" json:"admin_id,omitempty"`

	// Raw upstream response for purchases
	ProviderResponse json.RawMessage `db:"provider_response" json:"provider_response,omitempty"`
}
