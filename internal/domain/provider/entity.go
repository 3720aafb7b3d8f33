package provider

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Status represents provider availability
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Priority orders failover: primary providers are tried before fallbacks
type Priority string

const (
	PriorityPrimary  Priority = "primary"
	PriorityFallback Priority = "fallback"
)

// AuthScheme values match internal/pkg/billing
const (
	AuthNone       = "none"
	AuthToken      = "token"
	AuthAPIKey     = "api_key"
	AuthMonnify    = "monnify"
	AuthVPay       = "vpay"
	AuthPaylony    = "paylony"
	AuthStrowallet = "strowallet"
)

// Provider represents an external billing API configuration
type Provider struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	BaseURL    string    `db:"base_url" json:"base_url"`
	Status     Status    `db:"status" json:"status"`
	Priority   Priority  `db:"priority" json:"priority"`
	AuthScheme string    `db:"auth_scheme" json:"auth_scheme"`
	APIKey     string    `db:"api_key" json:"-"`
	APISecret  string    `db:"api_secret" json:"-"`
	TxnCharge  float64   `db:"txn_charge" json:"txn_charge"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`

	// JSONB column — raw DB storage
	CustomHeadersRaw []byte `db:"custom_headers" json:"-"`

	// Parsed map — populated after scanning
	CustomHeaders map[string]string `db:"-" json:"custom_headers,omitempty"`
}

// ParseJSONB parses the raw custom headers column. Must be called after DB scan.
func (p *Provider) ParseJSONB() {
	if len(p.CustomHeadersRaw) > 0 {
		_ = json.Unmarshal(p.CustomHeadersRaw, &p.CustomHeaders)
	}
}

// EncodeHeaders serializes custom headers back into the raw column
func (p *Provider) EncodeHeaders() error {
	if p.CustomHeaders == nil {
		p.CustomHeadersRaw = nil
		return nil
	}
	raw, err := json.Marshal(p.CustomHeaders)
	if err != nil {
		return err
	}
	p.CustomHeadersRaw = raw
	return nil
}
