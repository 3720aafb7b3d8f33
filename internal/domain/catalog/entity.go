package catalog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/vtuboss/vtuboss-api/internal/domain/user"
)

// Category represents a purchasable service category
type Category string

const (
	CategoryAirtime      Category = "airtime"
	CategoryData         Category = "data"
	CategoryElectricity  Category = "electricity"
	CategoryCable        Category = "cable"
	CategoryEducation    Category = "education"
	CategoryRechargeCard Category = "recharge_card"
)

// UsesCallerAmount reports whether the purchase amount comes from the caller
// instead of the variation's fixed price.
func (c Category) UsesCallerAmount() bool {
	return c == CategoryAirtime || c == CategoryElectricity
}

// Status represents service availability
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Fees maps the closed set of consumer roles to a service fee.
// Roles outside the set (super admin) pay no fee.
type Fees struct {
	Customer float64 `json:"customer"`
	Vendor   float64 `json:"vendor"`
	Admin    float64 `json:"admin"`
}

// For returns the fee for a role, defaulting to 0 for unmapped roles
func (f Fees) For(role user.Role) float64 {
	switch role {
	case user.RoleCustomer:
		return f.Customer
	case user.RoleVendor:
		return f.Vendor
	case user.RoleAdmin:
		return f.Admin
	default:
		return 0
	}
}

// Variation is a purchasable offering under a service. Recharge card
// variations nest denominations under a network via Children.
type Variation struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Price    float64     `json:"price"`
	Fees     Fees        `json:"fees"`
	Children []Variation `json:"children,omitempty"`
}

// Service represents a purchasable offering family
type Service struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	Name        string        `db:"name" json:"name"`
	ProviderKey string        `db:"provider_key" json:"provider_key"`
	Category    Category      `db:"category" json:"category"`
	Status      Status        `db:"status" json:"status"`
	ProviderID  uuid.NullUUID `db:"provider_id" json:"provider_id,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`

	// JSONB column — raw DB storage
	VariationsRaw []byte `db:"variations" json:"-"`

	// Parsed list — populated after scanning
	Variations []Variation `db:"-" json:"variations"`
}

// ParseJSONB parses the raw variations column. Must be called after DB scan.
func (s *Service) ParseJSONB() {
	if len(s.VariationsRaw) > 0 {
		_ = json.Unmarshal(s.VariationsRaw, &s.Variations)
	}
}

// EncodeVariations serializes the parsed variations back into the raw column
func (s *Service) EncodeVariations() error {
	raw, err := json.Marshal(s.Variations)
	if err != nil {
		return err
	}
	s.VariationsRaw = raw
	return nil
}

// FindVariation resolves a variation by id, descending into children
func (s *Service) FindVariation(id string) *Variation {
	return findVariation(s.Variations, id)
}

func findVariation(list []Variation, id string) *Variation {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
		if v := findVariation(list[i].Children, id); v != nil {
			return v
		}
	}
	return nil
}
