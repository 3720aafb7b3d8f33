package catalog

// VariationInput mirrors Variation for admin writes
type VariationInput struct {
	ID       string           `json:"id" validate:"required,min=1,max=100"`
	Name     string           `json:"name" validate:"required,min=1,max=200"`
	Price    float64          `json:"price" validate:"gte=0"`
	Fees     Fees             `json:"fees"`
	Children []VariationInput `json:"children,omitempty" validate:"dive"`
}

// CreateServiceRequest for POST /admin/services
type CreateServiceRequest struct {
	Name        string           `json:"name" validate:"required,min=2,max=200"`
	ProviderKey string           `json:"provider_key" validate:"max=100"`
	Category    string           `json:"category" validate:"required,category"`
	ProviderID  string           `json:"provider_id" validate:"omitempty,uuid"`
	Variations  []VariationInput `json:"variations" validate:"dive"`
}

// UpdateServiceRequest for PUT /admin/services/{id}
type UpdateServiceRequest struct {
	Name        string           `json:"name" validate:"required,min=2,max=200"`
	ProviderKey string           `json:"provider_key" validate:"max=100"`
	Category    string           `json:"category" validate:"required,category"`
	Status      string           `json:"status" validate:"required,oneof=active inactive"`
	ProviderID  string           `json:"provider_id" validate:"omitempty,uuid"`
	Variations  []VariationInput `json:"variations" validate:"dive"`
}

// BulkFeeRequest for POST /admin/services/fees/bulk
type BulkFeeRequest struct {
	Mode  string  `json:"mode" validate:"required,adjustmode"`
	Value float64 `json:"value" validate:"required,gt=0"`
}

func variationsFromInput(inputs []VariationInput) []Variation {
	if len(inputs) == 0 {
		return nil
	}
	out := make([]Variation, len(inputs))
	for i, in := range inputs {
		out[i] = Variation{
			ID:       in.ID,
			Name:     in.Name,
			Price:    Round2(in.Price),
			Fees:     Fees{Customer: Round2(in.Fees.Customer), Vendor: Round2(in.Fees.Vendor), Admin: Round2(in.Fees.Admin)},
			Children: variationsFromInput(in.Children),
		}
	}
	return out
}
