package provider

// UpsertRequest for POST /admin/providers and PUT /admin/providers/{id}
type UpsertRequest struct {
	Name          string            `json:"name" validate:"required,min=2,max=200"`
	BaseURL       string            `json:"base_url" validate:"required,url"`
	Status        string            `json:"status" validate:"omitempty,oneof=active inactive"`
	Priority      string            `json:"priority" validate:"omitempty,oneof=primary fallback"`
	AuthScheme    string            `json:"auth_scheme" validate:"required,authscheme"`
	APIKey        string            `json:"api_key" validate:"max=500"`
	APISecret     string            `json:"api_secret" validate:"max=500"`
	CustomHeaders map[string]string `json:"custom_headers,omitempty"`
	TxnCharge     float64           `json:"txn_charge" validate:"gte=0"`
}
