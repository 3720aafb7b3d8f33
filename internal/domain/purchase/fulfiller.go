package purchase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vtuboss/vtuboss-api/internal/domain/catalog"
	"github.com/vtuboss/vtuboss-api/internal/pkg/billing"
)

// Call carries everything a fulfiller needs for one delivery attempt
// against one provider.
type Call struct {
	Provider    billing.ProviderConfig
	ProviderKey string
	Variation   *catalog.Variation
	Amount      float64
	Inputs      map[string]string
}

// Fulfiller delivers a purchase through a provider API. One implementation
// exists per category; adding a category means adding a type, not growing
// a switch.
type Fulfiller interface {
	Fulfill(ctx context.Context, call *Call) (json.RawMessage, error)
}

// NewFulfillers wires the per-category fulfillers around one billing client
func NewFulfillers(client *billing.Client) map[catalog.Category]Fulfiller {
	stub := &stubFulfiller{}
	return map[catalog.Category]Fulfiller{
		catalog.CategoryElectricity:  &electricityFulfiller{client: client},
		catalog.CategoryEducation:    &educationFulfiller{client: client},
		catalog.CategoryCable:        stub,
		catalog.CategoryAirtime:      stub,
		catalog.CategoryData:         stub,
		catalog.CategoryRechargeCard: stub,
	}
}

// electricityFulfiller posts meter top-ups to the provider's billpayment endpoint
type electricityFulfiller struct {
	client *billing.Client
}

func (f *electricityFulfiller) Fulfill(ctx context.Context, call *Call) (json.RawMessage, error) {
	meter := call.Inputs["meter_number"]
	if meter == "" {
		return nil, fmt.Errorf("%w: meter_number", ErrMissingInput)
	}

	// 1 = prepaid, 2 = postpaid
	meterType := 2
	if call.Inputs["meter_type"] == "prepaid" {
		meterType = 1
	}

	resp, err := f.client.Do(ctx, call.Provider, "billpayment/", map[string]interface{}{
		"disco_name":   call.ProviderKey,
		"amount":       call.Amount,
		"meter_number": meter,
		"MeterType":    meterType,
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// educationFulfiller buys exam e-pins through the provider's epin endpoint
type educationFulfiller struct {
	client *billing.Client
}

func (f *educationFulfiller) Fulfill(ctx context.Context, call *Call) (json.RawMessage, error) {
	quantity := 1
	if q := call.Inputs["quantity"]; q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("%w: quantity", ErrMissingInput)
		}
		quantity = parsed
	}

	resp, err := f.client.Do(ctx, call.Provider, "epin/", map[string]interface{}{
		"exam_name": call.ProviderKey,
		"quantity":  quantity,
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// stubFulfiller synthesizes a success for categories without a live
// upstream integration (cable, airtime, data, recharge cards).
type stubFulfiller struct{}

func (f *stubFulfiller) Fulfill(_ context.Context, call *Call) (json.RawMessage, error) {
	return SimulatedResponse(call.Variation.Name), nil
}

// SimulatedResponse is the synthesized success body used when no outbound
// call is made.
func SimulatedResponse(name string) json.RawMessage {
	raw, _ := json.Marshal(map[string]string{
		"status":  "successful",
		"message": name + " delivered",
		"source":  "simulated",
	})
	return raw
}
