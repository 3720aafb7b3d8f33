package purchase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vtuboss/vtuboss-api/internal/domain/catalog"
	"github.com/vtuboss/vtuboss-api/internal/pkg/billing"
)

func captureServer(t *testing.T, captured *map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		w.Write([]byte(`{"status":"successful"}`))
	}))
}

func TestElectricityFulfillerPostsMeterPayload(t *testing.T) {
	var payload map[string]interface{}
	srv := captureServer(t, &payload)
	defer srv.Close()

	f := &electricityFulfiller{client: billing.NewClient(time.Second)}
	_, err := f.Fulfill(context.Background(), &Call{
		Provider:    billing.ProviderConfig{Name: "upstream", BaseURL: srv.URL, AuthScheme: billing.AuthNone},
		ProviderKey: "ikeja-electric",
		Amount:      3000,
		Inputs:      map[string]string{"meter_number": "45060512345", "meter_type": "prepaid"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if payload["disco_name"] != "ikeja-electric" {
		t.Fatalf("expected disco_name ikeja-electric, got %v", payload["disco_name"])
	}
	if payload["meter_number"] != "45060512345" {
		t.Fatalf("expected meter number, got %v", payload["meter_number"])
	}
	if payload["MeterType"] != float64(1) {
		t.Fatalf("expected prepaid MeterType 1, got %v", payload["MeterType"])
	}
	if payload["amount"] != float64(3000) {
		t.Fatalf("expected amount 3000, got %v", payload["amount"])
	}
}

func TestElectricityFulfillerRequiresMeterNumber(t *testing.T) {
	f := &electricityFulfiller{client: billing.NewClient(time.Second)}
	_, err := f.Fulfill(context.Background(), &Call{Inputs: map[string]string{}})
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
}

func TestEducationFulfillerDefaultsQuantity(t *testing.T) {
	var payload map[string]interface{}
	srv := captureServer(t, &payload)
	defer srv.Close()

	f := &educationFulfiller{client: billing.NewClient(time.Second)}
	_, err := f.Fulfill(context.Background(), &Call{
		Provider:    billing.ProviderConfig{Name: "upstream", BaseURL: srv.URL, AuthScheme: billing.AuthNone},
		ProviderKey: "waec",
		Inputs:      map[string]string{},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if payload["exam_name"] != "waec" || payload["quantity"] != float64(1) {
		t.Fatalf("expected waec x1, got %v", payload)
	}
}

func TestEducationFulfillerRejectsBadQuantity(t *testing.T) {
	f := &educationFulfiller{client: billing.NewClient(time.Second)}
	for _, q := range []string{"0", "-2", "abc"} {
		_, err := f.Fulfill(context.Background(), &Call{Inputs: map[string]string{"quantity": q}})
		if !errors.Is(err, ErrMissingInput) {
			t.Fatalf("quantity %q: expected ErrMissingInput, got %v", q, err)
		}
	}
}

func TestStubFulfillerSynthesizesSuccess(t *testing.T) {
	f := &stubFulfiller{}
	raw, err := f.Fulfill(context.Background(), &Call{Variation: &catalog.Variation{Name: "DStv Compact"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	var body map[string]string
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["status"] != "successful" || body["source"] != "simulated" {
		t.Fatalf("unexpected body: %v", body)
	}
}
