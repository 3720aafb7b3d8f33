package billing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestDoTokenAuthHeader(t *testing.T) {
	var gotAuth string
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"ok"}`))
	})

	c := NewClient(5 * time.Second)
	_, err := c.Do(context.Background(), ProviderConfig{
		Name: "husmo", BaseURL: srv.URL, AuthScheme: AuthToken, APIKey: "abc123",
	}, "billpayment/", map[string]interface{}{"amount": 1000})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotAuth != "Token abc123" {
		t.Fatalf("expected Token auth header, got %q", gotAuth)
	}
}

func TestDoRawAPIKeyHeader(t *testing.T) {
	var gotAuth string
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	c := NewClient(5 * time.Second)
	_, err := c.Do(context.Background(), ProviderConfig{
		Name: "legacy", BaseURL: srv.URL, AuthScheme: AuthAPIKey, APIKey: "raw-key",
	}, "epin/", nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotAuth != "raw-key" {
		t.Fatalf("expected raw key auth header, got %q", gotAuth)
	}
}

func TestDoMonnifyBasicAuth(t *testing.T) {
	var gotAuth string
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	c := NewClient(5 * time.Second)
	_, err := c.Do(context.Background(), ProviderConfig{
		Name: "monnify", BaseURL: srv.URL, AuthScheme: AuthMonnify, APIKey: "key", APISecret: "secret",
	}, "billpayment/", nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// base64("key:secret")
	if gotAuth != "Basic a2V5OnNlY3JldA==" {
		t.Fatalf("expected basic auth header, got %q", gotAuth)
	}
}

func TestDoStrowalletCredentialsInBody(t *testing.T) {
	var gotBody map[string]interface{}
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{}`))
	})

	c := NewClient(5 * time.Second)
	_, err := c.Do(context.Background(), ProviderConfig{
		Name: "strowallet", BaseURL: srv.URL, AuthScheme: AuthStrowallet, APIKey: "pub", APISecret: "sec",
	}, "billpayment/", map[string]interface{}{"amount": 500})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotBody["public_key"] != "pub" || gotBody["secret_key"] != "sec" {
		t.Fatalf("expected credentials merged into body, got %v", gotBody)
	}
	if gotBody["amount"] != float64(500) {
		t.Fatalf("payload fields should be preserved, got %v", gotBody)
	}
}

func TestDoCustomHeaders(t *testing.T) {
	var gotHeader string
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Partner-Id")
		w.Write([]byte(`{}`))
	})

	c := NewClient(5 * time.Second)
	_, err := c.Do(context.Background(), ProviderConfig{
		Name: "partner", BaseURL: srv.URL, AuthScheme: AuthNone,
		CustomHeaders: map[string]string{"X-Partner-Id": "p-42"},
	}, "billpayment/", nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotHeader != "p-42" {
		t.Fatalf("expected custom header to be sent, got %q", gotHeader)
	}
}

func TestDoNonOKProbesMessageFields(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message", `{"message":"insufficient provider float"}`, "insufficient provider float"},
		{"msg", `{"msg":"meter not found"}`, "meter not found"},
		{"statusMessage", `{"statusMessage":"exam unavailable"}`, "exam unavailable"},
		{"fallback", `{"weird":"shape"}`, "provider request failed"},
		{"not json", `upstream exploded`, "provider request failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tc.body))
			})

			c := NewClient(5 * time.Second)
			_, err := c.Do(context.Background(), ProviderConfig{
				Name: "p", BaseURL: srv.URL, AuthScheme: AuthNone,
			}, "billpayment/", nil)

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.Message != tc.want {
				t.Fatalf("expected message %q, got %q", tc.want, apiErr.Message)
			}
			if apiErr.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", apiErr.StatusCode)
			}
		})
	}
}

func TestDoEmptyBaseURL(t *testing.T) {
	c := NewClient(5 * time.Second)
	_, err := c.Do(context.Background(), ProviderConfig{Name: "p"}, "billpayment/", nil)
	if err == nil {
		t.Fatal("expected config error for empty base url")
	}
}
