package billing

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Auth schemes supported by upstream billing APIs
const (
	AuthNone       = "none"
	AuthToken      = "token"
	AuthAPIKey     = "api_key"
	AuthMonnify    = "monnify"
	AuthVPay       = "vpay"
	AuthPaylony    = "paylony"
	AuthStrowallet = "strowallet"
)

// ProviderConfig holds what the client needs to talk to one billing API
type ProviderConfig struct {
	Name          string
	BaseURL       string
	AuthScheme    string
	APIKey        string
	APISecret     string
	CustomHeaders map[string]string
}

// Response is a normalized upstream response
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// APIError carries the provider's own error text for non-2xx responses
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.Provider, e.StatusCode, e.Message)
}

// Client posts JSON requests to billing provider APIs. One instance is shared
// across providers; VPay bearer tokens are cached per base URL.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration

	mu         sync.Mutex
	vpayTokens map[string]vpayToken
}

// NewClient creates a billing API client
func NewClient(timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
		vpayTokens: make(map[string]vpayToken),
	}
}

// Do posts payload to baseURL+endpoint with the provider's auth scheme applied.
// Non-2xx responses return *APIError; transport failures return a wrapped error.
func (c *Client) Do(ctx context.Context, cfg ProviderConfig, endpoint string, payload map[string]interface{}) (*Response, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("provider config error: base_url is empty for %s", cfg.Name)
	}

	if cfg.AuthScheme == AuthStrowallet {
		// Strowallet expects credentials inside the request body
		payload = mergeCredentials(payload, cfg)
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode provider request: %w", err)
	}

	url := strings.TrimRight(cfg.BaseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("provider api call failed: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if err := c.setAuthHeader(ctx, httpReq, cfg); err != nil {
		return nil, err
	}
	for k, v := range cfg.CustomHeaders {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("provider api call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("provider api call failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Provider:   cfg.Name,
			StatusCode: resp.StatusCode,
			Message:    extractMessage(body),
			Body:       string(body),
		}
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

func (c *Client) setAuthHeader(ctx context.Context, req *http.Request, cfg ProviderConfig) error {
	switch cfg.AuthScheme {
	case AuthNone, AuthStrowallet, "":
		return nil
	case AuthToken:
		req.Header.Set("Authorization", "Token "+cfg.APIKey)
	case AuthAPIKey:
		req.Header.Set("Authorization", cfg.APIKey)
	case AuthMonnify:
		creds := base64.StdEncoding.EncodeToString([]byte(cfg.APIKey + ":" + cfg.APISecret))
		req.Header.Set("Authorization", "Basic "+creds)
	case AuthPaylony:
		req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	case AuthVPay:
		token, err := c.vpayBearer(ctx, cfg)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	default:
		return fmt.Errorf("provider config error: unknown auth scheme %q for %s", cfg.AuthScheme, cfg.Name)
	}
	return nil
}

func mergeCredentials(payload map[string]interface{}, cfg ProviderConfig) map[string]interface{} {
	merged := make(map[string]interface{}, len(payload)+2)
	for k, v := range payload {
		merged[k] = v
	}
	merged["public_key"] = cfg.APIKey
	merged["secret_key"] = cfg.APISecret
	return merged
}

// extractMessage probes the field names different providers use for their
// error text, falling back to a generic message.
func extractMessage(body []byte) string {
	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, key := range []string{"message", "msg", "statusMessage"} {
			if v, ok := parsed[key]; ok {
				if s, ok := v.(string); ok && s != "" {
					return s
				}
			}
		}
	}
	return "provider request failed"
}
