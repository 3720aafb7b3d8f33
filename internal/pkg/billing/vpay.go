package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// vpayTokenTTL is conservative; VPay tokens live longer but re-login is cheap.
const vpayTokenTTL = 30 * time.Minute

type vpayToken struct {
	value     string
	expiresAt time.Time
}

// vpayBearer returns a cached bearer token for the given VPay provider,
// minting one through the login endpoint when absent or expired.
func (c *Client) vpayBearer(ctx context.Context, cfg ProviderConfig) (string, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")

	c.mu.Lock()
	if tok, ok := c.vpayTokens[base]; ok && time.Now().Before(tok.expiresAt) {
		c.mu.Unlock()
		return tok.value, nil
	}
	c.mu.Unlock()

	token, err := c.vpayLogin(ctx, cfg, base)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.vpayTokens[base] = vpayToken{value: token, expiresAt: time.Now().Add(vpayTokenTTL)}
	c.mu.Unlock()

	return token, nil
}

func (c *Client) vpayLogin(ctx context.Context, cfg ProviderConfig, base string) (string, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return "", fmt.Errorf("provider config error: vpay credentials missing for %s", cfg.Name)
	}

	body, err := json.Marshal(map[string]string{
		"username": cfg.APIKey,
		"password": cfg.APISecret,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode vpay login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/login", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("vpay login failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("vpay login failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("vpay login failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{
			Provider:   cfg.Name,
			StatusCode: resp.StatusCode,
			Message:    extractMessage(raw),
			Body:       string(raw),
		}
	}

	var parsed struct {
		Token string `json:"token"`
		Data  struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse vpay login response: %w", err)
	}

	token := parsed.Token
	if token == "" {
		token = parsed.Data.AccessToken
	}
	if token == "" {
		return "", fmt.Errorf("vpay login response contained no token")
	}
	return token, nil
}
