package kbase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/genomedepot/kbfetch/internal/genome"
)

// AuthClient validates tokens against the auth service token endpoint.
type AuthClient struct {
	httpClient *http.Client
	url        string
	token      string
	logger     *zap.Logger
}

// NewAuthClient returns an AuthClient for the given endpoint and token.
func NewAuthClient(httpClient *http.Client, url, token string, logger *zap.Logger) *AuthClient {
	return &AuthClient{httpClient: httpClient, url: url, token: token, logger: logger}
}

// WhoAmI checks the token and returns the username it belongs to.
func (a *AuthClient) WhoAmI(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.url, nil)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", a.token)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("check token: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only close

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		var parsed struct {
			User string `json:"user"`
		}
		if err := json.Unmarshal(body, &parsed); err != nil {
			return "", fmt.Errorf("decode token response: %w", err)
		}
		if parsed.User == "" {
			return "", fmt.Errorf("token response carries no user")
		}
		return parsed.User, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return "", fmt.Errorf("invalid token: %s: %w", strings.TrimSpace(string(body)), genome.ErrAuthentication)
	default:
		return "", fmt.Errorf("token check returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}
