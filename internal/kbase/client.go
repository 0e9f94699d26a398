// Package kbase implements thin HTTP clients for the KBase platform
// services: the workspace JSON-RPC API, the auth token endpoint, and the
// genome export endpoint.
package kbase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/genomedepot/kbfetch/internal/genome"
)

// rpcRequest is a KBase JSON-RPC 1.1 call envelope.
type rpcRequest struct {
	Version string `json:"version"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// rpcError carries the service-side error detail of a failed call.
type rpcError struct {
	Name    string `json:"name"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"error"`
}

type rpcResponse struct {
	Version string            `json:"version"`
	Result  []json.RawMessage `json:"result"`
	Error   *rpcError         `json:"error"`
}

// Client speaks JSON-RPC 1.1 to the workspace service.
type Client struct {
	httpClient *http.Client
	url        string
	token      string
	logger     *zap.Logger
}

// NewClient returns a workspace client for the given service URL and token.
func NewClient(httpClient *http.Client, url, token string, logger *zap.Logger) *Client {
	return &Client{httpClient: httpClient, url: url, token: token, logger: logger}
}

// call issues one JSON-RPC request and returns the first result element.
func (c *Client) call(ctx context.Context, method string, param any) (json.RawMessage, error) {
	envelope := rpcRequest{
		Version: "1.1",
		ID:      uuid.NewString(),
		Method:  method,
		Params:  []any{param},
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only close

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", method, err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%s rejected with status %d: %w", method, resp.StatusCode, genome.ErrAuthentication)
	}

	var parsed rpcResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode %s response (status %d): %w", method, resp.StatusCode, err)
	}
	if parsed.Error != nil {
		return nil, classifyRPCError(method, parsed.Error)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s returned status %d", method, resp.StatusCode)
	}
	if len(parsed.Result) == 0 {
		return nil, fmt.Errorf("%s returned no result", method)
	}
	return parsed.Result[0], nil
}

// classifyRPCError maps service error text onto the pipeline error kinds.
func classifyRPCError(method string, e *rpcError) error {
	msg := strings.ToLower(e.Message)
	switch {
	case strings.Contains(msg, "token") || strings.Contains(msg, "login") || strings.Contains(msg, "auth"):
		return fmt.Errorf("%s: %s: %w", method, e.Message, genome.ErrAuthentication)
	case strings.Contains(msg, "no workspace") ||
		strings.Contains(msg, "is deleted") ||
		strings.Contains(msg, "may not read"):
		return fmt.Errorf("%s: %s: %w", method, e.Message, genome.ErrNotFound)
	default:
		return fmt.Errorf("%s failed: %s", method, e.Message)
	}
}
