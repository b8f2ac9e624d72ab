package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"evzone/backend/libs/auth"
	"evzone/backend/libs/httpx"
)

// HTTPDoer defines http.Client interface subset.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// UpstreamError is returned for non-2xx answers from a resource service.
type UpstreamError struct {
	Status int
	Body   []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, strings.TrimSpace(string(e.Body)))
}

// BaseClient provides simple GET/POST helpers.
type BaseClient struct {
	baseURL string
	client  HTTPDoer
}

// NewBaseClient builds client with base URL.
func NewBaseClient(baseURL string, client HTTPDoer) *BaseClient {
	return &BaseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (c *BaseClient) buildURL(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// Do executes HTTP request and returns status/body. The request id of ctx is forwarded.
func (c *BaseClient) Do(ctx context.Context, method, path string, query url.Values, body []byte, token string) (int, []byte, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, query), reader)
	if err != nil {
		return 0, nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", auth.BearerHeader(token))
	}
	if id := httpx.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(httpx.RequestIDHeader, id)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, respBody, nil
}

// GetJSON performs a GET and decodes a 2xx body into dst.
func (c *BaseClient) GetJSON(ctx context.Context, path string, query url.Values, token string, dst interface{}) error {
	status, body, err := c.Do(ctx, http.MethodGet, path, query, nil, token)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return &UpstreamError{Status: status, Body: body}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// NewDefaultHTTPClient returns *http.Client with timeout.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
