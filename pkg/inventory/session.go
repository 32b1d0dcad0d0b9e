// pkg/inventory/session.go

package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxErrorBody caps how much of a failed response ends up in a RequestError.
const maxErrorBody = 512

// HTTPDoer is the part of *http.Client a Session needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Session is the HTTP context shared by every step of one run. Reusing a
// single client keeps connections alive between calls.
type Session struct {
	BaseURL    string
	HTTPClient HTTPDoer
}

// NewSession creates a session against baseURL. A zero timeout leaves the
// client without one.
func NewSession(baseURL string, timeout time.Duration) *Session {
	return &Session{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Close releases idle keep-alive connections held by the session.
func (s *Session) Close() {
	if c, ok := s.HTTPClient.(interface{ CloseIdleConnections() }); ok {
		c.CloseIdleConnections()
	}
}

// Post sends payload as JSON to path.
func (s *Session) Post(ctx context.Context, step, path string, payload any) Result {
	return s.do(ctx, step, http.MethodPost, path, payload)
}

// Get fetches path.
func (s *Session) Get(ctx context.Context, step, path string) Result {
	return s.do(ctx, step, http.MethodGet, path, nil)
}

func (s *Session) do(ctx context.Context, step, method, path string, payload any) Result {
	res := Result{Step: step, Method: method, Path: path}
	url := s.BaseURL + path

	fail := func(status int, body string, err error) Result {
		res.Status = status
		res.Err = &RequestError{Step: step, Method: method, URL: url, Status: status, Body: body, Err: err}
		return res
	}

	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			return fail(0, "", fmt.Errorf("failed to marshal payload: %w", err))
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fail(0, "", fmt.Errorf("failed to create request: %w", err))
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fail(0, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, truncate(strings.TrimSpace(string(raw)), maxErrorBody), nil)
	}

	res.Status = resp.StatusCode
	if len(bytes.TrimSpace(raw)) == 0 {
		return res
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fail(resp.StatusCode, truncate(string(raw), maxErrorBody), fmt.Errorf("failed to decode response: %w", err))
	}
	res.Body = decoded
	res.Raw = raw
	return res
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
