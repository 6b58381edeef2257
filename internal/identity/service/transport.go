package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single upstream request.
const DefaultTimeout = 30 * time.Second

const defaultRequestsPerSec = 50

// Transport posts one JSON payload to a project-relative path and
// returns the decoded response body, or nil when the body is empty.
// Implementations own authentication, TLS, retries and timeouts; the
// account service treats transport failures as opaque and passes them
// through unchanged.
type Transport interface {
	Post(ctx context.Context, path string, payload map[string]interface{}) (map[string]interface{}, error)
}

// HTTPTransport talks to the identity-toolkit REST API for one
// project. Safe for concurrent use.
type HTTPTransport struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewHTTPTransport builds a transport rooted at
// <baseURL>/projects/<projectID>. The token source, when non-nil,
// supplies OAuth2 credentials for every request.
func NewHTTPTransport(baseURL, projectID string, ts oauth2.TokenSource, requestsPerSec int) *HTTPTransport {
	client := &http.Client{Timeout: DefaultTimeout}
	if ts != nil {
		client = oauth2.NewClient(context.Background(), ts)
		client.Timeout = DefaultTimeout
	}
	if requestsPerSec <= 0 {
		requestsPerSec = defaultRequestsPerSec
	}
	return &HTTPTransport{
		baseURL:    strings.TrimSuffix(baseURL, "/") + "/projects/" + projectID,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSec), requestsPerSec),
	}
}

// Post sends a JSON POST to the given project-relative path. Paths
// starting with ":" attach directly to the project segment
// (projects/<id>:createSessionCookie); all others join with a slash.
func (t *HTTPTransport) Post(ctx context.Context, path string, payload map[string]interface{}) (map[string]interface{}, error) {
	logger := NewLogger(ctx)
	start := time.Now()

	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	reqURL := t.baseURL + "/" + path
	if strings.HasPrefix(path, ":") {
		reqURL = t.baseURL + path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		logger.LogError(path, err)
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		logger.LogError(path, err)
		recordUpstreamCall(duration, err)
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		recordUpstreamCall(duration, err)
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		err := fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, string(respBody))
		logger.LogWarnf(path, "upstream returned status %d", resp.StatusCode)
		recordUpstreamCall(duration, err)
		return nil, err
	}
	recordUpstreamCall(duration, nil)

	if len(respBody) == 0 {
		return nil, nil
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	return decoded, nil
}
