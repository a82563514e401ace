package pangolin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pangolin-monitor/internal/domain/model"
	"pangolin-monitor/pkg/log"
)

const (
	// apiBasePath is the versioned API prefix; endpoints passed to Request
	// are relative to it.
	apiBasePath = "/api/v1"

	rateLimitHeader        = "X-RateLimit-Remaining"
	rateLimitWarnThreshold = 10
)

// Client issues authenticated requests against the target management API
// through the session manager. It transparently re-authenticates once when a
// request comes back Unauthorized and surfaces the rate-limit budget as a log
// warning.
type Client struct {
	baseURL    string
	session    *SessionManager
	httpClient *http.Client
}

// NewClient creates an API client on top of an established session manager.
func NewClient(baseURL string, session *SessionManager, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    session,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Request performs method on an endpoint relative to the versioned API base
// path and returns the raw response body. A session is established first if
// none is active. When the response body reports Unauthorized the session is
// invalidated, re-established, and the request retried exactly once; a second
// Unauthorized fails the call.
func (c *Client) Request(ctx context.Context, method, endpoint string) ([]byte, error) {
	if !c.session.IsActive() {
		if err := c.session.Establish(ctx); err != nil {
			return nil, err
		}
	}

	body, unauthorized, err := c.do(ctx, method, endpoint)
	if err != nil {
		return nil, err
	}
	if !unauthorized {
		return body, nil
	}

	log.Info("session rejected by server, re-authenticating", "endpoint", endpoint)
	c.session.Invalidate()
	if err := c.session.Establish(ctx); err != nil {
		return nil, err
	}

	body, unauthorized, err = c.do(ctx, method, endpoint)
	if err != nil {
		return nil, err
	}
	if unauthorized {
		return nil, &AuthError{Message: unauthorizedMessage}
	}
	return body, nil
}

// ListSites fetches the organization's site list and converts it into the
// domain report. A non-success envelope is returned as an EnvelopeError.
func (c *Client) ListSites(ctx context.Context, orgID string) (*model.SiteReport, error) {
	endpoint := "/org/" + orgID + "/sites"
	body, err := c.Request(ctx, http.MethodGet, endpoint)
	if err != nil {
		return nil, err
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode site list response: %w", err)
	}
	if !env.Success {
		return nil, &EnvelopeError{Endpoint: endpoint, Message: env.Message}
	}

	var payload siteListPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode site list payload: %w", err)
	}
	return payload.toReport(), nil
}

// do performs a single authenticated exchange. It returns the body, whether
// the server rejected the session, or a transport-level error.
func (c *Client) do(ctx context.Context, method, endpoint string) (respBody []byte, unauthorized bool, err error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiBasePath+endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	setCommonHeaders(req, c.baseURL)
	if name, value := c.session.Cookie(); name != "" {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("%s %s failed: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read response body: %w", err)
	}
	log.Debug("api response", "method", method, "endpoint", endpoint, "status_code", resp.StatusCode, "body", string(body))

	c.checkRateLimit(resp, endpoint)

	// The session can be rejected either at the transport level or inside
	// a 200 envelope; both carry the same body-level marker.
	var env Envelope
	if json.Unmarshal(body, &env) == nil && env.Message == unauthorizedMessage {
		return body, true, nil
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, false, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, false, nil
}

// checkRateLimit logs a warning when the remaining request budget runs low.
// Informational only: the monitor never throttles itself. Header lookup is
// case-insensitive through Go's header canonicalization.
func (c *Client) checkRateLimit(resp *http.Response, endpoint string) {
	v := resp.Header.Get(rateLimitHeader)
	if v == "" {
		return
	}
	remaining, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return
	}
	if remaining < rateLimitWarnThreshold {
		log.Warn("API rate limit nearly exhausted", "endpoint", endpoint, "remaining", remaining)
	}
}
