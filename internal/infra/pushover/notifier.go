package pushover

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pangolin-monitor/internal/domain/model"
	"pangolin-monitor/pkg/log"
)

// DefaultEndpoint is the hosted Pushover message API. The endpoint is
// configurable for self-hosted relays and tests.
const DefaultEndpoint = "https://api.pushover.net/1/messages.json"

// Notifier delivers priority-tagged messages to the Pushover API. Delivery is
// best-effort: callers are expected to log a failed Send and move on rather
// than retry or abort a cycle over it.
type Notifier struct {
	endpoint   string
	token      string
	user       string
	title      string
	httpClient *http.Client
}

// New creates a notifier. An empty endpoint selects the hosted API.
func New(endpoint, token, user, title string, timeout time.Duration) *Notifier {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Notifier{
		endpoint:   endpoint,
		token:      token,
		user:       user,
		title:      title,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether the notifier has credentials to deliver with.
func (n *Notifier) Enabled() bool {
	return n.token != "" && n.user != ""
}

type apiResponse struct {
	Status int      `json:"status"`
	Errors []string `json:"errors"`
}

// Send posts one message at the given priority.
func (n *Notifier) Send(ctx context.Context, message string, priority model.Priority) error {
	if !n.Enabled() {
		return fmt.Errorf("pushover notifier not configured")
	}

	form := url.Values{}
	form.Set("token", n.token)
	form.Set("user", n.user)
	form.Set("message", message)
	form.Set("priority", string(priority))
	if n.title != "" {
		form.Set("title", n.title)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notification request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	if resp.StatusCode >= 300 {
		return fmt.Errorf("pushover status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err == nil && apiResp.Status != 1 {
		return fmt.Errorf("pushover rejected message: %s", strings.Join(apiResp.Errors, "; "))
	}

	log.Debug("notification delivered", "priority", string(priority), "message", message)
	return nil
}
