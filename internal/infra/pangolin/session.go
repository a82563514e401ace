package pangolin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"pangolin-monitor/internal/domain/model"
	"pangolin-monitor/pkg/log"
)

const (
	loginEndpoint  = "/api/v1/auth/login"
	logoutEndpoint = "/api/v1/auth/logout"

	// sessionCookieMarker identifies the session cookie among whatever
	// cookies the server sets; the full name is deployment-dependent.
	sessionCookieMarker = "p_session"

	csrfHeader = "X-CSRF-Token"
	csrfToken  = "x-csrf-protection"
)

// Credentials are the login credentials for the target API.
type Credentials struct {
	Email    string
	Password string
}

// Notifier is the push notification sink the session manager reports login
// failures to.
type Notifier interface {
	Send(ctx context.Context, message string, priority model.Priority) error
}

// SessionManager owns the authentication lifecycle against the target API:
// login, session cookie storage, invalidation and logout. At most one session
// is held at a time; a failed login leaves none. The session cookie is
// mirrored into a restrictively-permissioned file that must not outlive the
// process, so Invalidate removes it on every path.
type SessionManager struct {
	baseURL     string
	creds       Credentials
	sessionFile string
	httpClient  *http.Client
	notify      Notifier

	cookieName string
	token      string
}

// NewSessionManager creates a session manager for the given API base URL.
// The session file is removed immediately so a cookie left behind by a
// previous run never survives a restart.
func NewSessionManager(baseURL string, creds Credentials, sessionFile string, timeout time.Duration, notify Notifier) *SessionManager {
	s := &SessionManager{
		baseURL:     strings.TrimRight(baseURL, "/"),
		creds:       creds,
		sessionFile: sessionFile,
		httpClient:  &http.Client{Timeout: timeout},
		notify:      notify,
	}
	s.removeArtifact()
	return s
}

// IsActive reports whether a session cookie is currently held.
func (s *SessionManager) IsActive() bool {
	return s.token != ""
}

// Cookie returns the current session cookie name and value. Both are empty
// when no session is active.
func (s *SessionManager) Cookie() (name, value string) {
	return s.cookieName, s.token
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Establish logs in and stores the resulting session cookie. Success requires
// both a success:true envelope and a session cookie in the response; either
// one alone is a failure even when the HTTP exchange itself succeeded. Any
// previously held session is dropped first so stale credentials never leak
// into a new one.
func (s *SessionManager) Establish(ctx context.Context) error {
	s.Invalidate()

	payload, err := json.Marshal(loginRequest{Email: s.creds.Email, Password: s.creds.Password})
	if err != nil {
		return fmt.Errorf("failed to marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+loginEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create login request: %w", err)
	}
	setCommonHeaders(req, s.baseURL)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read login response: %w", err)
	}
	log.Debug("login response", "status_code", resp.StatusCode, "body", string(body))

	// Decode is best-effort: a malformed body is handled the same way as
	// an explicit failure envelope.
	var env Envelope
	_ = json.Unmarshal(body, &env)

	cookie := sessionCookie(resp.Cookies())
	if !env.Success || cookie == nil {
		msg := env.Message
		if msg == "" {
			msg = "Unknown error"
		}
		log.Error("login rejected", "message", msg, "status_code", resp.StatusCode)
		s.sendAlert(ctx, fmt.Sprintf("Pangolin login failed: %s", msg))
		return &AuthError{Message: msg}
	}

	s.cookieName = cookie.Name
	s.token = cookie.Value
	if err := os.WriteFile(s.sessionFile, []byte(cookie.Name+"="+cookie.Value+"\n"), 0o600); err != nil {
		log.Warn("failed to write session file", "path", s.sessionFile, "error", err)
	}
	log.Info("session established", "cookie", cookie.Name)
	return nil
}

// Invalidate drops the in-memory session and removes the session file. Safe
// to call at any time, including when no session is active.
func (s *SessionManager) Invalidate() {
	s.cookieName = ""
	s.token = ""
	s.removeArtifact()
}

// Logout asks the server to end the current session, then invalidates it
// locally. Best-effort: the local session is dropped even when the server
// call fails.
func (s *SessionManager) Logout(ctx context.Context) error {
	if !s.IsActive() {
		s.Invalidate()
		return nil
	}
	defer s.Invalidate()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+logoutEndpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create logout request: %w", err)
	}
	setCommonHeaders(req, s.baseURL)
	req.AddCookie(&http.Cookie{Name: s.cookieName, Value: s.token})

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	log.Debug("logout response", "status_code", resp.StatusCode)
	return nil
}

func (s *SessionManager) sendAlert(ctx context.Context, message string) {
	if s.notify == nil {
		return
	}
	if err := s.notify.Send(ctx, message, model.PriorityHigh); err != nil {
		log.Warn("login failure notification not delivered", "error", err)
	}
}

func (s *SessionManager) removeArtifact() {
	if err := os.Remove(s.sessionFile); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to remove session file", "path", s.sessionFile, "error", err)
	}
}

// sessionCookie picks the session cookie out of a login response.
func sessionCookie(cookies []*http.Cookie) *http.Cookie {
	for _, c := range cookies {
		if strings.Contains(c.Name, sessionCookieMarker) {
			return c
		}
	}
	return nil
}

// setCommonHeaders applies the headers the target API expects on every
// request: JSON content negotiation plus the Origin and anti-CSRF headers its
// middleware requires.
func setCommonHeaders(req *http.Request, origin string) {
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Origin", origin)
	req.Header.Set(csrfHeader, csrfToken)
}
