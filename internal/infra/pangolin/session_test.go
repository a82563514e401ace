package pangolin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pangolin-monitor/internal/domain/model"
)

type recordedAlert struct {
	message  string
	priority model.Priority
}

type fakeNotifier struct {
	alerts []recordedAlert
}

func (f *fakeNotifier) Send(_ context.Context, message string, priority model.Priority) error {
	f.alerts = append(f.alerts, recordedAlert{message: message, priority: priority})
	return nil
}

func newTestSession(t *testing.T, server *httptest.Server, notify Notifier) (*SessionManager, string) {
	t.Helper()
	sessionFile := filepath.Join(t.TempDir(), "session")
	return NewSessionManager(server.URL, Credentials{Email: "admin@example.com", Password: "hunter2"}, sessionFile, 5*time.Second, notify), sessionFile
}

func TestEstablishSuccess(t *testing.T) {
	var gotLogin loginRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, loginEndpoint, r.URL.Path)
		assert.Equal(t, "application/json; charset=utf-8", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, csrfToken, r.Header.Get(csrfHeader))
		assert.NotEmpty(t, r.Header.Get("Origin"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotLogin))

		http.SetCookie(w, &http.Cookie{Name: "p_session_token", Value: "abc123"})
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	notify := &fakeNotifier{}
	s, sessionFile := newTestSession(t, server, notify)

	require.NoError(t, s.Establish(context.Background()))
	assert.Equal(t, "admin@example.com", gotLogin.Email)
	assert.Equal(t, "hunter2", gotLogin.Password)

	assert.True(t, s.IsActive())
	name, value := s.Cookie()
	assert.Equal(t, "p_session_token", name)
	assert.Equal(t, "abc123", value)
	assert.Empty(t, notify.alerts)

	info, err := os.Stat(sessionFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	content, err := os.ReadFile(sessionFile)
	require.NoError(t, err)
	assert.Equal(t, "p_session_token=abc123\n", string(content))
}

func TestEstablishRejectedWithMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Invalid credentials"})
	}))
	defer server.Close()

	notify := &fakeNotifier{}
	s, sessionFile := newTestSession(t, server, notify)

	err := s.Establish(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Invalid credentials", authErr.Message)

	assert.False(t, s.IsActive())
	assert.NoFileExists(t, sessionFile)

	require.Len(t, notify.alerts, 1)
	assert.Equal(t, model.PriorityHigh, notify.alerts[0].priority)
	assert.Contains(t, notify.alerts[0].message, "Invalid credentials")
}

func TestEstablishSuccessEnvelopeWithoutCookieFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	notify := &fakeNotifier{}
	s, _ := newTestSession(t, server, notify)

	err := s.Establish(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Unknown error", authErr.Message)
	assert.False(t, s.IsActive())
}

func TestEstablishClearsStaleArtifactFirst(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false})
	}))
	defer server.Close()

	s, sessionFile := newTestSession(t, server, &fakeNotifier{})
	require.NoError(t, os.WriteFile(sessionFile, []byte("stale=cookie\n"), 0o600))

	require.Error(t, s.Establish(context.Background()))
	assert.NoFileExists(t, sessionFile, "a failed login must leave no artifact behind")
}

func TestInvalidateRemovesArtifact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "p_session", Value: "tok"})
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	s, sessionFile := newTestSession(t, server, &fakeNotifier{})
	require.NoError(t, s.Establish(context.Background()))
	assert.FileExists(t, sessionFile)

	s.Invalidate()
	assert.False(t, s.IsActive())
	assert.NoFileExists(t, sessionFile)
}

func TestLogoutSendsCookieAndInvalidates(t *testing.T) {
	var logoutCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case loginEndpoint:
			http.SetCookie(w, &http.Cookie{Name: "p_session", Value: "tok"})
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
		case logoutEndpoint:
			if c, err := r.Cookie("p_session"); err == nil {
				logoutCookie = c.Value
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
		}
	}))
	defer server.Close()

	s, sessionFile := newTestSession(t, server, &fakeNotifier{})
	require.NoError(t, s.Establish(context.Background()))

	require.NoError(t, s.Logout(context.Background()))
	assert.Equal(t, "tok", logoutCookie)
	assert.False(t, s.IsActive())
	assert.NoFileExists(t, sessionFile)
}

func TestLogoutWithoutSessionIsNoop(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer server.Close()

	s, _ := newTestSession(t, server, &fakeNotifier{})
	require.NoError(t, s.Logout(context.Background()))
}
