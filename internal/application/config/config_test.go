package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "monitor.config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
base_url: https://pangolin.example.com
email: admin@example.com
password: hunter2
org_id: myorg
pushover:
  token: apptoken
  user: userkey
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.PollIntervalSeconds)
	assert.Equal(t, time.Minute, cfg.PollInterval())
	assert.Equal(t, float64(1000), cfg.WarningMB)
	assert.Equal(t, float64(2000), cfg.CriticalMB)
	assert.Equal(t, "/var/run/docker.sock", cfg.DockerSocket)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout())
	assert.NotEmpty(t, cfg.SessionFile)
	assert.Empty(t, cfg.Containers)
}

func TestLoadExplicitValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
poll_interval_seconds: 30
warning_mb: 500
critical_mb: 800
containers:
  - pangolin
  - gerbil
  - traefik
log_level: debug
http_timeout_seconds: 5
`))
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.PollInterval())
	assert.Equal(t, float64(500), cfg.WarningMB)
	assert.Equal(t, float64(800), cfg.CriticalMB)
	assert.Equal(t, []string{"pangolin", "gerbil", "traefik"}, cfg.Containers)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PANGOMON_PASSWORD", "from-env")
	t.Setenv("PANGOMON_PUSHOVER_TOKEN", "token-env")
	t.Setenv("PANGOMON_PUSHOVER_USER", "user-env")

	cfg, err := Load(writeConfig(t, `
base_url: https://pangolin.example.com
email: admin@example.com
org_id: myorg
pushover: {}
`))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Password)
	assert.Equal(t, "token-env", cfg.Pushover.Token)
	assert.Equal(t, "user-env", cfg.Pushover.User)
}

func TestLoadValidation(t *testing.T) {
	// Neutralize any ambient overrides so the file contents decide.
	t.Setenv(envPassword, "")
	t.Setenv(envPushoverToken, "")
	t.Setenv(envPushoverUser, "")

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing base url",
			content: "email: a@b.c\npassword: x\norg_id: o\npushover: {token: t, user: u}\n",
			wantErr: "base_url",
		},
		{
			name:    "missing password",
			content: "base_url: https://x\nemail: a@b.c\norg_id: o\npushover: {token: t, user: u}\n",
			wantErr: "password",
		},
		{
			name:    "missing org",
			content: "base_url: https://x\nemail: a@b.c\npassword: p\npushover: {token: t, user: u}\n",
			wantErr: "org_id",
		},
		{
			name:    "missing pushover",
			content: "base_url: https://x\nemail: a@b.c\npassword: p\norg_id: o\n",
			wantErr: "pushover",
		},
		{
			name:    "critical below warning",
			content: minimalConfig + "warning_mb: 2000\ncritical_mb: 1000\n",
			wantErr: "critical_mb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
