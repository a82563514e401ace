package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	defaultPollIntervalSeconds = 60
	defaultWarningMB           = 1000
	defaultCriticalMB          = 2000
	defaultHTTPTimeoutSeconds  = 15
	defaultDockerSocket        = "/var/run/docker.sock"
	defaultLogLevel            = "info"
	defaultSessionFileName     = "pangolin-monitor.session"
)

// Environment variable overrides for secrets, so credentials can stay out of
// the config file under supervision systems that inject them.
const (
	envPassword      = "PANGOMON_PASSWORD"
	envPushoverToken = "PANGOMON_PUSHOVER_TOKEN"
	envPushoverUser  = "PANGOMON_PUSHOVER_USER"
)

// PushoverConfig holds the push notification credentials.
type PushoverConfig struct {
	// Endpoint overrides the hosted Pushover API URL; empty selects it.
	Endpoint string `yaml:"endpoint,omitempty"`
	Token    string `yaml:"token"`
	User     string `yaml:"user"`
}

// Config holds the monitor configuration.
type Config struct {
	// BaseURL is the root URL of the target Pangolin deployment.
	BaseURL string `yaml:"base_url"`
	// Email and Password authenticate against the management API. The
	// password may instead come from PANGOMON_PASSWORD.
	Email    string `yaml:"email"`
	Password string `yaml:"password,omitempty"`
	// OrgID is the organization whose sites are monitored.
	OrgID string `yaml:"org_id"`
	// PollIntervalSeconds is the pause between polling cycles.
	PollIntervalSeconds int `yaml:"poll_interval_seconds,omitempty"`
	// Containers lists the local container names checked every cycle.
	Containers []string `yaml:"containers,omitempty"`
	// WarningMB and CriticalMB are the bandwidth thresholds, evaluated
	// independently for the in and out totals.
	WarningMB  float64 `yaml:"warning_mb,omitempty"`
	CriticalMB float64 `yaml:"critical_mb,omitempty"`
	// Pushover configures the notification sink.
	Pushover PushoverConfig `yaml:"pushover"`
	// DockerSocket is the Docker daemon socket path.
	DockerSocket string `yaml:"docker_socket,omitempty"`
	// LogLevel is the minimum log level to output (debug, info, warn, error).
	LogLevel string `yaml:"log_level,omitempty"`
	// SessionFile is where the session cookie artifact is written.
	SessionFile string `yaml:"session_file,omitempty"`
	// HTTPTimeoutSeconds bounds every outbound HTTP request.
	HTTPTimeoutSeconds int `yaml:"http_timeout_seconds,omitempty"`
}

// Load reads, defaults and validates the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	prepareConfig(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(envPassword); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv(envPushoverToken); v != "" {
		cfg.Pushover.Token = v
	}
	if v := os.Getenv(envPushoverUser); v != "" {
		cfg.Pushover.User = v
	}
}

// prepareConfig ensures the configuration is valid by applying defaults.
func prepareConfig(cfg *Config) {
	if cfg.PollIntervalSeconds <= 0 {
		cfg.PollIntervalSeconds = defaultPollIntervalSeconds
	}
	if cfg.WarningMB <= 0 {
		cfg.WarningMB = defaultWarningMB
	}
	if cfg.CriticalMB <= 0 {
		cfg.CriticalMB = defaultCriticalMB
	}
	if cfg.HTTPTimeoutSeconds <= 0 {
		cfg.HTTPTimeoutSeconds = defaultHTTPTimeoutSeconds
	}
	if cfg.DockerSocket == "" {
		cfg.DockerSocket = defaultDockerSocket
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.SessionFile == "" {
		cfg.SessionFile = filepath.Join(os.TempDir(), defaultSessionFileName)
	}
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("config: base_url is required")
	}
	if c.Email == "" {
		return fmt.Errorf("config: email is required")
	}
	if c.Password == "" {
		return fmt.Errorf("config: password is required (config file or %s)", envPassword)
	}
	if c.OrgID == "" {
		return fmt.Errorf("config: org_id is required")
	}
	if c.Pushover.Token == "" || c.Pushover.User == "" {
		return fmt.Errorf("config: pushover token and user are required (config file or %s/%s)", envPushoverToken, envPushoverUser)
	}
	if c.CriticalMB < c.WarningMB {
		return fmt.Errorf("config: critical_mb (%.0f) must not be below warning_mb (%.0f)", c.CriticalMB, c.WarningMB)
	}
	return nil
}

// PollInterval returns the pause between polling cycles.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// HTTPTimeout returns the outbound request timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}
