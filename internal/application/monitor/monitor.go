package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pangolin-monitor/internal/application/config"
	"pangolin-monitor/internal/domain/model"
	"pangolin-monitor/pkg/backoff"
	"pangolin-monitor/pkg/log"
	"pangolin-monitor/pkg/metrics"
)

const (
	loginAttempts     = 3
	loginAttemptPause = 5 * time.Second
)

// SiteAPI is the slice of the management API the monitor consumes.
type SiteAPI interface {
	ListSites(ctx context.Context, orgID string) (*model.SiteReport, error)
}

// Sessions is the session lifecycle the monitor drives: established at
// startup, logged out and invalidated on every exit path.
type Sessions interface {
	Establish(ctx context.Context) error
	Invalidate()
	Logout(ctx context.Context) error
}

// Runtime queries local container state by name.
type Runtime interface {
	Inspect(ctx context.Context, name string) (model.ContainerState, error)
}

// Notifier is the push notification sink.
type Notifier interface {
	Send(ctx context.Context, message string, priority model.Priority) error
}

// Monitor owns all cross-cycle state: the session lifecycle and the
// outstanding-offline-alert flag. Everything else is re-observed fresh each
// cycle. A single goroutine drives it, so no field needs locking.
type Monitor struct {
	cfg     *config.Config
	session Sessions
	api     SiteAPI
	runtime Runtime
	notify  Notifier

	// alertOutstanding is true while an offline-sites alert has been sent
	// and the sites have not all been observed online since. It makes the
	// offline alerting edge-triggered: one alert per offline episode, not
	// one per cycle.
	alertOutstanding bool

	heartbeat *metrics.MetricFactory

	// sleep is injectable so tests exercise retry pacing without waiting.
	sleep func(time.Duration)
}

// New creates a monitor. runtime may be nil when no containers are
// configured.
func New(cfg *config.Config, session Sessions, api SiteAPI, runtime Runtime, notify Notifier) *Monitor {
	return &Monitor{
		cfg:       cfg,
		session:   session,
		api:       api,
		runtime:   runtime,
		notify:    notify,
		heartbeat: metrics.NewMetricsFactory(time.Now()),
		sleep:     time.Sleep,
	}
}

// Run authenticates and then polls until the context is cancelled. The
// session artifact is cleaned up on every exit path, including panics, and
// every path to an error return has produced a high-priority alert.
func (m *Monitor) Run(ctx context.Context) (err error) {
	defer m.cleanup()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("monitor crashed: %v", r)
			m.alert(context.Background(), fmt.Sprintf("Pangolin monitor crashed: %v", r), model.PriorityHigh)
		}
	}()

	if err := m.authenticate(ctx); err != nil {
		m.alert(ctx, fmt.Sprintf("Pangolin monitor could not start: %v", err), model.PriorityHigh)
		return fmt.Errorf("startup authentication failed: %w", err)
	}

	log.Info("monitor running", "interval_seconds", m.cfg.PollIntervalSeconds, "containers", len(m.cfg.Containers))
	for {
		m.runCycle(ctx)

		select {
		case <-ctx.Done():
			log.Info("monitor stopping")
			return nil
		case <-time.After(m.cfg.PollInterval()):
		}
	}
}

// authenticate performs the bounded startup login: a fixed number of attempts
// with a fixed pause between them.
func (m *Monitor) authenticate(ctx context.Context) error {
	return backoff.Attempts(loginAttempts, loginAttemptPause, m.sleep, func(attempt int) error {
		err := m.session.Establish(ctx)
		if err != nil {
			log.Warn("login attempt failed", "attempt", attempt, "max_attempts", loginAttempts, "error", err)
		}
		return err
	})
}

// runCycle runs one full polling pass: every configured container, then
// bandwidth, then site status. A failing step is logged and alerted by the
// step itself and never aborts the rest of the cycle.
func (m *Monitor) runCycle(ctx context.Context) {
	l := log.GetLog().With("cycle_id", uuid.New().String())

	hb := make([]any, 0, 6)
	for k, v := range m.heartbeat.Collect() {
		hb = append(hb, k, v)
	}
	l.Debug("cycle start", hb...)

	for _, name := range m.cfg.Containers {
		if err := m.checkContainer(ctx, l, name); err != nil {
			l.Error("container check failed", "container", name, "error", err)
		}
	}
	if err := m.checkBandwidth(ctx, l); err != nil {
		l.Error("bandwidth check failed", "error", err)
	}
	if err := m.checkSites(ctx, l); err != nil {
		l.Error("site status check failed", "error", err)
	}
}

// alert sends one push notification and logs the outcome. Delivery is
// best-effort: a failed send never fails the caller.
func (m *Monitor) alert(ctx context.Context, message string, priority model.Priority) {
	if err := m.notify.Send(ctx, message, priority); err != nil {
		log.Warn("notification not delivered", "error", err, "message", message)
		return
	}
	log.Info("notification sent", "priority", string(priority), "message", message)
}

// cleanup ends the session on the server when possible and always removes the
// local session artifact.
func (m *Monitor) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.session.Logout(ctx); err != nil {
		log.Warn("logout failed", "error", err)
	}
	m.session.Invalidate()
}
