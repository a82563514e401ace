package monitor

import (
	"context"
	"fmt"
	"log/slog"

	"pangolin-monitor/internal/domain/model"
)

// checkContainer classifies one configured container and alerts on anything
// but healthy. Missing and not-running are fatal for the unit and alert at
// high priority; a failing health probe on a running container is degraded
// and alerts at normal priority.
func (m *Monitor) checkContainer(ctx context.Context, l *slog.Logger, name string) error {
	if m.runtime == nil {
		return fmt.Errorf("no container runtime configured")
	}

	state, err := m.runtime.Inspect(ctx, name)
	if err != nil {
		m.alert(ctx, fmt.Sprintf("Could not inspect container %s: %v", name, err), model.PriorityHigh)
		return err
	}

	switch model.ClassifyContainer(state) {
	case model.ContainerMissing:
		m.alert(ctx, fmt.Sprintf("Container %s does not exist", name), model.PriorityHigh)
		return fmt.Errorf("container %q not found", name)
	case model.ContainerNotRunning:
		m.alert(ctx, fmt.Sprintf("Container %s is not running (state: %s)", name, state.Status), model.PriorityHigh)
		return fmt.Errorf("container %q not running: %s", name, state.Status)
	case model.ContainerProbeFailing:
		m.alert(ctx, fmt.Sprintf("Container %s is running but reports health %q", name, state.Health), model.PriorityNormal)
		return fmt.Errorf("container %q health probe failing: %s", name, state.Health)
	default:
		l.Info("container healthy", "container", name, "state", state.Status, "health", state.Health)
		return nil
	}
}
