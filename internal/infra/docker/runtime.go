package docker

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/client"

	"pangolin-monitor/internal/domain/model"
	"pangolin-monitor/pkg/log"
)

// Runtime queries local container state by name. It is an interface so the
// health checks can run against a stub in tests.
type Runtime interface {
	// Inspect returns the observed state of one container. A container
	// unknown to the engine is reported with Exists=false, not an error;
	// errors are reserved for failures to query the engine at all.
	Inspect(ctx context.Context, name string) (model.ContainerState, error)
}

// engineRuntime implements Runtime on top of the Docker Engine API client.
type engineRuntime struct {
	cli *client.Client
}

// NewRuntime creates a Runtime connected to the Docker daemon on the given
// unix socket. The daemon is pinged once so a misconfigured socket surfaces
// at startup instead of on the first cycle.
func NewRuntime(socketPath string) (Runtime, error) {
	cli, err := client.NewClientWithOpts(
		client.WithHost("unix://"+socketPath),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := cli.Ping(ctx); err != nil {
		log.Error("failed to connect to Docker daemon", "socket_path", socketPath, "error", err)
		return nil, fmt.Errorf("failed to connect to Docker daemon: %w", err)
	}

	log.Info("docker client initialized", "socket_path", socketPath)
	return &engineRuntime{cli: cli}, nil
}

// Inspect implements Runtime.
func (r *engineRuntime) Inspect(ctx context.Context, name string) (model.ContainerState, error) {
	info, err := r.cli.ContainerInspect(ctx, name)
	if err != nil {
		if client.IsErrNotFound(err) {
			return model.ContainerState{Exists: false}, nil
		}
		return model.ContainerState{}, fmt.Errorf("failed to inspect container %q: %w", name, err)
	}

	state := model.ContainerState{Exists: true, Health: model.HealthNone}
	if info.State != nil {
		state.Status = info.State.Status
		if info.State.Health != nil && info.State.Health.Status != "" {
			state.Health = info.State.Health.Status
		}
	}
	return state, nil
}
