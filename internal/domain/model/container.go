package model

// Container run states as reported by the Docker engine.
const (
	ContainerStateRunning = "running"
)

// Container health probe states. "none" means the image defines no
// healthcheck and is treated the same as a passing probe.
const (
	HealthNone    = "none"
	HealthHealthy = "healthy"
)

// ContainerState is a point-in-time observation of one local container,
// queried fresh every cycle and never persisted.
type ContainerState struct {
	// Exists reports whether the runtime knows a container by the
	// configured name at all.
	Exists bool
	// Status is the engine run state (running, exited, restarting, ...).
	// Empty when Exists is false.
	Status string
	// Health is the health probe state, normalised to "none" when the
	// container defines no healthcheck. Empty when Exists is false.
	Health string
}

// ContainerHealthCode classifies a ContainerState observation.
type ContainerHealthCode int

const (
	// ContainerHealthy means the container is running and its health
	// probe (if any) passes.
	ContainerHealthy ContainerHealthCode = iota
	// ContainerMissing means the runtime has no container by that name.
	ContainerMissing
	// ContainerNotRunning means the container exists but its run state is
	// not "running".
	ContainerNotRunning
	// ContainerProbeFailing means the container is running but its health
	// probe reports something other than "none" or "healthy".
	ContainerProbeFailing
)

// ClassifyContainer maps an observed container state to its health
// classification. Missing and not-running are fatal conditions for the unit;
// a failing probe on a running container is degraded but not fatal.
func ClassifyContainer(state ContainerState) ContainerHealthCode {
	if !state.Exists {
		return ContainerMissing
	}
	if state.Status != ContainerStateRunning {
		return ContainerNotRunning
	}
	if state.Health != HealthNone && state.Health != HealthHealthy {
		return ContainerProbeFailing
	}
	return ContainerHealthy
}
