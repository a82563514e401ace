package capabilities

import (
	"os"
)

// DockerSocketCapability checks that the Docker daemon socket exists and is
// reachable for the current user. The CLI can be installed while the daemon
// socket is absent (remote contexts, rootless setups), so both are checked
// separately.
type DockerSocketCapability struct {
	socketPath string
}

// NewDockerSocketCapability creates a new Docker socket capability
func NewDockerSocketCapability(socketPath string) *DockerSocketCapability {
	return &DockerSocketCapability{socketPath: socketPath}
}

// Name returns the name of the capability
func (c *DockerSocketCapability) Name() string {
	return CapabilityDockerSocket
}

// Version returns the version of the capability
func (c *DockerSocketCapability) Version() string {
	return c.socketPath
}

// IsAvailable checks if the Docker daemon socket exists
func (c *DockerSocketCapability) IsAvailable() bool {
	info, err := os.Stat(c.socketPath)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSocket != 0
}
