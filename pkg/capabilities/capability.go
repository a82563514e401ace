package capabilities

import (
	"runtime"
)

// Capability names
const (
	CapabilityDocker       = "docker"
	CapabilityDockerSocket = "docker-socket"
)

// Capability represents a system capability that can be detected
type Capability interface {
	// Name returns the name of the capability
	Name() string
	// Version returns the version of the capability
	Version() string
	// IsAvailable returns whether the capability is available
	IsAvailable() bool
}

// SystemInfo represents basic system information
type SystemInfo struct {
	OS   string
	Arch string
}

// GetSystemInfo returns the current system information
func GetSystemInfo() SystemInfo {
	return SystemInfo{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}
}

// CapabilityFactory creates and returns the capabilities the monitor relies
// on before it starts polling.
type CapabilityFactory struct {
	capabilities []Capability
}

// NewCapabilityFactory creates a new capability factory. The docker socket
// path comes from configuration so the preflight check inspects the same
// socket the runtime client will use.
func NewCapabilityFactory(dockerSocketPath string) *CapabilityFactory {
	return &CapabilityFactory{
		capabilities: []Capability{
			NewDockerCapability(),
			NewDockerSocketCapability(dockerSocketPath),
		},
	}
}

// GetAllCapabilities returns all available capabilities
func (f *CapabilityFactory) GetAllCapabilities() []Capability {
	return f.capabilities
}

// GetCapabilityByName returns a capability by its name
func (f *CapabilityFactory) GetCapabilityByName(name string) Capability {
	for _, cap := range f.capabilities {
		if cap.Name() == name {
			return cap
		}
	}
	return nil
}
