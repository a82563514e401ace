package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyContainer(t *testing.T) {
	tests := []struct {
		name     string
		state    ContainerState
		expected ContainerHealthCode
	}{
		{
			name:     "missing",
			state:    ContainerState{Exists: false},
			expected: ContainerMissing,
		},
		{
			name:     "stopped",
			state:    ContainerState{Exists: true, Status: "exited", Health: HealthNone},
			expected: ContainerNotRunning,
		},
		{
			name:     "restarting",
			state:    ContainerState{Exists: true, Status: "restarting", Health: HealthHealthy},
			expected: ContainerNotRunning,
		},
		{
			name:     "running with failing probe",
			state:    ContainerState{Exists: true, Status: "running", Health: "unhealthy"},
			expected: ContainerProbeFailing,
		},
		{
			name:     "running with starting probe",
			state:    ContainerState{Exists: true, Status: "running", Health: "starting"},
			expected: ContainerProbeFailing,
		},
		{
			name:     "running healthy",
			state:    ContainerState{Exists: true, Status: "running", Health: HealthHealthy},
			expected: ContainerHealthy,
		},
		{
			name:     "running without healthcheck",
			state:    ContainerState{Exists: true, Status: "running", Health: HealthNone},
			expected: ContainerHealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyContainer(tt.state))
		})
	}
}
