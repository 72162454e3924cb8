package models

import (
	"time"

	"github.com/google/uuid"
)

// InstanceInfo identifies the running Loadout instance. Only one editor
// surface may run at a time; the instance file is how a second launch
// detects the first.
// This corresponds to ~/.loadout/instance.yaml.
type InstanceInfo struct {
	Version   int       `yaml:"version"`
	PID       int       `yaml:"pid"`
	Token     string    `yaml:"token"`
	StartedAt time.Time `yaml:"started_at"`
}

// NewInstanceInfo creates instance info for the given PID with a fresh token.
func NewInstanceInfo(pid int) *InstanceInfo {
	return &InstanceInfo{
		Version:   1,
		PID:       pid,
		Token:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
}
