// Package models defines the data types shared across Loadout packages.
package models

// Profile is a named bundle of gaming optimizations: processes to terminate
// on activation, an optional crosshair overlay, and a fan-speed flag.
// This corresponds to one entry in ~/.loadout/profiles.json.
type Profile struct {
	Name               string   `json:"name"`
	ProcessesToKill    []string `json:"processes_to_kill"`
	CrosshairImagePath string   `json:"crosshair_image_path,omitempty"`
	CrosshairXOffset   int      `json:"crosshair_x_offset"`
	CrosshairYOffset   int      `json:"crosshair_y_offset"`
	OverlayEnabled     bool     `json:"overlay_enabled"`
	FanSpeedMax        bool     `json:"fan_speed_max"`
}

// NewProfile creates a profile with default values.
func NewProfile(name string) Profile {
	return Profile{
		Name:            name,
		ProcessesToKill: []string{},
		OverlayEnabled:  true,
	}
}
