package models

// AppConfig is the persisted application state.
// This corresponds to ~/.loadout/config.json.
type AppConfig struct {
	// ActiveProfile is the name of the currently active profile, nil when
	// no profile is active.
	ActiveProfile *string `json:"active_profile"`
	// OverlayVisible records whether the crosshair overlay is shown.
	OverlayVisible bool `json:"overlay_visible"`
}

// NewAppConfig creates the default configuration: no active profile,
// overlay hidden.
func NewAppConfig() *AppConfig {
	return &AppConfig{}
}
