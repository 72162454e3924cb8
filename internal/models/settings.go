package models

// LinksConfig holds the external URLs reachable from the tray menu.
type LinksConfig struct {
	Documentation string `yaml:"documentation"`
	BugReport     string `yaml:"bug_report"`
}

// PollingConfig holds the surface poll intervals in milliseconds.
type PollingConfig struct {
	EditorTickMs int `yaml:"editor_tick_ms"`
	TrayTickMs   int `yaml:"tray_tick_ms"`
}

// Settings represents global application settings.
// This corresponds to ~/.loadout/settings.yaml.
type Settings struct {
	Version int           `yaml:"version"`
	Polling PollingConfig `yaml:"polling"`
	Links   LinksConfig   `yaml:"links"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Polling: PollingConfig{
			EditorTickMs: 100,
			TrayTickMs:   50,
		},
		Links: LinksConfig{
			Documentation: "https://github.com/loadout-app/loadout#readme",
			BugReport:     "https://github.com/loadout-app/loadout/issues/new",
		},
	}
}
