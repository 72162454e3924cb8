// Package profile implements loading, saving, and validation of gaming
// profiles. The whole profile list lives in a single pretty-printed JSON
// document that is read wholesale at startup and rewritten wholesale on
// every change. Last writer wins; concurrent writers are not supported.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/loadout-app/loadout/internal/config"
	"github.com/loadout-app/loadout/internal/models"
)

const (
	maxNameLen = 50

	minOffset = -500
	maxOffset = 500
)

// imageExtensions are the crosshair file extensions Validate accepts.
// The compositor additionally requires the decoded image to be 100x100.
var imageExtensions = []string{".png"}

// ValidationError reports a rejected profile field. It is shown to the
// user inline; the triggering operation is aborted with nothing saved.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks a profile's fields against the storage rules.
func Validate(p *models.Profile) error {
	if len(p.Name) == 0 || len(p.Name) > maxNameLen {
		return &ValidationError{
			Field:  "name",
			Reason: fmt.Sprintf("must be between 1 and %d characters", maxNameLen),
		}
	}

	if p.CrosshairImagePath != "" {
		if _, err := os.Stat(p.CrosshairImagePath); err != nil {
			return &ValidationError{
				Field:  "crosshair_image_path",
				Reason: fmt.Sprintf("file does not exist: %s", p.CrosshairImagePath),
			}
		}
		ext := strings.ToLower(filepath.Ext(p.CrosshairImagePath))
		if !isImageExtension(ext) {
			return &ValidationError{
				Field:  "crosshair_image_path",
				Reason: fmt.Sprintf("must be a PNG file: %s", p.CrosshairImagePath),
			}
		}
	}

	if p.CrosshairXOffset < minOffset || p.CrosshairXOffset > maxOffset {
		return &ValidationError{
			Field:  "crosshair_x_offset",
			Reason: fmt.Sprintf("must be between %d and %d pixels", minOffset, maxOffset),
		}
	}
	if p.CrosshairYOffset < minOffset || p.CrosshairYOffset > maxOffset {
		return &ValidationError{
			Field:  "crosshair_y_offset",
			Reason: fmt.Sprintf("must be between %d and %d pixels", minOffset, maxOffset),
		}
	}

	return nil
}

func isImageExtension(ext string) bool {
	for _, e := range imageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load reads the profile list from profiles.json in dir.
// A missing file is not an error: it yields an empty list.
func Load(dir string) ([]models.Profile, error) {
	path := filepath.Join(dir, config.ProfilesFileName)

	if !config.FileExists(path) {
		return []models.Profile{}, nil
	}

	var profiles []models.Profile
	if err := config.LoadJSON(path, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Save writes the full profile list to profiles.json in dir, creating the
// directory if needed.
func Save(profiles []models.Profile, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return config.SaveJSON(filepath.Join(dir, config.ProfilesFileName), profiles)
}

// IsNameUnique reports whether name collides with no existing profile,
// comparing case-insensitively. excludeIndex skips the profile being
// updated; pass -1 for inserts.
func IsNameUnique(profiles []models.Profile, name string, excludeIndex int) bool {
	lower := strings.ToLower(name)
	for i, p := range profiles {
		if i == excludeIndex {
			continue
		}
		if strings.ToLower(p.Name) == lower {
			return false
		}
	}
	return true
}

// Delete removes the profile at index, returning the shortened slice.
// Out-of-range indexes are ignored.
func Delete(profiles []models.Profile, index int) []models.Profile {
	if index < 0 || index >= len(profiles) {
		return profiles
	}
	return append(profiles[:index], profiles[index+1:]...)
}

// FindIndex returns the index of the profile with the given name, or -1.
// Lookup by name is exact; uniqueness is enforced case-insensitively at
// save time.
func FindIndex(profiles []models.Profile, name string) int {
	for i, p := range profiles {
		if p.Name == name {
			return i
		}
	}
	return -1
}
