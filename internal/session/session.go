// Package session runs the activation sequence and owns the live
// overlay. All state transitions funnel through one mutex so the
// "at most one overlay" invariant holds no matter which surface asked.
package session

import (
	"fmt"
	"log"
	"sync"

	"github.com/loadout-app/loadout/internal/bus"
	"github.com/loadout-app/loadout/internal/config"
	"github.com/loadout-app/loadout/internal/models"
	"github.com/loadout-app/loadout/internal/overlay"
	"github.com/loadout-app/loadout/internal/procguard"
)

// Guard kills the processes a profile targets.
type Guard interface {
	Kill(names []string) procguard.KillReport
}

// Publisher fans state changes out to the tray surface.
type Publisher interface {
	Send(msg bus.EditorMsg) error
}

// OverlayHandle is the slice of overlay.Handle the session drives.
type OverlayHandle interface {
	Update(xOff, yOff int) error
	Show() error
	Hide() error
	Stop()
}

// StartOverlayFunc creates a live overlay for a crosshair image.
type StartOverlayFunc func(imagePath string, xOff, yOff int, visible bool) (OverlayHandle, error)

// Result is what one activation produced. Overlay trouble degrades the
// activation rather than failing it, so the report and the overlay
// error travel together.
type Result struct {
	Profile    models.Profile
	KillReport procguard.KillReport
	OverlayErr error
}

// Session holds the mutable runtime state: which profile is active and
// the overlay handle, if any.
type Session struct {
	mu           sync.Mutex
	guard        Guard
	pub          Publisher
	startOverlay StartOverlayFunc
	saveConfig   func(*models.AppConfig) error

	cfg    models.AppConfig
	handle OverlayHandle
}

// New builds a session around the real process guard, overlay backend
// and config file. cfg is the state loaded at startup.
func New(guard Guard, pub Publisher, cfg models.AppConfig) *Session {
	return &Session{
		guard: guard,
		pub:   pub,
		startOverlay: func(path string, x, y int, visible bool) (OverlayHandle, error) {
			return overlay.Start(path, x, y, visible)
		},
		saveConfig: config.SaveAppConfig,
		cfg:        cfg,
	}
}

// newWith is the injectable constructor used by tests.
func newWith(guard Guard, pub Publisher, cfg models.AppConfig, start StartOverlayFunc, save func(*models.AppConfig) error) *Session {
	return &Session{
		guard:        guard,
		pub:          pub,
		startOverlay: start,
		saveConfig:   save,
		cfg:          cfg,
	}
}

// Activate runs the full sequence for profile: kill the target
// processes, replace any running overlay, persist the new state and
// publish it. A failing overlay never aborts the activation; the error
// is carried in the Result.
func (s *Session) Activate(profile models.Profile) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := s.guard.Kill(profile.ProcessesToKill)

	if s.handle != nil {
		s.handle.Stop()
		s.handle = nil
	}

	// A successful start always shows the crosshair; the visibility
	// flag tracks whether an overlay is actually on screen.
	var overlayErr error
	s.cfg.OverlayVisible = false
	if profile.OverlayEnabled && profile.CrosshairImagePath != "" {
		handle, err := s.startOverlay(
			profile.CrosshairImagePath,
			profile.CrosshairXOffset,
			profile.CrosshairYOffset,
			true,
		)
		if err != nil {
			overlayErr = fmt.Errorf("starting overlay: %w", err)
			log.Printf("Overlay unavailable for profile %q: %v", profile.Name, err)
		} else {
			s.handle = handle
			s.cfg.OverlayVisible = true
		}
	}

	name := profile.Name
	s.cfg.ActiveProfile = &name
	if err := s.saveConfig(&s.cfg); err != nil {
		log.Printf("Failed to save config: %v", err)
	}

	s.publish(bus.ActiveProfileChanged{Name: s.cfg.ActiveProfile})
	s.publish(bus.OverlayVisibilityChanged{Visible: s.cfg.OverlayVisible})

	return Result{Profile: profile, KillReport: report, OverlayErr: overlayErr}
}

// Deactivate stops the overlay, clears the active profile and persists.
func (s *Session) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle != nil {
		s.handle.Stop()
		s.handle = nil
	}

	s.cfg.ActiveProfile = nil
	s.cfg.OverlayVisible = false
	if err := s.saveConfig(&s.cfg); err != nil {
		log.Printf("Failed to save config: %v", err)
	}

	s.publish(bus.ActiveProfileChanged{Name: nil})
	s.publish(bus.OverlayVisibilityChanged{Visible: false})
}

// ToggleOverlay flips visibility. The handle stays alive either way, so
// toggling back on is instant. The flag is persisted so the tray shows
// the right state after a restart.
func (s *Session) ToggleOverlay() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.OverlayVisible = !s.cfg.OverlayVisible
	if s.handle != nil {
		var err error
		if s.cfg.OverlayVisible {
			err = s.handle.Show()
		} else {
			err = s.handle.Hide()
		}
		if err != nil {
			log.Printf("Overlay visibility change failed: %v", err)
		}
	}
	if err := s.saveConfig(&s.cfg); err != nil {
		log.Printf("Failed to save config: %v", err)
	}

	s.publish(bus.OverlayVisibilityChanged{Visible: s.cfg.OverlayVisible})
	return s.cfg.OverlayVisible
}

// UpdateOverlayOffsets repositions a live crosshair, e.g. while the
// editor nudges offsets on the active profile. No-op when no overlay
// is running.
func (s *Session) UpdateOverlayOffsets(xOff, yOff int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle == nil {
		return
	}
	if err := s.handle.Update(xOff, yOff); err != nil {
		log.Printf("Overlay offset update failed: %v", err)
	}
}

// ActiveProfile returns the active profile name, nil for none.
func (s *Session) ActiveProfile() *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.ActiveProfile == nil {
		return nil
	}
	name := *s.cfg.ActiveProfile
	return &name
}

// OverlayVisible reports the persisted visibility preference.
func (s *Session) OverlayVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.OverlayVisible
}

// Shutdown stops the overlay without touching persisted state, so the
// active profile survives a restart.
func (s *Session) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle != nil {
		s.handle.Stop()
		s.handle = nil
	}
}

func (s *Session) publish(msg bus.EditorMsg) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Send(msg); err != nil {
		log.Printf("Failed to publish %T: %v", msg, err)
	}
}
