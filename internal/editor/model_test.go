package editor

import (
	"errors"
	"strings"
	"testing"

	"github.com/loadout-app/loadout/internal/bus"
	"github.com/loadout-app/loadout/internal/models"
	"github.com/loadout-app/loadout/internal/procguard"
	"github.com/loadout-app/loadout/internal/session"
)

type fakeSession struct {
	active      *string
	visible     bool
	activations []models.Profile
	deactivates int
	shutdowns   int
}

func (s *fakeSession) Activate(p models.Profile) session.Result {
	s.activations = append(s.activations, p)
	name := p.Name
	s.active = &name
	return session.Result{Profile: p}
}

func (s *fakeSession) Deactivate() {
	s.deactivates++
	s.active = nil
}

func (s *fakeSession) ToggleOverlay() bool {
	s.visible = !s.visible
	return s.visible
}

func (s *fakeSession) UpdateOverlayOffsets(x, y int) {}

func (s *fakeSession) ActiveProfile() *string { return s.active }
func (s *fakeSession) OverlayVisible() bool   { return s.visible }
func (s *fakeSession) Shutdown()              { s.shutdowns++ }

type fakeLister struct{}

func (fakeLister) List() ([]procguard.ProcessInfo, error) {
	return sampleProcesses(), nil
}

func newTestModel(t *testing.T, profiles []models.Profile) (Model, *fakeSession, *bus.TrayEnd) {
	t.Helper()
	editorEnd, trayEnd := bus.New()
	sess := &fakeSession{}
	m := NewModel(sess, fakeLister{}, editorEnd, nil, models.NewSettings())
	m.profiles = profiles
	m.list.SetProfiles(profiles)
	return m, sess, trayEnd
}

func drainTray(t *testing.T, end *bus.TrayEnd) []bus.EditorMsg {
	t.Helper()
	var msgs []bus.EditorMsg
	for {
		msg, ok, err := end.TryReceive()
		if err != nil || !ok {
			return msgs
		}
		msgs = append(msgs, msg)
	}
}

func TestSaveFormValidation(t *testing.T) {
	t.Run("rejects an empty name without persisting", func(t *testing.T) {
		m, _, _ := newTestModel(t, nil)
		m.form = NewProfileForm(80)

		updated, cmd := m.saveForm()
		um := updated.(Model)
		if !um.statusErr {
			t.Error("expected an error status for empty name")
		}
		if um.form == nil {
			t.Error("form was dismissed despite validation failure")
		}
		_ = cmd
	})

	t.Run("rejects a duplicate name case-insensitively", func(t *testing.T) {
		m, _, _ := newTestModel(t, []models.Profile{models.NewProfile("FPS")})
		m.form = NewProfileForm(80)
		m.form.NameInput().SetValue("fps")

		updated, _ := m.saveForm()
		um := updated.(Model)
		if !um.statusErr || !strings.Contains(um.status, "already exists") {
			t.Errorf("status = %q, want duplicate-name error", um.status)
		}
	})

	t.Run("edit may keep its own name", func(t *testing.T) {
		m, _, _ := newTestModel(t, []models.Profile{models.NewProfile("FPS")})
		m.form = NewEditForm(m.profiles[0], 0, 80)

		updated, cmd := m.saveForm()
		um := updated.(Model)
		if um.statusErr {
			t.Errorf("unexpected error status %q", um.status)
		}
		if cmd == nil {
			t.Error("expected a save command")
		}
	})
}

func TestProfilesSavedPublishes(t *testing.T) {
	m, _, trayEnd := newTestModel(t, nil)
	saved := []models.Profile{models.NewProfile("FPS")}

	updated, _ := m.Update(ProfilesSavedMsg{Profiles: saved})
	um := updated.(Model)

	if len(um.profiles) != 1 {
		t.Fatalf("profiles = %d, want 1", len(um.profiles))
	}
	msgs := drainTray(t, trayEnd)
	if len(msgs) != 1 {
		t.Fatalf("tray received %d messages, want 1", len(msgs))
	}
	if pu, ok := msgs[0].(bus.ProfilesUpdated); !ok || len(pu.Profiles) != 1 {
		t.Errorf("tray message = %#v, want ProfilesUpdated with one profile", msgs[0])
	}
}

func TestBusPoll(t *testing.T) {
	t.Run("activate request from the tray starts activation", func(t *testing.T) {
		m, _, trayEnd := newTestModel(t, []models.Profile{models.NewProfile("FPS")})
		if err := trayEnd.Send(bus.ActivateProfile{Name: "FPS"}); err != nil {
			t.Fatal(err)
		}

		updated, cmd := m.Update(BusTickMsg{})
		um := updated.(Model)
		if !um.activating {
			t.Error("model not marked activating")
		}
		if cmd == nil {
			t.Error("expected an activation command")
		}
	})

	t.Run("unknown profile name reports an error", func(t *testing.T) {
		m, sess, trayEnd := newTestModel(t, nil)
		if err := trayEnd.Send(bus.ActivateProfile{Name: "nope"}); err != nil {
			t.Fatal(err)
		}

		updated, _ := m.Update(BusTickMsg{})
		um := updated.(Model)
		if !um.statusErr || !strings.Contains(um.status, "nope") {
			t.Errorf("status = %q, want unknown-profile error", um.status)
		}
		if len(sess.activations) != 0 {
			t.Error("session activated despite unknown profile")
		}
	})

	t.Run("exit request shuts the session down and closes the bus", func(t *testing.T) {
		m, sess, trayEnd := newTestModel(t, nil)
		if err := trayEnd.Send(bus.Exit{}); err != nil {
			t.Fatal(err)
		}

		_, cmd := m.Update(BusTickMsg{})
		if sess.shutdowns != 1 {
			t.Errorf("session shutdowns = %d, want 1", sess.shutdowns)
		}
		if cmd == nil {
			t.Fatal("expected a quit command")
		}
		// The editor announced shutdown before closing its end.
		msgs := drainTray(t, trayEnd)
		if len(msgs) != 1 {
			t.Fatalf("tray received %d messages, want Shutdown", len(msgs))
		}
		if _, ok := msgs[0].(bus.Shutdown); !ok {
			t.Errorf("tray message = %#v, want Shutdown", msgs[0])
		}
		if _, _, err := trayEnd.TryReceive(); !errors.Is(err, bus.ErrDisconnected) {
			t.Errorf("tray end error = %v, want ErrDisconnected after drain", err)
		}
	})

	t.Run("disconnected bus stops polling quietly", func(t *testing.T) {
		m, _, trayEnd := newTestModel(t, nil)
		trayEnd.Close()

		updated, _ := m.Update(BusTickMsg{})
		um := updated.(Model)
		if um.busOpen {
			t.Error("busOpen still true after disconnect")
		}
		if um.statusErr {
			t.Errorf("unexpected error status %q", um.status)
		}
	})
}

func TestActivationStatus(t *testing.T) {
	res := session.Result{Profile: models.NewProfile("FPS")}
	res.KillReport.Killed = []procguard.TargetOutcome{{Name: "chrome"}}
	res.KillReport.NotFound = []procguard.TargetOutcome{{Name: "discord"}}

	got := activationStatus(res)
	if !strings.Contains(got, "Activated FPS") {
		t.Errorf("status %q missing profile name", got)
	}
	if !strings.Contains(got, "killed chrome") || !strings.Contains(got, "not running discord") {
		t.Errorf("status %q missing kill report", got)
	}

	res.OverlayErr = errors.New("no display")
	if got := activationStatus(res); !strings.Contains(got, "overlay unavailable") {
		t.Errorf("status %q missing overlay degradation", got)
	}
}
