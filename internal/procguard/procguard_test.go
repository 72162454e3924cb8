package procguard

import (
	"errors"
	"reflect"
	"testing"
)

// fakeGuard builds a Guard over a canned process table. kill outcomes are
// keyed by process name; names absent from failures terminate cleanly.
func fakeGuard(t *testing.T, names []string, failures map[string]bool) (*Guard, map[string]int) {
	t.Helper()
	attempts := make(map[string]int)

	snapshot := func() ([]runningProcess, error) {
		procs := make([]runningProcess, 0, len(names))
		for _, name := range names {
			name := name
			procs = append(procs, runningProcess{
				name: name,
				kill: func() error {
					attempts[name]++
					if failures[name] {
						return errors.New("access denied")
					}
					return nil
				},
			})
		}
		return procs, nil
	}

	g := &Guard{snapshot: snapshot}
	return g, attempts
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"notepad.exe", "notepad"},
		{"Notepad.exe", "notepad"},
		{"NOTEPAD.EXE", "notepad"},
		{"notepad", "notepad"},
		{"game.exe.exe", "game.exe"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsProtected(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"csrss.exe", true},
		{"CSRSS.EXE", true},
		{"explorer.exe", true},
		{"Explorer.exe", true},
		{"dwm.exe", true},
		{"system", true},
		{"notepad.exe", false},
		{"chrome.exe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsProtected(tt.name); got != tt.want {
				t.Errorf("IsProtected(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestKillProtectedNeverAttempted(t *testing.T) {
	// csrss.exe is running, but must never be touched.
	g, attempts := fakeGuard(t, []string{"csrss.exe"}, nil)

	report := g.Kill([]string{"csrss.exe"})

	want := []TargetOutcome{{Name: "csrss.exe"}}
	if !reflect.DeepEqual(report.BlocklistSkipped, want) {
		t.Errorf("BlocklistSkipped = %+v, want %+v", report.BlocklistSkipped, want)
	}
	if attempts["csrss.exe"] != 0 {
		t.Errorf("protected process was attempted %d times", attempts["csrss.exe"])
	}
	if len(report.Killed) != 0 || len(report.Failed) != 0 || len(report.NotFound) != 0 {
		t.Errorf("unexpected outcomes: %+v", report)
	}
}

func TestKillProtectedWithoutSuffix(t *testing.T) {
	// "csrss" normalizes to a protected name and must also be skipped.
	g, attempts := fakeGuard(t, []string{"csrss.exe"}, nil)

	report := g.Kill([]string{"csrss"})
	if len(report.BlocklistSkipped) != 1 || report.BlocklistSkipped[0].Name != "csrss" {
		t.Errorf("BlocklistSkipped = %+v", report.BlocklistSkipped)
	}
	if attempts["csrss.exe"] != 0 {
		t.Errorf("protected process was attempted")
	}
}

func TestKillNotFound(t *testing.T) {
	g, _ := fakeGuard(t, []string{"steam.exe"}, nil)

	report := g.Kill([]string{"NoSuchApp.exe"})

	want := []TargetOutcome{{Name: "NoSuchApp.exe"}}
	if !reflect.DeepEqual(report.NotFound, want) {
		t.Errorf("NotFound = %+v, want %+v", report.NotFound, want)
	}
}

func TestKillMatchingTolerance(t *testing.T) {
	tests := []struct {
		name    string
		running []string
		target  string
	}{
		{"exact", []string{"discord.exe"}, "discord.exe"},
		{"case-insensitive", []string{"Discord.exe"}, "discord.exe"},
		{"target without suffix", []string{"discord.exe"}, "discord"},
		{"process without suffix", []string{"discord"}, "discord.exe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := fakeGuard(t, tt.running, nil)
			report := g.Kill([]string{tt.target})
			if len(report.Killed) != 1 || report.Killed[0].Name != tt.target {
				t.Errorf("Killed = %+v, want [%s]", report.Killed, tt.target)
			}
		})
	}
}

func TestKillAllInstancesFail(t *testing.T) {
	g, _ := fakeGuard(t, []string{"game.exe", "game.exe"},
		map[string]bool{"game.exe": true})

	report := g.Kill([]string{"game.exe"})

	if len(report.Failed) != 1 || report.Failed[0].Partial {
		t.Errorf("Failed = %+v, want one non-partial entry", report.Failed)
	}
	if len(report.Killed) != 0 {
		t.Errorf("Killed = %+v, want empty", report.Killed)
	}
}

func TestKillPartialOutcome(t *testing.T) {
	// Two instances under the same target name where one kill fails:
	// the name must appear in both Killed and Failed, flagged partial.
	attempts := 0
	snapshot := func() ([]runningProcess, error) {
		return []runningProcess{
			{name: "game.exe", kill: func() error { attempts++; return nil }},
			{name: "Game.exe", kill: func() error { attempts++; return errors.New("access denied") }},
		}, nil
	}
	g := &Guard{snapshot: snapshot}

	report := g.Kill([]string{"game.exe"})

	if len(report.Killed) != 1 || !report.Killed[0].Partial {
		t.Errorf("Killed = %+v, want one partial entry", report.Killed)
	}
	if len(report.Failed) != 1 || !report.Failed[0].Partial {
		t.Errorf("Failed = %+v, want one partial entry", report.Failed)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestKillBatchContinuesAfterFailure(t *testing.T) {
	g, attempts := fakeGuard(t,
		[]string{"stubborn.exe", "meek.exe"},
		map[string]bool{"stubborn.exe": true})

	report := g.Kill([]string{"stubborn.exe", "meek.exe", "ghost.exe"})

	if len(report.Failed) != 1 || report.Failed[0].Name != "stubborn.exe" {
		t.Errorf("Failed = %+v", report.Failed)
	}
	if len(report.Killed) != 1 || report.Killed[0].Name != "meek.exe" {
		t.Errorf("Killed = %+v", report.Killed)
	}
	if len(report.NotFound) != 1 || report.NotFound[0].Name != "ghost.exe" {
		t.Errorf("NotFound = %+v", report.NotFound)
	}
	if attempts["meek.exe"] != 1 {
		t.Errorf("meek.exe attempted %d times, want 1", attempts["meek.exe"])
	}
}

func TestSummary(t *testing.T) {
	report := KillReport{
		Killed:           []TargetOutcome{{Name: "game.exe", Partial: true}},
		NotFound:         []TargetOutcome{{Name: "ghost.exe"}},
		BlocklistSkipped: []TargetOutcome{{Name: "csrss.exe"}},
	}
	got := report.Summary()
	want := "killed game.exe (partial) | not running ghost.exe | protected csrss.exe"
	if got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}

	if got := (KillReport{}).Summary(); got != "no processes targeted" {
		t.Errorf("empty Summary() = %q", got)
	}
}
