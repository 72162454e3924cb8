// Package procguard enumerates and terminates processes by name while
// refusing to touch a fixed set of OS-critical process names.
package procguard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessInfo describes one running process.
type ProcessInfo struct {
	PID        int32
	Name       string
	MemoryKB   uint64
	CPUPercent float64
}

// TargetOutcome records the result for one requested process name.
// Partial is set when some instances of the name were terminated and
// others were not; presentation layers decide how to render that.
type TargetOutcome struct {
	Name    string
	Partial bool
}

// KillReport aggregates the outcome of one Kill batch.
type KillReport struct {
	Killed           []TargetOutcome
	Failed           []TargetOutcome
	NotFound         []TargetOutcome
	BlocklistSkipped []TargetOutcome
}

// Empty reports whether the batch produced no outcomes at all.
func (r KillReport) Empty() bool {
	return len(r.Killed) == 0 && len(r.Failed) == 0 &&
		len(r.NotFound) == 0 && len(r.BlocklistSkipped) == 0
}

// Summary renders the report as a one-line status message.
func (r KillReport) Summary() string {
	var parts []string
	if n := len(r.Killed); n > 0 {
		parts = append(parts, fmt.Sprintf("killed %s", joinOutcomes(r.Killed)))
	}
	if n := len(r.Failed); n > 0 {
		parts = append(parts, fmt.Sprintf("failed %s", joinOutcomes(r.Failed)))
	}
	if n := len(r.NotFound); n > 0 {
		parts = append(parts, fmt.Sprintf("not running %s", joinOutcomes(r.NotFound)))
	}
	if n := len(r.BlocklistSkipped); n > 0 {
		parts = append(parts, fmt.Sprintf("protected %s", joinOutcomes(r.BlocklistSkipped)))
	}
	if len(parts) == 0 {
		return "no processes targeted"
	}
	return strings.Join(parts, " | ")
}

func joinOutcomes(outcomes []TargetOutcome) string {
	names := make([]string, len(outcomes))
	for i, o := range outcomes {
		names[i] = o.Name
		if o.Partial {
			names[i] += " (partial)"
		}
	}
	return strings.Join(names, ", ")
}

// protectedProcesses are OS/session-critical process names that Kill never
// attempts, checked case-insensitively against raw and normalized targets.
var protectedProcesses = []string{
	"csrss.exe",    // Client Server Runtime
	"dwm.exe",      // Desktop Window Manager
	"explorer.exe", // Windows shell
	"lsass.exe",    // Local Security Authority
	"services.exe", // Services Control Manager
	"smss.exe",     // Session Manager
	"system",
	"wininit.exe",
	"winlogon.exe",
	"svchost.exe",
}

// IsProtected reports whether a process name is on the blocklist,
// comparing case-insensitively.
func IsProtected(name string) bool {
	lower := strings.ToLower(name)
	for _, p := range protectedProcesses {
		if p == lower {
			return true
		}
	}
	return false
}

// Normalize lowercases a process name and strips one trailing ".exe".
func Normalize(name string) string {
	lower := strings.ToLower(name)
	return strings.TrimSuffix(lower, ".exe")
}

// runningProcess is the slice of live-process state Kill needs: enough to
// match by name and attempt termination.
type runningProcess struct {
	name string
	kill func() error
}

// Guard terminates processes. The enumeration functions default to
// gopsutil and are injectable so the matching and reporting logic can be
// tested without touching live processes.
type Guard struct {
	listInfo func() ([]ProcessInfo, error)
	snapshot func() ([]runningProcess, error)
}

// New returns a Guard backed by the live process table.
func New() *Guard {
	return &Guard{
		listInfo: gopsutilList,
		snapshot: gopsutilSnapshot,
	}
}

// List returns all running processes sorted by name.
func (g *Guard) List() ([]ProcessInfo, error) {
	infos, err := g.listInfo()
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Kill terminates every running process matching one of the given names.
// Matching is case-insensitive and tolerant of a trailing ".exe" on either
// side. The batch is synchronous and best-effort: one target failing never
// aborts the rest. Every requested name appears in exactly one report
// bucket, except mixed outcomes which appear in both Killed and Failed
// with Partial set.
func (g *Guard) Kill(names []string) KillReport {
	var report KillReport

	procs, err := g.snapshot()
	if err != nil {
		// Without a process table every non-protected target is a failure.
		procs = nil
	}

	for _, target := range names {
		normalized := Normalize(target)

		if IsProtected(target) || IsProtected(normalized) {
			report.BlocklistSkipped = append(report.BlocklistSkipped, TargetOutcome{Name: target})
			continue
		}

		var killedAny, failedAny, foundAny bool
		for _, p := range procs {
			if Normalize(p.name) != normalized &&
				!strings.EqualFold(p.name, target) {
				continue
			}
			foundAny = true
			if err := p.kill(); err != nil {
				failedAny = true
			} else {
				killedAny = true
			}
		}

		switch {
		case killedAny && failedAny:
			report.Killed = append(report.Killed, TargetOutcome{Name: target, Partial: true})
			report.Failed = append(report.Failed, TargetOutcome{Name: target, Partial: true})
		case killedAny:
			report.Killed = append(report.Killed, TargetOutcome{Name: target})
		case failedAny:
			report.Failed = append(report.Failed, TargetOutcome{Name: target})
		case !foundAny:
			if err != nil {
				report.Failed = append(report.Failed, TargetOutcome{Name: target})
			} else {
				report.NotFound = append(report.NotFound, TargetOutcome{Name: target})
			}
		}
	}

	return report
}

func gopsutilList() ([]ProcessInfo, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to get process list: %w", err)
	}

	infos := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue // gone or inaccessible
		}

		info := ProcessInfo{PID: p.Pid, Name: name}
		if mem, err := p.MemoryInfo(); err == nil && mem != nil {
			info.MemoryKB = mem.RSS / 1024
		}
		if cpu, err := p.CPUPercent(); err == nil {
			info.CPUPercent = cpu
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func gopsutilSnapshot() ([]runningProcess, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to get process list: %w", err)
	}

	running := make([]runningProcess, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		running = append(running, runningProcess{name: name, kill: p.Kill})
	}
	return running, nil
}
