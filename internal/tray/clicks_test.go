package tray

import (
	"testing"
	"time"
)

func TestClickTracker(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("double click opens the editor", func(t *testing.T) {
		var tracker ClickTracker

		if got := tracker.Click(base); got != ActionNone {
			t.Fatalf("first click = %v, want ActionNone", got)
		}
		if got := tracker.Tick(base.Add(100 * time.Millisecond)); got != ActionNone {
			t.Fatalf("tick inside window = %v, want ActionNone", got)
		}
		if got := tracker.Click(base.Add(200 * time.Millisecond)); got != ActionOpenEditor {
			t.Fatalf("second click at 200ms = %v, want ActionOpenEditor", got)
		}
		// No flyout actions afterwards.
		if got := tracker.Tick(base.Add(time.Second)); got != ActionNone {
			t.Errorf("tick after double click = %v, want ActionNone", got)
		}
	})

	t.Run("expired window opens the flyout", func(t *testing.T) {
		var tracker ClickTracker

		tracker.Click(base)
		if got := tracker.Tick(base.Add(501 * time.Millisecond)); got != ActionOpenFlyout {
			t.Fatalf("tick past window = %v, want ActionOpenFlyout", got)
		}
		// Second click at 800ms toggles the open flyout closed.
		if got := tracker.Click(base.Add(800 * time.Millisecond)); got != ActionCloseFlyout {
			t.Errorf("click with flyout open = %v, want ActionCloseFlyout", got)
		}
	})

	t.Run("exactly one flyout open per confirmed click", func(t *testing.T) {
		var tracker ClickTracker

		tracker.Click(base)
		opens := 0
		for i := 1; i <= 20; i++ {
			if tracker.Tick(base.Add(time.Duration(i)*100*time.Millisecond)) == ActionOpenFlyout {
				opens++
			}
		}
		if opens != 1 {
			t.Errorf("flyout opened %d times, want 1", opens)
		}
	})

	t.Run("late second click without a tick still opens the flyout", func(t *testing.T) {
		var tracker ClickTracker

		tracker.Click(base)
		if got := tracker.Click(base.Add(800 * time.Millisecond)); got != ActionOpenFlyout {
			t.Errorf("late click = %v, want ActionOpenFlyout", got)
		}
	})

	t.Run("selection resets an open flyout", func(t *testing.T) {
		var tracker ClickTracker

		tracker.Click(base)
		tracker.Tick(base.Add(600 * time.Millisecond))
		tracker.FlyoutClosed()

		// Next click starts a fresh double-click window.
		if got := tracker.Click(base.Add(time.Second)); got != ActionNone {
			t.Errorf("click after selection = %v, want ActionNone", got)
		}
	})

	t.Run("boundary click at exactly 500ms is not a double click", func(t *testing.T) {
		var tracker ClickTracker

		tracker.Click(base)
		if got := tracker.Click(base.Add(DoubleClickWindow)); got != ActionOpenFlyout {
			t.Errorf("click at window boundary = %v, want ActionOpenFlyout", got)
		}
	})

	t.Run("tick at exactly 500ms expires the window", func(t *testing.T) {
		var tracker ClickTracker

		tracker.Click(base)
		if got := tracker.Tick(base.Add(DoubleClickWindow)); got != ActionOpenFlyout {
			t.Errorf("tick at window boundary = %v, want ActionOpenFlyout", got)
		}
	})
}
