package tray

import "time"

// DoubleClickWindow is how long after a first click a second one still
// counts as a double click. A first click is only confirmed as a single
// click once the window expires.
const DoubleClickWindow = 500 * time.Millisecond

// clickState is the tracker's position in the click protocol.
type clickState int

const (
	stateIdle clickState = iota
	stateAwaitingDoubleClick
	stateFlyoutOpen
)

// Action is what a click or timer expiry asks the controller to do.
type Action int

const (
	ActionNone Action = iota
	// ActionOpenEditor surfaces the main window (double click).
	ActionOpenEditor
	// ActionOpenFlyout shows the profile flyout (confirmed single click).
	ActionOpenFlyout
	// ActionCloseFlyout dismisses the flyout (click while open).
	ActionCloseFlyout
)

// ClickTracker decides what tray icon clicks mean. It holds no timers
// itself: the controller feeds it click timestamps and calls Tick from
// its loop, which keeps the state machine deterministic under test.
// Not safe for concurrent use; the controller loop is its only caller.
type ClickTracker struct {
	state      clickState
	firstClick time.Time
}

// NewClickTracker returns a tracker, optionally starting with the
// flyout already open so its state matches an initially visible menu.
func NewClickTracker(flyoutOpen bool) *ClickTracker {
	t := &ClickTracker{}
	if flyoutOpen {
		t.state = stateFlyoutOpen
	}
	return t
}

// Click records a left-click release at now and returns the resulting
// action.
func (t *ClickTracker) Click(now time.Time) Action {
	switch t.state {
	case stateIdle:
		t.state = stateAwaitingDoubleClick
		t.firstClick = now
		return ActionNone
	case stateAwaitingDoubleClick:
		if now.Sub(t.firstClick) < DoubleClickWindow {
			t.state = stateIdle
			return ActionOpenEditor
		}
		// The expiry fired logically before this click; treat the
		// click as the confirmed single click opening the flyout.
		t.state = stateFlyoutOpen
		return ActionOpenFlyout
	case stateFlyoutOpen:
		t.state = stateIdle
		return ActionCloseFlyout
	}
	return ActionNone
}

// Tick checks for double-click window expiry at now. Called once per
// controller loop iteration.
func (t *ClickTracker) Tick(now time.Time) Action {
	if t.state == stateAwaitingDoubleClick && now.Sub(t.firstClick) >= DoubleClickWindow {
		t.state = stateFlyoutOpen
		return ActionOpenFlyout
	}
	return ActionNone
}

// FlyoutClosed resets the tracker after a flyout selection dismissed
// the flyout outside the click path.
func (t *ClickTracker) FlyoutClosed() {
	if t.state == stateFlyoutOpen {
		t.state = stateIdle
	}
}
