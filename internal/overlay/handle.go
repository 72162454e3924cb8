package overlay

import (
	"log"
	"sync"
)

// Handle owns one live overlay: a crosshair composited onto a
// screen-sized transparent frame and presented on a Surface. At most
// one Handle exists per activated profile; the session layer enforces
// that by stopping the old handle before starting a new one.
type Handle struct {
	mu      sync.Mutex
	surface Surface
	ch      *Crosshair
	xOff    int
	yOff    int
	visible bool

	stopOnce sync.Once
	stopped  chan struct{}
	watched  chan struct{}
}

// Start loads the crosshair image, creates the platform surface and
// presents the first frame. visible=false starts the overlay with a
// fully transparent frame; Show flips it on without reloading.
func Start(imagePath string, xOff, yOff int, visible bool) (*Handle, error) {
	ch, err := LoadCrosshair(imagePath)
	if err != nil {
		return nil, err
	}
	surface, err := newSurface()
	if err != nil {
		return nil, err
	}
	return startWith(surface, ch, xOff, yOff, visible)
}

// startWith wires a Handle onto an existing surface. Split out so
// tests can drive the handle against an in-memory surface.
func startWith(surface Surface, ch *Crosshair, xOff, yOff int, visible bool) (*Handle, error) {
	h := &Handle{
		surface: surface,
		ch:      ch,
		xOff:    xOff,
		yOff:    yOff,
		visible: visible,
		stopped: make(chan struct{}),
		watched: make(chan struct{}),
	}
	if err := h.render(); err != nil {
		surface.Close()
		return nil, err
	}

	// Re-render whenever the surface changes dimensions, e.g. a
	// resolution switch while a game launches.
	go func() {
		defer close(h.watched)
		for {
			select {
			case <-h.stopped:
				return
			case <-surface.Resized():
				if err := h.render(); err != nil {
					log.Printf("Overlay re-render after resize failed: %v", err)
				}
			}
		}
	}()

	return h, nil
}

// Update moves the crosshair to new offsets and re-renders.
func (h *Handle) Update(xOff, yOff int) error {
	h.mu.Lock()
	h.xOff, h.yOff = xOff, yOff
	h.mu.Unlock()
	return h.render()
}

// Show presents the crosshair frame.
func (h *Handle) Show() error {
	h.mu.Lock()
	h.visible = true
	h.mu.Unlock()
	return h.render()
}

// Hide presents a fully transparent frame. The surface stays alive so
// Show is instant.
func (h *Handle) Hide() error {
	h.mu.Lock()
	h.visible = false
	h.mu.Unlock()
	return h.render()
}

// Visible reports whether the crosshair frame is currently presented.
func (h *Handle) Visible() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.visible
}

// Stop tears the overlay down. Synchronous: when Stop returns, no
// further frame is displayed. Safe to call more than once.
func (h *Handle) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopped)
		<-h.watched
		if err := h.surface.Close(); err != nil {
			log.Printf("Overlay surface close: %v", err)
		}
	})
}

func (h *Handle) render() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	select {
	case <-h.stopped:
		return nil
	default:
	}
	w, hgt := h.surface.Size()
	frame := make([]byte, w*hgt*4)
	if h.visible {
		Composite(frame, w, hgt, h.ch, h.xOff, h.yOff)
	}
	return h.surface.Present(frame, w, hgt)
}
