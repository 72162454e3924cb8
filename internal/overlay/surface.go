package overlay

import "fmt"

// SurfaceError reports a failure to create or drive the rendering surface.
type SurfaceError struct {
	Op  string
	Err error
}

func (e *SurfaceError) Error() string {
	return fmt.Sprintf("overlay surface %s: %v", e.Op, e.Err)
}

func (e *SurfaceError) Unwrap() error { return e.Err }

// Surface is one live rendering target. Implementations: the ebiten
// backend (a transparent, undecorated, floating, mouse-passthrough
// fullscreen window) and an in-memory backend for tests and headless
// builds. The interface-per-backend split follows the video output
// backends in the engine this compositor is modeled on.
type Surface interface {
	// Size returns the current surface dimensions in pixels.
	Size() (w, h int)
	// Present replaces the displayed frame. The buffer is RGBA,
	// len = w*h*4 for the dimensions last returned by Size.
	Present(frame []byte, w, h int) error
	// Resized signals dimension changes; the handle re-renders on each.
	Resized() <-chan struct{}
	// Close destroys the surface synchronously: when it returns, no
	// further frame is displayed. Idempotent.
	Close() error
}

// memSurface is the in-memory Surface used by tests and headless builds.
// It records the last presented frame.
type memSurface struct {
	w, h     int
	frame    []byte
	presents int
	resized  chan struct{}
	closed   bool
}

func newMemSurface(w, h int) *memSurface {
	return &memSurface{w: w, h: h, resized: make(chan struct{}, 1)}
}

func (s *memSurface) Size() (int, int) { return s.w, s.h }

func (s *memSurface) Present(frame []byte, w, h int) error {
	if s.closed {
		return &SurfaceError{Op: "present", Err: errClosed}
	}
	s.frame = append(s.frame[:0], frame...)
	s.presents++
	return nil
}

func (s *memSurface) Resized() <-chan struct{} { return s.resized }

func (s *memSurface) Close() error {
	s.closed = true
	return nil
}

// resize changes the dimensions and signals the handle.
func (s *memSurface) resize(w, h int) {
	s.w, s.h = w, h
	select {
	case s.resized <- struct{}{}:
	default:
	}
}

var errClosed = fmt.Errorf("surface closed")
