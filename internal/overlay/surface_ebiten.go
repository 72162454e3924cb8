//go:build !headless

package overlay

import (
	"errors"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// ebitenSurface drives a borderless, transparent, always-on-top,
// click-through fullscreen window. The window covers the primary
// monitor; it never takes focus and never appears in the taskbar.
type ebitenSurface struct {
	mu    sync.RWMutex
	w, h  int
	frame []byte

	quit    chan struct{}
	done    chan struct{}
	ready   chan struct{}
	resized chan struct{}

	closeOnce sync.Once
}

// newSurface creates the surface and blocks until the first frame has
// been drawn, so the caller can present immediately after.
func newSurface() (Surface, error) {
	w, h := ebiten.Monitor().Size()
	s := &ebitenSurface{
		w:       w,
		h:       h,
		frame:   make([]byte, w*h*4),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
		ready:   make(chan struct{}),
		resized: make(chan struct{}, 1),
	}

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowPosition(0, 0)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowMousePassthrough(true)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(30)

	go func() {
		defer close(s.done)
		opts := &ebiten.RunGameOptions{
			ScreenTransparent: true,
			SkipTaskbar:       true,
			InitUnfocused:     true,
		}
		if err := ebiten.RunGameWithOptions(s, opts); err != nil && !errors.Is(err, ebiten.Termination) {
			log.Printf("Overlay window exited: %v", err)
		}
	}()

	// Wait for the first Draw so callers never present into a window
	// that is still being created.
	<-s.ready
	return s, nil
}

func (s *ebitenSurface) Size() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.w, s.h
}

func (s *ebitenSurface) Present(frame []byte, w, h int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.quit:
		return &SurfaceError{Op: "present", Err: errClosed}
	default:
	}
	if w != s.w || h != s.h || len(frame) != w*h*4 {
		return &SurfaceError{Op: "present", Err: errors.New("frame does not match surface dimensions")}
	}
	s.frame = append(s.frame[:0], frame...)
	return nil
}

func (s *ebitenSurface) Resized() <-chan struct{} { return s.resized }

func (s *ebitenSurface) Close() error {
	s.closeOnce.Do(func() { close(s.quit) })
	<-s.done
	return nil
}

// Update implements ebiten.Game. Returning ebiten.Termination shuts
// the window down cleanly.
func (s *ebitenSurface) Update() error {
	select {
	case <-s.quit:
		return ebiten.Termination
	default:
	}
	if mw, mh := ebiten.Monitor().Size(); mw > 0 && mh > 0 {
		s.mu.Lock()
		if mw != s.w || mh != s.h {
			s.w, s.h = mw, mh
			s.frame = make([]byte, mw*mh*4)
			ebiten.SetWindowSize(mw, mh)
			select {
			case s.resized <- struct{}{}:
			default:
			}
		}
		s.mu.Unlock()
	}
	return nil
}

// Draw implements ebiten.Game.
func (s *ebitenSurface) Draw(screen *ebiten.Image) {
	s.mu.RLock()
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	if len(s.frame) == sw*sh*4 {
		screen.WritePixels(s.frame)
	}
	s.mu.RUnlock()

	select {
	case <-s.ready:
	default:
		close(s.ready)
	}
}

// Layout implements ebiten.Game.
func (s *ebitenSurface) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
