package overlay

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, w, h int, fill color.RGBA) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	path := filepath.Join(t.TempDir(), "crosshair.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return path
}

func TestLoadCrosshair(t *testing.T) {
	t.Run("accepts 100x100 PNG", func(t *testing.T) {
		path := writePNG(t, 100, 100, color.RGBA{R: 255, A: 255})
		ch, err := LoadCrosshair(path)
		if err != nil {
			t.Fatalf("LoadCrosshair() error = %v", err)
		}
		if ch.Width != CrosshairWidth || ch.Height != CrosshairHeight {
			t.Errorf("dimensions = %dx%d, want %dx%d", ch.Width, ch.Height, CrosshairWidth, CrosshairHeight)
		}
		if len(ch.Pixels) != 100*100*4 {
			t.Errorf("len(Pixels) = %d, want %d", len(ch.Pixels), 100*100*4)
		}
		if ch.Pixels[0] != 255 || ch.Pixels[3] != 255 {
			t.Errorf("first pixel = %v, want opaque red", ch.Pixels[:4])
		}
	})

	t.Run("rejects wrong dimensions", func(t *testing.T) {
		path := writePNG(t, 64, 64, color.RGBA{A: 255})
		_, err := LoadCrosshair(path)
		var sizeErr *InvalidImageSizeError
		if !errors.As(err, &sizeErr) {
			t.Fatalf("LoadCrosshair() error = %v, want InvalidImageSizeError", err)
		}
		if sizeErr.ActualW != 64 || sizeErr.ActualH != 64 {
			t.Errorf("reported size = %dx%d, want 64x64", sizeErr.ActualW, sizeErr.ActualH)
		}
	})

	t.Run("rejects missing file", func(t *testing.T) {
		_, err := LoadCrosshair(filepath.Join(t.TempDir(), "nope.png"))
		var decErr *DecodeError
		if !errors.As(err, &decErr) {
			t.Fatalf("LoadCrosshair() error = %v, want DecodeError", err)
		}
	})

	t.Run("rejects non-image content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bogus.png")
		if err := os.WriteFile(path, []byte("not a png"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadCrosshair(path)
		var decErr *DecodeError
		if !errors.As(err, &decErr) {
			t.Fatalf("LoadCrosshair() error = %v, want DecodeError", err)
		}
	})

	t.Run("keeps transparent pixels zero", func(t *testing.T) {
		path := writePNG(t, 100, 100, color.RGBA{})
		ch, err := LoadCrosshair(path)
		if err != nil {
			t.Fatalf("LoadCrosshair() error = %v", err)
		}
		for i, b := range ch.Pixels {
			if b != 0 {
				t.Fatalf("Pixels[%d] = %d, want 0 for fully transparent image", i, b)
			}
		}
	})
}

func solidCrosshair(v byte) *Crosshair {
	ch := &Crosshair{
		Pixels: make([]byte, CrosshairWidth*CrosshairHeight*4),
		Width:  CrosshairWidth,
		Height: CrosshairHeight,
	}
	for i := range ch.Pixels {
		ch.Pixels[i] = v
	}
	return ch
}

func pixelAt(frame []byte, w, x, y int) []byte {
	i := (y*w + x) * 4
	return frame[i : i+4]
}

func TestComposite(t *testing.T) {
	const w, h = 400, 300

	t.Run("centers with zero offsets", func(t *testing.T) {
		frame := make([]byte, w*h*4)
		Composite(frame, w, h, solidCrosshair(200), 0, 0)

		// Crosshair occupies [150,250) x [100,200).
		if got := pixelAt(frame, w, 150, 100); got[0] != 200 {
			t.Errorf("top-left crosshair pixel = %v, want filled", got)
		}
		if got := pixelAt(frame, w, 249, 199); got[0] != 200 {
			t.Errorf("bottom-right crosshair pixel = %v, want filled", got)
		}
		if got := pixelAt(frame, w, 149, 100); got[3] != 0 {
			t.Errorf("pixel left of crosshair = %v, want transparent", got)
		}
		if got := pixelAt(frame, w, 150, 99); got[3] != 0 {
			t.Errorf("pixel above crosshair = %v, want transparent", got)
		}
	})

	t.Run("applies offsets", func(t *testing.T) {
		frame := make([]byte, w*h*4)
		Composite(frame, w, h, solidCrosshair(200), 30, -20)

		if got := pixelAt(frame, w, 180, 80); got[0] != 200 {
			t.Errorf("shifted top-left pixel = %v, want filled", got)
		}
		if got := pixelAt(frame, w, 150, 100); got[3] != 0 {
			t.Errorf("old top-left pixel = %v, want transparent", got)
		}
	})

	t.Run("clips off-screen pixels", func(t *testing.T) {
		frame := make([]byte, w*h*4)
		// Push the crosshair mostly past the left edge.
		Composite(frame, w, h, solidCrosshair(200), -190, 0)

		if got := pixelAt(frame, w, 0, 150); got[0] != 200 {
			t.Errorf("on-screen remainder = %v, want filled", got)
		}
		if got := pixelAt(frame, w, 60, 150); got[3] != 0 {
			t.Errorf("pixel past clipped crosshair = %v, want transparent", got)
		}
	})

	t.Run("clears stale frame content", func(t *testing.T) {
		frame := make([]byte, w*h*4)
		for i := range frame {
			frame[i] = 0xff
		}
		Composite(frame, w, h, solidCrosshair(200), 0, 0)
		if got := pixelAt(frame, w, 0, 0); got[3] != 0 {
			t.Errorf("corner pixel = %v, want cleared", got)
		}
	})

	t.Run("nil crosshair clears the frame", func(t *testing.T) {
		frame := make([]byte, w*h*4)
		for i := range frame {
			frame[i] = 0xff
		}
		Composite(frame, w, h, nil, 0, 0)
		for i, b := range frame {
			if b != 0 {
				t.Fatalf("frame[%d] = %d, want 0", i, b)
			}
		}
	})
}

func TestHandle(t *testing.T) {
	newHandle := func(t *testing.T, visible bool) (*Handle, *memSurface) {
		t.Helper()
		s := newMemSurface(400, 300)
		h, err := startWith(s, solidCrosshair(200), 0, 0, visible)
		if err != nil {
			t.Fatalf("startWith() error = %v", err)
		}
		return h, s
	}

	t.Run("presents crosshair on start", func(t *testing.T) {
		h, s := newHandle(t, true)
		defer h.Stop()
		if s.presents != 1 {
			t.Fatalf("presents = %d, want 1", s.presents)
		}
		if got := pixelAt(s.frame, 400, 200, 150); got[0] != 200 {
			t.Errorf("center pixel = %v, want filled", got)
		}
	})

	t.Run("hide presents transparent frame", func(t *testing.T) {
		h, s := newHandle(t, true)
		defer h.Stop()
		if err := h.Hide(); err != nil {
			t.Fatalf("Hide() error = %v", err)
		}
		for i, b := range s.frame {
			if b != 0 {
				t.Fatalf("frame[%d] = %d after Hide, want 0", i, b)
			}
		}
		if err := h.Show(); err != nil {
			t.Fatalf("Show() error = %v", err)
		}
		if got := pixelAt(s.frame, 400, 200, 150); got[0] != 200 {
			t.Errorf("center pixel after Show = %v, want filled", got)
		}
	})

	t.Run("update moves the crosshair", func(t *testing.T) {
		h, s := newHandle(t, true)
		defer h.Stop()
		if err := h.Update(50, 0); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if got := pixelAt(s.frame, 400, 200, 150); got[3] != 0 {
			t.Errorf("old center pixel = %v, want transparent", got)
		}
		if got := pixelAt(s.frame, 400, 250, 150); got[0] != 200 {
			t.Errorf("shifted pixel = %v, want filled", got)
		}
	})

	t.Run("starting hidden presents nothing", func(t *testing.T) {
		h, s := newHandle(t, false)
		defer h.Stop()
		for i, b := range s.frame {
			if b != 0 {
				t.Fatalf("frame[%d] = %d for hidden start, want 0", i, b)
			}
		}
	})

	t.Run("stop is idempotent and closes the surface", func(t *testing.T) {
		h, s := newHandle(t, true)
		h.Stop()
		h.Stop()
		if !s.closed {
			t.Error("surface not closed after Stop")
		}
	})

	t.Run("no render after stop", func(t *testing.T) {
		h, s := newHandle(t, true)
		h.Stop()
		before := s.presents
		if err := h.Update(10, 10); err != nil {
			t.Fatalf("Update() after Stop error = %v", err)
		}
		if s.presents != before {
			t.Errorf("presents = %d after Stop, want %d", s.presents, before)
		}
	})
}
