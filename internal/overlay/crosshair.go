// Package overlay renders a crosshair image onto a transparent,
// click-through, always-on-top fullscreen surface.
package overlay

import (
	"fmt"
	"image"
	"os"

	_ "image/png" // crosshair images are PNG
)

// Crosshair dimensions are fixed: the picker validates the extension, the
// compositor validates the decoded size.
const (
	CrosshairWidth  = 100
	CrosshairHeight = 100
)

// InvalidImageSizeError reports a crosshair image with the wrong dimensions.
type InvalidImageSizeError struct {
	ExpectedW, ExpectedH int
	ActualW, ActualH     int
}

func (e *InvalidImageSizeError) Error() string {
	return fmt.Sprintf("crosshair image must be exactly %dx%d pixels (got %dx%d)",
		e.ExpectedW, e.ExpectedH, e.ActualW, e.ActualH)
}

// DecodeError reports a crosshair file that could not be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode crosshair image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Crosshair holds decoded crosshair pixels in straight-alpha RGBA order.
type Crosshair struct {
	Pixels []byte // len = Width*Height*4
	Width  int
	Height int
}

// LoadCrosshair decodes the image at path and validates its dimensions.
func LoadCrosshair(path string) (*Crosshair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w != CrosshairWidth || h != CrosshairHeight {
		return nil, &InvalidImageSizeError{
			ExpectedW: CrosshairWidth, ExpectedH: CrosshairHeight,
			ActualW: w, ActualH: h,
		}
	}

	pixels := make([]byte, w*h*4)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			// Undo the premultiplication RGBA() applies so fully
			// transparent pixels stay zero and opaque ones keep
			// their color.
			if a > 0 {
				pixels[i] = byte((r * 0xffff / a) >> 8)
				pixels[i+1] = byte((g * 0xffff / a) >> 8)
				pixels[i+2] = byte((b * 0xffff / a) >> 8)
			}
			pixels[i+3] = byte(a >> 8)
			i += 4
		}
	}

	return &Crosshair{Pixels: pixels, Width: w, Height: h}, nil
}
