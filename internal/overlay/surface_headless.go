//go:build headless

package overlay

// newSurface returns an in-memory surface sized like a common desktop.
// Headless builds keep the full activation path working without a
// display server.
func newSurface() (Surface, error) {
	return newMemSurface(1920, 1080), nil
}
