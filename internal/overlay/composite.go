package overlay

// Composite draws the crosshair into an RGBA frame of w by h pixels: the
// frame is cleared fully transparent, then source pixels are copied with
// straight alpha replacement (no blending — the backdrop is desktop
// content the compositor does not own). Placement is screen-centered plus
// the pixel offsets. Destination coordinates outside the frame are
// skipped, so a partially off-screen crosshair is clipped, not an error.
func Composite(frame []byte, w, h int, ch *Crosshair, xOffset, yOffset int) {
	for i := range frame {
		frame[i] = 0
	}
	if ch == nil || w <= 0 || h <= 0 {
		return
	}

	originX := w/2 - ch.Width/2 + xOffset
	originY := h/2 - ch.Height/2 + yOffset

	for y := 0; y < ch.Height; y++ {
		dstY := originY + y
		if dstY < 0 || dstY >= h {
			continue
		}
		for x := 0; x < ch.Width; x++ {
			dstX := originX + x
			if dstX < 0 || dstX >= w {
				continue
			}
			src := (y*ch.Width + x) * 4
			dst := (dstY*w + dstX) * 4
			copy(frame[dst:dst+4], ch.Pixels[src:src+4])
		}
	}
}
