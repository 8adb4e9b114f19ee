package motion

// stabilize turns the smoothed intensity map into a binary mask using
// two thresholds. Values at or above the high threshold become 1, values
// below the low threshold become 0, and the weak band in between is kept
// only next to a strong pixel.
//
// This is a deliberately simplified single-pass variant: a weak pixel
// looks at its 8 neighbors' pre-pass intensities, so weak regions connect
// to strong ones at most one hop away. There is no iterative region
// growing as in classical edge-detector hysteresis.
func (f *Filter) stabilize() {
	low := f.opts.LowThreshold
	high := f.opts.HighThreshold

	copy(f.scratch, f.intensity)

	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			idx := y*f.width + x
			v := f.scratch[idx]

			switch {
			case v >= high:
				f.intensity[idx] = 1
			case v < low:
				f.intensity[idx] = 0
			default:
				if f.strongNeighbor(x, y, high) {
					f.intensity[idx] = 1
				} else {
					f.intensity[idx] = 0
				}
			}
		}
	}
}

// strongNeighbor reports whether any of the 8 neighbors of (x, y),
// clipped at the frame borders, had pre-pass intensity at or above the
// high threshold.
func (f *Filter) strongNeighbor(x, y int, high float64) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= f.width || ny < 0 || ny >= f.height {
				continue
			}
			if f.scratch[ny*f.width+nx] >= high {
				return true
			}
		}
	}
	return false
}
