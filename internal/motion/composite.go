package motion

import "motion-marker/internal/frame"

// highlight boosts the red channel of every masked pixel, saturating at
// 255. Green and blue are untouched. This is the only stage that writes
// to the caller's buffer. Returns the number of marked pixels.
func (f *Filter) highlight(buf *frame.Buffer) int {
	marked := 0
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			if f.intensity[y*f.width+x] > 0 {
				buf.AddRed(x, y, f.opts.Highlight)
				marked++
			}
		}
	}
	return marked
}
