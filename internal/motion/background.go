package motion

import (
	"math"

	"motion-marker/internal/frame"
)

// pixelState is one pixel's background estimate plus the number of
// consecutive frames it has disagreed with that estimate. The channel
// estimates are kept as floats but compared at 8-bit precision, so
// sub-integer drift has no effect until it crosses an integer boundary.
type pixelState struct {
	r, g, b float64
	age     int
}

// seed initializes the background model from the first observed frame
// and locks the filter to that frame's geometry.
func (f *Filter) seed(buf *frame.Buffer) {
	f.width = buf.Width
	f.height = buf.Height
	f.states = make([]pixelState, f.width*f.height)

	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			r, g, b := buf.RGB(x, y)
			st := &f.states[y*f.width+x]
			st.r = float64(r)
			st.g = float64(g)
			st.b = float64(b)
		}
	}
}

// detect compares the frame against the background model, writing motion
// intensity for every changed pixel and zero elsewhere, and advances each
// pixel's adaptation counter. A pixel that has disagreed with its
// estimate for more than AdaptAfter consecutive frames is absorbed into
// the background, so objects that stop and stay eventually vanish from
// the mask. Returns the number of change candidates.
func (f *Filter) detect(buf *frame.Buffer) int {
	candidates := 0
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			idx := y*f.width + x
			st := &f.states[idx]
			r, g, b := buf.RGB(x, y)

			dist := colorDistance(r, g, b, uint8(st.r), uint8(st.g), uint8(st.b))
			if dist < f.opts.NoiseThreshold {
				st.age = 0
				f.intensity[idx] = 0
				continue
			}

			f.intensity[idx] = dist
			candidates++
			st.age++
			if st.age > f.opts.AdaptAfter {
				st.r = float64(r)
				st.g = float64(g)
				st.b = float64(b)
				st.age = 0
			}
		}
	}
	return candidates
}

// colorDistance is the Euclidean distance between two colors in RGB
// space. Both operands are 8-bit; the background estimate is truncated
// to 8 bits by the caller before comparison.
func colorDistance(r1, g1, b1, r2, g2, b2 uint8) float64 {
	dr := float64(int(r1) - int(r2))
	dg := float64(int(g1) - int(g2))
	db := float64(int(b1) - int(b2))
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
