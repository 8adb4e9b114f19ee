package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStabilizeClassification(t *testing.T) {
	t.Parallel()

	f := newStageFilter(10, 10)
	f.intensity[5*10+5] = 80 // strong
	f.intensity[5*10+6] = 10 // weak, next to strong
	f.intensity[1*10+1] = 10 // weak, isolated
	f.intensity[2*10+2] = 2  // below low

	f.stabilize()

	assert.Equal(t, 1.0, f.intensity[5*10+5])
	assert.Equal(t, 1.0, f.intensity[5*10+6])
	assert.Zero(t, f.intensity[1*10+1])
	assert.Zero(t, f.intensity[2*10+2])
}

func TestStabilizeSingleHopOnly(t *testing.T) {
	t.Parallel()

	// strong - weak - weak in a row. Only the weak pixel directly
	// adjacent to the strong one is promoted; promotion does not chain
	// through pixels resolved earlier in the sweep.
	f := newStageFilter(10, 10)
	f.intensity[5*10+4] = 80
	f.intensity[5*10+5] = 10
	f.intensity[5*10+6] = 10

	f.stabilize()

	assert.Equal(t, 1.0, f.intensity[5*10+4])
	assert.Equal(t, 1.0, f.intensity[5*10+5])
	assert.Zero(t, f.intensity[5*10+6])
}

func TestStabilizeBorderClipping(t *testing.T) {
	t.Parallel()

	// Weak pixel in the corner with a strong diagonal neighbor; the
	// out-of-range neighbors must simply be skipped.
	f := newStageFilter(10, 10)
	f.intensity[0] = 10
	f.intensity[1*10+1] = 80

	f.stabilize()

	assert.Equal(t, 1.0, f.intensity[0])
	assert.Equal(t, 1.0, f.intensity[1*10+1])
}

func TestStabilizeMonotonicInHighThreshold(t *testing.T) {
	t.Parallel()

	values := []float64{0, 2, 5, 10, 29, 30, 35, 50, 80, 200}

	mask := func(high float64) []float64 {
		f := newStageFilter(len(values), 3)
		f.opts.HighThreshold = high
		for x, v := range values {
			f.intensity[1*len(values)+x] = v
		}
		f.stabilize()
		return append([]float64(nil), f.intensity...)
	}

	strict := mask(50)
	loose := mask(30)

	// Raising the high threshold can only shrink the mask.
	for idx := range strict {
		if strict[idx] == 1 {
			assert.Equal(t, 1.0, loose[idx], "pixel %d lost by lowering threshold", idx)
		}
	}
}
