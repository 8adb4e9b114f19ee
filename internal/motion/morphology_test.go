package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"motion-marker/internal/logger"
)

// newStageFilter builds a filter with allocated maps but no background
// model, for exercising individual stages.
func newStageFilter(w, h int) *Filter {
	return &Filter{
		opts:      DefaultOptions(),
		log:       logger.Nop{},
		width:     w,
		height:    h,
		intensity: make([]float64, w*h),
		scratch:   make([]float64, w*h),
	}
}

func TestOpenRadius(t *testing.T) {
	t.Parallel()

	tests := []struct {
		width, height, want int
	}{
		{100, 100, 3},
		{320, 240, 3},
		{1000, 500, 5},
		{500, 1000, 5},
		{1920, 1080, 10},
		{4, 4, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, openRadius(tt.width, tt.height), "%dx%d", tt.width, tt.height)
	}
}

func TestOpenRemovesIsolatedSpike(t *testing.T) {
	t.Parallel()

	f := newStageFilter(100, 100)
	f.intensity[50*100+50] = 200

	f.open(3)

	for idx, v := range f.intensity {
		assert.Zero(t, v, "pixel %d", idx)
	}
}

func TestOpenPreservesLargeRegionInterior(t *testing.T) {
	t.Parallel()

	const w, h, cx, cy, rad = 100, 100, 50, 50, 10
	f := newStageFilter(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= rad*rad {
				f.intensity[y*w+x] = 100
			}
		}
	}

	f.open(3)

	// Points at least the structuring radius inside the disk boundary
	// survive the opening unchanged.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= (rad-3)*(rad-3) {
				assert.Equal(t, 100.0, f.intensity[y*w+x], "pixel (%d,%d)", x, y)
			}
		}
	}

	// Far field stays empty.
	assert.Zero(t, f.intensity[5*w+5])
}

func TestOpenLeavesBorderUntouched(t *testing.T) {
	t.Parallel()

	f := newStageFilter(60, 60)
	f.intensity[0] = 42         // corner
	f.intensity[1*60+1] = 7     // inside the 3-pixel border band
	f.intensity[2*60+59] = 13   // right edge

	f.open(3)

	assert.Equal(t, 42.0, f.intensity[0])
	assert.Equal(t, 7.0, f.intensity[1*60+1])
	assert.Equal(t, 13.0, f.intensity[2*60+59])
}

func TestDiskPassSnapshotDiscipline(t *testing.T) {
	t.Parallel()

	// A dilation over a single bright pixel must spread it exactly one
	// disk, not cascade it across the row as an in-place sweep would.
	f := newStageFilter(40, 40)
	f.intensity[20*40+20] = 99

	f.diskPass(3, false)

	assert.Equal(t, 99.0, f.intensity[20*40+23])
	assert.Zero(t, f.intensity[20*40+24])
	assert.Zero(t, f.intensity[20*40+30])
}
