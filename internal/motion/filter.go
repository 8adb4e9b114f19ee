// Package motion implements a streaming motion-detection filter. Each
// frame is compared against an adaptively learned per-pixel background;
// sustained change survives a morphological opening and a dual-threshold
// stabilization pass, and the surviving regions are highlighted directly
// in the frame buffer.
package motion

import (
	"errors"
	"fmt"

	"motion-marker/internal/frame"
	"motion-marker/internal/logger"
)

const (
	// DefaultNoiseThreshold is the color distance below which a pixel is
	// treated as unchanged background.
	DefaultNoiseThreshold = 25.0

	// DefaultAdaptAfter is the number of consecutive changed frames after
	// which a pixel's background estimate absorbs the new color.
	DefaultAdaptAfter = 100

	// DefaultLowThreshold and DefaultHighThreshold bound the weak band of
	// the stabilization pass.
	DefaultLowThreshold  = 4.0
	DefaultHighThreshold = 30.0

	// DefaultHighlight is the red boost applied to detected pixels: half
	// the channel range, truncated.
	DefaultHighlight = uint8(255 / 2)
)

// ErrGeometryMismatch is returned when a frame's dimensions differ from
// the geometry the filter was initialized with. The per-pixel state is
// sized once, on the first frame; feeding a different size afterwards
// would silently corrupt it, so it is rejected instead.
var ErrGeometryMismatch = errors.New("frame geometry changed after initialization")

// Options tunes the detection thresholds. The zero value is not usable
// directly; New replaces out-of-range fields with defaults.
type Options struct {
	NoiseThreshold float64 // minimum color distance counted as change
	AdaptAfter     int     // frames of continuous change before adaptation
	LowThreshold   float64 // below this the stabilizer drops a pixel
	HighThreshold  float64 // at or above this a pixel is kept outright
	Highlight      uint8   // red channel boost for detected pixels
}

// DefaultOptions returns the standard detection parameters.
func DefaultOptions() Options {
	return Options{
		NoiseThreshold: DefaultNoiseThreshold,
		AdaptAfter:     DefaultAdaptAfter,
		LowThreshold:   DefaultLowThreshold,
		HighThreshold:  DefaultHighThreshold,
		Highlight:      DefaultHighlight,
	}
}

// Filter holds one instance's persistent detection state. Instances are
// independent; each owns its own background model. A Filter must not be
// used from more than one goroutine at a time — the host serializes
// frames into it.
type Filter struct {
	opts Options
	log  logger.Logger

	width  int
	height int

	states    []pixelState // background model, allocated on first frame
	intensity []float64    // per-pixel motion intensity, reused every frame
	scratch   []float64    // snapshot buffer for the neighborhood passes

	frames uint64
}

// New creates a filter. No per-pixel state is allocated until the first
// frame arrives, so construction is cheap at any resolution. Invalid
// option fields fall back to defaults.
func New(opts Options, log logger.Logger) *Filter {
	if log == nil {
		log = logger.Nop{}
	}
	if opts.NoiseThreshold <= 0 {
		log.Warning("MotionFilter", "invalid noise threshold, using default", map[string]interface{}{
			"value": opts.NoiseThreshold, "default": DefaultNoiseThreshold,
		})
		opts.NoiseThreshold = DefaultNoiseThreshold
	}
	if opts.AdaptAfter <= 0 {
		log.Warning("MotionFilter", "invalid adaptation window, using default", map[string]interface{}{
			"value": opts.AdaptAfter, "default": DefaultAdaptAfter,
		})
		opts.AdaptAfter = DefaultAdaptAfter
	}
	if opts.LowThreshold <= 0 || opts.HighThreshold <= opts.LowThreshold {
		log.Warning("MotionFilter", "invalid stabilization thresholds, using defaults", map[string]interface{}{
			"low": opts.LowThreshold, "high": opts.HighThreshold,
		})
		opts.LowThreshold = DefaultLowThreshold
		opts.HighThreshold = DefaultHighThreshold
	}
	if opts.Highlight == 0 {
		opts.Highlight = DefaultHighlight
	}

	return &Filter{opts: opts, log: log}
}

// Apply runs one frame through the full pipeline, mutating buf in place.
// The very first frame only seeds the background model and returns with
// the buffer untouched; detection starts on the second frame.
func (f *Filter) Apply(buf *frame.Buffer) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("frame validation failed: %w", err)
	}

	if f.states == nil {
		f.seed(buf)
		f.log.Info("MotionFilter", "background model seeded", map[string]interface{}{
			"width": f.width, "height": f.height,
		})
		return nil
	}

	if buf.Width != f.width || buf.Height != f.height {
		return fmt.Errorf("%w: model is %dx%d, frame is %dx%d",
			ErrGeometryMismatch, f.width, f.height, buf.Width, buf.Height)
	}

	if f.intensity == nil {
		f.intensity = make([]float64, f.width*f.height)
		f.scratch = make([]float64, f.width*f.height)
	}

	candidates := f.detect(buf)
	f.open(openRadius(f.width, f.height))
	f.stabilize()
	marked := f.highlight(buf)

	f.frames++
	f.log.Debug("MotionFilter", "frame processed", map[string]interface{}{
		"frame":      f.frames,
		"candidates": candidates,
		"marked":     marked,
	})
	return nil
}

// Size returns the geometry the filter locked onto, or zeros before the
// first frame.
func (f *Filter) Size() (width, height int) {
	return f.width, f.height
}
