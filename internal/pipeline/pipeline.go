// Package pipeline drives frames from a source through the motion filter
// and into zero or more sinks. It knows nothing about video backends;
// sources and sinks adapt those.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"motion-marker/internal/frame"
	"motion-marker/internal/logger"
	"motion-marker/internal/motion"
)

// Source yields frames in temporal order. Next returns io.EOF when the
// stream ends. The returned buffer may be reused between calls, so sinks
// must not retain it past Consume.
type Source interface {
	Next() (*frame.Buffer, error)
}

// Sink receives each processed frame.
type Sink interface {
	Consume(*frame.Buffer) error
}

// reportEvery is the frame interval between periodic throughput logs.
const reportEvery = 100

// Runner owns one end-to-end processing loop.
type Runner struct {
	source  Source
	filter  *motion.Filter
	sinks   []Sink
	log     logger.Logger
	metrics *Metrics
}

func NewRunner(source Source, filter *motion.Filter, log logger.Logger, sinks ...Sink) *Runner {
	if log == nil {
		log = logger.Nop{}
	}
	return &Runner{
		source:  source,
		filter:  filter,
		sinks:   sinks,
		log:     log,
		metrics: NewMetrics(),
	}
}

// Metrics exposes the runner's timing collector.
func (r *Runner) Metrics() *Metrics {
	return r.metrics
}

// Run processes frames until the source is exhausted or ctx is canceled.
// A canceled context is a clean stop, not an error.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Info("Pipeline", "processing started", nil)

	for {
		select {
		case <-ctx.Done():
			r.log.Info("Pipeline", "processing stopped", map[string]interface{}{
				"frames": r.metrics.Frames(),
			})
			return nil
		default:
		}

		buf, err := r.source.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.log.Info("Pipeline", "source exhausted", map[string]interface{}{
					"frames": r.metrics.Frames(),
				})
				return nil
			}
			return fmt.Errorf("frame read failed: %w", err)
		}

		start := time.Now()
		if err := r.filter.Apply(buf); err != nil {
			return fmt.Errorf("filter failed: %w", err)
		}
		r.metrics.Observe(time.Since(start))

		for _, sink := range r.sinks {
			if err := sink.Consume(buf); err != nil {
				return fmt.Errorf("sink failed: %w", err)
			}
		}

		if n := r.metrics.Frames(); n%reportEvery == 0 {
			stats := r.metrics.Snapshot()
			r.log.Info("Pipeline", "throughput", map[string]interface{}{
				"frames":   stats.Frames,
				"avg_ms":   fmt.Sprintf("%.2f", stats.AvgMillis),
				"worst_ms": fmt.Sprintf("%.2f", stats.MaxMillis),
				"fps":      fmt.Sprintf("%.1f", stats.FPS),
			})
		}
	}
}
