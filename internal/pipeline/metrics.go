package pipeline

import (
	"sync"
	"time"
)

// Stats is a point-in-time summary of per-frame filter timing.
type Stats struct {
	Frames    uint64
	AvgMillis float64
	MinMillis float64
	MaxMillis float64
	FPS       float64 // derived from the average processing time
}

// Metrics accumulates per-frame processing durations. Safe for use from
// the runner goroutine with concurrent Snapshot readers.
type Metrics struct {
	mu     sync.Mutex
	frames uint64
	total  time.Duration
	min    time.Duration
	max    time.Duration
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) Observe(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.frames++
	m.total += d
	if m.frames == 1 || d < m.min {
		m.min = d
	}
	if d > m.max {
		m.max = d
	}
}

func (m *Metrics) Frames() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames
}

func (m *Metrics) Snapshot() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Stats{
		Frames:    m.frames,
		MinMillis: float64(m.min) / float64(time.Millisecond),
		MaxMillis: float64(m.max) / float64(time.Millisecond),
	}
	if m.frames > 0 {
		avg := m.total / time.Duration(m.frames)
		s.AvgMillis = float64(avg) / float64(time.Millisecond)
		if avg > 0 {
			s.FPS = float64(time.Second) / float64(avg)
		}
	}
	return s
}
