// Package shutdown coordinates teardown of the capture loop and its
// sinks on interrupt signals or window close.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"motion-marker/internal/logger"
)

// closerTimeout bounds how long a single component may take to close.
const closerTimeout = 5 * time.Second

type closer struct {
	name string
	fn   func() error
}

// Manager cancels a shared context and runs registered closers, last
// registered first, exactly once.
type Manager struct {
	mu      sync.Mutex
	closers []closer
	log     logger.Logger
	done    chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewManager(log logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		log:    log,
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register adds a named closer. Closers run in reverse registration
// order, so register producers before consumers.
func (m *Manager) Register(name string, fn func() error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closers = append(m.closers, closer{name: name, fn: fn})
}

// Listen triggers Shutdown on SIGINT or SIGTERM.
func (m *Manager) Listen() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		select {
		case sig := <-sigChan:
			m.log.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			m.Shutdown()
		case <-m.done:
		}
	}()
}

// Shutdown cancels the shared context and closes every registered
// component. Safe to call more than once.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}

	m.cancel()

	for i := len(m.closers) - 1; i >= 0; i-- {
		c := m.closers[i]

		finished := make(chan error, 1)
		go func() {
			finished <- c.fn()
		}()

		select {
		case err := <-finished:
			if err != nil {
				m.log.Error("ShutdownManager", err, map[string]interface{}{
					"component": c.name,
				})
			}
		case <-time.After(closerTimeout):
			m.log.Warning("ShutdownManager", "component close timed out", map[string]interface{}{
				"component": c.name,
			})
		}
	}

	m.log.Info("ShutdownManager", "shutdown completed", nil)
}

// Context is canceled when shutdown begins.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// Done is closed when shutdown begins.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}
