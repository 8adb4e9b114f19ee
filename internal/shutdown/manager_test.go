package shutdown

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"motion-marker/internal/logger"
)

func TestShutdownRunsClosersInReverseOrder(t *testing.T) {
	t.Parallel()

	m := NewManager(logger.Nop{})

	var order []string
	m.Register("first", func() error {
		order = append(order, "first")
		return nil
	})
	m.Register("second", func() error {
		order = append(order, "second")
		return nil
	})

	m.Shutdown()

	assert.Equal(t, []string{"second", "first"}, order)
	assert.Error(t, m.Context().Err())

	select {
	case <-m.Done():
	default:
		t.Fatal("done channel should be closed")
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	t.Parallel()

	m := NewManager(logger.Nop{})

	calls := 0
	m.Register("once", func() error {
		calls++
		return nil
	})

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, 1, calls)
}

func TestShutdownContinuesPastFailingCloser(t *testing.T) {
	t.Parallel()

	m := NewManager(logger.Nop{})

	reached := false
	m.Register("inner", func() error {
		reached = true
		return nil
	})
	m.Register("outer", func() error {
		return errors.New("close failed")
	})

	m.Shutdown()

	assert.True(t, reached)
}
