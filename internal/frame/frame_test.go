package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapAddressing(t *testing.T) {
	t.Parallel()

	// 2x2 image with 2 bytes of row padding.
	stride := 2*Channels + 2
	data := make([]byte, 2*stride)
	b := Wrap(data, 2, 2, stride, Channels)
	require.NoError(t, b.Validate())

	b.SetRGB(1, 1, 10, 20, 30)
	r, g, bl := b.RGB(1, 1)
	assert.Equal(t, uint8(10), r)
	assert.Equal(t, uint8(20), g)
	assert.Equal(t, uint8(30), bl)

	// The pixel landed past the padded first row.
	o := 1*stride + 1*Channels
	assert.Equal(t, uint8(10), data[o])

	// Neighbors untouched.
	r, g, bl = b.RGB(0, 0)
	assert.Zero(t, r)
	assert.Zero(t, g)
	assert.Zero(t, bl)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		buf  *Buffer
		ok   bool
	}{
		{"packed", NewRGB(4, 4), true},
		{"padded rows", Wrap(make([]byte, 4*16), 4, 4, 16, Channels), true},
		{"zero width", Wrap(make([]byte, 16), 0, 4, 4, Channels), false},
		{"stride under width", Wrap(make([]byte, 64), 4, 4, 8, Channels), false},
		{"short data", Wrap(make([]byte, 10), 4, 4, 12, Channels), false},
		{"pixel stride under channel count", Wrap(make([]byte, 64), 4, 4, 12, 2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.buf.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAddRedSaturates(t *testing.T) {
	t.Parallel()

	b := NewRGB(1, 1)
	b.SetRGB(0, 0, 200, 40, 50)
	b.AddRed(0, 0, 127)

	r, g, bl := b.RGB(0, 0)
	assert.Equal(t, uint8(255), r)
	assert.Equal(t, uint8(40), g)
	assert.Equal(t, uint8(50), bl)
}
