// Package frame provides a stride-aware view over caller-owned RGB pixel
// buffers. Rows may be padded, so a pixel's byte offset is computed from
// the row stride and the per-pixel step rather than from width alone.
package frame

import "fmt"

// Channels is the number of color channels per pixel. The pipeline works
// on packed 8-bit RGB, red first.
const Channels = 3

// Buffer describes one video frame. Data is owned by the caller; the
// filter mutates channel values in place and never reallocates it.
type Buffer struct {
	Data        []byte
	Width       int
	Height      int
	Stride      int // row length in bytes, may exceed Width*PixelStride
	PixelStride int // bytes between horizontally adjacent pixels
}

// Wrap builds a Buffer over an existing byte slice.
func Wrap(data []byte, width, height, stride, pixelStride int) *Buffer {
	return &Buffer{
		Data:        data,
		Width:       width,
		Height:      height,
		Stride:      stride,
		PixelStride: pixelStride,
	}
}

// NewRGB allocates a tightly packed RGB buffer, mostly for tests and
// synthetic sources.
func NewRGB(width, height int) *Buffer {
	return &Buffer{
		Data:        make([]byte, width*height*Channels),
		Width:       width,
		Height:      height,
		Stride:      width * Channels,
		PixelStride: Channels,
	}
}

// Validate checks that the declared geometry is internally consistent and
// that Data is large enough to hold it.
func (b *Buffer) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", b.Width, b.Height)
	}
	if b.PixelStride < Channels {
		return fmt.Errorf("pixel stride %d smaller than %d channels", b.PixelStride, Channels)
	}
	if b.Stride < b.Width*b.PixelStride {
		return fmt.Errorf("row stride %d too small for width %d", b.Stride, b.Width)
	}
	need := (b.Height-1)*b.Stride + b.Width*b.PixelStride
	if len(b.Data) < need {
		return fmt.Errorf("buffer holds %d bytes, geometry needs %d", len(b.Data), need)
	}
	return nil
}

func (b *Buffer) offset(x, y int) int {
	return y*b.Stride + x*b.PixelStride
}

// RGB returns the three channel values at (x, y).
func (b *Buffer) RGB(x, y int) (r, g, bl uint8) {
	o := b.offset(x, y)
	return b.Data[o], b.Data[o+1], b.Data[o+2]
}

// SetRGB overwrites the three channel values at (x, y).
func (b *Buffer) SetRGB(x, y int, r, g, bl uint8) {
	o := b.offset(x, y)
	b.Data[o] = r
	b.Data[o+1] = g
	b.Data[o+2] = bl
}

// AddRed adds amount to the red channel at (x, y), saturating at 255.
func (b *Buffer) AddRed(x, y int, amount uint8) {
	o := b.offset(x, y)
	sum := int(b.Data[o]) + int(amount)
	if sum > 255 {
		sum = 255
	}
	b.Data[o] = uint8(sum)
}
