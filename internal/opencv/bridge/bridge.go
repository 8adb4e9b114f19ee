// Package bridge converts between gocv Mats and the pipeline's frame
// buffers. The capture path is zero-copy: the filter mutates the Mat's
// own bytes through a stride-aware view.
package bridge

import (
	"fmt"

	"gocv.io/x/gocv"

	"motion-marker/internal/frame"
)

// FrameView wraps a continuous 3-channel 8-bit Mat as a frame buffer
// sharing the Mat's memory. Channel order is whatever the Mat holds;
// callers convert to RGB before viewing.
func FrameView(mat *gocv.Mat) (*frame.Buffer, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("mat is empty")
	}
	if mat.Type() != gocv.MatTypeCV8UC3 {
		return nil, fmt.Errorf("unsupported mat type %v, need 8UC3", mat.Type())
	}
	if !mat.IsContinuous() {
		return nil, fmt.Errorf("mat rows are not continuous")
	}

	data, err := mat.DataPtrUint8()
	if err != nil {
		return nil, fmt.Errorf("mat data access failed: %w", err)
	}

	cols := mat.Cols()
	return frame.Wrap(data, cols, mat.Rows(), cols*frame.Channels, frame.Channels), nil
}

// FrameToMat copies a frame buffer into a new 8UC3 Mat. Padded rows are
// repacked. The caller owns the returned Mat.
func FrameToMat(buf *frame.Buffer) (gocv.Mat, error) {
	if err := buf.Validate(); err != nil {
		return gocv.Mat{}, fmt.Errorf("frame validation failed: %w", err)
	}

	packed := buf.Data
	rowBytes := buf.Width * frame.Channels
	if buf.Stride != rowBytes || buf.PixelStride != frame.Channels {
		packed = make([]byte, buf.Height*rowBytes)
		for y := 0; y < buf.Height; y++ {
			for x := 0; x < buf.Width; x++ {
				r, g, b := buf.RGB(x, y)
				o := y*rowBytes + x*frame.Channels
				packed[o] = r
				packed[o+1] = g
				packed[o+2] = b
			}
		}
	}

	mat, err := gocv.NewMatFromBytes(buf.Height, buf.Width, gocv.MatTypeCV8UC3, packed)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("mat creation failed: %w", err)
	}
	return mat, nil
}
