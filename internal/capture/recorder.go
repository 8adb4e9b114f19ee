package capture

import (
	"fmt"

	"gocv.io/x/gocv"

	"motion-marker/internal/frame"
	"motion-marker/internal/logger"
	"motion-marker/internal/opencv/bridge"
)

// Recorder writes processed frames to a video file. It implements the
// pipeline sink contract.
type Recorder struct {
	writer *gocv.VideoWriter
	path   string
	log    logger.Logger
	bgr    gocv.Mat
	frames int
}

// NewRecorder opens an MJPG-encoded output file at the given geometry.
func NewRecorder(path string, fps float64, width, height int, log logger.Logger) (*Recorder, error) {
	if log == nil {
		log = logger.Nop{}
	}

	writer, err := gocv.VideoWriterFile(path, "MJPG", fps, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("opening writer for %q failed: %w", path, err)
	}

	log.Info("Recorder", "output opened", map[string]interface{}{
		"path": path, "fps": fps, "width": width, "height": height,
	})
	return &Recorder{
		writer: writer,
		path:   path,
		log:    log,
		bgr:    gocv.NewMat(),
	}, nil
}

func (r *Recorder) Consume(buf *frame.Buffer) error {
	rgb, err := bridge.FrameToMat(buf)
	if err != nil {
		return fmt.Errorf("recorder framing failed: %w", err)
	}
	defer rgb.Close()

	// BGRToRGB swaps channels 0 and 2, so it also maps RGB back to BGR.
	gocv.CvtColor(rgb, &r.bgr, gocv.ColorBGRToRGB)
	if err := r.writer.Write(r.bgr); err != nil {
		return fmt.Errorf("writing frame to %q failed: %w", r.path, err)
	}
	r.frames++
	return nil
}

func (r *Recorder) Close() error {
	r.log.Info("Recorder", "output closed", map[string]interface{}{
		"path": r.path, "frames": r.frames,
	})
	r.bgr.Close()
	return r.writer.Close()
}
