// Package capture adapts gocv video I/O to the pipeline's source and
// sink contracts. Frames are converted to RGB on the way in and back to
// BGR on the way out; the core never sees OpenCV's channel order.
package capture

import (
	"fmt"
	"io"
	"strconv"

	"gocv.io/x/gocv"

	"motion-marker/internal/frame"
	"motion-marker/internal/logger"
	"motion-marker/internal/opencv/bridge"
)

// emptyReadLimit bounds how many consecutive empty reads are tolerated
// before the source is considered dead. Webcams occasionally deliver an
// empty frame mid-stream.
const emptyReadLimit = 10

// Source reads frames from a camera device or a video file.
type Source struct {
	cap  *gocv.VideoCapture
	desc string
	log  logger.Logger

	bgr gocv.Mat
	rgb gocv.Mat
}

// Open accepts either a device index ("0", "1", ...) or a file path.
func Open(src string, log logger.Logger) (*Source, error) {
	if log == nil {
		log = logger.Nop{}
	}

	var (
		vc  *gocv.VideoCapture
		err error
	)
	if id, convErr := strconv.Atoi(src); convErr == nil {
		vc, err = gocv.VideoCaptureDevice(id)
	} else {
		vc, err = gocv.VideoCaptureFile(src)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %q failed: %w", src, err)
	}

	s := &Source{
		cap:  vc,
		desc: src,
		log:  log,
		bgr:  gocv.NewMat(),
		rgb:  gocv.NewMat(),
	}

	w, h := s.Size()
	log.Info("Capture", "source opened", map[string]interface{}{
		"source": src,
		"width":  w,
		"height": h,
		"fps":    s.FPS(),
	})
	return s, nil
}

// Next reads, converts and wraps the next frame. The returned buffer
// aliases Source-owned memory and is only valid until the next call.
func (s *Source) Next() (*frame.Buffer, error) {
	empty := 0
	for {
		if ok := s.cap.Read(&s.bgr); !ok {
			return nil, io.EOF
		}
		if !s.bgr.Empty() {
			break
		}
		empty++
		if empty >= emptyReadLimit {
			return nil, fmt.Errorf("source %q delivered %d empty frames in a row", s.desc, empty)
		}
	}

	gocv.CvtColor(s.bgr, &s.rgb, gocv.ColorBGRToRGB)

	buf, err := bridge.FrameView(&s.rgb)
	if err != nil {
		return nil, fmt.Errorf("framing failed: %w", err)
	}
	return buf, nil
}

// FPS reports the source frame rate, falling back to 25 when the backend
// does not know it.
func (s *Source) FPS() float64 {
	fps := s.cap.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		fps = 25
	}
	return fps
}

// Size reports the source frame dimensions.
func (s *Source) Size() (width, height int) {
	return int(s.cap.Get(gocv.VideoCaptureFrameWidth)),
		int(s.cap.Get(gocv.VideoCaptureFrameHeight))
}

func (s *Source) Close() error {
	s.bgr.Close()
	s.rgb.Close()
	return s.cap.Close()
}
