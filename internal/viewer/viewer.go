// Package viewer shows the highlighted video stream in a window. It is
// an optional pipeline sink; the processing loop runs on its own
// goroutine while the fyne event loop owns the main one.
package viewer

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"

	"motion-marker/internal/frame"
	"motion-marker/internal/logger"
)

type Viewer struct {
	fyneApp fyne.App
	window  fyne.Window
	display *canvas.Image
	log     logger.Logger
}

func New(title string, width, height int, log logger.Logger) *Viewer {
	if log == nil {
		log = logger.Nop{}
	}

	fyneApp := app.New()
	window := fyneApp.NewWindow(title)

	display := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
	display.FillMode = canvas.ImageFillContain

	window.SetContent(display)
	window.Resize(fyne.NewSize(float32(width), float32(height)))

	return &Viewer{
		fyneApp: fyneApp,
		window:  window,
		display: display,
		log:     log,
	}
}

// Consume converts the frame for display and refreshes the canvas on the
// fyne thread. The conversion copies, so the pipeline may reuse the
// buffer immediately.
func (v *Viewer) Consume(buf *frame.Buffer) error {
	img := buf.ToRGBA()
	fyne.Do(func() {
		v.display.Image = img
		v.display.Refresh()
	})
	return nil
}

// Run blocks on the fyne event loop until the window closes. Must be
// called from the main goroutine.
func (v *Viewer) Run(onClosed func()) {
	v.window.SetOnClosed(func() {
		v.log.Info("Viewer", "window closed", nil)
		if onClosed != nil {
			onClosed()
		}
	})
	v.window.ShowAndRun()
}

// Stop closes the window from any goroutine.
func (v *Viewer) Stop() {
	fyne.Do(func() {
		v.fyneApp.Quit()
	})
}
