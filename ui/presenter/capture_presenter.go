package presenter

import (
	"image"
	"time"

	"github.com/disintegration/imaging"

	"github.com/soocke/distance-collector/domain/sample"
	"github.com/soocke/distance-collector/ui/images"
	"github.com/soocke/distance-collector/ui/model"
)

const (
	maxPreviewW = 400
	maxPreviewH = 225
	maxOCRW     = 400
	maxOCRH     = 60
)

// CaptureView updates the preview widgets. Called on the Tk thread only.
type CaptureView interface {
	UpdateCapture(img image.Image)
	UpdateROI(img image.Image)
	UpdateOCR(img image.Image)
}

// CapturePresenter carries frames from the capture goroutine to the Tk
// thread. ShowFrame runs on the capture side and only copies into the
// mailbox; Tick runs on the Tk side and renders the latest entry.
type CapturePresenter struct {
	model    *model.PreviewModel
	view     CaptureView
	roiScale int
	shown    int
}

// NewCapturePresenter magnifies the distance region by roiScale for display.
func NewCapturePresenter(m *model.PreviewModel, view CaptureView, roiScale int) *CapturePresenter {
	if m == nil {
		m = &model.PreviewModel{}
	}
	return &CapturePresenter{model: m, view: view, roiScale: roiScale}
}

// ShowFrame implements capture.Preview. Every image handed to the mailbox is
// a fresh copy because frame is recycled once this returns.
func (c *CapturePresenter) ShowFrame(frame *image.RGBA, roi, ocr image.Image) {
	if c == nil {
		return
	}
	var f model.PreviewFrame
	if frame != nil {
		f.Frame = images.ScaleToFit(frame, maxPreviewW, maxPreviewH)
	}
	if roi != nil {
		if c.roiScale >= 2 {
			f.ROI = sample.Magnify(roi, c.roiScale)
		} else {
			f.ROI = imaging.Clone(roi)
		}
	}
	if ocr != nil {
		f.OCR = images.ScaleToFit(ocr, maxOCRW, maxOCRH)
	}
	c.model.Put(f)
}

// Tick renders the most recent frame, if any.
func (c *CapturePresenter) Tick(now time.Time) {
	if c == nil || c.view == nil {
		return
	}
	f, ok := c.model.Take()
	if !ok {
		return
	}
	if f.Frame != nil {
		c.view.UpdateCapture(f.Frame)
	}
	if f.ROI != nil {
		c.view.UpdateROI(f.ROI)
	}
	if f.OCR != nil {
		c.view.UpdateOCR(f.OCR)
	}
	c.shown++
}

// Shown reports how many frames were rendered.
func (c *CapturePresenter) Shown() int {
	if c == nil {
		return 0
	}
	return c.shown
}
