package view

import (
	"image"

	"github.com/soocke/distance-collector/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// CapturePreview shows the scaled full frame next to the magnified distance
// region and, when OCR is enabled, the OCR region.
type CapturePreview interface {
	UpdateCapture(img image.Image)
	UpdateROI(img image.Image)
	UpdateOCR(img image.Image)
	Reset()
}

type capturePreview struct {
	captureLabel *LabelWidget
	roiLabel     *LabelWidget
	ocrLabel     *LabelWidget
	photos       map[*LabelWidget]*Img // current photo per label, deleted on replace
}

// NewCapturePreview creates the preview labels on the given grid row. The
// frame spans columns 0-3, the distance region sits in column 4 and the OCR
// region in column 5.
func NewCapturePreview(row int) CapturePreview {
	v := &capturePreview{photos: make(map[*LabelWidget]*Img)}
	png := placeholderPNG()
	v.captureLabel = v.newLabel(png)
	v.roiLabel = v.newLabel(png)
	v.ocrLabel = v.newLabel(png)
	Grid(v.captureLabel, Row(row), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	Grid(v.roiLabel, Row(row), Column(4), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	Grid(v.ocrLabel, Row(row), Column(5), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	return v
}

func placeholderPNG() []byte {
	return images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 200, 120)))
}

func (v *capturePreview) newLabel(png []byte) *LabelWidget {
	photo := NewPhoto(Data(png))
	l := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	v.photos[l] = photo
	return l
}

// set replaces the label's photo, disposing the previous one so off-screen
// pixel data does not accumulate.
func (v *capturePreview) set(l *LabelWidget, png []byte) {
	if l == nil || len(png) == 0 {
		return
	}
	if old := v.photos[l]; old != nil {
		old.Delete()
	}
	photo := NewPhoto(Data(png))
	v.photos[l] = photo
	l.Configure(Image(photo))
}

// UpdateCapture expects an image already scaled for display.
func (v *capturePreview) UpdateCapture(img image.Image) {
	if img != nil {
		v.set(v.captureLabel, images.EncodePNG(img))
	}
}

func (v *capturePreview) UpdateROI(img image.Image) {
	if img != nil {
		v.set(v.roiLabel, images.EncodePNG(img))
	}
}

func (v *capturePreview) UpdateOCR(img image.Image) {
	if img != nil {
		v.set(v.ocrLabel, images.EncodePNG(img))
	}
}

func (v *capturePreview) Reset() {
	png := placeholderPNG()
	v.set(v.captureLabel, png)
	v.set(v.roiLabel, png)
	v.set(v.ocrLabel, png)
}
