package sample

import (
	"image"
	"image/color"
	"testing"
)

func TestExtractROI_ClampsToFrame(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 100, 100))
	roi, rect, ok := ExtractROI(frame, image.Rect(80, 80, 150, 150))
	if !ok || roi == nil {
		t.Fatalf("expected ROI")
	}
	if rect != image.Rect(80, 80, 100, 100) {
		t.Fatalf("unexpected effective ROI %v", rect)
	}
	if roi.Bounds().Dx() != 20 || roi.Bounds().Dy() != 20 {
		t.Fatalf("expected 20x20, got %v", roi.Bounds())
	}
}

func TestExtractROI_InvertedBoundsRejected(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 100, 100))
	inverted := image.Rectangle{Min: image.Pt(50, 50), Max: image.Pt(40, 40)}
	if roi, _, ok := ExtractROI(frame, inverted); ok || roi != nil {
		t.Fatalf("inverted bounds must not yield a ROI")
	}
}

func TestExtractROI_OutsideFrameRejected(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 100, 50))
	if _, rect, ok := ExtractROI(frame, image.Rect(240, 24, 310, 43)); ok {
		t.Fatalf("region right of the frame must be empty, got %v", rect)
	}
}

func TestExtractROI_NilFrame(t *testing.T) {
	if _, _, ok := ExtractROI(nil, image.Rect(0, 0, 1, 1)); ok {
		t.Fatalf("nil frame must not yield a ROI")
	}
}

func TestExtractROI_RelativeToFrameOrigin(t *testing.T) {
	frame := image.NewRGBA(image.Rect(10, 10, 30, 30))
	frame.Set(15, 15, color.RGBA{255, 0, 0, 255})
	roi, rect, ok := ExtractROI(frame, image.Rect(5, 5, 10, 10))
	if !ok {
		t.Fatalf("expected ROI")
	}
	if rect != image.Rect(5, 5, 10, 10) {
		t.Fatalf("unexpected rect %v", rect)
	}
	b := roi.Bounds()
	r, _, _, _ := roi.At(b.Min.X, b.Min.Y).RGBA()
	if r>>8 != 255 {
		t.Fatalf("ROI does not start at frame origin + offset")
	}
}

func TestExtractROI_FallbackCopy(t *testing.T) {
	frame := plainImage{image.NewRGBA(image.Rect(0, 0, 8, 8))}
	roi, _, ok := ExtractROI(frame, image.Rect(2, 2, 6, 6))
	if !ok || roi.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("expected copied 4x4 ROI, got ok=%v bounds=%v", ok, roi)
	}
}

// plainImage hides SubImage from ExtractROI.
type plainImage struct{ img *image.RGBA }

func (p plainImage) ColorModel() color.Model { return p.img.ColorModel() }
func (p plainImage) Bounds() image.Rectangle { return p.img.Bounds() }
func (p plainImage) At(x, y int) color.Color { return p.img.At(x, y) }
