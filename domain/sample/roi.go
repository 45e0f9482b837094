// Package sample turns captured frames into canonical binary samples: the
// fixed region of interest is clamped, binarised and content-hashed.
package sample

import (
	"image"
	"image/draw"
)

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Clamp limits want to the frame dimensions. Coordinates are relative to the
// frame origin. The result is not canonicalised, so an inverted request stays
// inverted; ok is false when the clamped rectangle is empty or degenerate.
func Clamp(want image.Rectangle, width, height int) (image.Rectangle, bool) {
	r := image.Rectangle{
		Min: image.Pt(clamp(want.Min.X, 0, width), clamp(want.Min.Y, 0, height)),
		Max: image.Pt(clamp(want.Max.X, 0, width), clamp(want.Max.Y, 0, height)),
	}
	if r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y {
		return r, false
	}
	return r, true
}

// ExtractROI returns the part of frame covered by want after clamping. The
// returned rectangle is the effective ROI relative to the frame origin.
// Pixels are shared with frame when the image type supports SubImage.
func ExtractROI(frame image.Image, want image.Rectangle) (image.Image, image.Rectangle, bool) {
	if frame == nil {
		return nil, image.Rectangle{}, false
	}
	b := frame.Bounds()
	r, ok := Clamp(want, b.Dx(), b.Dy())
	if !ok {
		return nil, r, false
	}
	abs := r.Add(b.Min)
	if s, ok := frame.(subImager); ok {
		return s.SubImage(abs), r, true
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), frame, abs.Min, draw.Src)
	return out, r, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
