package sample

import (
	"image"

	"github.com/disintegration/imaging"
)

// Magnify scales img up by an integer factor with nearest-neighbour sampling
// so single pixels stay legible. Factors below 2 return img unchanged.
func Magnify(img image.Image, scale int) image.Image {
	if img == nil || scale < 2 {
		return img
	}
	b := img.Bounds()
	if b.Empty() {
		return img
	}
	return imaging.Resize(img, b.Dx()*scale, b.Dy()*scale, imaging.NearestNeighbor)
}
