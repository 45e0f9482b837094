package sample

import (
	"crypto/md5"
	"encoding/hex"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// DefaultThreshold is the luminance cutoff used for the distance readout.
const DefaultThreshold uint8 = 150

// Preprocess converts roi into its canonical binary form: grayscale, a fixed
// threshold (v > threshold becomes white) and polarity inversion, so the
// readout digits end up white-on-black as 255 and everything else as 0.
// The result has origin (0,0) and Stride equal to its width, which makes
// Pix a stable byte representation of the content.
func Preprocess(roi image.Image, threshold uint8) *image.Gray {
	gray := imaging.Grayscale(roi)
	bin := imaging.AdjustFunc(gray, func(c color.NRGBA) color.NRGBA {
		v := uint8(0)
		if c.R > threshold {
			v = 255
		}
		return color.NRGBA{R: v, G: v, B: v, A: 255}
	})
	inv := imaging.Invert(bin)

	b := inv.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		src := inv.Pix[y*inv.Stride : y*inv.Stride+b.Dx()*4]
		dst := out.Pix[y*out.Stride : y*out.Stride+b.Dx()]
		for x := range dst {
			dst[x] = src[x*4]
		}
	}
	return out
}

// Digest returns the hex MD5 of the sample's raw pixel bytes.
func Digest(s *image.Gray) string {
	if s == nil {
		return ""
	}
	sum := md5.Sum(s.Pix)
	return hex.EncodeToString(sum[:])
}
