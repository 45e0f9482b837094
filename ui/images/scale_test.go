package images

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestScaleToFit_KeepsAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
	got := ScaleToFit(src, 400, 225)
	if b := got.Bounds(); b.Dx() < 399 || b.Dx() > 400 || b.Dy() < 224 || b.Dy() > 225 {
		t.Fatalf("unexpected size %v", b)
	}
}

func TestScaleToFit_SmallSourceIsCopied(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	got := ScaleToFit(src, 400, 225)
	if got.Bounds().Dx() != 10 {
		t.Fatalf("small source should not be scaled: %v", got.Bounds())
	}
	src.Pix[0] = 0xff
	if r, _, _, _ := got.At(0, 0).RGBA(); r != 0 {
		t.Fatal("result shares pixels with source")
	}
}

func TestEncodePNG_Decodes(t *testing.T) {
	data := EncodePNG(image.NewGray(image.Rect(0, 0, 3, 2)))
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("unexpected size %v", b)
	}
	if EncodePNG(nil) != nil {
		t.Fatal("nil image should encode to nil")
	}
}
