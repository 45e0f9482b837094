package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
)

// PixelFormat is a V4L2 fourcc code.
type PixelFormat uint32

func fourcc(a, b, c, d byte) PixelFormat {
	return PixelFormat(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

// Pixel formats the capture loop can decode, in order of preference.
var (
	FormatYUYV  = fourcc('Y', 'U', 'Y', 'V')
	FormatI420  = fourcc('Y', 'U', '1', '2')
	FormatMJPEG = fourcc('M', 'J', 'P', 'G')

	supportedFormats = []PixelFormat{FormatYUYV, FormatI420, FormatMJPEG}
)

func (f PixelFormat) String() string {
	return string([]byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)})
}

// Decode converts one raw device buffer into an RGBA frame taken from the
// frame pool.
func Decode(format PixelFormat, buf []byte, width, height int) (*image.RGBA, error) {
	switch format {
	case FormatYUYV:
		return DecodeYUYV(buf, width, height)
	case FormatI420:
		return DecodeI420(buf, width, height)
	case FormatMJPEG:
		return DecodeMJPEG(buf)
	default:
		return nil, fmt.Errorf("unsupported pixel format %s", format)
	}
}

// DecodeYUYV converts packed 4:2:2 Y0 U Y1 V data.
func DecodeYUYV(buf []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || width%2 != 0 {
		return nil, fmt.Errorf("yuyv: invalid size %dx%d", width, height)
	}
	if need := width * height * 2; len(buf) < need {
		return nil, fmt.Errorf("yuyv: short frame %d < %d bytes", len(buf), need)
	}
	dst := acquireFrame(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := buf[y*width*2 : (y+1)*width*2]
		row := dst.Pix[y*dst.Stride : y*dst.Stride+width*4]
		for x := 0; x < width; x += 2 {
			i := x * 2
			y0, u, y1, v := src[i], src[i+1], src[i+2], src[i+3]
			r, g, b := color.YCbCrToRGB(y0, u, v)
			row[x*4], row[x*4+1], row[x*4+2], row[x*4+3] = r, g, b, 0xFF
			r, g, b = color.YCbCrToRGB(y1, u, v)
			row[x*4+4], row[x*4+5], row[x*4+6], row[x*4+7] = r, g, b, 0xFF
		}
	}
	return dst, nil
}

// DecodeI420 converts planar 4:2:0 data (Y plane, then U, then V).
func DecodeI420(buf []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("i420: invalid size %dx%d", width, height)
	}
	cw, ch := (width+1)/2, (height+1)/2
	ySize, cSize := width*height, cw*ch
	if need := ySize + 2*cSize; len(buf) < need {
		return nil, fmt.Errorf("i420: short frame %d < %d bytes", len(buf), need)
	}
	src := &image.YCbCr{
		Y:              buf[:ySize],
		Cb:             buf[ySize : ySize+cSize],
		Cr:             buf[ySize+cSize : ySize+2*cSize],
		YStride:        width,
		CStride:        cw,
		SubsampleRatio: image.YCbCrSubsampleRatio420,
		Rect:           image.Rect(0, 0, width, height),
	}
	dst := acquireFrame(src.Rect)
	draw.Draw(dst, dst.Rect, src, image.Point{}, draw.Src)
	return dst, nil
}

// DecodeMJPEG decodes a single JPEG frame.
func DecodeMJPEG(buf []byte) (*image.RGBA, error) {
	img, err := jpeg.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("mjpeg: %w", err)
	}
	b := img.Bounds()
	dst := acquireFrame(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return dst, nil
}
