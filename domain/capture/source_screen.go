package capture

import (
	"context"
	"image"

	"github.com/vova616/screenshot"
)

// screenSource grabs the local display. Useful when the mirrored device is
// shown in a window instead of a video sink.
type screenSource struct{}

// NewScreenSource returns a FrameSource reading full-screen captures.
func NewScreenSource() FrameSource { return screenSource{} }

func (screenSource) NextFrame(ctx context.Context) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, &AcquisitionError{Device: "screen", Err: err}
	}
	if img == nil {
		return nil, &AcquisitionError{Device: "screen", Err: errNoFrame}
	}
	return img, nil
}

func (screenSource) Close() error { return nil }
