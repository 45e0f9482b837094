//go:build linux

package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/blackjack/webcam"
)

// waitSlice bounds a single blocking wait so cancellation is noticed promptly.
const waitSlice = 1 // seconds

type v4l2Source struct {
	cam     *webcam.Webcam
	device  string
	format  PixelFormat
	width   int
	height  int
	timeout time.Duration
	logger  *slog.Logger
}

// OpenV4L2 opens a V4L2 capture device (for example a v4l2loopback sink fed
// by a screen-mirroring tool), negotiates the largest frame size of the first
// decodable pixel format and starts streaming. timeout is how long NextFrame
// waits before reporting a stalled stream in the log.
func OpenV4L2(device string, timeout time.Duration, logger *slog.Logger) (FrameSource, error) {
	cam, err := webcam.Open(device)
	if err != nil {
		return nil, &AcquisitionError{Device: device, Err: err}
	}
	s := &v4l2Source{cam: cam, device: device, timeout: timeout, logger: logger}
	if err := s.configure(); err != nil {
		cam.Close()
		return nil, &AcquisitionError{Device: device, Err: err}
	}
	if err := cam.StartStreaming(); err != nil {
		cam.Close()
		return nil, &AcquisitionError{Device: device, Err: err}
	}
	if logger != nil {
		logger.Info("video device streaming", "device", device, "format", s.format.String(), "width", s.width, "height", s.height)
	}
	return s, nil
}

func (s *v4l2Source) configure() error {
	available := s.cam.GetSupportedFormats()
	var chosen webcam.PixelFormat
	found := false
	for _, f := range supportedFormats {
		if _, ok := available[webcam.PixelFormat(f)]; ok {
			chosen, found = webcam.PixelFormat(f), true
			break
		}
	}
	if !found {
		return fmt.Errorf("no decodable pixel format among %v", available)
	}
	var best webcam.FrameSize
	for _, fs := range s.cam.GetSupportedFrameSizes(chosen) {
		if fs.MaxWidth*fs.MaxHeight > best.MaxWidth*best.MaxHeight {
			best = fs
		}
	}
	if best.MaxWidth == 0 || best.MaxHeight == 0 {
		return errors.New("device reports no frame sizes")
	}
	f, w, h, err := s.cam.SetImageFormat(chosen, best.MaxWidth, best.MaxHeight)
	if err != nil {
		return err
	}
	s.format, s.width, s.height = PixelFormat(f), int(w), int(h)
	return nil
}

// NextFrame blocks until the device delivers a decodable frame or ctx ends.
// A device error is fatal and reported as *AcquisitionError.
func (s *v4l2Source) NextFrame(ctx context.Context) (*image.RGBA, error) {
	waited := time.Duration(0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := s.cam.WaitForFrame(waitSlice)
		switch err.(type) {
		case nil:
		case *webcam.Timeout:
			waited += waitSlice * time.Second
			if waited >= s.timeout && s.logger != nil {
				s.logger.Warn("no frame from video device", "device", s.device, "waited", waited)
				waited = 0
			}
			continue
		default:
			return nil, &AcquisitionError{Device: s.device, Err: err}
		}

		buf, index, err := s.cam.GetFrame()
		if err != nil {
			return nil, &AcquisitionError{Device: s.device, Err: err}
		}
		if len(buf) == 0 {
			s.cam.ReleaseFrame(index)
			continue
		}
		img, derr := Decode(s.format, buf, s.width, s.height)
		if rerr := s.cam.ReleaseFrame(index); rerr != nil {
			RecycleFrame(img)
			return nil, &AcquisitionError{Device: s.device, Err: rerr}
		}
		if derr != nil {
			if s.logger != nil {
				s.logger.Warn("dropping undecodable frame", "device", s.device, "error", derr)
			}
			continue
		}
		return img, nil
	}
}

func (s *v4l2Source) Close() error {
	if s.cam == nil {
		return nil
	}
	_ = s.cam.StopStreaming()
	err := s.cam.Close()
	s.cam = nil
	return err
}
