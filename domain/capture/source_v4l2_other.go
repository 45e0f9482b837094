//go:build !linux

package capture

import (
	"errors"
	"log/slog"
	"time"
)

// OpenV4L2 is only available on Linux.
func OpenV4L2(device string, _ time.Duration, _ *slog.Logger) (FrameSource, error) {
	return nil, &AcquisitionError{Device: device, Err: errors.New("v4l2 capture requires linux")}
}
