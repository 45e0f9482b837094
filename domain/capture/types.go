package capture

import (
	"context"
	"image"
	"time"
)

// FrameSource yields frames from a live video feed. NextFrame blocks until a
// frame is available; the returned image is owned by the caller until it is
// passed to RecycleFrame.
type FrameSource interface {
	NextFrame(ctx context.Context) (*image.RGBA, error)
	Close() error
}

// Preview receives each processed frame together with its extracted regions.
// roi and ocr may be nil. All three share pixels with frame, which is
// recycled after the call returns: implementations must copy what they keep
// and must not block.
type Preview interface {
	ShowFrame(frame *image.RGBA, roi, ocr image.Image)
}

// Outcome classifies one capture cycle.
type Outcome int

const (
	OutcomeSaved Outcome = iota
	OutcomeDuplicate
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// CycleResult describes a completed cycle.
type CycleResult struct {
	Outcome  Outcome
	Digest   string
	Bytes    int64
	Took     time.Duration
	Sequence uint64
}

// CaptureStats summarises capture loop behaviour for instrumentation.
type CaptureStats struct {
	Cycles       uint64
	Saved        uint64
	Duplicates   uint64
	Skipped      uint64
	BytesWritten uint64
	AvgCycle     time.Duration
	LastCycle    time.Time
}
