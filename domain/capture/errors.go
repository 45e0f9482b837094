package capture

import (
	"errors"
	"fmt"
)

var (
	// ErrAcquisition marks a frame source that can no longer deliver frames.
	ErrAcquisition = errors.New("frame acquisition failed")
	// ErrWrite marks a failure persisting a sample.
	ErrWrite = errors.New("sample write failed")

	errNoFrame = errors.New("source returned no frame")
)

// AcquisitionError reports a fatal frame source failure.
type AcquisitionError struct {
	Device string
	Err    error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("capture: acquire frame from %s: %v", e.Device, e.Err)
}

func (e *AcquisitionError) Unwrap() []error { return []error{ErrAcquisition, e.Err} }

// WriteError reports a failure writing to the extraction store.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("capture: write sample %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() []error { return []error{ErrWrite, e.Err} }
