package labeling

import (
	"fmt"
	"strings"
)

// DefaultMaxDigits is the longest label a user may enter.
const DefaultMaxDigits = 5

const (
	msgHelp     = "Press digits (0-9), Enter, 's' or 'q'."
	msgNoDigits = "No digits entered. Try again."
	msgInvalid  = "Invalid: enter 1-%d digits only."
	msgMax      = "Max %d digits allowed."
	msgSoFar    = "Digits so far: %s"
	msgSkipped  = "Skipped."
	msgQuit     = "Quitting labeling."
)

// Step is the outcome of feeding one key to the FSM.
type Step struct {
	State   State
	Pending string
	// Label holds the confirmed digits once State is StateConfirmed.
	Label   string
	Message string
}

// FSM collects a label for a single sample. It is synchronous and holds no
// I/O; call Reset before the next sample.
type FSM struct {
	maxDigits int
	state     State
	pending   []byte
}

// NewFSM returns an FSM in the entering state. maxDigits < 1 uses
// DefaultMaxDigits.
func NewFSM(maxDigits int) *FSM {
	if maxDigits < 1 {
		maxDigits = DefaultMaxDigits
	}
	return &FSM{maxDigits: maxDigits, pending: make([]byte, 0, maxDigits)}
}

// Current returns the current state.
func (f *FSM) Current() State { return f.state }

// Pending returns the digits entered so far.
func (f *FSM) Pending() string { return string(f.pending) }

// Reset clears the pending digits and returns to entering.
func (f *FSM) Reset() {
	f.state = StateEntering
	f.pending = f.pending[:0]
}

// Feed applies k. Keys fed after a terminal state are ignored.
func (f *FSM) Feed(k Key) Step {
	if f.state.Terminal() {
		return f.step("", "")
	}
	switch {
	case k.IsDigit():
		if len(f.pending) >= f.maxDigits {
			return f.step("", fmt.Sprintf(msgMax, f.maxDigits))
		}
		f.pending = append(f.pending, byte(k))
		return f.step("", fmt.Sprintf(msgSoFar, f.pending))
	case k == KeyBackspace:
		if len(f.pending) > 0 {
			f.pending = f.pending[:len(f.pending)-1]
		}
		return f.step("", fmt.Sprintf(msgSoFar, f.pending))
	case k == KeyEnter:
		label := string(f.pending)
		if label == "" {
			return f.step("", msgNoDigits)
		}
		if !validLabel(label, f.maxDigits) {
			f.pending = f.pending[:0]
			return f.step("", fmt.Sprintf(msgInvalid, f.maxDigits))
		}
		f.state = StateConfirmed
		return f.step(label, "")
	case k == KeySkip:
		f.state = StateSkipped
		return f.step("", msgSkipped)
	case k == KeyQuit:
		f.state = StateQuitRequested
		return f.step("", msgQuit)
	default:
		return f.step("", msgHelp)
	}
}

func (f *FSM) step(label, msg string) Step {
	return Step{State: f.state, Pending: string(f.pending), Label: label, Message: msg}
}

func validLabel(s string, maxDigits int) bool {
	if len(s) < 1 || len(s) > maxDigits {
		return false
	}
	return strings.Trim(s, "0123456789") == ""
}
