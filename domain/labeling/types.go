// Package labeling assigns human-entered distance labels to unlabeled
// samples and moves them into the labeled store.
package labeling

import (
	"context"
	"image"
)

// Key is a single keystroke as seen by the labeler. Digits are their ASCII
// characters; the other recognised keys have their own constants.
type Key rune

const (
	KeyEnter     Key = '\r'
	KeyBackspace Key = '\b'
	KeySkip      Key = 's'
	KeyQuit      Key = 'q'
	KeyOther     Key = 0
)

// KeyDigit returns the key for decimal digit d (0-9).
func KeyDigit(d int) Key { return Key('0' + d) }

// IsDigit reports whether k is one of 0-9.
func (k Key) IsDigit() bool { return k >= '0' && k <= '9' }

func (k Key) String() string {
	switch {
	case k == KeyEnter:
		return "enter"
	case k == KeyBackspace:
		return "backspace"
	case k == KeyOther:
		return "other"
	default:
		return string(rune(k))
	}
}

// State enumerates the labeling decision states of one sample.
type State int

const (
	StateEntering State = iota
	StateConfirmed
	StateSkipped
	StateQuitRequested
)

func (s State) String() string {
	switch s {
	case StateEntering:
		return "entering"
	case StateConfirmed:
		return "confirmed"
	case StateSkipped:
		return "skipped"
	case StateQuitRequested:
		return "quit"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends the decision for the current sample.
func (s State) Terminal() bool { return s != StateEntering }

// KeySource delivers keystrokes. NextKey blocks until a key arrives or ctx
// is done.
type KeySource interface {
	NextKey(ctx context.Context) (Key, error)
}

// Presenter shows the sample under review and user feedback. img is already
// magnified.
type Presenter interface {
	Present(name string, img image.Image)
	Message(msg string)
}

// Summary reports what a labeling session did.
type Summary struct {
	Labeled   int
	Skipped   int
	Remaining int
	Quit      bool
}
