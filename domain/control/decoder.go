// Package control maps arrow keys read from a terminal to device gestures.
package control

import (
	"bufio"
	"io"
)

// Event is a decoded keypress.
type Event int

const (
	EventOther Event = iota
	EventUp
	EventDown
	EventRight
	EventLeft
	EventQuit
)

func (e Event) String() string {
	switch e {
	case EventUp:
		return "up"
	case EventDown:
		return "down"
	case EventRight:
		return "right"
	case EventLeft:
		return "left"
	case EventQuit:
		return "quit"
	default:
		return "other"
	}
}

const (
	keyEsc   = 0x1b
	keyCtrlC = 0x03
)

// Decoder turns raw terminal bytes into events. Arrow keys arrive as the
// three-byte sequences ESC [ A..D.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder wraps r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next blocks until one event is decoded. Ctrl-C is reported as quit since
// raw mode turns off the terminal's own signal handling.
func (d *Decoder) Next() (Event, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return EventOther, err
	}
	switch b {
	case 'q', keyCtrlC:
		return EventQuit, nil
	case keyEsc:
	default:
		return EventOther, nil
	}
	if b, err = d.r.ReadByte(); err != nil {
		return EventOther, err
	}
	if b != '[' {
		return EventOther, nil
	}
	if b, err = d.r.ReadByte(); err != nil {
		return EventOther, err
	}
	switch b {
	case 'A':
		return EventUp, nil
	case 'B':
		return EventDown, nil
	case 'C':
		return EventRight, nil
	case 'D':
		return EventLeft, nil
	}
	return EventOther, nil
}
