package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/soocke/distance-collector/domain/action"
)

// Swiper performs a gesture on the device.
type Swiper interface {
	Swipe(ctx context.Context, g action.Gesture) error
}

// Dispatcher runs the accelerate gesture on left arrow and the brake gesture
// on right arrow. Up and down are ignored.
type Dispatcher struct {
	device     Swiper
	accelerate action.Gesture
	brake      action.Gesture
	out        io.Writer
	logger     *slog.Logger
}

// NewDispatcher builds a Dispatcher. User-facing feedback goes to out.
func NewDispatcher(device Swiper, accelerate, brake action.Gesture, out io.Writer, logger *slog.Logger) *Dispatcher {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{device: device, accelerate: accelerate, brake: brake, out: out, logger: logger}
}

type decoded struct {
	ev  Event
	err error
}

// Run reads keys from r until quit, EOF or ctx is done. Gesture failures are
// logged and do not stop the loop.
func (d *Dispatcher) Run(ctx context.Context, r io.Reader) error {
	fmt.Fprint(d.out, "Press LEFT or RIGHT arrow keys. Press 'q' to quit.\r\n")
	fmt.Fprint(d.out, "Left arrow: accelerate\r\nRight arrow: brake\r\n")

	events := make(chan decoded)
	go func() {
		dec := NewDecoder(r)
		for {
			ev, err := dec.Next()
			select {
			case events <- decoded{ev, err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		var in decoded
		select {
		case <-ctx.Done():
			return nil
		case in = <-events:
		}
		if in.err != nil {
			if errors.Is(in.err, io.EOF) {
				return nil
			}
			return fmt.Errorf("control: read keys: %w", in.err)
		}
		if done := d.Handle(ctx, in.ev); done {
			fmt.Fprint(d.out, "\r\nExiting...\r\n")
			return nil
		}
	}
}

// Handle acts on a single event and reports whether the loop should stop.
func (d *Dispatcher) Handle(ctx context.Context, ev Event) bool {
	switch ev {
	case EventQuit:
		return true
	case EventUp, EventDown:
		fmt.Fprintf(d.out, "%s arrow (ignored)\r\n", ev)
		d.logger.Debug("arrow ignored", "key", ev.String())
	case EventLeft:
		fmt.Fprint(d.out, "Left arrow pressed: accelerate\r\n")
		d.swipe(ctx, "accelerate", d.accelerate)
	case EventRight:
		fmt.Fprint(d.out, "Right arrow pressed: brake\r\n")
		d.swipe(ctx, "brake", d.brake)
	}
	return false
}

func (d *Dispatcher) swipe(ctx context.Context, name string, g action.Gesture) {
	if err := d.device.Swipe(ctx, g); err != nil {
		d.logger.Error("gesture failed", "gesture", name, "error", err)
		return
	}
	GesturesTotal.WithLabelValues(name).Inc()
	d.logger.Info("gesture sent", "gesture", name, "from", [2]int{g.X1, g.Y1}, "to", [2]int{g.X2, g.Y2}, "duration", g.Duration)
}
