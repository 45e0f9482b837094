package app

import (
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/distance-collector/ui/presenter"
)

const tick = 100 * time.Millisecond

// window drives the Tk main loop for one subcommand. It must be used from
// the main goroutine.
type window struct {
	afterID string
	closed  bool
	loop    *presenter.Loop
	done    func() bool // polled each tick; true closes the window
	onClose func()
}

func newWindow(onClose func()) *window {
	w := &window{onClose: onClose}
	WmProtocol(App, "WM_DELETE_WINDOW", w.exit)
	return w
}

// run ticks loop until the window is closed or done reports true.
func (w *window) run(loop *presenter.Loop, done func() bool) {
	w.loop = loop
	w.done = done
	loop.Schedule = w.schedule
	w.schedule()
	App.Wait()
}

func (w *window) schedule() {
	if w.closed {
		return
	}
	// TclAfter keeps updates on Tk's event loop thread.
	w.afterID = TclAfter(tick, func() {
		if w.done != nil && w.done() {
			w.exit()
			return
		}
		w.loop.Tick()
	})
}

func (w *window) exit() {
	if w.closed {
		return
	}
	w.closed = true
	if w.onClose != nil {
		w.onClose()
	}
	if w.afterID != "" {
		TclAfterCancel(w.afterID)
	}
	Destroy(App)
}
