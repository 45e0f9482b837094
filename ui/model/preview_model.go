package model

import (
	"image"
	"sync"
)

// PreviewFrame is one display-ready capture: the scaled full frame and the
// magnified distance region. Either may be nil.
type PreviewFrame struct {
	Frame image.Image
	ROI   image.Image
	OCR   image.Image
}

// PreviewModel is a single-slot mailbox between the capture goroutine and
// the Tk thread. Newer frames replace unread ones. The zero value is usable.
type PreviewModel struct {
	mu      sync.Mutex
	pending *PreviewFrame
	dropped uint64
}

// Put stores f, replacing any frame not yet taken.
func (m *PreviewModel) Put(f PreviewFrame) {
	if m == nil {
		return
	}
	m.mu.Lock()
	if m.pending != nil {
		m.dropped++
	}
	m.pending = &f
	m.mu.Unlock()
}

// Take returns the pending frame and clears the slot.
func (m *PreviewModel) Take() (PreviewFrame, bool) {
	if m == nil {
		return PreviewFrame{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return PreviewFrame{}, false
	}
	f := *m.pending
	m.pending = nil
	return f, true
}

// Dropped reports how many frames were replaced before being displayed.
func (m *PreviewModel) Dropped() uint64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dropped
}
