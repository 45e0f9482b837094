package model

import (
	"time"
)

// SessionModel tracks how long the current run has been active. It is
// decoupled from the UI; presenters poll Elapsed and update views.
// The zero value is ready to use.
type SessionModel struct {
	started time.Time
	stopped time.Time
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick records the first tick as the start of the run. Once running is
// false the elapsed time is frozen.
func (m *SessionModel) OnTick(running bool, now time.Time) {
	if m == nil {
		return
	}
	if m.started.IsZero() {
		if !running {
			return
		}
		m.started = now
	}
	if !running && m.stopped.IsZero() {
		m.stopped = now
	}
}

// Elapsed returns the run duration up to now, or up to the stop time once
// the run has ended.
func (m *SessionModel) Elapsed(now time.Time) time.Duration {
	if m == nil || m.started.IsZero() {
		return 0
	}
	if !m.stopped.IsZero() {
		return m.stopped.Sub(m.started)
	}
	return now.Sub(m.started)
}
