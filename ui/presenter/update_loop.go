package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback.
// The zero value is usable (methods are nil-safe).
type Loop struct {
	Session  *SessionPresenter
	Capture  *CapturePresenter
	Label    *LabelPresenter
	Schedule func()
}

func NewLoop(sess *SessionPresenter, capture *CapturePresenter, label *LabelPresenter, schedule func()) *Loop {
	return &Loop{Session: sess, Capture: capture, Label: label, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Capture != nil {
		l.Capture.Tick(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Label != nil {
		l.Label.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
