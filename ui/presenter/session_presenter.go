package presenter

import (
	"time"

	"github.com/soocke/distance-collector/domain/capture"
	"github.com/soocke/distance-collector/ui/model"
)

// StatsSource exposes capture counters.
type StatsSource interface {
	Stats() capture.CaptureStats
}

// SessionView displays run time and counters.
type SessionView interface {
	SetElapsed(d time.Duration)
	SetCounts(saved, duplicates, skipped, written uint64)
}

// SessionPresenter formats capture progress from the session model and the
// capture counters to the view.
type SessionPresenter struct {
	sess    *model.SessionModel
	stats   StatsSource
	running func() bool
	view    SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, stats StatsSource, running func() bool, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, stats: stats, running: running, view: view}
}

// Tick advances the session model and pushes values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.view == nil {
		return
	}
	running := p.running == nil || p.running()
	p.sess.OnTick(running, now)
	p.view.SetElapsed(p.sess.Elapsed(now))
	if p.stats != nil {
		st := p.stats.Stats()
		p.view.SetCounts(st.Saved, st.Duplicates, st.Skipped, st.BytesWritten)
	}
}
