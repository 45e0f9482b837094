package view

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows the capture run time and sample counters.
type SessionStats interface {
	SetElapsed(d time.Duration)
	SetCounts(saved, duplicates, skipped, written uint64)
}

type sessionStats struct {
	elapsedLbl *LabelWidget
	countsLbl  *LabelWidget
}

// NewSessionStats places the elapsed label at (row, startCol) and the
// counters next to it.
func NewSessionStats(row, startCol int) SessionStats {
	s := &sessionStats{elapsedLbl: Label(Width(16)), countsLbl: Label(Width(48))}
	Grid(s.elapsedLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
	Grid(s.countsLbl, Row(row), Column(startCol+1), Columnspan(3), Sticky("w"), Padx("0.2m"))
	s.elapsedLbl.Configure(Txt("Session: 00:00"))
	s.countsLbl.Configure(Txt("Saved: 0  Duplicates: 0  Skipped: 0"))
	return s
}

func (s *sessionStats) SetElapsed(d time.Duration) {
	if s == nil || s.elapsedLbl == nil {
		return
	}
	seconds := int(d.Seconds())
	min, sec := seconds/60, seconds%60
	s.elapsedLbl.Configure(Txt(fmt.Sprintf("Session: %02d:%02d", min, sec)))
}

func (s *sessionStats) SetCounts(saved, duplicates, skipped, written uint64) {
	if s == nil || s.countsLbl == nil {
		return
	}
	s.countsLbl.Configure(Txt(fmt.Sprintf("Saved: %d (%s)  Duplicates: %d  Skipped: %d",
		saved, humanize.Bytes(written), duplicates, skipped)))
}
