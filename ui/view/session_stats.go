package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats updates the tracking run and total tracking durations.
type SessionStats interface {
	SetRun(d time.Duration)
	SetTotal(d time.Duration)
}

type sessionStats struct {
	runLbl   *LabelWidget
	totalLbl *LabelWidget
	run      string
	total    string
}

// NewSessionStats creates run and total duration labels in a grid layout.
// The run label is placed at (row, startCol) and total label at (row, startCol+1).
// If parent is nil, labels are positioned relative to the App root.
func NewSessionStats(parent *FrameWidget, row, startCol int) SessionStats {
	s := &sessionStats{runLbl: Label(Width(14)), totalLbl: Label(Width(14))}
	if parent != nil {
		Grid(s.runLbl, In(parent), Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
		Grid(s.totalLbl, In(parent), Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	} else {
		Grid(s.runLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
		Grid(s.totalLbl, Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	}
	s.SetRun(0)
	s.SetTotal(0)
	return s
}

func formatMinSec(prefix string, d time.Duration) string {
	seconds := int(d.Seconds())
	min, sec := seconds/60, seconds%60
	return fmt.Sprintf("%s: %02d:%02d", prefix, min, sec)
}

// SetRun updates the current tracking run display.
func (s *sessionStats) SetRun(d time.Duration) {
	if s == nil || s.runLbl == nil {
		return
	}
	if txt := formatMinSec("Run", d); txt != s.run {
		s.run = txt
		s.runLbl.Configure(Txt(txt))
	}
}

// SetTotal updates the accumulated tracking time display.
func (s *sessionStats) SetTotal(d time.Duration) {
	if s == nil || s.totalLbl == nil {
		return
	}
	if txt := formatMinSec("Tracked", d); txt != s.total {
		s.total = txt
		s.totalLbl.Configure(Txt(txt))
	}
}
