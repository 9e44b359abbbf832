package model

import (
	"time"
)

// SessionModel tracks the duration of the current tracking run, the
// accumulated tracking time and the number of runs. It is decoupled from the
// UI; presenters should poll Values() and update views. The zero value is ready to use.
type SessionModel struct {
	active      bool
	runStart    time.Time
	lastRun     time.Duration
	accumulated time.Duration
	runs        int
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the model using the current tracking state and timestamp.
func (m *SessionModel) OnTick(tracking bool, now time.Time) {
	if m == nil {
		return
	}
	if tracking {
		if !m.active {
			m.active = true
			m.runStart = now
			m.lastRun = 0
			m.runs++
		}
		m.lastRun = now.Sub(m.runStart)
	} else if m.active {
		m.lastRun = now.Sub(m.runStart)
		m.accumulated += m.lastRun
		m.active = false
	}
}

// Values returns the current run duration and the total accumulated duration.
// The total includes the ongoing run when active.
func (m *SessionModel) Values() (run, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	run = m.lastRun
	total = m.accumulated
	if m.active {
		total += run
	}
	return
}

// Runs returns how many tracking runs have started.
func (m *SessionModel) Runs() int {
	if m == nil {
		return 0
	}
	return m.runs
}

// Reset forgets all runs, used when a new video replaces the session.
func (m *SessionModel) Reset() {
	if m == nil {
		return
	}
	*m = SessionModel{}
}
