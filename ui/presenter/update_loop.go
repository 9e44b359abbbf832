package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// Each tick advances playback, runs the tracking work queued on the frame
// clock, renders the overlay and refreshes the labels, then invokes the
// scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Tracker  *TrackerPresenter
	Clock    *FrameClock
	State    *StatePresenter
	Playback *PlaybackPresenter
	Session  *SessionPresenter
	Schedule func()
	Now      func() time.Time
}

func NewLoop(tracker *TrackerPresenter, clock *FrameClock, state *StatePresenter, playback *PlaybackPresenter, sess *SessionPresenter, schedule func()) *Loop {
	return &Loop{Tracker: tracker, Clock: clock, State: state, Playback: playback, Session: sess, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Now != nil {
		now = l.Now()
	}
	if l.Tracker != nil {
		l.Tracker.Advance(now)
	}
	if l.Clock != nil {
		l.Clock.RunPending()
	}
	if l.Tracker != nil {
		l.Tracker.Render()
	}
	if l.State != nil {
		l.State.Tick(now)
	}
	if l.Playback != nil {
		l.Playback.Tick(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
