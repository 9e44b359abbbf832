package presenter

import (
	"time"

	"github.com/soocke/hue-tracker/ui/model"
)

// TrackingActiveModel reports whether a tracking run is active.
type TrackingActiveModel interface{ Active() bool }

// SessionView displays formatted run and total tracking durations.
type SessionView interface {
	SetSession(run, total time.Duration)
}

// SessionPresenter formats tracking durations from the model to the view.
type SessionPresenter struct {
	sess   *model.SessionModel
	active TrackingActiveModel
	view   SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, active TrackingActiveModel, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, active: active, view: view}
}

// Tick advances the session model and pushes values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.active == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.active.Active(), now)
	r, t := p.sess.Values()
	p.view.SetSession(r, t)
}

// Reset clears accumulated figures, used when a new video is loaded.
func (p *SessionPresenter) Reset() {
	if p == nil {
		return
	}
	p.sess.Reset()
}
