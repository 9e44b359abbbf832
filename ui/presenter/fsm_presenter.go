package presenter

import (
	"time"

	"github.com/soocke/hue-tracker/domain/capture"
	"github.com/soocke/hue-tracker/domain/tracking"
)

// Head messages prompting the next user step.
const (
	HeadMark     = "Mark the object in the video (at any time) by dragging cursor over it"
	HeadStart    = "Click on start tracking to proceed"
	HeadTracking = "Tracking..."
	HeadNoVideo  = "Open a video file to begin"
)

// StateSource provides the session methods the presenter requires.
type StateSource interface {
	Current() tracking.State
	Playback() capture.Playback
}

// Controls describes which tracking buttons are shown.
type Controls struct {
	ResetVisible bool
	StartVisible bool
	StartLabel   string
}

// StateView shows the session state, prompt and tracking buttons.
type StateView interface {
	SetStateLabel(string)
	SetHeadMessage(string)
	SetControls(Controls)
}

// HeadMessage returns the prompt for state.
func HeadMessage(s tracking.State, loaded bool) string {
	if !loaded {
		return HeadNoVideo
	}
	switch s {
	case tracking.StateMarked:
		return HeadStart
	case tracking.StateTracking:
		return HeadTracking
	default:
		return HeadMark
	}
}

// ControlsFor derives button visibility. Reset is offered whenever a valid
// marker exists; start only from Marked, relabelled when the video ended.
func ControlsFor(s tracking.State, ended bool) Controls {
	c := Controls{StartLabel: "Start Tracking"}
	switch s {
	case tracking.StateMarked:
		c.ResetVisible, c.StartVisible = true, true
		if ended {
			c.StartLabel = "Start Tracking Again"
		}
	case tracking.StateTracking, tracking.StateStopped:
		c.ResetVisible = true
	}
	return c
}

// StatePresenter receives session transitions and updates the view.
type StatePresenter struct {
	src     StateSource
	view    StateView
	latest  tracking.State
	pending []tracking.State
	shown   bool
	head    string
	ctrl    Controls
}

func NewStatePresenter(src StateSource, view StateView) *StatePresenter {
	return &StatePresenter{src: src, view: view}
}

// OnState queues a transitioned state from the session listener.
//
// The latest queued state will be reflected on the next Tick.
func (p *StatePresenter) OnState(prev, next tracking.State) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, next)
}

// Tick reflects the most recent state, prompt and buttons. The ended flag is
// polled so the start label follows playback reaching its end.
func (p *StatePresenter) Tick(now time.Time) {
	if p == nil || p.src == nil || p.view == nil {
		return
	}
	state := p.latest
	if len(p.pending) > 0 {
		state = p.pending[len(p.pending)-1]
		p.pending = p.pending[:0]
	}
	if !p.shown || state != p.latest {
		p.latest = state
		p.view.SetStateLabel("State: " + state.String())
	}
	pb := p.src.Playback()
	ended := pb != nil && pb.Ended()
	if head := HeadMessage(state, pb != nil); !p.shown || head != p.head {
		p.head = head
		p.view.SetHeadMessage(head)
	}
	if ctrl := ControlsFor(state, ended); !p.shown || ctrl != p.ctrl {
		p.ctrl = ctrl
		p.view.SetControls(ctrl)
	}
	p.shown = true
}
