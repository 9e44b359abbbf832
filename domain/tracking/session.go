package tracking

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/soocke/hue-tracker/domain/camshift"
	"github.com/soocke/hue-tracker/domain/capture"
	"github.com/soocke/hue-tracker/domain/colormodel"
	"github.com/soocke/hue-tracker/domain/marker"
)

// SessionConfig wires a session to its collaborators. Playback may be nil
// until a video is loaded.
type SessionConfig struct {
	Editor    *marker.Editor
	Playback  capture.Playback
	Source    capture.FrameSource
	Scheduler Scheduler
	Criteria  camshift.Criteria
	OnBox     BoxSink
	Logger    *slog.Logger
}

// Session is the tracking state machine. It owns the marker editor, the live
// mirror and at most one tracking loop. Listeners are invoked after the
// session lock is released.
type Session struct {
	mu        sync.Mutex
	state     State
	editor    *marker.Editor
	mirror    Mirror
	playback  capture.Playback
	source    capture.FrameSource
	scheduler Scheduler
	criteria  camshift.Criteria
	onBox     BoxSink
	logger    *slog.Logger
	loop      *Loop
	listeners []StateListener

	loops    atomic.Uint64
	releases atomic.Uint64
}

// NewSession returns a session in StateIdle.
func NewSession(cfg SessionConfig) *Session {
	s := &Session{
		state:     StateIdle,
		editor:    cfg.Editor,
		playback:  cfg.Playback,
		source:    cfg.Source,
		scheduler: cfg.Scheduler,
		criteria:  cfg.Criteria,
		onBox:     cfg.OnBox,
		logger:    cfg.Logger,
	}
	if s.editor == nil {
		s.editor = marker.NewEditor()
	}
	if s.criteria.MaxIter <= 0 {
		s.criteria = camshift.DefaultCriteria
	}
	return s
}

// AddListener registers l for state transitions.
func (s *Session) AddListener(l StateListener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Current returns the session state.
func (s *Session) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Editor exposes the marker editor for rendering.
func (s *Session) Editor() *marker.Editor { return s.editor }

// Mirror exposes the live flags read by the loop.
func (s *Session) Mirror() *Mirror { return &s.mirror }

// Marker returns the current marker rectangle.
func (s *Session) Marker() marker.Rect { return s.editor.Rect() }

// Releases returns the number of loop buffer releases so far.
func (s *Session) Releases() uint64 { return s.releases.Load() }

// Loops returns the number of loops started so far.
func (s *Session) Loops() uint64 { return s.loops.Load() }

// Playback returns the attached playback, nil when no video is loaded.
func (s *Session) Playback() capture.Playback {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playback
}

// PointerDown starts a marker gesture. It is accepted while paused in
// Idle, Marked or Stopped and reports whether a gesture started.
func (s *Session) PointerDown(p marker.Point) bool {
	s.mu.Lock()
	switch s.state {
	case StateIdle, StateMarked, StateStopped:
	default:
		s.mu.Unlock()
		return false
	}
	playing := s.playback != nil && s.playback.Playing()
	if !s.editor.PointerDown(p, playing) {
		s.mu.Unlock()
		return false
	}
	s.mirror.SetMarkerValid(false)
	prev, changed := s.transitionLocked(StateMarking)
	s.mu.Unlock()
	s.emit(prev, StateMarking, changed)
	return true
}

// PointerMove extends the gesture in progress.
func (s *Session) PointerMove(p marker.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateMarking {
		return false
	}
	return s.editor.PointerMove(p)
}

// PointerUp ends the gesture. A valid marker moves the session to Marked,
// a degenerate one back to Idle. It returns the marker validity.
func (s *Session) PointerUp(p marker.Point) bool {
	s.mu.Lock()
	if s.state != StateMarking {
		s.mu.Unlock()
		return false
	}
	valid := s.editor.PointerUp(p)
	s.mirror.SetMarkerValid(valid)
	next := StateIdle
	if valid {
		next = StateMarked
	}
	prev, changed := s.transitionLocked(next)
	s.mu.Unlock()
	s.emit(prev, next, changed)
	return valid
}

// StartTracking builds the hue model from the marked region of the frame on
// screen, resumes playback (rewinding an ended video) and starts a loop.
func (s *Session) StartTracking() error {
	s.mu.Lock()
	if s.state != StateMarked {
		st := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: start tracking from %s", ErrInvalidTransition, st)
	}
	if s.playback == nil || s.source == nil {
		s.mu.Unlock()
		return ErrNoPlayback
	}

	frame := capture.AcquireFrame(image.Rectangle{})
	defer capture.RecycleFrame(frame)
	if err := s.source.CaptureFrame(frame); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("capture marked frame: %w", err)
	}
	bounds := s.editor.Rect().Bounds().Intersect(frame.Bounds())
	hist, err := colormodel.BuildHistogram(frame, bounds)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("build color model: %w", err)
	}
	if hist.Empty() && s.logger != nil {
		s.logger.Warn("marked region has no pixels inside the hue mask", "marker", bounds.String())
	}

	if s.playback.Ended() {
		if err := s.playback.Seek(0); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("rewind: %w", err)
		}
	}
	s.mirror.SetEnded(false)
	if err := s.playback.Play(); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("play: %w", err)
	}

	if s.loop != nil {
		s.loop.Cancel()
		s.loop = nil
	}
	loop, err := StartLoop(LoopConfig{
		Source:    s.source,
		Scheduler: s.scheduler,
		Mirror:    &s.mirror,
		Histogram: hist,
		Window:    camshift.WindowFromRect(bounds),
		Criteria:  s.criteria,
		FrameSize: frame.Bounds().Size(),
		OnBox:     s.onBox,
		OnStop:    s.loopStopped,
		OnRelease: func() { s.releases.Add(1) },
		Logger:    s.logger,
	})
	if err != nil {
		s.playback.Pause()
		s.mu.Unlock()
		return fmt.Errorf("start loop: %w", err)
	}
	s.loop = loop
	s.loops.Add(1)
	prev, changed := s.transitionLocked(StateTracking)
	s.mu.Unlock()
	s.emit(prev, StateTracking, changed)
	return nil
}

// ResetMark discards the marker, pauses playback and cancels any loop.
func (s *Session) ResetMark() error {
	s.mu.Lock()
	switch s.state {
	case StateMarked, StateTracking, StateStopped:
	default:
		st := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: reset from %s", ErrInvalidTransition, st)
	}
	s.mirror.SetMarkerValid(false)
	s.editor.Reset()
	if s.playback != nil {
		s.playback.Pause()
	}
	if s.loop != nil {
		s.loop.Cancel()
		s.loop = nil
	}
	prev, changed := s.transitionLocked(StateIdle)
	s.mu.Unlock()
	s.emit(prev, StateIdle, changed)
	return nil
}

// Replace adopts a newly loaded video and discards the whole session.
func (s *Session) Replace(pb capture.Playback, src capture.FrameSource) {
	s.mu.Lock()
	if s.loop != nil {
		s.loop.Cancel()
		s.loop = nil
	}
	s.editor.Clear()
	s.mirror.SetMarkerValid(false)
	s.mirror.SetEnded(false)
	s.playback = pb
	s.source = src
	prev, changed := s.transitionLocked(StateIdle)
	s.mu.Unlock()
	s.emit(prev, StateIdle, changed)
	if s.logger != nil {
		s.logger.Info("session replaced")
	}
}

// OnPlaybackEnded mirrors the end-of-stream event for the loop guard.
func (s *Session) OnPlaybackEnded() {
	s.mirror.SetEnded(true)
}

// Close cancels any running loop.
func (s *Session) Close() {
	s.mu.Lock()
	if s.loop != nil {
		s.loop.Cancel()
		s.loop = nil
	}
	s.mu.Unlock()
}

func (s *Session) loopStopped(l *Loop, reason StopReason, err error) {
	s.mu.Lock()
	if s.loop != l || s.state != StateTracking {
		s.mu.Unlock()
		return
	}
	s.loop = nil
	prev, changed := s.transitionLocked(StateStopped)
	s.mu.Unlock()
	if s.logger != nil && err == nil {
		s.logger.Debug("tracking stopped", "reason", reason.String())
	}
	s.emit(prev, StateStopped, changed)
}

func (s *Session) transitionLocked(next State) (State, bool) {
	prev := s.state
	if prev == next {
		return prev, false
	}
	s.state = next
	if s.logger != nil {
		s.logger.Debug("tracking state transition", "from", prev.String(), "to", next.String())
	}
	return prev, true
}

func (s *Session) emit(prev, next State, changed bool) {
	if !changed {
		return
	}
	s.mu.Lock()
	ls := append([]StateListener(nil), s.listeners...)
	s.mu.Unlock()
	for _, l := range ls {
		l(prev, next)
	}
}
