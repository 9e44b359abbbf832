package tracking

import (
	"errors"
	"testing"

	"github.com/soocke/hue-tracker/domain/marker"
)

type sessionFixture struct {
	s     *Session
	sched *manualScheduler
	src   *staticSource
	pb    *fakePlayback
	boxes *boxRecorder
	trans *transitionRecorder
}

func newSessionFixture() *sessionFixture {
	f := &sessionFixture{
		sched: &manualScheduler{},
		src:   &staticSource{frame: patchFrame()},
		pb:    &fakePlayback{},
		boxes: &boxRecorder{},
		trans: &transitionRecorder{},
	}
	f.s = NewSession(SessionConfig{
		Playback:  f.pb,
		Source:    f.src,
		Scheduler: f.sched,
		OnBox:     f.boxes.sink,
		Logger:    discardLogger,
	})
	f.s.AddListener(f.trans.listener)
	return f
}

func (f *sessionFixture) mark(a, b marker.Point) bool {
	f.s.PointerDown(a)
	f.s.PointerMove(b)
	return f.s.PointerUp(b)
}

func TestSession_MarkingFlow(t *testing.T) {
	f := newSessionFixture()
	if f.s.Current() != StateIdle {
		t.Fatalf("new session should be idle")
	}
	if !f.s.PointerDown(marker.Point{X: 2, Y: 2}) || f.s.Current() != StateMarking {
		t.Fatalf("pointer down should enter marking")
	}
	f.s.PointerMove(marker.Point{X: 4, Y: 4})
	if f.s.Mirror().MarkerValid() {
		t.Fatalf("marker must not be valid while drawing")
	}
	if !f.s.PointerUp(marker.Point{X: 6, Y: 6}) || f.s.Current() != StateMarked {
		t.Fatalf("valid drag should end in marked, got %v", f.s.Current())
	}
	if !f.s.Mirror().MarkerValid() {
		t.Fatalf("mirror should reflect marker validity")
	}
	want := []State{StateMarking, StateMarked}
	if len(f.trans.seq) != len(want) || f.trans.seq[0] != want[0] || f.trans.seq[1] != want[1] {
		t.Fatalf("transitions=%v want %v", f.trans.seq, want)
	}
}

func TestSession_PointerDownIgnoredWhilePlaying(t *testing.T) {
	f := newSessionFixture()
	f.pb.playing = true
	if f.s.PointerDown(marker.Point{X: 1, Y: 1}) {
		t.Fatalf("pointer down should be ignored while playing")
	}
	if f.s.Current() != StateIdle {
		t.Fatalf("state changed to %v", f.s.Current())
	}
}

func TestSession_StartTrackingRequiresMarked(t *testing.T) {
	f := newSessionFixture()
	if err := f.s.StartTracking(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition from idle, got %v", err)
	}
	if err := f.s.ResetMark(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for reset from idle, got %v", err)
	}
}

func TestSession_StartTrackingPlaysAndTracks(t *testing.T) {
	f := newSessionFixture()
	f.mark(marker.Point{X: 2, Y: 2}, marker.Point{X: 6, Y: 6})
	if err := f.s.StartTracking(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if f.s.Current() != StateTracking || f.pb.plays != 1 {
		t.Fatalf("expected tracking with playback resumed, state=%v plays=%d", f.s.Current(), f.pb.plays)
	}
	f.sched.Step()
	if len(f.boxes.boxes) != 1 {
		t.Fatalf("expected one box after one frame")
	}
	if f.s.PointerDown(marker.Point{X: 1, Y: 1}) {
		t.Fatalf("pointer down must be rejected while tracking")
	}
}

func TestSession_StartTrackingRewindsEndedVideo(t *testing.T) {
	f := newSessionFixture()
	f.mark(marker.Point{X: 2, Y: 2}, marker.Point{X: 6, Y: 6})
	f.pb.ended = true
	f.s.OnPlaybackEnded()
	if err := f.s.StartTracking(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(f.pb.seeks) != 1 || f.pb.seeks[0] != 0 {
		t.Fatalf("expected rewind to 0, seeks=%v", f.pb.seeks)
	}
	if f.s.Mirror().Ended() {
		t.Fatalf("ended mirror should be cleared on start")
	}
}

func TestSession_StartTrackingPlayErrorStaysMarked(t *testing.T) {
	f := newSessionFixture()
	f.mark(marker.Point{X: 2, Y: 2}, marker.Point{X: 6, Y: 6})
	f.pb.playErr = errors.New("no decoder")
	if err := f.s.StartTracking(); err == nil {
		t.Fatalf("expected play error")
	}
	if f.s.Current() != StateMarked || f.s.Loops() != 0 {
		t.Fatalf("failed start should leave session marked without a loop")
	}
}

func TestSession_IterationErrorStops(t *testing.T) {
	f := newSessionFixture()
	f.mark(marker.Point{X: 2, Y: 2}, marker.Point{X: 6, Y: 6})
	_ = f.s.StartTracking()
	f.src.err = errCapture
	f.sched.Step()
	if f.s.Current() != StateStopped {
		t.Fatalf("iteration error should stop the session, got %v", f.s.Current())
	}
	if f.s.Releases() != 1 {
		t.Fatalf("releases=%d want 1", f.s.Releases())
	}
}

func TestSession_ReplaceDiscardsEverything(t *testing.T) {
	f := newSessionFixture()
	f.mark(marker.Point{X: 2, Y: 2}, marker.Point{X: 6, Y: 6})
	_ = f.s.StartTracking()
	next := &fakePlayback{}
	f.s.Replace(next, f.src)
	if f.s.Current() != StateIdle || f.s.Playback() != next {
		t.Fatalf("replace should adopt new playback in idle")
	}
	if f.s.Releases() != 1 || f.s.Mirror().MarkerValid() {
		t.Fatalf("replace should cancel the loop and clear validity")
	}
	if f.s.Marker() != (marker.Rect{}) {
		t.Fatalf("marker should be cleared, got %+v", f.s.Marker())
	}
	f.sched.Step()
	if len(f.boxes.boxes) != 0 {
		t.Fatalf("stale iteration emitted a box")
	}
}

func TestSession_StoppedNeedsNewMarkerToRestart(t *testing.T) {
	f := newSessionFixture()
	f.mark(marker.Point{X: 2, Y: 2}, marker.Point{X: 6, Y: 6})
	_ = f.s.StartTracking()
	f.pb.playing, f.pb.ended = false, true
	f.s.OnPlaybackEnded()
	f.sched.Step()
	if err := f.s.StartTracking(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("start from stopped should be rejected, got %v", err)
	}
	if !f.mark(marker.Point{X: 2, Y: 2}, marker.Point{X: 6, Y: 6}) {
		t.Fatalf("re-marking from stopped should work")
	}
	if err := f.s.StartTracking(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if f.s.Loops() != 2 || len(f.pb.seeks) != 1 {
		t.Fatalf("loops=%d seeks=%v", f.s.Loops(), f.pb.seeks)
	}
}
