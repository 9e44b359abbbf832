package tracking

import (
	"errors"
	"image"
	"testing"

	"github.com/soocke/hue-tracker/domain/camshift"
	"github.com/soocke/hue-tracker/domain/colormodel"
)

type stopRecord struct {
	reason StopReason
	err    error
	calls  int
}

func startTestLoop(t *testing.T, src *staticSource, sched *manualScheduler, m *Mirror, rec *boxRecorder, stop *stopRecord, releases *int) *Loop {
	t.Helper()
	hist, err := colormodel.BuildHistogram(src.frame, image.Rect(2, 2, 6, 6))
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	l, err := StartLoop(LoopConfig{
		Source:    src,
		Scheduler: sched,
		Mirror:    m,
		Histogram: hist,
		Window:    camshift.Window{X: 2, Y: 2, W: 4, H: 4},
		FrameSize: image.Pt(10, 10),
		OnBox:     rec.sink,
		OnStop: func(_ *Loop, r StopReason, err error) {
			stop.reason, stop.err = r, err
			stop.calls++
		},
		OnRelease: func() { *releases++ },
		Logger:    discardLogger,
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	return l
}

func TestLoop_IteratesAndReschedules(t *testing.T) {
	src := &staticSource{frame: patchFrame()}
	sched := &manualScheduler{}
	m := &Mirror{}
	m.SetMarkerValid(true)
	rec, stop, releases := &boxRecorder{}, &stopRecord{}, 0
	l := startTestLoop(t, src, sched, m, rec, stop, &releases)

	if sched.Pending() != 1 {
		t.Fatalf("start should schedule the first iteration")
	}
	for i := 0; i < 3; i++ {
		if sched.Step() != 1 {
			t.Fatalf("iteration %d: expected exactly one scheduled callback", i)
		}
	}
	if len(rec.boxes) != 3 || l.Iterations() != 3 {
		t.Fatalf("expected 3 boxes, got %d (iterations %d)", len(rec.boxes), l.Iterations())
	}
	if stop.calls != 0 || releases != 0 {
		t.Fatalf("running loop must not stop or release")
	}
}

func TestLoop_GuardStopsWithoutReschedule(t *testing.T) {
	cases := []struct {
		name   string
		set    func(*Mirror)
		reason StopReason
	}{
		{"ended", func(m *Mirror) { m.SetEnded(true) }, StopEnded},
		{"marker invalid", func(m *Mirror) { m.SetMarkerValid(false) }, StopMarkerInvalid},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := &staticSource{frame: patchFrame()}
			sched := &manualScheduler{}
			m := &Mirror{}
			m.SetMarkerValid(true)
			rec, stop, releases := &boxRecorder{}, &stopRecord{}, 0
			l := startTestLoop(t, src, sched, m, rec, stop, &releases)
			sched.Step()
			c.set(m)
			sched.Step()
			if sched.Pending() != 0 {
				t.Fatalf("stopped loop must not reschedule")
			}
			if stop.calls != 1 || stop.reason != c.reason || stop.err != nil {
				t.Fatalf("unexpected stop record %+v", stop)
			}
			if releases != 1 || !l.Released() || !l.Done() {
				t.Fatalf("expected exactly one release, got %d", releases)
			}
			if src.calls != 1 {
				t.Fatalf("guard must run before capture; captures=%d", src.calls)
			}
		})
	}
}

func TestLoop_CaptureErrorStopsSilently(t *testing.T) {
	src := &staticSource{frame: patchFrame()}
	sched := &manualScheduler{}
	m := &Mirror{}
	m.SetMarkerValid(true)
	rec, stop, releases := &boxRecorder{}, &stopRecord{}, 0
	startTestLoop(t, src, sched, m, rec, stop, &releases)
	src.err = errCapture
	sched.Step()
	if stop.reason != StopFailed || !errors.Is(stop.err, errCapture) {
		t.Fatalf("expected failed stop wrapping capture error, got %+v", stop)
	}
	if sched.Pending() != 0 || releases != 1 || len(rec.boxes) != 0 {
		t.Fatalf("failed loop: pending=%d releases=%d boxes=%d", sched.Pending(), releases, len(rec.boxes))
	}
}

func TestLoop_PanicIsRecovered(t *testing.T) {
	src := &staticSource{frame: patchFrame()}
	sched := &manualScheduler{}
	m := &Mirror{}
	m.SetMarkerValid(true)
	stop, releases := &stopRecord{}, 0
	hist, _ := colormodel.BuildHistogram(src.frame, image.Rect(2, 2, 6, 6))
	_, err := StartLoop(LoopConfig{
		Source: src, Scheduler: sched, Mirror: m, Histogram: hist,
		Window:    camshift.Window{X: 2, Y: 2, W: 4, H: 4},
		OnBox:     func(camshift.Box) { panic("sink exploded") },
		OnStop:    func(_ *Loop, r StopReason, err error) { stop.reason, stop.err = r, err; stop.calls++ },
		OnRelease: func() { releases++ },
		Logger:    discardLogger,
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	sched.Step()
	if !errors.Is(stop.err, ErrIterationPanic) || releases != 1 || sched.Pending() != 0 {
		t.Fatalf("panic should stop the loop: stop=%+v releases=%d pending=%d", stop, releases, sched.Pending())
	}
}

func TestLoop_CancelMakesScheduledIterationNoop(t *testing.T) {
	src := &staticSource{frame: patchFrame()}
	sched := &manualScheduler{}
	m := &Mirror{}
	m.SetMarkerValid(true)
	rec, stop, releases := &boxRecorder{}, &stopRecord{}, 0
	l := startTestLoop(t, src, sched, m, rec, stop, &releases)
	sched.Step()
	l.Cancel()
	l.Cancel()
	if releases != 0 || !l.Done() {
		t.Fatalf("cancel should defer release to the guard: releases=%d done=%v", releases, l.Done())
	}
	sched.Step()
	if releases != 1 || stop.calls != 0 || !l.Released() {
		t.Fatalf("cancel: releases=%d stopCalls=%d", releases, stop.calls)
	}
	if len(rec.boxes) != 1 || sched.Pending() != 0 {
		t.Fatalf("cancelled loop kept running: boxes=%d pending=%d", len(rec.boxes), sched.Pending())
	}
}

func TestStartLoop_RejectsDegenerateWindow(t *testing.T) {
	_, err := StartLoop(LoopConfig{
		Source: &staticSource{frame: patchFrame()}, Scheduler: &manualScheduler{}, Mirror: &Mirror{},
		Window: camshift.Window{X: 1, Y: 1, W: 0, H: 4},
	})
	if !errors.Is(err, camshift.ErrDegenerateWindow) {
		t.Fatalf("expected ErrDegenerateWindow, got %v", err)
	}
}
