package model

import (
	"testing"
	"time"

	"github.com/soocke/hue-tracker/domain/camshift"
	"github.com/soocke/hue-tracker/domain/marker"
)

func TestSessionModel_RunLifecycle(t *testing.T) {
	m := NewSessionModel()
	base := time.Unix(0, 0)

	m.OnTick(true, base)
	m.OnTick(true, base.Add(5*time.Second))
	run, total := m.Values()
	if run != 5*time.Second || total != 5*time.Second {
		t.Fatalf("expected 5s run & total; got run=%v total=%v", run, total)
	}

	// Loop stops at 5s; idle ticks keep the figures.
	m.OnTick(false, base.Add(5*time.Second))
	m.OnTick(false, base.Add(7*time.Second))
	run2, total2 := m.Values()
	if run2 != run || total2 != total {
		t.Fatalf("idle tick should not change durations: run=%v total=%v", run2, total2)
	}

	// Second run at 10s lasting 3s.
	m.OnTick(true, base.Add(10*time.Second))
	m.OnTick(true, base.Add(13*time.Second))
	r3, t3 := m.Values()
	if r3 != 3*time.Second || t3 != 8*time.Second {
		t.Fatalf("second run expected 3s/8s, got %v/%v", r3, t3)
	}
	if m.Runs() != 2 {
		t.Fatalf("runs=%d", m.Runs())
	}

	m.Reset()
	if r, tot := m.Values(); r != 0 || tot != 0 || m.Runs() != 0 {
		t.Fatalf("reset should clear the model")
	}
}

func TestOverlayModel_TakeReturnsLatestOnce(t *testing.T) {
	m := NewOverlayModel()
	if _, ok := m.Take(); ok {
		t.Fatalf("fresh model should have nothing pending")
	}
	m.SetMarker(marker.Rect{End: marker.Point{X: 3, Y: 3}})
	m.SetBox(camshift.Box{Size: camshift.Size2f{W: 2, H: 2}})
	u, ok := m.Take()
	if !ok || u.Kind != OverlayBox || u.Box.Size.W != 2 {
		t.Fatalf("latest update should win, got %+v ok=%v", u, ok)
	}
	if _, ok := m.Take(); ok {
		t.Fatalf("update should be consumed")
	}
	m.Clear()
	if u, ok := m.Take(); !ok || u.Kind != OverlayClear {
		t.Fatalf("clear should be pending, got %+v", u)
	}
}

func TestTrackingModel_ZeroValue(t *testing.T) {
	var m TrackingModel
	if m.Active() {
		t.Fatalf("zero value should be inactive")
	}
	m.SetActive(true)
	if !m.Active() {
		t.Fatalf("expected active")
	}
}
