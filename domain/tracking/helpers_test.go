package tracking

import (
	"errors"
	"image"
	"image/color"
	"log/slog"

	"github.com/soocke/hue-tracker/domain/camshift"
	"github.com/soocke/hue-tracker/domain/capture"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// manualScheduler queues callbacks until Step runs them.
type manualScheduler struct {
	queue []func()
}

func (m *manualScheduler) RequestFrame(fn func()) { m.queue = append(m.queue, fn) }

// Step runs the callbacks queued before the call and returns how many ran.
func (m *manualScheduler) Step() int {
	q := m.queue
	m.queue = nil
	for _, fn := range q {
		fn()
	}
	return len(q)
}

func (m *manualScheduler) Pending() int { return len(m.queue) }

// staticSource serves a fixed frame.
type staticSource struct {
	frame *image.RGBA
	err   error
	calls int
}

func (s *staticSource) CaptureFrame(dst *image.RGBA) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	capture.CopyFrame(dst, s.frame)
	return nil
}

type fakePlayback struct {
	playing, ended bool
	seeks          []float64
	plays, pauses  int
	playErr        error
}

func (p *fakePlayback) Playing() bool     { return p.playing }
func (p *fakePlayback) Ended() bool       { return p.ended }
func (p *fakePlayback) Position() float64 { return 0 }
func (p *fakePlayback) Duration() float64 { return 10 }
func (p *fakePlayback) Play() error {
	if p.playErr != nil {
		return p.playErr
	}
	p.plays++
	p.playing = true
	return nil
}
func (p *fakePlayback) Pause() { p.pauses++; p.playing = false }
func (p *fakePlayback) Seek(t float64) error {
	p.seeks = append(p.seeks, t)
	p.ended = false
	return nil
}

var errCapture = errors.New("capture failed")

// patchFrame returns a 10x10 gray frame with a green 4x4 patch at (2,2)-(6,6).
func patchFrame() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			c := color.RGBA{128, 128, 128, 255}
			if x >= 2 && x < 6 && y >= 2 && y < 6 {
				c = color.RGBA{60, 150, 60, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

type boxRecorder struct{ boxes []camshift.Box }

func (r *boxRecorder) sink(b camshift.Box) { r.boxes = append(r.boxes, b) }

type transitionRecorder struct{ seq []State }

func (r *transitionRecorder) listener(_, next State) { r.seq = append(r.seq, next) }
