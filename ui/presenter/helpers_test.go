package presenter

import (
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/soocke/hue-tracker/domain/capture"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// fakeVideo serves one frame and lets tests end the stream on demand.
type fakeVideo struct {
	frame     *image.RGBA
	playing   bool
	ended     bool
	pos       float64
	seq       uint64
	plays     int
	seeks     []float64
	closed    int
	listeners []capture.EndedListener
}

func newFakeVideo(frame *image.RGBA) *fakeVideo { return &fakeVideo{frame: frame, seq: 1} }

func (v *fakeVideo) Playing() bool     { return v.playing }
func (v *fakeVideo) Ended() bool       { return v.ended }
func (v *fakeVideo) Position() float64 { return v.pos }
func (v *fakeVideo) Duration() float64 { return 10 }
func (v *fakeVideo) Play() error {
	if v.ended {
		v.ended, v.pos = false, 0
	}
	v.plays++
	v.playing = true
	return nil
}
func (v *fakeVideo) Pause() { v.playing = false }
func (v *fakeVideo) Seek(t float64) error {
	v.seeks = append(v.seeks, t)
	v.pos, v.ended = t, false
	return nil
}
func (v *fakeVideo) Advance(now time.Time) bool {
	if !v.playing {
		return false
	}
	v.seq++
	v.pos++
	return true
}
func (v *fakeVideo) LatestFrame() capture.FrameSnapshot {
	return capture.FrameSnapshot{Image: v.frame, Sequence: v.seq, Generation: 1}
}
func (v *fakeVideo) Size() image.Point                         { return v.frame.Bounds().Size() }
func (v *fakeVideo) AddEndedListener(l capture.EndedListener) { v.listeners = append(v.listeners, l) }
func (v *fakeVideo) Close()                                    { v.closed++ }

// finish reaches end of stream and notifies listeners.
func (v *fakeVideo) finish() {
	v.playing, v.ended = false, true
	for _, l := range v.listeners {
		l()
	}
}

// recordingView implements every view contract the presenters use.
type recordingView struct {
	size      image.Point
	frames    int
	lastFrame *image.RGBA
	model     image.Image
	resets    int
	toasts    []string
	state     string
	head      string
	controls  Controls
	ctrlCalls int
	playLabel string
	timeLabel string
	seek      float64
	run       time.Duration
	total     time.Duration
}

func (v *recordingView) SetVideoSize(size image.Point) { v.size = size }
func (v *recordingView) UpdateFrame(img image.Image) {
	v.frames++
	if rgba, ok := img.(*image.RGBA); ok {
		v.lastFrame = rgba
	}
}
func (v *recordingView) UpdateModel(img image.Image)        { v.model = img }
func (v *recordingView) ResetVideo()                        { v.resets++ }
func (v *recordingView) ShowToast(msg string)               { v.toasts = append(v.toasts, msg) }
func (v *recordingView) SetStateLabel(s string)             { v.state = s }
func (v *recordingView) SetHeadMessage(s string)            { v.head = s }
func (v *recordingView) SetControls(c Controls)             { v.controls = c; v.ctrlCalls++ }
func (v *recordingView) SetPlayLabel(s string)              { v.playLabel = s }
func (v *recordingView) SetTime(s string)                   { v.timeLabel = s }
func (v *recordingView) SetSeek(f float64)                  { v.seek = f }
func (v *recordingView) SetSession(run, total time.Duration) { v.run, v.total = run, total }

// patchFrame is a grey 10x10 frame with a saturated green patch at (2,2)-(6,6).
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

// writeMP4 writes a file whose header sniffs as video/mp4.
func writeMP4(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	data := append([]byte("\x00\x00\x00\x18ftypisom\x00\x00\x02\x00isomiso2"), make([]byte, 64)...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}
