package presenter

import (
	"errors"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/hue-tracker/domain/camshift"
	"github.com/soocke/hue-tracker/domain/capture"
	"github.com/soocke/hue-tracker/domain/marker"
	"github.com/soocke/hue-tracker/domain/overlay"
	"github.com/soocke/hue-tracker/domain/tracking"
	"github.com/soocke/hue-tracker/ui/images"
	"github.com/soocke/hue-tracker/ui/model"
)

const modelPreviewSize = 96

// Video is the playback surface the presenters drive.
type Video interface {
	capture.Playback
	Advance(now time.Time) bool
	LatestFrame() capture.FrameSnapshot
	Size() image.Point
	AddEndedListener(capture.EndedListener)
	Close()
}

// VideoOpener opens a validated file.
type VideoOpener func(path string) (Video, error)

// TrackerSession narrows the tracking session to what the presenter drives.
type TrackerSession interface {
	PointerDown(marker.Point) bool
	PointerMove(marker.Point) bool
	PointerUp(marker.Point) bool
	StartTracking() error
	ResetMark() error
	Replace(capture.Playback, capture.FrameSource)
	OnPlaybackEnded()
	Marker() marker.Rect
}

// FrameDisplay holds the scaled on-screen frame.
type FrameDisplay interface {
	capture.FrameSource
	SetSize(image.Point)
	Update(capture.FrameSnapshot) bool
	Frame() *image.RGBA
	Reset()
}

// TrackerView shows the composited video and the colour model patch.
type TrackerView interface {
	SetVideoSize(size image.Point)
	UpdateFrame(img image.Image)
	UpdateModel(img image.Image)
	ResetVideo()
}

// Notifier shows transient user-facing messages.
type Notifier interface{ ShowToast(msg string) }

// TrackerPresenter owns the loaded video and routes pointer input, tracking
// commands and overlay updates between the session and the view. Advance and
// Render run on the UI tick; the other methods run from Tk callbacks.
type TrackerPresenter struct {
	session      TrackerSession
	display      FrameDisplay
	renderer     *overlay.Renderer
	overlay      *model.OverlayModel
	view         TrackerView
	notify       Notifier
	open         VideoOpener
	logger       *slog.Logger
	displayWidth int

	video     Video
	path      string
	dirty     bool
	composite *image.RGBA
	onOpen    []func(path string)
}

// TrackerDeps groups the presenter collaborators.
type TrackerDeps struct {
	Session      TrackerSession
	Display      FrameDisplay
	Renderer     *overlay.Renderer
	Overlay      *model.OverlayModel
	View         TrackerView
	Notify       Notifier
	Open         VideoOpener
	Logger       *slog.Logger
	DisplayWidth int
}

func NewTrackerPresenter(d TrackerDeps) *TrackerPresenter {
	p := &TrackerPresenter{
		session:      d.Session,
		display:      d.Display,
		renderer:     d.Renderer,
		overlay:      d.Overlay,
		view:         d.View,
		notify:       d.Notify,
		open:         d.Open,
		logger:       d.Logger,
		displayWidth: d.DisplayWidth,
	}
	if p.overlay == nil {
		p.overlay = model.NewOverlayModel()
	}
	if p.renderer == nil {
		p.renderer = overlay.NewRenderer(image.Point{}, overlay.DefaultStyle)
	}
	return p
}

// OnOpen registers fn to run after a file was loaded.
func (p *TrackerPresenter) OnOpen(fn func(path string)) {
	if p == nil || fn == nil {
		return
	}
	p.onOpen = append(p.onOpen, fn)
}

// SetDisplayWidth changes the on-screen width used for the next file.
func (p *TrackerPresenter) SetDisplayWidth(w int) {
	if p == nil {
		return
	}
	p.displayWidth = w
}

// Video returns the loaded video, nil before the first file.
func (p *TrackerPresenter) Video() Video {
	if p == nil {
		return nil
	}
	return p.video
}

// Path returns the loaded file path.
func (p *TrackerPresenter) Path() string {
	if p == nil {
		return ""
	}
	return p.path
}

// OpenFiles validates a file-picker result and replaces the session with the
// selected video. An empty selection (dialog cancelled) is ignored.
func (p *TrackerPresenter) OpenFiles(paths []string) error {
	if p == nil || p.session == nil || p.open == nil {
		return nil
	}
	path, err := capture.ValidateSelection(paths)
	if errors.Is(err, capture.ErrNoFile) {
		return nil
	}
	if err != nil {
		p.fail("file rejected", err)
		return err
	}
	v, err := p.open(path)
	if err != nil {
		p.fail("open video failed", err)
		return err
	}
	old := p.video
	p.video, p.path = v, path
	v.AddEndedListener(p.session.OnPlaybackEnded)

	size := overlay.FitToWidth(v.Size(), p.displayWidth)
	if p.display != nil {
		p.display.Reset()
		p.display.SetSize(size)
	}
	p.renderer.Resize(size)
	p.overlay.Clear()
	p.composite = nil
	if p.view != nil {
		p.view.ResetVideo()
		p.view.SetVideoSize(size)
	}
	p.session.Replace(v, p.display)
	if old != nil {
		old.Close()
	}
	p.dirty = true
	if p.logger != nil {
		p.logger.Info("video loaded", "path", path, "display", size.String())
	}
	for _, fn := range p.onOpen {
		fn(path)
	}
	return nil
}

// Advance steps playback to now and refreshes the scaled frame.
func (p *TrackerPresenter) Advance(now time.Time) {
	if p == nil || p.video == nil || p.display == nil {
		return
	}
	p.video.Advance(now)
	if p.display.Update(p.video.LatestFrame()) {
		p.dirty = true
	}
}

// Render applies the latest overlay request and pushes the composited frame
// to the view when anything changed.
func (p *TrackerPresenter) Render() {
	if p == nil {
		return
	}
	if u, ok := p.overlay.Take(); ok {
		switch u.Kind {
		case model.OverlayMarker:
			p.renderer.DrawMarker(u.Marker)
		case model.OverlayBox:
			p.renderer.DrawTrack(u.Box)
		default:
			p.renderer.Clear()
		}
		p.dirty = true
	}
	if !p.dirty || p.display == nil || p.view == nil {
		return
	}
	frame := p.display.Frame()
	if frame == nil {
		return
	}
	p.composite = images.Composite(p.composite, frame, p.renderer.Surface())
	p.view.UpdateFrame(p.composite)
	p.dirty = false
}

func (p *TrackerPresenter) PointerDown(x, y int) {
	if p == nil || p.session == nil {
		return
	}
	p.session.PointerDown(marker.Point{X: x, Y: y})
}

func (p *TrackerPresenter) PointerMove(x, y int) {
	if p == nil || p.session == nil {
		return
	}
	p.session.PointerMove(marker.Point{X: x, Y: y})
}

func (p *TrackerPresenter) PointerUp(x, y int) {
	if p == nil || p.session == nil {
		return
	}
	p.session.PointerUp(marker.Point{X: x, Y: y})
}

// StartTracking starts a tracking run and shows the marked patch the colour
// model was built from.
func (p *TrackerPresenter) StartTracking() {
	if p == nil || p.session == nil {
		return
	}
	var patch image.Image
	if p.display != nil {
		if img, _, err := images.ExtractRegion(p.display.Frame(), p.session.Marker().Bounds()); err == nil {
			patch = images.ScaleToFit(img, modelPreviewSize, modelPreviewSize)
		}
	}
	if err := p.session.StartTracking(); err != nil {
		p.fail("start tracking failed", err)
		return
	}
	if patch != nil && p.view != nil {
		p.view.UpdateModel(patch)
	}
}

// ResetMark discards the marker and any running loop.
func (p *TrackerPresenter) ResetMark() {
	if p == nil || p.session == nil {
		return
	}
	if err := p.session.ResetMark(); err != nil && p.logger != nil {
		p.logger.Debug("reset ignored", "error", err)
	}
}

// OnMarkerChanged is the marker editor listener. It runs under the session
// lock and only records the request.
func (p *TrackerPresenter) OnMarkerChanged(r marker.Rect) {
	if p == nil {
		return
	}
	p.overlay.SetMarker(r)
}

// OnBox receives every tracking result.
func (p *TrackerPresenter) OnBox(b camshift.Box) {
	if p == nil {
		return
	}
	p.overlay.SetBox(b)
}

// OnState clears the overlay when the session returns to Idle.
func (p *TrackerPresenter) OnState(prev, next tracking.State) {
	if p == nil {
		return
	}
	if next == tracking.StateIdle {
		p.overlay.Clear()
	}
}

// Close releases the loaded video.
func (p *TrackerPresenter) Close() {
	if p == nil || p.video == nil {
		return
	}
	p.video.Close()
	p.video = nil
}

func (p *TrackerPresenter) fail(msg string, err error) {
	if p.logger != nil {
		p.logger.Warn(msg, "error", err)
	}
	if p.notify != nil {
		p.notify.ShowToast(err.Error())
	}
}
