package presenter

import (
	"log/slog"
	"time"

	"github.com/soocke/hue-tracker/domain/capture"
)

// PlaybackSource returns the playback of the loaded video, nil when none.
type PlaybackSource interface {
	Playback() capture.Playback
}

// PlaybackView updates the transport widgets.
type PlaybackView interface {
	SetPlayLabel(string)
	SetTime(string)
	SetSeek(fraction float64)
}

// PlaybackPresenter owns presentation logic for the play/pause toggle and the
// position label.
type PlaybackPresenter struct {
	src    PlaybackSource
	view   PlaybackView
	notify Notifier
	logger *slog.Logger

	label string
	time  string
	seek  float64
}

func NewPlaybackPresenter(src PlaybackSource, view PlaybackView, notify Notifier, logger *slog.Logger) *PlaybackPresenter {
	return &PlaybackPresenter{src: src, view: view, notify: notify, logger: logger}
}

func (p *PlaybackPresenter) playback() capture.Playback {
	if p == nil || p.src == nil {
		return nil
	}
	return p.src.Playback()
}

// Play resumes playback, restarting an ended video. Idempotent.
func (p *PlaybackPresenter) Play() {
	pb := p.playback()
	if pb == nil || pb.Playing() {
		return
	}
	if err := pb.Play(); err != nil {
		if p.logger != nil {
			p.logger.Warn("play failed", "error", err)
		}
		if p.notify != nil {
			p.notify.ShowToast(err.Error())
		}
	}
}

// Pause stops playback. Idempotent.
func (p *PlaybackPresenter) Pause() {
	pb := p.playback()
	if pb == nil || !pb.Playing() {
		return
	}
	pb.Pause()
}

// Toggle flips playback delegating to Play/Pause.
func (p *PlaybackPresenter) Toggle() {
	pb := p.playback()
	if pb == nil {
		return
	}
	if pb.Playing() {
		p.Pause()
		return
	}
	p.Play()
}

// Seek moves to fraction of the duration, clamped to [0,1]. Seeking away from
// the end clears the ended flag so tracking can be started again.
func (p *PlaybackPresenter) Seek(fraction float64) {
	pb := p.playback()
	if pb == nil || pb.Duration() <= 0 {
		return
	}
	fraction = max(0, min(fraction, 1))
	if err := pb.Seek(fraction * pb.Duration()); err != nil {
		if p.logger != nil {
			p.logger.Warn("seek failed", "error", err)
		}
		if p.notify != nil {
			p.notify.ShowToast(err.Error())
		}
	}
}

// SeekFraction returns position/duration in [0,1], zero when unknown.
func SeekFraction(position, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return max(0, min(position/duration, 1))
}

// PlayLabel returns the toggle caption for the playing flag.
func PlayLabel(playing bool) string {
	if playing {
		return "Pause"
	}
	return "Play"
}

// TimeLabel formats "position / duration".
func TimeLabel(position, duration float64) string {
	return capture.FormatTime(position) + " / " + capture.FormatTime(duration)
}

// Tick pushes the toggle caption, position label and seekbar when they change.
func (p *PlaybackPresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	pb := p.playback()
	label, tl, seek := PlayLabel(false), TimeLabel(0, 0), 0.0
	if pb != nil {
		label = PlayLabel(pb.Playing())
		tl = TimeLabel(pb.Position(), pb.Duration())
		seek = SeekFraction(pb.Position(), pb.Duration())
	}
	if label != p.label {
		p.label = label
		p.view.SetPlayLabel(label)
	}
	if tl != p.time {
		p.time = tl
		p.view.SetTime(tl)
	}
	if seek != p.seek {
		p.seek = seek
		p.view.SetSeek(seek)
	}
}
