package capture

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	vidio "github.com/AlexEidt/Vidio"
)

const defaultFPS = 30

var (
	ErrNoVideo     = errors.New("capture: no video loaded")
	ErrShortFrame  = errors.New("capture: decoder frame buffer too small")
	ErrEmptyStream = errors.New("capture: video has no decodable frames")
)

// OpenVidio opens path with the ffmpeg-backed Vidio decoder.
func OpenVidio(path string) (Decoder, error) {
	v, err := vidio.NewVideo(path)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// VideoPlayer decodes a local video file frame by frame and exposes the
// Playback surface. Frames are pulled by Advance, which the UI frame clock
// calls on every refresh.
type VideoPlayer struct {
	mu       sync.Mutex
	path     string
	open     OpenFunc
	dec      Decoder
	logger   *slog.Logger
	clock    func() time.Time
	fps      float64
	frames   int
	duration float64
	size     image.Point

	frame      *image.RGBA
	pos        int // index of the frame held in frame
	playing    bool
	ended      bool
	clockStart time.Time
	clockBase  int

	listeners []EndedListener

	decoded     atomic.Uint64
	dropped     atomic.Uint64
	reopens     atomic.Uint64
	decodeNanos atomic.Uint64
	generation  atomic.Uint64
	lastDecode  atomic.Int64
}

// PlayerOptions tune a VideoPlayer. Zero values select defaults.
type PlayerOptions struct {
	Open        OpenFunc
	FallbackFPS float64
	Clock       func() time.Time
	Logger      *slog.Logger
}

// OpenVideo opens path, decodes its first frame and returns a paused player.
func OpenVideo(path string, opts PlayerOptions) (*VideoPlayer, error) {
	p := &VideoPlayer{path: path, open: opts.Open, logger: opts.Logger, clock: opts.Clock, fps: opts.FallbackFPS}
	if p.open == nil {
		p.open = OpenVidio
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	if p.fps <= 0 {
		p.fps = defaultFPS
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.reopenLocked(); err != nil {
		return nil, err
	}
	if !p.readLocked() {
		p.dec.Close()
		return nil, fmt.Errorf("%w: %s", ErrEmptyStream, path)
	}
	if p.logger != nil {
		p.logger.Info("video opened", "path", path, "width", p.size.X, "height", p.size.Y, "fps", p.fps, "duration", p.duration)
	}
	return p, nil
}

func (p *VideoPlayer) reopenLocked() error {
	if p.dec != nil {
		p.dec.Close()
		p.dec = nil
		p.reopens.Add(1)
	}
	dec, err := p.open(p.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", p.path, err)
	}
	p.dec = dec
	if fps := dec.FPS(); fps > 0 && !math.IsInf(fps, 0) && !math.IsNaN(fps) {
		p.fps = fps
	}
	p.frames = dec.Frames()
	p.duration = dec.Duration()
	if p.duration <= 0 && p.frames > 0 {
		p.duration = float64(p.frames) / p.fps
	}
	p.size = image.Pt(dec.Width(), dec.Height())
	p.pos = -1
	p.generation.Add(1)
	return nil
}

// readLocked decodes the next frame into p.frame. It returns false at end of stream.
func (p *VideoPlayer) readLocked() bool {
	start := time.Now()
	if !p.dec.Read() {
		return false
	}
	buf := p.dec.FrameBuffer()
	w, h := p.size.X, p.size.Y
	if len(buf) < w*h*4 {
		p.dropped.Add(1)
		if p.logger != nil {
			p.logger.Warn("short frame buffer", "error", ErrShortFrame, "len", len(buf), "want", w*h*4)
		}
		p.pos++
		return true
	}
	if p.frame == nil || p.frame.Bounds().Dx() != w || p.frame.Bounds().Dy() != h {
		RecycleFrame(p.frame)
		p.frame = AcquireFrame(image.Rect(0, 0, w, h))
	}
	copy(p.frame.Pix, buf[:w*h*4])
	p.pos++
	p.decoded.Add(1)
	p.decodeNanos.Add(uint64(time.Since(start).Nanoseconds()))
	p.lastDecode.Store(time.Now().UnixNano())
	return true
}

// AddEndedListener registers l for end-of-stream notifications.
func (p *VideoPlayer) AddEndedListener(l EndedListener) {
	if p == nil || l == nil {
		return
	}
	p.mu.Lock()
	p.listeners = append(p.listeners, l)
	p.mu.Unlock()
}

// Advance decodes the frames due since playback started. It returns true when
// the visible frame changed. Reaching the end of the stream pauses playback
// and notifies ended listeners once.
func (p *VideoPlayer) Advance(now time.Time) bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	if !p.playing || p.dec == nil {
		p.mu.Unlock()
		return false
	}
	due := p.clockBase + int(now.Sub(p.clockStart).Seconds()*p.fps)
	changed := false
	endedNow := false
	for p.pos < due {
		if !p.readLocked() {
			p.ended = true
			p.playing = false
			endedNow = true
			break
		}
		changed = true
	}
	var ls []EndedListener
	if endedNow {
		ls = append(ls, p.listeners...)
	}
	p.mu.Unlock()
	if endedNow {
		if p.logger != nil {
			st := p.Stats()
			p.logger.Info("video ended", "path", p.path, "decoded", st.Decoded, "dropped", st.Dropped, "avg_decode_us", st.AvgDecodeMicros)
		}
		for _, l := range ls {
			l()
		}
	}
	return changed
}

// Playing reports whether playback is running.
func (p *VideoPlayer) Playing() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Ended reports whether the end of the stream has been reached.
func (p *VideoPlayer) Ended() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ended
}

// Position returns the timestamp of the visible frame in seconds.
func (p *VideoPlayer) Position() float64 {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pos <= 0 {
		return 0
	}
	return float64(p.pos) / p.fps
}

// Duration returns the stream duration in seconds, 0 when unknown.
func (p *VideoPlayer) Duration() float64 {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

// Size returns the intrinsic frame size.
func (p *VideoPlayer) Size() image.Point {
	if p == nil {
		return image.Point{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}

// FPS returns the frame rate used for pacing.
func (p *VideoPlayer) FPS() float64 {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fps
}

// Path returns the file the player was opened with.
func (p *VideoPlayer) Path() string {
	if p == nil {
		return ""
	}
	return p.path
}

// Play starts or resumes playback. Playing an ended video restarts it.
func (p *VideoPlayer) Play() error {
	if p == nil {
		return ErrNoVideo
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dec == nil {
		return ErrNoVideo
	}
	if p.ended {
		if err := p.seekLocked(0); err != nil {
			return err
		}
	}
	if p.playing {
		return nil
	}
	p.playing = true
	p.clockStart = p.clock()
	p.clockBase = p.pos
	return nil
}

// Pause stops playback on the visible frame.
func (p *VideoPlayer) Pause() {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
}

// Seek moves to the frame at seconds. Seeking clears the ended flag; a seek
// that runs past the last frame ends the stream and notifies ended listeners.
func (p *VideoPlayer) Seek(seconds float64) error {
	if p == nil {
		return ErrNoVideo
	}
	p.mu.Lock()
	if p.dec == nil {
		p.mu.Unlock()
		return ErrNoVideo
	}
	err := p.seekLocked(seconds)
	var ls []EndedListener
	if err == nil && p.ended {
		ls = append(ls, p.listeners...)
	}
	p.mu.Unlock()
	for _, l := range ls {
		l()
	}
	return err
}

func (p *VideoPlayer) seekLocked(seconds float64) error {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	target := int(math.Round(seconds * p.fps))
	if err := p.reopenLocked(); err != nil {
		return err
	}
	p.ended = false
	for p.pos < target {
		if !p.readLocked() {
			p.ended = true
			p.playing = false
			break
		}
	}
	if p.pos < 0 && !p.readLocked() {
		p.ended = true
		p.playing = false
	}
	p.clockStart = p.clock()
	p.clockBase = p.pos
	return nil
}

// LatestFrame returns the visible frame. The image is owned by the player and
// is overwritten by the next decode; copy it before retaining.
func (p *VideoPlayer) LatestFrame() FrameSnapshot {
	if p == nil {
		return FrameSnapshot{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	seq := uint64(0)
	if p.pos > 0 {
		seq = uint64(p.pos)
	}
	var at time.Time
	if ns := p.lastDecode.Load(); ns != 0 {
		at = time.Unix(0, ns)
	}
	return FrameSnapshot{Image: p.frame, DecodedAt: at, Sequence: seq, Generation: p.generation.Load()}
}

// CaptureFrame copies the visible frame into dst.
func (p *VideoPlayer) CaptureFrame(dst *image.RGBA) error {
	if p == nil || dst == nil {
		return ErrNoVideo
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.frame == nil {
		return ErrNoVideo
	}
	CopyFrame(dst, p.frame)
	return nil
}

// Stats returns decoder counters.
func (p *VideoPlayer) Stats() PlaybackStats {
	if p == nil {
		return PlaybackStats{}
	}
	decoded := p.decoded.Load()
	total := p.decodeNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if decoded > 0 && total > 0 {
		avg = time.Duration(total / decoded)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	var last time.Time
	if ns := p.lastDecode.Load(); ns != 0 {
		last = time.Unix(0, ns)
	}
	p.mu.Lock()
	seq := uint64(max(p.pos, 0))
	p.mu.Unlock()
	return PlaybackStats{
		Decoded:         decoded,
		Dropped:         p.dropped.Load(),
		Reopens:         p.reopens.Load(),
		AvgDecode:       avg,
		AvgDecodeMicros: avgMicros,
		LastDecode:      last,
		Sequence:        seq,
	}
}

// Close releases the decoder and the frame buffer.
func (p *VideoPlayer) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dec != nil {
		p.dec.Close()
		p.dec = nil
	}
	RecycleFrame(p.frame)
	p.frame = nil
	p.playing = false
}
