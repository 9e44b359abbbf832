package capture

import "image"

// Playback is the media-element view of the loaded video consumed by the
// tracking session and presenters. Times are in seconds.
type Playback interface {
	Playing() bool
	Ended() bool
	Position() float64
	Duration() float64
	Play() error
	Pause()
	Seek(seconds float64) error
}

// FrameSource copies the frame currently on screen into dst.
// dst is resized to the source dimensions when they differ.
type FrameSource interface {
	CaptureFrame(dst *image.RGBA) error
}

// Decoder is the subset of a video decoder the player needs.
type Decoder interface {
	Width() int
	Height() int
	FPS() float64
	Frames() int
	Duration() float64
	Read() bool
	FrameBuffer() []byte
	Close()
}

// OpenFunc opens a decoder for path.
type OpenFunc func(path string) (Decoder, error)

// EndedListener is invoked once each time playback reaches the end of the stream.
type EndedListener func()
