package capture

import (
	"image"
	"time"
)

// FrameSnapshot carries the latest decoded frame and metadata.
// Sequence is the 0-based frame index within the stream.
type FrameSnapshot struct {
	Image      *image.RGBA
	DecodedAt  time.Time
	Sequence   uint64
	Generation uint64
}

// PlaybackStats summarises decoder behaviour for instrumentation.
type PlaybackStats struct {
	Decoded         uint64
	Dropped         uint64
	Reopens         uint64
	AvgDecode       time.Duration
	AvgDecodeMicros float64
	LastDecode      time.Time
	Sequence        uint64
}
