package capture

import (
	"image"
	"sync"

	"github.com/disintegration/imaging"
)

// Display keeps a copy of the current video frame scaled to the on-screen
// size. Marker and track coordinates live in this space.
type Display struct {
	mu    sync.Mutex
	size  image.Point
	frame *image.RGBA
	seq   uint64
	gen   uint64
	valid bool
}

// NewDisplay returns a display targeting size.
func NewDisplay(size image.Point) *Display { return &Display{size: size} }

// SetSize changes the on-screen size; the next Update rescales.
func (d *Display) SetSize(size image.Point) {
	d.mu.Lock()
	if d.size != size {
		d.size = size
		d.valid = false
	}
	d.mu.Unlock()
}

// Size returns the on-screen size.
func (d *Display) Size() image.Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.size
}

// Update rescales snap when it differs from the frame already held.
// It returns true when the displayed frame changed.
func (d *Display) Update(snap FrameSnapshot) bool {
	if snap.Image == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.valid && snap.Sequence == d.seq && snap.Generation == d.gen {
		return false
	}
	if d.size.X <= 0 || d.size.Y <= 0 {
		return false
	}
	src := snap.Image
	if src.Bounds().Dx() == d.size.X && src.Bounds().Dy() == d.size.Y {
		d.frame = CopyFrame(d.frame, src)
	} else {
		// Decoded frames are opaque so NRGBA and RGBA pixel layouts coincide.
		n := imaging.Resize(src, d.size.X, d.size.Y, imaging.Linear)
		d.frame = CopyFrame(d.frame, &image.RGBA{Pix: n.Pix, Stride: n.Stride, Rect: n.Rect})
	}
	d.seq, d.gen, d.valid = snap.Sequence, snap.Generation, true
	return true
}

// Frame returns the scaled frame. It is overwritten by the next Update.
func (d *Display) Frame() *image.RGBA {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame
}

// CaptureFrame copies the scaled frame into dst.
func (d *Display) CaptureFrame(dst *image.RGBA) error {
	if dst == nil {
		return ErrNoVideo
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.frame == nil {
		return ErrNoVideo
	}
	CopyFrame(dst, d.frame)
	return nil
}

// Reset drops the held frame.
func (d *Display) Reset() {
	d.mu.Lock()
	RecycleFrame(d.frame)
	d.frame = nil
	d.valid = false
	d.mu.Unlock()
}
