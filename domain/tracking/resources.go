package tracking

import (
	"image"
	"sync"

	"github.com/soocke/hue-tracker/domain/capture"
	"github.com/soocke/hue-tracker/domain/colormodel"
)

// resources are the per-loop image buffers. They are allocated when the loop
// starts and released exactly once when it stops.
type resources struct {
	frame *image.RGBA
	hsv   []uint8
	prob  *image.Gray
	hist  colormodel.Histogram

	once      sync.Once
	released  bool
	onRelease func()
}

func newResources(size image.Point, hist colormodel.Histogram, onRelease func()) *resources {
	r := &resources{hist: hist, onRelease: onRelease}
	r.frame = capture.AcquireFrame(image.Rect(0, 0, size.X, size.Y))
	r.fit(size)
	return r
}

// fit resizes the derived buffers to a frame of the given size.
func (r *resources) fit(size image.Point) {
	n := size.X * size.Y
	if cap(r.hsv) < 3*n {
		r.hsv = make([]uint8, 3*n)
	}
	r.hsv = r.hsv[:3*n]
	if r.prob == nil || r.prob.Bounds().Size() != size {
		r.prob = image.NewGray(image.Rect(0, 0, size.X, size.Y))
	}
}

// release frees the buffers. Only the first call has an effect; it reports
// whether this call performed the release.
func (r *resources) release() bool {
	did := false
	r.once.Do(func() {
		capture.RecycleFrame(r.frame)
		r.frame = nil
		r.hsv = nil
		r.prob = nil
		r.released = true
		did = true
		if r.onRelease != nil {
			r.onRelease()
		}
	})
	return did
}
