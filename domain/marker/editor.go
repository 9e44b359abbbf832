package marker

import "sync"

// ChangeListener is called whenever the marker's End point changes.
type ChangeListener func(Rect)

// Editor turns a pointer drag gesture into a marker rectangle.
// All methods are safe for concurrent use; listeners run without the lock held.
type Editor struct {
	mu        sync.Mutex
	rect      Rect
	drawing   bool
	valid     bool
	listeners []ChangeListener
}

// NewEditor returns an editor with an empty (invalid) marker.
func NewEditor() *Editor { return &Editor{} }

// AddListener registers l for End changes.
func (e *Editor) AddListener(l ChangeListener) {
	if e == nil || l == nil {
		return
	}
	e.mu.Lock()
	e.listeners = append(e.listeners, l)
	e.mu.Unlock()
}

// PointerDown starts a new gesture at p. It is ignored while the video is playing.
// Returns true when a gesture was started.
func (e *Editor) PointerDown(p Point, playing bool) bool {
	if e == nil || playing {
		return false
	}
	e.mu.Lock()
	e.rect = Rect{Start: p, End: p}
	e.drawing = true
	e.valid = false
	r := e.rect
	e.mu.Unlock()
	e.notify(r)
	return true
}

// PointerMove updates End while a gesture is in progress.
func (e *Editor) PointerMove(p Point) bool {
	if e == nil {
		return false
	}
	e.mu.Lock()
	if !e.drawing {
		e.mu.Unlock()
		return false
	}
	changed := e.rect.End != p
	e.rect.End = p
	r := e.rect
	e.mu.Unlock()
	if changed {
		e.notify(r)
	}
	return true
}

// PointerUp ends the gesture at p and re-evaluates validity.
// It returns the resulting validity; false when no gesture was active.
func (e *Editor) PointerUp(p Point) bool {
	if e == nil {
		return false
	}
	e.mu.Lock()
	if !e.drawing {
		e.mu.Unlock()
		return false
	}
	changed := e.rect.End != p
	e.rect.End = p
	e.drawing = false
	e.valid = e.rect.Valid()
	r, valid := e.rect, e.valid
	e.mu.Unlock()
	if changed {
		e.notify(r)
	}
	return valid
}

// Reset collapses the marker onto its start point and clears validity.
func (e *Editor) Reset() {
	if e == nil {
		return
	}
	e.mu.Lock()
	changed := e.rect.End != e.rect.Start
	e.rect = e.rect.Collapse()
	e.drawing = false
	e.valid = false
	r := e.rect
	e.mu.Unlock()
	if changed {
		e.notify(r)
	}
}

// Clear discards the marker entirely, including its start point.
func (e *Editor) Clear() {
	if e == nil {
		return
	}
	e.mu.Lock()
	e.rect = Rect{}
	e.drawing = false
	e.valid = false
	e.mu.Unlock()
	e.notify(Rect{})
}

// Rect returns the current marker in gesture order.
func (e *Editor) Rect() Rect {
	if e == nil {
		return Rect{}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rect
}

// Valid reports the validity computed at the last pointer-up.
func (e *Editor) Valid() bool {
	if e == nil {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.valid
}

// Drawing reports whether a gesture is in progress.
func (e *Editor) Drawing() bool {
	if e == nil {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.drawing
}

func (e *Editor) notify(r Rect) {
	e.mu.Lock()
	ls := append([]ChangeListener(nil), e.listeners...)
	e.mu.Unlock()
	for _, l := range ls {
		l(r)
	}
}
