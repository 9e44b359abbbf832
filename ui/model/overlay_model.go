package model

import (
	"sync"

	"github.com/soocke/hue-tracker/domain/camshift"
	"github.com/soocke/hue-tracker/domain/marker"
)

// OverlayKind selects what the overlay should show next.
type OverlayKind int

const (
	OverlayClear OverlayKind = iota
	OverlayMarker
	OverlayBox
)

// OverlayUpdate is a pending overlay change.
type OverlayUpdate struct {
	Kind   OverlayKind
	Marker marker.Rect
	Box    camshift.Box
}

// OverlayModel holds the latest requested overlay content until the next
// render tick takes it. Writers may run under other locks (the marker editor
// notifies while the session holds its lock), so it only records.
type OverlayModel struct {
	mu      sync.Mutex
	pending OverlayUpdate
	dirty   bool
}

func NewOverlayModel() *OverlayModel { return &OverlayModel{} }

// SetMarker requests the marker outline.
func (m *OverlayModel) SetMarker(r marker.Rect) {
	m.set(OverlayUpdate{Kind: OverlayMarker, Marker: r})
}

// SetBox requests the tracking box.
func (m *OverlayModel) SetBox(b camshift.Box) {
	m.set(OverlayUpdate{Kind: OverlayBox, Box: b})
}

// Clear requests an empty overlay.
func (m *OverlayModel) Clear() { m.set(OverlayUpdate{Kind: OverlayClear}) }

func (m *OverlayModel) set(u OverlayUpdate) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.pending = u
	m.dirty = true
	m.mu.Unlock()
}

// Take returns the latest pending update and whether there was one.
func (m *OverlayModel) Take() (OverlayUpdate, bool) {
	if m == nil {
		return OverlayUpdate{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.dirty {
		return OverlayUpdate{}, false
	}
	m.dirty = false
	return m.pending, true
}
