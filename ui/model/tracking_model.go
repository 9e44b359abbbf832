package model

import (
	"sync/atomic"
)

// TrackingModel tracks whether a tracking run is active. The zero value is inactive and usable.
// Concurrency-safe via atomic Bool because state listeners and presenter ticks may race.
type TrackingModel struct{ active atomic.Bool }

// Active reports whether tracking is currently running.
func (m *TrackingModel) Active() bool {
	if m == nil {
		return false
	}
	return m.active.Load()
}

// SetActive stores the active flag.
func (m *TrackingModel) SetActive(b bool) {
	if m == nil {
		return
	}
	m.active.Store(b)
}
