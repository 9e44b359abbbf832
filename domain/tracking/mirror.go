package tracking

import "sync/atomic"

// Mirror holds the live flags the loop re-reads at the top of every
// iteration. Writers are the session and playback callbacks.
type Mirror struct {
	ended       atomic.Bool
	markerValid atomic.Bool
}

func (m *Mirror) SetEnded(v bool)       { m.ended.Store(v) }
func (m *Mirror) Ended() bool           { return m.ended.Load() }
func (m *Mirror) SetMarkerValid(v bool) { m.markerValid.Store(v) }
func (m *Mirror) MarkerValid() bool     { return m.markerValid.Load() }
