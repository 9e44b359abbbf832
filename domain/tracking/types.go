package tracking

import (
	"errors"

	"github.com/soocke/hue-tracker/domain/camshift"
)

// State enumerates the tracking session lifecycle.
type State int

const (
	StateIdle State = iota
	StateMarking
	StateMarked
	StateTracking
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMarking:
		return "marking"
	case StateMarked:
		return "marked"
	case StateTracking:
		return "tracking"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// StateListener is called after each successful state transition.
type StateListener func(prev, next State)

// BoxSink receives the box produced by each successful iteration.
type BoxSink func(camshift.Box)

// Scheduler defers work to the next display refresh.
type Scheduler interface {
	RequestFrame(fn func())
}

// StopReason explains why a loop stopped on its own.
type StopReason int

const (
	StopEnded StopReason = iota
	StopMarkerInvalid
	StopFailed
)

func (r StopReason) String() string {
	switch r {
	case StopEnded:
		return "ended"
	case StopMarkerInvalid:
		return "marker-invalid"
	case StopFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidTransition = errors.New("tracking: invalid transition")
	ErrNoPlayback        = errors.New("tracking: no video loaded")
	ErrIterationPanic    = errors.New("tracking: iteration panic")
)
