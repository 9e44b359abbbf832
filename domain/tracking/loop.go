package tracking

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/soocke/hue-tracker/domain/camshift"
	"github.com/soocke/hue-tracker/domain/capture"
	"github.com/soocke/hue-tracker/domain/colormodel"
)

// LoopConfig wires a tracking loop to its collaborators. OnStop is called
// once when the loop stops on its own; it is not called for Cancel.
type LoopConfig struct {
	Source    capture.FrameSource
	Scheduler Scheduler
	Mirror    *Mirror
	Histogram colormodel.Histogram
	Window    camshift.Window
	Criteria  camshift.Criteria
	FrameSize image.Point
	OnBox     BoxSink
	OnStop    func(*Loop, StopReason, error)
	OnRelease func()
	Logger    *slog.Logger
}

// Loop is the self-rescheduling per-frame tracking unit. Each iteration runs
// on the scheduler and schedules the next one; it never blocks.
type Loop struct {
	id         uuid.UUID
	cfg        LoopConfig
	res        *resources
	window     camshift.Window
	done       atomic.Bool
	cancelled  atomic.Bool
	iterations atomic.Uint64
	logger     *slog.Logger
}

// StartLoop allocates the loop buffers and schedules the first iteration.
func StartLoop(cfg LoopConfig) (*Loop, error) {
	if cfg.Source == nil || cfg.Scheduler == nil || cfg.Mirror == nil {
		return nil, errors.New("tracking: loop requires source, scheduler and mirror")
	}
	if cfg.Window.Empty() {
		return nil, camshift.ErrDegenerateWindow
	}
	if cfg.Criteria.MaxIter <= 0 {
		cfg.Criteria = camshift.DefaultCriteria
	}
	l := &Loop{id: uuid.New(), cfg: cfg, window: cfg.Window}
	if cfg.Logger != nil {
		l.logger = cfg.Logger.With("loop", l.id.String())
	}
	l.res = newResources(cfg.FrameSize, cfg.Histogram, cfg.OnRelease)
	if l.logger != nil {
		l.logger.Info("tracking loop started", "window", fmt.Sprintf("%+v", cfg.Window), "frame", cfg.FrameSize.String())
	}
	cfg.Scheduler.RequestFrame(l.iterate)
	return l, nil
}

// ID identifies the loop in logs.
func (l *Loop) ID() uuid.UUID { return l.id }

// Window returns the search window carried to the next iteration.
func (l *Loop) Window() camshift.Window { return l.window }

// Iterations returns the number of completed iterations.
func (l *Loop) Iterations() uint64 { return l.iterations.Load() }

// Done reports whether the loop has stopped or been cancelled.
func (l *Loop) Done() bool { return l.done.Load() || l.cancelled.Load() }

// Released reports whether the loop buffers have been released.
func (l *Loop) Released() bool { return l.res.released }

// Cancel stops the loop from outside. A live loop always has one iteration
// scheduled; that iteration's guard sees the flag and releases the buffers.
func (l *Loop) Cancel() {
	if l == nil || l.done.Load() || !l.cancelled.CompareAndSwap(false, true) {
		return
	}
	if l.logger != nil {
		l.logger.Info("tracking loop cancelled", "iterations", l.iterations.Load())
	}
}

func (l *Loop) iterate() {
	if l.done.Load() {
		return
	}
	if l.cancelled.Load() {
		if l.done.CompareAndSwap(false, true) {
			l.res.release()
		}
		return
	}
	defer func() {
		if r := recover(); r != nil {
			l.finish(StopFailed, fmt.Errorf("%w: %v", ErrIterationPanic, r))
		}
	}()
	if l.cfg.Mirror.Ended() {
		l.finish(StopEnded, nil)
		return
	}
	if !l.cfg.Mirror.MarkerValid() {
		l.finish(StopMarkerInvalid, nil)
		return
	}
	box, err := l.step()
	if err != nil {
		l.finish(StopFailed, err)
		return
	}
	if l.cfg.OnBox != nil {
		l.cfg.OnBox(box)
	}
	if l.done.Load() {
		return
	}
	// a cancel from OnBox is picked up by the next guard
	l.cfg.Scheduler.RequestFrame(l.iterate)
}

// step runs capture, HSV conversion, back-projection and CamShift.
func (l *Loop) step() (camshift.Box, error) {
	r := l.res
	if err := l.cfg.Source.CaptureFrame(r.frame); err != nil {
		return camshift.Box{}, fmt.Errorf("capture frame: %w", err)
	}
	r.fit(r.frame.Bounds().Size())
	if err := colormodel.ConvertHSV(r.hsv, r.frame); err != nil {
		return camshift.Box{}, fmt.Errorf("convert hsv: %w", err)
	}
	if err := colormodel.BackProject(r.prob, r.hsv, &r.hist); err != nil {
		return camshift.Box{}, fmt.Errorf("back-project: %w", err)
	}
	box, win, err := camshift.CamShift(r.prob, l.window, l.cfg.Criteria)
	if err != nil {
		return camshift.Box{}, fmt.Errorf("camshift: %w", err)
	}
	l.window = win
	l.iterations.Add(1)
	return box, nil
}

func (l *Loop) finish(reason StopReason, err error) {
	if !l.done.CompareAndSwap(false, true) {
		return
	}
	l.res.release()
	if l.logger != nil {
		if err != nil {
			l.logger.Error("tracking loop failed", "error", err, "iterations", l.iterations.Load())
		} else {
			l.logger.Info("tracking loop stopped", "reason", reason.String(), "iterations", l.iterations.Load())
		}
	}
	if l.cfg.OnStop != nil {
		l.cfg.OnStop(l, reason, err)
	}
}
