package app

import (
	"image"
	"log/slog"
	"path/filepath"

	"github.com/soocke/hue-tracker/config"
	"github.com/soocke/hue-tracker/domain/camshift"
	"github.com/soocke/hue-tracker/domain/capture"
	"github.com/soocke/hue-tracker/domain/marker"
	"github.com/soocke/hue-tracker/domain/overlay"
	"github.com/soocke/hue-tracker/domain/tracking"
	"github.com/soocke/hue-tracker/ui/model"
	"github.com/soocke/hue-tracker/ui/presenter"
	"github.com/soocke/hue-tracker/ui/view"
)

var _ presenter.Video = (*capture.VideoPlayer)(nil)

// AppContainer assembles models, domain services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	LogLevel   *slog.LevelVar

	Clock    *presenter.FrameClock
	Editor   *marker.Editor
	Session  *tracking.Session
	Display  *capture.Display
	Renderer *overlay.Renderer
	Overlay  *model.OverlayModel
	Tracking *model.TrackingModel
	Stats    *model.SessionModel
	RootView *view.RootView
	UI       view.UI

	// Presenters
	Tracker          *presenter.TrackerPresenter
	StatePresenter   *presenter.StatePresenter
	Playback         *presenter.PlaybackPresenter
	SessionPresenter *presenter.SessionPresenter
	Loop             *presenter.Loop
}

// BuildContainer constructs the UI-independent components. Presenters are
// wired by Wire once the view exists.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger, level *slog.LevelVar) *AppContainer {
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger, LogLevel: level}
	c.Clock = &presenter.FrameClock{}
	c.Editor = marker.NewEditor()
	c.Display = capture.NewDisplay(image.Point{})
	c.Renderer = overlay.NewRenderer(image.Point{}, overlay.Style{Color: cfg.MarkerColor, Width: cfg.MarkerWidth})
	c.Overlay = model.NewOverlayModel()
	c.Tracking = &model.TrackingModel{}
	c.Stats = model.NewSessionModel()
	c.Session = tracking.NewSession(tracking.SessionConfig{
		Editor:    c.Editor,
		Scheduler: c.Clock,
		Criteria:  camshift.DefaultCriteria,
		OnBox:     func(b camshift.Box) { c.Tracker.OnBox(b) },
		Logger:    logger.With("component", "tracking"),
	})
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView
	return c
}

// OpenVideo opens path with the configured decoder options.
func (c *AppContainer) OpenVideo(path string) (presenter.Video, error) {
	p, err := capture.OpenVideo(path, capture.PlayerOptions{
		FallbackFPS: c.Config.FallbackFPS,
		Logger:      c.Logger.With("component", "video"),
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Wire creates the presenters against the built view and registers the
// session and marker listeners. schedule re-arms the UI tick.
func (c *AppContainer) Wire(schedule func()) {
	c.Tracker = presenter.NewTrackerPresenter(presenter.TrackerDeps{
		Session:      c.Session,
		Display:      c.Display,
		Renderer:     c.Renderer,
		Overlay:      c.Overlay,
		View:         c.UI,
		Notify:       c.UI,
		Open:         c.OpenVideo,
		Logger:       c.Logger,
		DisplayWidth: c.Config.DisplayWidth,
	})
	c.StatePresenter = presenter.NewStatePresenter(c.Session, c.UI)
	c.Playback = presenter.NewPlaybackPresenter(c.Session, c.UI, c.UI, c.Logger)
	c.SessionPresenter = presenter.NewSessionPresenter(c.Stats, c.Tracking, c.UI)
	c.Loop = presenter.NewLoop(c.Tracker, c.Clock, c.StatePresenter, c.Playback, c.SessionPresenter, schedule)

	c.Editor.AddListener(c.Tracker.OnMarkerChanged)
	c.Session.AddListener(c.Tracker.OnState)
	c.Session.AddListener(c.StatePresenter.OnState)
	c.Session.AddListener(func(prev, next tracking.State) {
		c.Tracking.SetActive(next == tracking.StateTracking)
		c.UI.SetConfigEditable(next != tracking.StateTracking)
		c.Logger.Info("tracking state", "from", prev.String(), "to", next.String())
	})
	c.Tracker.OnOpen(func(path string) {
		c.Config.LastDir = filepath.Dir(path)
		c.SessionPresenter.Reset()
	})
}

// ApplyConfig pushes edited settings into the running components.
func (c *AppContainer) ApplyConfig(cfg *config.Config) {
	c.Renderer.SetStyle(overlay.Style{Color: cfg.MarkerColor, Width: cfg.MarkerWidth})
	if c.Tracker != nil {
		c.Tracker.SetDisplayWidth(cfg.DisplayWidth)
	}
	if c.LogLevel != nil {
		c.LogLevel.Set(cfg.Level())
	}
}

// Close releases the session, the loaded video and saves the config.
func (c *AppContainer) Close() {
	c.Session.Close()
	c.Tracker.Close()
	if c.ConfigPath == "" {
		return
	}
	if err := c.Config.Save(c.ConfigPath); err != nil {
		c.Logger.Error("config save failed", "path", c.ConfigPath, "error", err)
	}
}
