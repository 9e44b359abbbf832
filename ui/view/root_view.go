package view

import (
	"image"
	"log/slog"
	"strconv"
	"time"

	"github.com/soocke/hue-tracker/config"
	"github.com/soocke/hue-tracker/ui/presenter"
	"github.com/soocke/hue-tracker/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are invoked on user actions.
type Handlers struct {
	NewFile    func()
	TogglePlay func()
	Seek       func(fraction float64)
	Start      func()
	Reset      func()
	Exit       func()
	Pointer    PointerHandlers
	OnApply    func(*config.Config)
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Session     SessionStats
	ConfigPanel ConfigPanel
	Video       VideoView
	Toast       Toast

	// Widgets
	HeadLabel  *TLabelWidget
	StateLabel *TLabelWidget
	TimeLabel  *LabelWidget
	seekScale  *TScaleWidget
	seeking    bool
	playBtn    *TButtonWidget
	startBtn   *TButtonWidget
	resetBtn   *TButtonWidget
	btnFrame   *FrameWidget
}

// UI abstracts the view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	presenter.TrackerView
	presenter.StateView
	presenter.PlaybackView
	presenter.SessionView
	presenter.Notifier
	SetConfigEditable(enabled bool)
}

var _ UI = (*RootView)(nil)

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	// Row 0: prompt
	rv.HeadLabel = TLabel(Style(theme.StyleHeadLabel), Txt(presenter.HeadNoVideo))
	Grid(rv.HeadLabel, Row(0), Column(0), Columnspan(5), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	// Row 1: state label, tracking stats, buttons
	rv.StateLabel = TLabel(Style(theme.StyleStateLabel), Txt("State: Idle"))
	Grid(rv.StateLabel, Row(1), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	stats := Frame()
	Grid(stats, Row(1), Column(1), Columnspan(2), Sticky("w"), Padx("0.3m"))
	rv.Session = NewSessionStats(stats, 0, 0)

	rv.btnFrame = Frame()
	Grid(rv.btnFrame, Row(1), Column(3), Columnspan(2), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	newBtn := TButton(Style(theme.StyleFileButton), Txt("New File"), Command(h.NewFile))
	Grid(newBtn, In(rv.btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.playBtn = TButton(Txt("Play"), Command(h.TogglePlay))
	Grid(rv.playBtn, In(rv.btnFrame), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.startBtn = TButton(Style(theme.StyleStartButton), Txt("Start Tracking"), Command(h.Start))
	rv.resetBtn = TButton(Style(theme.StyleResetButton), Txt("Reset Mark"), Command(h.Reset))
	exitBtn := TButton(Txt("Exit"), Command(h.Exit))
	Grid(exitBtn, In(rv.btnFrame), Row(0), Column(4), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Row 2: video and colour model patch
	rv.Video = NewVideoView(2, h.Pointer)

	// Row 3: playback position
	rv.TimeLabel = Label(Txt("00:00:00 / 00:00:00"), Anchor("w"))
	Grid(rv.TimeLabel, Row(3), Column(0), Sticky("w"), Padx("0.4m"))
	rv.seekScale = TScale(From(0), To(1), Orient("horizontal"), Value(0))
	Grid(rv.seekScale, Row(3), Column(1), Columnspan(4), Sticky("we"), Padx("0.4m"))
	Bind(rv.seekScale, "<ButtonPress-1>", Command(func() { rv.seeking = true }))
	Bind(rv.seekScale, "<ButtonRelease-1>", Command(func() {
		rv.seeking = false
		f, err := strconv.ParseFloat(rv.seekScale.Get(), 64)
		if err != nil || h.Seek == nil {
			return
		}
		h.Seek(f)
	}))

	// Settings rows
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, h.OnApply)
	rv.ConfigPanel.Build(4)

	toastFor := 3 * time.Second
	if rv.cfg != nil && rv.cfg.ToastSeconds > 0 {
		toastFor = time.Duration(rv.cfg.ToastSeconds) * time.Second
	}
	rv.Toast = NewToast(toastFor, rv.logger)
}

// SetStateLabel updates the state label text.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

// SetHeadMessage updates the prompt above the video.
func (rv *RootView) SetHeadMessage(text string) {
	if rv != nil && rv.HeadLabel != nil {
		rv.HeadLabel.Configure(Txt(text))
	}
}

// SetControls shows or hides the tracking buttons.
func (rv *RootView) SetControls(c presenter.Controls) {
	if rv == nil || rv.startBtn == nil || rv.resetBtn == nil {
		return
	}
	if c.ResetVisible {
		Grid(rv.resetBtn, In(rv.btnFrame), Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	} else {
		GridRemove(rv.resetBtn.Window)
	}
	if c.StartVisible {
		rv.startBtn.Configure(Txt(c.StartLabel))
		Grid(rv.startBtn, In(rv.btnFrame), Row(0), Column(3), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	} else {
		GridRemove(rv.startBtn.Window)
	}
}

// SetPlayLabel updates the play/pause toggle caption.
func (rv *RootView) SetPlayLabel(text string) {
	if rv != nil && rv.playBtn != nil {
		rv.playBtn.Configure(Txt(text))
	}
}

// SetTime updates the playback position label.
func (rv *RootView) SetTime(text string) {
	if rv != nil && rv.TimeLabel != nil {
		rv.TimeLabel.Configure(Txt(text))
	}
}

// SetSeek moves the seekbar unless the user is dragging it.
func (rv *RootView) SetSeek(fraction float64) {
	if rv == nil || rv.seekScale == nil || rv.seeking {
		return
	}
	rv.seekScale.Configure(Value(fraction))
}

// SetConfigEditable toggles settings editability.
func (rv *RootView) SetConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}

// SetSession updates the run and accumulated tracking durations.
func (rv *RootView) SetSession(run, total time.Duration) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.SetRun(run)
	rv.Session.SetTotal(total)
}

// ShowToast displays msg for the configured duration.
func (rv *RootView) ShowToast(msg string) {
	if rv != nil && rv.Toast != nil {
		rv.Toast.Show(msg)
	}
}

// --- TrackerPresenter view contract methods ---

func (rv *RootView) SetVideoSize(size image.Point) {
	if rv != nil && rv.Video != nil {
		rv.Video.SetVideoSize(size)
	}
}

func (rv *RootView) UpdateFrame(img image.Image) {
	if rv != nil && rv.Video != nil {
		rv.Video.UpdateFrame(img)
	}
}

func (rv *RootView) UpdateModel(img image.Image) {
	if rv != nil && rv.Video != nil {
		rv.Video.UpdateModel(img)
	}
}

func (rv *RootView) ResetVideo() {
	if rv != nil && rv.Video != nil {
		rv.Video.ResetVideo()
	}
}
