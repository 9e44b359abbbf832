package app

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/hue-tracker/ui/theme"
	"github.com/soocke/hue-tracker/ui/view"
)

const (
	// tick is the display refresh; tracking iterations run once per tick.
	tick = 33 * time.Millisecond
)

var videoFileTypes = []FileType{
	{TypeName: "Video", Extensions: []string{".mp4", ".m4v", ".mov", ".webm", ".mkv", ".avi"}},
	{TypeName: "All files", Extensions: []string{"*"}},
}

type app struct {
	c       *AppContainer
	title   string
	width   int
	height  int
	afterID string
}

func NewApp(title string, width, height int, c *AppContainer) *app {
	return &app{c: c, title: title, width: width, height: height}
}

// Start builds the window, optionally opens initialPath and runs the Tk
// event loop until the window closes.
func (a *app) Start(initialPath string) {
	App.WmTitle(a.title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", a.width, a.height))
	theme.InitStyles()

	a.c.RootView.Build(view.Handlers{
		NewFile:    a.newFile,
		TogglePlay: func() { a.c.Playback.Toggle() },
		Seek:       func(f float64) { a.c.Playback.Seek(f) },
		Start:      func() { a.c.Tracker.StartTracking() },
		Reset:      func() { a.c.Tracker.ResetMark() },
		Exit:       a.exitHandler,
		Pointer: view.PointerHandlers{
			Down: func(x, y int) { a.c.Tracker.PointerDown(x, y) },
			Move: func(x, y int) { a.c.Tracker.PointerMove(x, y) },
			Up:   func(x, y int) { a.c.Tracker.PointerUp(x, y) },
		},
		OnApply: a.c.ApplyConfig,
	})
	a.c.Wire(a.scheduleUpdate)

	if initialPath != "" {
		_ = a.c.Tracker.OpenFiles([]string{initialPath})
	}

	// Kick off update loop.
	a.scheduleUpdate()

	App.Wait()
}

// newFile asks for a video. Multiple selection is allowed so that it can be
// rejected with a message instead of silently picking one.
func (a *app) newFile() {
	opts := []Opt{Title("Open video"), Multiple(true), Filetypes(videoFileTypes)}
	if dir := a.c.Config.LastDir; dir != "" {
		opts = append(opts, Initialdir(dir))
	}
	_ = a.c.Tracker.OpenFiles(GetOpenFile(opts...))
}

func (a *app) exitHandler() {
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	if a.c.RootView.Toast != nil {
		a.c.RootView.Toast.Close()
	}
	a.c.Close()
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}
