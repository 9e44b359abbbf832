package view

import (
	"fmt"
	"image"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// Toast shows a short-lived error message in a small window over the
// bottom-left corner of the main window.
type Toast interface {
	Show(msg string)
	Close()
}

type toast struct {
	logger   *slog.Logger
	duration time.Duration
	win      *ToplevelWidget
	label    *LabelWidget
	afterID  string
}

// NewToast creates a toast manager dismissing messages after d.
func NewToast(d time.Duration, logger *slog.Logger) Toast {
	if d <= 0 {
		d = 3 * time.Second
	}
	return &toast{logger: logger, duration: d}
}

func (v *toast) Show(msg string) {
	if v.win == nil {
		win := App.Toplevel(Borderwidth(1), Background("#dc2626"))
		win.WmTitle("Error")
		WmAttributes(win.Window, "-topmost", 1)
		v.win = win
		v.label = win.Label(Txt(msg), Foreground("white"), Background("#dc2626"), Padx("3m"), Pady("2m"))
		Grid(v.label, Row(0), Column(0), Sticky("we"))
	} else if v.label != nil {
		v.label.Configure(Txt(msg))
	}
	if rect, ok := parseGeometry(WmGeometry(App)); ok {
		WmGeometry(v.win.Window, fmt.Sprintf("+%d+%d", rect.Min.X+16, rect.Max.Y-64))
	}
	if v.afterID != "" {
		TclAfterCancel(v.afterID)
	}
	v.afterID = TclAfter(v.duration, v.dismiss)
	if v.logger != nil {
		v.logger.Debug("toast shown", "message", msg)
	}
}

func (v *toast) dismiss() {
	v.afterID = ""
	v.destroy()
}

func (v *toast) Close() {
	if v.afterID != "" {
		TclAfterCancel(v.afterID)
		v.afterID = ""
	}
	v.destroy()
}

func (v *toast) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
		v.label = nil
	}
}

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y"
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// parseGeometry parses a Tk geometry string and returns the corresponding rectangle.
func parseGeometry(g string) (image.Rectangle, bool) {
	g = strings.TrimSpace(g)
	m := geomRe.FindStringSubmatch(g)
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}
