package theme

// Centralized theming for the tracker UI. InitStyles activates a base theme
// and configures the semantic widget styles used by the views.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff"
	ColorFile      = "#74c0fc" // new file
	ColorReset     = "#ffd43b" // reset mark
	ColorStart     = "#63e6be" // start tracking
	ColorMarker    = "#39FF14" // overlay stroke
	ColorAccent    = "#10b981"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg   string
	Surface string
	File    string
	Reset   string
	Start   string
	Accent  string
	Text    string
}

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot {
	if darkMode {
		return PaletteSnapshot{
			AppBg:   "#0f172a",
			Surface: "#1e293b",
			File:    "#3b82f6",
			Reset:   "#eab308",
			Start:   "#10b981",
			Accent:  "#10b981",
			Text:    "#f1f5f9",
		}
	}
	return PaletteSnapshot{
		AppBg:   ColorBg,
		Surface: ColorSurface,
		File:    ColorFile,
		Reset:   ColorReset,
		Start:   ColorStart,
		Accent:  ColorAccent,
		Text:    ColorText,
	}
}

// style names used with Style("start.TButton") etc.
const (
	StyleFileButton  = "file.TButton"
	StyleStartButton = "start.TButton"
	StyleResetButton = "reset.TButton"
	StyleHeadLabel   = "head.TLabel"
	StyleStateLabel  = "state.TLabel"
)

// internal flag for current mode
var darkMode bool

// InitStyles (re)applies styles for the current darkMode value.
func InitStyles() { applyStyles(CurrentPalette()) }

// SetDark toggles dark mode and reapplies styles. Returns new mode value.
func SetDark(dark bool) bool {
	darkMode = dark
	applyStyles(CurrentPalette())
	return darkMode
}

// IsDark reports current mode.
func IsDark() bool { return darkMode }

func applyStyles(p PaletteSnapshot) {
	_ = ActivateTheme("azure light") // baseline metrics
	App.Configure(Background(p.AppBg))

	for name, bg := range map[string]string{
		StyleFileButton:  p.File,
		StyleStartButton: p.Start,
		StyleResetButton: p.Reset,
	} {
		StyleConfigure(name,
			Background(bg),
			Foreground(ColorText),
			Padding("4p 3p"),
			Borderwidth(1),
			Relief("ridge"),
		)
	}
	StyleConfigure(StyleHeadLabel,
		Foreground(p.Text),
		Background(p.Surface),
		Font("helvetica", 14, "bold"),
		Padding("4p 3p"),
	)
	StyleConfigure(StyleStateLabel,
		Foreground("white"),
		Background(p.Accent),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
}
