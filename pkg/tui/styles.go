// Package tui implements the terminal presenter: paradigm menu, architecture
// map, file detail and the two-pane walkthrough, rendered as a Bubble Tea app.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
)

// Glyphs convey meaning without relying on color alone.
const (
	GlyphActive   = "▌"
	GlyphCursor   = "▸"
	GlyphWarning  = "⚠"
	GlyphClose    = "x"
	GlyphSupport  = "◌"
	GlyphSpecific = "●"
)

// Palette adapts to terminal capabilities via lipgloss.
var (
	colorGreen   = lipgloss.Color("42")
	colorRed     = lipgloss.Color("196")
	colorYellow  = lipgloss.Color("214")
	colorBlue    = lipgloss.Color("39")
	colorCyan    = lipgloss.Color("51")
	colorDim     = lipgloss.Color("240")
	colorWhite   = lipgloss.Color("255")
	colorMagenta = lipgloss.Color("201")
)

// themeColors maps catalogue color tags to terminal colors. Tags only ever
// select styles.
var themeColors = map[catalogue.Color]lipgloss.Color{
	catalogue.ColorBlue:    colorBlue,
	catalogue.ColorPurple:  lipgloss.Color("135"),
	catalogue.ColorEmerald: colorGreen,
	catalogue.ColorRose:    lipgloss.Color("204"),
	catalogue.ColorAmber:   colorYellow,
	catalogue.ColorSlate:   lipgloss.Color("245"),
	catalogue.ColorCyan:    colorCyan,
}

func themeColor(c catalogue.Color) lipgloss.Color {
	if tc, ok := themeColors[c]; ok {
		return tc
	}
	return colorWhite
}

var iconGlyphs = map[catalogue.Icon]string{
	catalogue.IconCode:     "⟨⟩",
	catalogue.IconBox:      "▣",
	catalogue.IconBranch:   "⑂",
	catalogue.IconCPU:      "◈",
	catalogue.IconTerminal: "▶",
	catalogue.IconDatabase: "≣",
	catalogue.IconSettings: "⚙",
}

func iconGlyph(i catalogue.Icon) string {
	if g, ok := iconGlyphs[i]; ok {
		return g
	}
	return "•"
}

// --- Header styles ---

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorCyan).
	Padding(0, 1)

var modeBadgeStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("0")).
	Background(colorYellow).
	Padding(0, 1)

// --- Overview styles ---

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	layerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorDim)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorMagenta)
)

// --- Panel styles ---

var (
	panelBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim)

	panelTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan).
			Padding(0, 1)

	outputStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Italic(true)
)

// --- Step blocks ---

var (
	stepNormal = lipgloss.NewStyle().
			Foreground(colorDim)

	stepCurrent = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorYellow)
)

// --- Key bar styles ---

var (
	keyStyle = lipgloss.NewStyle().
			Foreground(colorCyan).
			Bold(true)

	keyDescStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	keyBarStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// --- Overlay ---

var (
	overlayBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorYellow).
			Padding(1, 2)

	overlayTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorYellow)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(colorYellow).
			Padding(0, 2)
)

// --- Error style ---

var errorStyle = lipgloss.NewStyle().
	Foreground(colorRed).
	Bold(true)
