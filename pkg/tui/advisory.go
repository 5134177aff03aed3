package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ormasoftchile/paradigmas/pkg/advisory"
)

const advisoryButton = "Entendido"

// advisoryBox is the rendered dialog and the screen rows of its controls.
type advisoryBox struct {
	view string
	x, y int // top-left corner on screen
	w, h int

	closeY    int // row of the title and the close glyph
	closeX    int // first column of the close hit area
	buttonY   int
	buttonX   int
	buttonEnd int
}

// layoutAdvisory renders the dialog centered on a width × height screen.
func layoutAdvisory(a *advisory.Advisory, width, height int) advisoryBox {
	contentW := width - 12
	if contentW > 56 {
		contentW = 56
	}
	if contentW < 20 {
		contentW = 20
	}

	title := runewidth.Truncate(GlyphWarning+" "+a.Title(), contentW-3, "…")
	pad := contentW - runewidth.StringWidth(title) - 1
	ts := overlayTitle
	if a.Title() == TitleReloadFailed {
		ts = errorStyle
	}
	titleLine := ts.Render(title) + strings.Repeat(" ", pad) + keyDescStyle.Render(GlyphClose)

	message := lipgloss.NewStyle().Width(contentW).Render(a.Message())

	button := buttonStyle.Render(advisoryButton)
	bw := lipgloss.Width(button)
	buttonLine := lipgloss.PlaceHorizontal(contentW, lipgloss.Center, button)

	lines := []string{titleLine, ""}
	lines = append(lines, strings.Split(message, "\n")...)
	lines = append(lines, "", buttonLine)

	view := overlayBorder.Width(contentW + 4).Render(strings.Join(lines, "\n"))
	b := advisoryBox{view: view, w: lipgloss.Width(view), h: lipgloss.Height(view)}
	b.x = (width - b.w) / 2
	b.y = (height - b.h) / 2
	if b.x < 0 {
		b.x = 0
	}
	if b.y < 0 {
		b.y = 0
	}

	// border + padding before the first content row/column
	top, left := b.y+2, b.x+3
	b.closeY = top
	b.closeX = left + contentW - 3
	b.buttonY = top + len(lines) - 1
	b.buttonX = left + (contentW-bw)/2
	b.buttonEnd = b.buttonX + bw
	return b
}

// hit maps a mouse press to a dismiss path. ok is false for presses inside
// the dialog that hit no control.
func (b advisoryBox) hit(x, y int) (via advisory.Via, ok bool) {
	if x < b.x || x >= b.x+b.w || y < b.y || y >= b.y+b.h {
		return advisory.ViaBackdrop, true
	}
	if y == b.closeY && x >= b.closeX && x < b.x+b.w {
		return advisory.ViaClose, true
	}
	if y == b.buttonY && x >= b.buttonX && x < b.buttonEnd {
		return advisory.ViaAction, true
	}
	return 0, false
}

// renderAdvisory places the dialog over a dimmed backdrop.
func renderAdvisory(b advisoryBox, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.view,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(colorDim),
	)
}
