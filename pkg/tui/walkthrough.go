package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
	"github.com/ormasoftchile/paradigmas/pkg/tracker"
)

// paneChrome is the number of rows a bordered panel spends on its border and
// title line.
const paneChrome = 3

// walkthrough is the two-pane presentation of one document: step blocks on
// the left, the active step's code and console output on the right.
type walkthrough struct {
	doc      *catalogue.Document
	tracker  *tracker.Tracker
	observer *tracker.Observer
	md       *markdown
	lang     string
	logger   *zap.Logger

	// Layout
	width   int
	height  int
	leftW   int
	leftH   int
	rightW  int
	rightH  int
	compact bool

	// Left pane: rendered block lines, the block index owning each line
	// (-1 for gaps and padding) and the scroll offset.
	lines     []string
	lineBlock []int
	extents   []tracker.Extent
	offset    int

	// Right pane, rebuilt from scratch whenever panel.Key changes.
	panel  tracker.Panel
	code   viewport.Model
	output string
	built  bool
	swaps  int
}

func newWalkthrough(doc *catalogue.Document, md *markdown, lang string, bandMargin int, logger *zap.Logger) *walkthrough {
	w := &walkthrough{
		doc:      doc,
		tracker:  tracker.New(len(doc.Steps)),
		observer: tracker.NewObserver(0, bandMargin),
		md:       md,
		lang:     lang,
		logger:   logger,
		code:     viewport.New(0, 0),
	}
	w.tracker.Subscribe(func(prev, next int) {
		w.logger.Debug("active step changed",
			zap.String("document", doc.Key().String()),
			zap.Int("from", prev),
			zap.Int("to", next))
		w.swap()
	})
	w.swap()
	return w
}

// Active returns the active step index.
func (w *walkthrough) Active() int { return w.tracker.Active() }

// SetSize lays both panes out for a body of width × height cells.
func (w *walkthrough) SetSize(width, height int, compact bool) {
	if width == w.width && height == w.height && compact == w.compact && w.lines != nil {
		return
	}
	w.width, w.height, w.compact = width, height, compact

	if compact {
		w.leftW, w.rightW = width, width
		w.leftH = height * 55 / 100
		w.rightH = height - w.leftH
	} else {
		w.leftW = width * 45 / 100
		if w.leftW < 30 {
			w.leftW = 30
		}
		w.rightW = width - w.leftW
		w.leftH, w.rightH = height, height
	}
	w.layoutBlocks()
	w.built = false
	w.swap()
}

// visible is the number of content rows of the left pane.
func (w *walkthrough) visible() int {
	v := w.leftH - paneChrome
	if v < 1 {
		v = 1
	}
	return v
}

// layoutBlocks renders one block per step and registers their extents with
// the observer. Each block fills most of the pane so that only one block can
// sit on the midline at a time.
func (w *walkthrough) layoutBlocks() {
	v := w.visible()
	minBlock := v * 6 / 10
	if minBlock < 3 {
		minBlock = 3
	}
	textW := w.leftW - 6 // border, gutter, padding

	w.lines = w.lines[:0]
	w.lineBlock = w.lineBlock[:0]
	w.extents = w.extents[:0]
	w.observer.Clear()

	for i, s := range w.doc.Steps {
		block := []string{
			stepTitle(i, s, textW),
			"",
		}
		if desc := w.md.render(s.Description, textW); desc != "" {
			block = append(block, strings.Split(desc, "\n")...)
		}
		for len(block) < minBlock {
			block = append(block, "")
		}

		ext := tracker.Extent{Top: len(w.lines), Height: len(block)}
		w.extents = append(w.extents, ext)
		w.observer.Watch(ext, w.tracker.Observe(i))
		for _, l := range block {
			w.lines = append(w.lines, l)
			w.lineBlock = append(w.lineBlock, i)
		}
		w.lines = append(w.lines, "")
		w.lineBlock = append(w.lineBlock, -1)
	}
	if len(w.doc.Steps) == 0 {
		w.lines = append(w.lines, placeholderStyle.Render(tracker.PlaceholderText))
		w.lineBlock = append(w.lineBlock, -1)
	}
	// Trailing room so the last block can reach the midline.
	for i := 0; i < v/2; i++ {
		w.lines = append(w.lines, "")
		w.lineBlock = append(w.lineBlock, -1)
	}

	w.observer.Resize(v)
	w.scrollTo(w.offset)
}

func stepTitle(i int, s catalogue.Step, width int) string {
	t := fmt.Sprintf("%d ─ %s", i+1, s.Title)
	return runewidth.Truncate(t, width, "…")
}

func (w *walkthrough) maxOffset() int {
	m := len(w.lines) - w.visible()
	if m < 0 {
		m = 0
	}
	return m
}

// scrollTo moves the left pane and lets the observer report blocks crossing
// the central band.
func (w *walkthrough) scrollTo(top int) {
	if top > w.maxOffset() {
		top = w.maxOffset()
	}
	if top < 0 {
		top = 0
	}
	w.offset = top
	w.observer.Scroll(top)
}

// ScrollBy scrolls the left pane by delta rows.
func (w *walkthrough) ScrollBy(delta int) { w.scrollTo(w.offset + delta) }

// PageDown scrolls the left pane by half a page.
func (w *walkthrough) PageDown() { w.ScrollBy(w.visible() / 2) }

// PageUp scrolls the left pane back by half a page.
func (w *walkthrough) PageUp() { w.ScrollBy(-w.visible() / 2) }

// ScrollToStep brings block i onto the midline.
func (w *walkthrough) ScrollToStep(i int) {
	if top := w.observer.TopFor(i); top >= 0 {
		w.scrollTo(top)
	}
}

// NextStep scrolls to the block after the active one.
func (w *walkthrough) NextStep() { w.ScrollToStep(w.Active() + 1) }

// PrevStep scrolls to the block before the active one.
func (w *walkthrough) PrevStep() { w.ScrollToStep(w.Active() - 1) }

// BlockAt returns the step block under content row y of the left pane, or -1.
func (w *walkthrough) BlockAt(y int) int {
	row := w.offset + y
	if row < 0 || row >= len(w.lineBlock) {
		return -1
	}
	return w.lineBlock[row]
}

// swap rebuilds the right pane when the projected content changed. Both
// sub-panels are replaced together; nothing is carried over.
func (w *walkthrough) swap() {
	p := tracker.Pane(w.doc, w.Active())
	if w.built && p.Key == w.panel.Key {
		return
	}
	w.panel = p
	w.built = true
	w.swaps++

	codeW := w.rightW - 4
	if codeW < 10 {
		codeW = 10
	}

	w.output = ""
	if p.HasOutput {
		w.output = outputStyle.Render(p.Output)
	}

	var body string
	if p.Placeholder {
		body = placeholderStyle.Render(p.Code)
	} else {
		body = w.md.renderCode(p.Code, w.lang, codeW)
	}

	w.code = viewport.New(codeW, w.codeHeight())
	w.code.SetContent(body)
	w.code.GotoTop()
}

// outputHeight is the height of the output panel, zero when it is omitted.
func (w *walkthrough) outputHeight() int {
	if !w.panel.HasOutput {
		return 0
	}
	h := lipgloss.Height(w.output) + paneChrome
	if limit := w.rightH / 3; h > limit {
		h = limit
	}
	if h < paneChrome+1 {
		h = paneChrome + 1
	}
	return h
}

func (w *walkthrough) codeHeight() int {
	h := w.rightH - w.outputHeight() - paneChrome
	if h < 1 {
		h = 1
	}
	return h
}

// CodeDown scrolls the code panel.
func (w *walkthrough) CodeDown() { w.code.HalfViewDown() }

// CodeUp scrolls the code panel back.
func (w *walkthrough) CodeUp() { w.code.HalfViewUp() }

// View renders both panes.
func (w *walkthrough) View() string {
	left := w.viewLeft()
	right := w.viewRight()
	if w.compact {
		return lipgloss.JoinVertical(lipgloss.Left, left, right)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (w *walkthrough) viewLeft() string {
	color := themeColor(w.doc.Color)
	title := lipgloss.NewStyle().Bold(true).Foreground(color).Padding(0, 1).
		Render(runewidth.Truncate(w.doc.Title, w.leftW-4, "…"))

	v := w.visible()
	active := w.Active()
	gutter := lipgloss.NewStyle().Foreground(color)
	clip := lipgloss.NewStyle().MaxWidth(w.leftW - 2)
	rows := make([]string, 0, v)
	for i := w.offset; i < w.offset+v && i < len(w.lines); i++ {
		line := w.lines[i]
		switch b := w.lineBlock[i]; {
		case b == active && len(w.doc.Steps) > 0:
			if i == w.extents[b].Top {
				line = stepCurrent.Render(line)
			}
			line = gutter.Render(GlyphActive) + " " + line
		case b >= 0:
			if i == w.extents[b].Top {
				line = stepNormal.Render(line)
			}
			line = "  " + line
		default:
			line = "  " + line
		}
		rows = append(rows, clip.Render(line))
	}
	for len(rows) < v {
		rows = append(rows, "")
	}

	return panelBorder.Width(w.leftW - 2).Height(w.leftH - 2).Render(
		title + "\n" + strings.Join(rows, "\n"),
	)
}

func (w *walkthrough) viewRight() string {
	label := "Código"
	if w.doc.File != "" {
		label = w.doc.File
	}
	if !w.panel.Placeholder {
		label += fmt.Sprintf("  %d/%d", w.panel.Step+1, w.panel.Total)
		if w.panel.Title != "" {
			label += " · " + w.panel.Title
		}
	}
	header := panelTitle.Render(runewidth.Truncate(label, w.rightW-6, "…"))

	// Scroll indicator
	if w.code.TotalLineCount() > w.code.VisibleLineCount() {
		header += keyDescStyle.Render(fmt.Sprintf(" %3.0f%%", w.code.ScrollPercent()*100))
	}

	codeBox := panelBorder.
		BorderForeground(themeColor(w.doc.Color)).
		Width(w.rightW - 2).
		Height(w.rightH - w.outputHeight() - 2).
		Render(header + "\n" + w.code.View())

	if !w.panel.HasOutput {
		return codeBox
	}

	oh := w.outputHeight()
	out := w.output
	if lines := strings.Split(out, "\n"); len(lines) > oh-paneChrome {
		out = strings.Join(lines[:oh-paneChrome], "\n")
	}
	outBox := panelBorder.
		Width(w.rightW - 2).
		Height(oh - 2).
		Render(panelTitle.Render("Salida de Consola") + "\n" + out)
	return lipgloss.JoinVertical(lipgloss.Left, codeBox, outBox)
}
