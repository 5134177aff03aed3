package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
	"github.com/ormasoftchile/paradigmas/pkg/picker"
)

// cardHeight is the rendered height of a picker card, borders included.
const cardHeight = 6

const minCardWidth = 22

// hitBox is the screen area of one picker card, relative to the body.
type hitBox struct {
	x, y, w, h int
	index      int
}

func (b hitBox) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

// paradigmEntries builds the paradigm menu in catalogue order.
func paradigmEntries(c *catalogue.Catalogue) []picker.Entry {
	entries := make([]picker.Entry, 0, len(c.Paradigms))
	for _, p := range c.Paradigms {
		entries = append(entries, picker.Entry{
			ID:          p.ID,
			Label:       p.Label,
			Description: p.Description,
			Icon:        string(p.Icon),
			Color:       string(p.Color),
		})
	}
	return entries
}

// fileEntries builds the architecture map entries, layer by layer. Files
// with an unknown layer are appended last.
func fileEntries(c *catalogue.Catalogue) []picker.Entry {
	var entries []picker.Entry
	seen := make(map[string]bool)
	add := func(f catalogue.File, group string) {
		color := catalogue.ColorSlate
		if p, ok := c.Paradigm(f.Paradigm); ok {
			color = p.Color
		}
		entries = append(entries, picker.Entry{
			ID:          f.ID,
			Label:       f.ID,
			Description: f.Description,
			Icon:        string(f.Icon),
			Color:       string(color),
			Muted:       !f.Walkthrough,
			Group:       group,
		})
		seen[f.ID] = true
	}
	for _, l := range catalogue.Layers {
		for _, f := range c.FilesInLayer(l) {
			add(f, string(l))
		}
	}
	for _, f := range c.Files {
		if !seen[f.ID] {
			add(f, string(f.Layer))
		}
	}
	return entries
}

// gridColumns picks how many cards fit in a row, at most limit.
func gridColumns(width, limit int) int {
	n := (width - 2) / minCardWidth
	if n > limit {
		n = limit
	}
	if n < 1 {
		n = 1
	}
	return n
}

// renderCard draws one card of exactly w × cardHeight cells.
func renderCard(e picker.Entry, w int, selected bool, tag string) string {
	innerW := w - 4 // border + padding
	if innerW < 4 {
		innerW = 4
	}
	color := themeColor(catalogue.Color(e.Color))

	label := runewidth.Truncate(iconGlyph(catalogue.Icon(e.Icon))+" "+e.Label, innerW, "…")
	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(color)
	if e.Muted {
		labelStyle = labelStyle.Foreground(colorDim)
	}
	if selected {
		label = runewidth.Truncate(GlyphCursor+" "+e.Label, innerW, "…")
	}

	desc := wrapLines(e.Description, innerW, cardHeight-4)
	lines := []string{
		labelStyle.Render(label),
		subtitleStyle.Render(runewidth.Truncate(tag, innerW, "…")),
	}
	lines = append(lines, desc...)
	for len(lines) < cardHeight-2 {
		lines = append(lines, "")
	}

	border := lipgloss.RoundedBorder()
	borderColor := color
	switch {
	case selected:
		border = lipgloss.ThickBorder()
	case e.Muted:
		borderColor = colorDim
	}
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(w - 2).
		Render(strings.Join(lines, "\n"))
}

// wrapLines word-wraps s to width and keeps at most limit lines.
func wrapLines(s string, width, limit int) []string {
	if strings.TrimSpace(s) == "" || limit <= 0 {
		return nil
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(s)
	lines := strings.Split(wrapped, "\n")
	if len(lines) > limit {
		lines = lines[:limit]
		last := strings.TrimRight(lines[limit-1], " ")
		lines[limit-1] = runewidth.Truncate(last+" …", width, "…")
	}
	for i, l := range lines {
		lines[i] = runewidth.Truncate(strings.TrimRight(l, " "), width, "…")
	}
	return lines
}

// screen accumulates body lines and card hit boxes.
type screen struct {
	lines []string
	boxes []hitBox
	width int
}

func (s *screen) line(text string) {
	s.lines = append(s.lines, text)
}

// cards lays out entries as rows of cols cards. tag returns the second line
// of a card; base is the picker index of entries[0].
func (s *screen) cards(entries []picker.Entry, cols, base, cursor int, tag func(picker.Entry) string) {
	cw := (s.width - 2) / cols
	if cw < minCardWidth {
		cw = minCardWidth
	}
	for start := 0; start < len(entries); start += cols {
		end := start + cols
		if end > len(entries) {
			end = len(entries)
		}
		var row []string
		for i := start; i < end; i++ {
			idx := base + i
			row = append(row, renderCard(entries[i], cw, idx == cursor, tag(entries[i])))
			s.boxes = append(s.boxes, hitBox{
				x: 1 + (i-start)*cw, y: len(s.lines), w: cw, h: cardHeight, index: idx,
			})
		}
		for _, l := range strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, row...), "\n") {
			s.line(" " + l)
		}
	}
}

// crop keeps height rows, scrolled just enough for the cursor card to show.
func (s *screen) crop(height, cursor int) (string, []hitBox) {
	offset := 0
	for _, b := range s.boxes {
		if b.index == cursor && b.y+b.h > height {
			offset = b.y + b.h - height
		}
	}
	lines := s.lines
	if offset > len(lines) {
		offset = len(lines)
	}
	lines = lines[offset:]
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	boxes := make([]hitBox, 0, len(s.boxes))
	for _, b := range s.boxes {
		b.y -= offset
		boxes = append(boxes, b)
	}
	return strings.Join(lines, "\n"), boxes
}

func (s *screen) heading(title, subtitle string) {
	s.line("")
	s.line(" " + titleStyle.Render(runewidth.Truncate(title, s.width-2, "…")))
	if subtitle != "" {
		s.line(" " + subtitleStyle.Render(runewidth.Truncate(subtitle, s.width-2, "…")))
	}
	s.line("")
}

// renderParadigmMenu draws the flat overview: the paradigm grid.
func (m Model) renderParadigmMenu(height int) (string, []hitBox) {
	s := &screen{width: m.width}
	s.heading(m.cat.Meta.Title, m.cat.Meta.Subtitle)
	s.line(" " + promptStyle.Render("Selecciona un paradigma para comenzar"))
	s.line("")

	s.cards(m.paradigms.Entries(), m.paradigms.Columns(), 0, m.paradigms.Cursor(), func(e picker.Entry) string {
		if d, ok := m.cat.Resolve("", e.ID); ok {
			return stepCount(len(d.Steps))
		}
		return "sin recorrido"
	})
	return s.crop(height, m.paradigms.Cursor())
}

// renderMap draws the drill-down overview: files grouped by layer.
func (m Model) renderMap(height int) (string, []hitBox) {
	s := &screen{width: m.width}
	s.heading(m.cat.Meta.Title, m.cat.Meta.Subtitle)
	s.line(" " + promptStyle.Render("Selecciona un archivo del sistema"))

	entries := m.files.Entries()
	cols := gridColumns(m.width, 4)
	for start := 0; start < len(entries); {
		group := entries[start].Group
		end := start
		for end < len(entries) && entries[end].Group == group {
			end++
		}
		s.line("")
		s.line(" " + layerStyle.Render("── "+catalogue.LayerTitle(catalogue.Layer(group))+" ──"))
		s.cards(entries[start:end], cols, start, m.files.Cursor(), func(e picker.Entry) string {
			if e.Muted {
				return GlyphSupport + " soporte"
			}
			f, _ := m.cat.File(e.ID)
			if p, ok := m.cat.Paradigm(f.Paradigm); ok {
				return p.Label
			}
			return f.Paradigm
		})
		start = end
	}
	return s.crop(height, m.files.Cursor())
}

// renderFileDetail draws the paradigm picker of the selected file.
func (m Model) renderFileDetail(height int) (string, []hitBox) {
	s := &screen{width: m.width}
	fileID := m.nav.State().FileID
	f, _ := m.cat.File(fileID)

	s.line("")
	s.line(" " + titleStyle.Render(iconGlyph(f.Icon)+" "+f.ID))
	s.line(" " + subtitleStyle.Render(runewidth.Truncate(f.Description, m.width-2, "…")))
	imports := "Sin dependencias internas"
	if len(f.Imports) > 0 {
		imports = "Importa: " + strings.Join(f.Imports, ", ")
	}
	s.line(" " + subtitleStyle.Render(runewidth.Truncate(imports, m.width-2, "…")))
	s.line("")
	s.line(" " + promptStyle.Render("Selecciona el paradigma para ver el recorrido"))
	s.line("")

	s.cards(m.paradigms.Entries(), m.paradigms.Columns(), 0, m.paradigms.Cursor(), func(e picker.Entry) string {
		if _, ok := m.cat.Document(catalogue.Key{File: fileID, Paradigm: e.ID}); ok {
			return GlyphSpecific + " recorrido del archivo"
		}
		return "recorrido general"
	})
	return s.crop(height, m.paradigms.Cursor())
}

func stepCount(n int) string {
	if n == 1 {
		return "1 paso"
	}
	return fmt.Sprintf("%d pasos", n)
}
