package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdown renders step descriptions and code samples. Renderers are built
// lazily per wrap width; a renderer that fails to build leaves the input raw.
type markdown struct {
	style     string
	renderers map[int]*glamour.TermRenderer
}

func newMarkdown(style string) *markdown {
	if style == "" {
		style = "auto"
	}
	return &markdown{style: style, renderers: make(map[int]*glamour.TermRenderer)}
}

func (m *markdown) renderer(width int) *glamour.TermRenderer {
	if r, ok := m.renderers[width]; ok {
		return r
	}
	styleOpt := glamour.WithStandardStyle(m.style)
	if m.style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		r = nil
	}
	m.renderers[width] = r
	return r
}

// render converts a markdown string to styled terminal output constrained to
// width columns. Falls back to the raw input if rendering fails.
func (m *markdown) render(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return md
	}
	if width < 10 {
		width = 10
	}
	r := m.renderer(width)
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	// Glamour adds leading and trailing blank lines; trim for inline use
	return strings.Trim(out, "\n")
}

// renderCode highlights a code sample as a fenced block in lang.
func (m *markdown) renderCode(code, lang string, width int) string {
	if strings.TrimSpace(code) == "" {
		return code
	}
	fence := "```" + lang + "\n" + code + "\n```"
	out := m.render(fence, width)
	if out == fence {
		return code
	}
	return out
}
