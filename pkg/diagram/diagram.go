// Package diagram renders the architecture map of a catalogue's file
// registry. Supports Mermaid flowchart and ASCII formats.
package diagram

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
)

// Format represents the output diagram format.
type Format string

const (
	FormatMermaid Format = "mermaid"
	FormatASCII   Format = "ascii"
)

// SupportTag marks files that have no walkthrough.
const SupportTag = "(soporte)"

// Generate produces a diagram of the file registry, grouped by layer.
func Generate(c *catalogue.Catalogue, format Format) (string, error) {
	if c == nil {
		return "", fmt.Errorf("nil catalogue")
	}
	switch format {
	case FormatMermaid:
		return generateMermaid(c), nil
	case FormatASCII:
		return generateASCII(c), nil
	default:
		return "", fmt.Errorf("unsupported diagram format: %s", format)
	}
}

// --- layer grouping ---

type layerGroup struct {
	layer catalogue.Layer
	files []mapFile
}

type mapFile struct {
	id      string
	tag     string
	color   catalogue.Color
	support bool
	imports []string
}

// groupLayers returns the non-empty layers in map order. Files with an
// unknown layer form trailing groups of their own.
func groupLayers(c *catalogue.Catalogue) []layerGroup {
	toMap := func(f catalogue.File) mapFile {
		mf := mapFile{id: f.ID, tag: f.Paradigm, color: catalogue.ColorSlate, support: !f.Walkthrough, imports: f.Imports}
		if p, ok := c.Paradigm(f.Paradigm); ok {
			mf.tag = p.Label
			mf.color = p.Color
		}
		if mf.support {
			mf.tag = SupportTag
		}
		return mf
	}

	var groups []layerGroup
	known := make(map[catalogue.Layer]bool)
	for _, l := range catalogue.Layers {
		known[l] = true
		g := layerGroup{layer: l}
		for _, f := range c.FilesInLayer(l) {
			g.files = append(g.files, toMap(f))
		}
		if len(g.files) > 0 {
			groups = append(groups, g)
		}
	}
	extra := make(map[catalogue.Layer]int)
	for _, f := range c.Files {
		if known[f.Layer] {
			continue
		}
		i, ok := extra[f.Layer]
		if !ok {
			i = len(groups)
			extra[f.Layer] = i
			groups = append(groups, layerGroup{layer: f.Layer})
		}
		groups[i].files = append(groups[i].files, toMap(f))
	}
	return groups
}

// --- Mermaid flowchart ---

func generateMermaid(c *catalogue.Catalogue) string {
	var b strings.Builder
	b.WriteString("flowchart TD\n")

	groups := groupLayers(c)
	known := make(map[string]bool)
	for _, g := range groups {
		b.WriteString(fmt.Sprintf("    subgraph %s[%q]\n", safeID("layer_"+string(g.layer)), catalogue.LayerTitle(g.layer)))
		for _, f := range g.files {
			known[f.id] = true
			b.WriteString("        " + nodeDefinition(f) + "\n")
		}
		b.WriteString("    end\n")
	}

	// Import edges, in registry order. Unknown targets are left out.
	for _, f := range c.Files {
		for _, imp := range f.Imports {
			if !known[imp] {
				continue
			}
			b.WriteString(fmt.Sprintf("    %s --> %s\n", safeID(f.ID), safeID(imp)))
		}
	}

	// Styles
	for _, g := range groups {
		for _, f := range g.files {
			if f.support {
				b.WriteString(fmt.Sprintf("    style %s %s\n", safeID(f.id), supportStyle))
				continue
			}
			b.WriteString(fmt.Sprintf("    style %s stroke:%s,stroke-width:2px\n", safeID(f.id), colorHex(f.color)))
		}
	}
	return b.String()
}

const supportStyle = "stroke:#64748b,stroke-dasharray:5 5,color:#64748b"

func nodeDefinition(f mapFile) string {
	id := safeID(f.id)
	if f.support {
		return fmt.Sprintf(`%s[("%s<br/>%s")]`, id, escMermaid(f.id), escMermaid(f.tag))
	}
	return fmt.Sprintf(`%s["%s<br/>%s"]`, id, escMermaid(f.id), escMermaid(f.tag))
}

func colorHex(c catalogue.Color) string {
	switch c {
	case catalogue.ColorBlue:
		return "#3b82f6"
	case catalogue.ColorPurple:
		return "#a855f7"
	case catalogue.ColorEmerald:
		return "#10b981"
	case catalogue.ColorRose:
		return "#f43f5e"
	case catalogue.ColorAmber:
		return "#f59e0b"
	case catalogue.ColorCyan:
		return "#06b6d4"
	default:
		return "#64748b"
	}
}

// --- ASCII ---

// perRow is the maximum number of boxes in one ASCII row.
const perRow = 4

func generateASCII(c *catalogue.Catalogue) string {
	var b strings.Builder

	name := c.Meta.Title
	if name == "" {
		name = "Arquitectura"
	}

	groups := groupLayers(c)
	if len(groups) == 0 {
		b.WriteString(name + " (sin archivos)\n")
		return b.String()
	}

	// Uniform box width so every row of boxes lines up.
	boxWidth := computeUniformBoxWidth(groups)
	rowWidth := perRow*(boxWidth+2) + (perRow-1)*gap
	headerWidth := rowWidth - 2
	if w := runewidth.StringWidth(name) + 4; w > headerWidth {
		headerWidth = w
	}

	b.WriteString("╔" + strings.Repeat("═", headerWidth) + "╗\n")
	b.WriteString("║" + centerPad(name, headerWidth) + "║\n")
	b.WriteString("╚" + strings.Repeat("═", headerWidth) + "╝\n")

	for _, g := range groups {
		b.WriteString("\n")
		b.WriteString("── " + catalogue.LayerTitle(g.layer) + " ──\n")
		for start := 0; start < len(g.files); start += perRow {
			end := start + perRow
			if end > len(g.files) {
				end = len(g.files)
			}
			writeASCIIRow(&b, g.files[start:end], boxWidth)
		}
	}

	// Dependencies
	var deps []string
	for _, f := range c.Files {
		if len(f.Imports) > 0 {
			deps = append(deps, fmt.Sprintf("  %s → %s", f.ID, strings.Join(f.Imports, ", ")))
		}
	}
	if len(deps) > 0 {
		b.WriteString("\nDependencias:\n")
		b.WriteString(strings.Join(deps, "\n") + "\n")
	}
	return b.String()
}

// gap is the number of spaces between boxes of a row.
const gap = 2

// computeUniformBoxWidth returns the widest interior width needed across
// all files.
func computeUniformBoxWidth(groups []layerGroup) int {
	w := 14
	for _, g := range groups {
		for _, f := range g.files {
			for _, s := range []string{f.id, f.tag} {
				if sw := runewidth.StringWidth(s) + 2; sw > w {
					w = sw
				}
			}
		}
	}
	return w
}

func writeASCIIRow(b *strings.Builder, files []mapFile, boxWidth int) {
	sep := strings.Repeat(" ", gap)
	top := make([]string, len(files))
	name := make([]string, len(files))
	tag := make([]string, len(files))
	bot := make([]string, len(files))
	for i, f := range files {
		h, v := "─", "│"
		if f.support {
			h, v = "┄", "┆"
		}
		top[i] = "┌" + strings.Repeat(h, boxWidth) + "┐"
		name[i] = v + leftPad(f.id, boxWidth) + v
		tag[i] = v + leftPad(f.tag, boxWidth) + v
		bot[i] = "└" + strings.Repeat(h, boxWidth) + "┘"
	}
	for _, row := range [][]string{top, name, tag, bot} {
		b.WriteString(strings.Join(row, sep) + "\n")
	}
}

// leftPad writes s one space in from the left, padded to width by display
// width.
func leftPad(s string, width int) string {
	s = runewidth.Truncate(s, width-2, "…")
	return " " + s + strings.Repeat(" ", width-1-runewidth.StringWidth(s))
}

// centerPad centers s within width using spaces, based on display width.
func centerPad(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	total := width - sw
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// --- string helpers ---

func safeID(id string) string {
	r := strings.NewReplacer("-", "_", " ", "_", ".", "_", "/", "_")
	return r.Replace(id)
}

func escMermaid(s string) string {
	s = strings.ReplaceAll(s, `"`, "#quot;")
	s = strings.ReplaceAll(s, `'`, "#apos;")
	return s
}
