package console

import (
	"fmt"
	"strings"

	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
	"github.com/ormasoftchile/paradigmas/pkg/nav"
	"github.com/ormasoftchile/paradigmas/pkg/tracker"
)

// show prints the screen for the current mode.
func (c *Console) show() {
	switch c.nav.State().Mode {
	case nav.ModeFileDetail:
		c.showFileDetail()
	case nav.ModeWalkthrough:
		c.showStep()
	default:
		c.showOverview()
	}
}

func (c *Console) showOverview() {
	fmt.Fprintf(c.output, "%s\n", c.cat.Meta.Title)
	if c.cat.Meta.Subtitle != "" {
		fmt.Fprintf(c.output, "%s\n", c.cat.Meta.Subtitle)
	}
	if c.nav.Variant() == nav.VariantDrillDown {
		c.listFiles()
		return
	}
	c.listParadigms()
}

// listParadigms prints the paradigm menu with step counts.
func (c *Console) listParadigms() {
	for i, p := range c.cat.Paradigms {
		steps := "sin recorrido"
		if d, ok := c.cat.Resolve("", p.ID); ok {
			steps = fmt.Sprintf("%d pasos", len(d.Steps))
		}
		fmt.Fprintf(c.output, "  %d. %-14s %-28s %s\n", i+1, p.ID, p.Label, steps)
	}
}

// listFiles prints the architecture map, layer by layer.
func (c *Console) listFiles() {
	for _, l := range catalogue.Layers {
		files := c.cat.FilesInLayer(l)
		if len(files) == 0 {
			continue
		}
		fmt.Fprintf(c.output, "── %s ──\n", catalogue.LayerTitle(l))
		for _, f := range files {
			tag := f.Paradigm
			if !f.Walkthrough {
				tag = "(soporte)"
			}
			fmt.Fprintf(c.output, "  %-20s %-14s %s\n", f.ID, tag, f.Description)
		}
	}
}

func (c *Console) showFileDetail() {
	f, ok := c.cat.File(c.nav.State().FileID)
	if !ok {
		return
	}
	fmt.Fprintf(c.output, "%s — %s\n", f.ID, f.Description)
	if len(f.Imports) > 0 {
		fmt.Fprintf(c.output, "Importa: %s\n", strings.Join(f.Imports, ", "))
	}
	fmt.Fprintf(c.output, "Paradigmas:\n")
	for i, p := range c.cat.Paradigms {
		mark := " "
		if _, ok := c.cat.Document(catalogue.Key{File: f.ID, Paradigm: p.ID}); ok {
			mark = "●"
		}
		fmt.Fprintf(c.output, "  %d. %s %s\n", i+1, mark, p.Label)
	}
}

// showStep prints the active step: description, code and, only when the
// step has one, its console output.
func (c *Console) showStep() {
	doc := c.nav.Document()
	p := tracker.Pane(doc, c.tracker.Active())
	if p.Placeholder {
		fmt.Fprintf(c.output, "%s\n", p.Code)
		return
	}
	step := doc.Steps[p.Step]
	fmt.Fprintf(c.output, "%s · Paso %d/%d · %s\n", doc.Title, p.Step+1, p.Total, p.Title)
	if step.Description != "" {
		fmt.Fprintf(c.output, "\n%s\n", step.Description)
	}
	fmt.Fprintf(c.output, "\n%s\n", indent(p.Code))
	if p.HasOutput {
		fmt.Fprintf(c.output, "\nSalida de Consola:\n%s\n", indent(p.Output))
	}
}

func (c *Console) showAdvisory() {
	fmt.Fprintf(c.output, "⚠ %s\n  %s\n  (escribe 'ok' para continuar)\n", c.adv.Title(), c.adv.Message())
}

// handleHelp displays available commands.
func (c *Console) handleHelp() {
	fmt.Fprintln(c.output, "Comandos:")
	fmt.Fprintln(c.output, "  overview (o)       Volver al inicio")
	fmt.Fprintln(c.output, "  paradigms          Listar paradigmas")
	fmt.Fprintln(c.output, "  files              Listar archivos por capa")
	fmt.Fprintln(c.output, "  file <id>          Abrir un archivo del sistema")
	fmt.Fprintln(c.output, "  paradigm <id|n>    Abrir el recorrido de un paradigma")
	fmt.Fprintln(c.output, "  next (n)           Paso siguiente")
	fmt.Fprintln(c.output, "  prev (p)           Paso anterior")
	fmt.Fprintln(c.output, "  step <n>           Ir al paso n")
	fmt.Fprintln(c.output, "  show               Mostrar la pantalla actual")
	fmt.Fprintln(c.output, "  back (b)           Volver un nivel")
	fmt.Fprintln(c.output, "  ok                 Cerrar el aviso")
	fmt.Fprintln(c.output, "  help (?)           Mostrar esta ayuda")
	fmt.Fprintln(c.output, "  quit (q)           Salir")
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
