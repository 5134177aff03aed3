package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
	"github.com/ormasoftchile/paradigmas/pkg/nav"
)

func newConsole(v nav.Variant) (*Console, *bytes.Buffer) {
	var buf bytes.Buffer
	c := New(catalogue.Default(), v, nil)
	c.SetOutput(&buf)
	return c, &buf
}

func TestConsoleFlatFunctional(t *testing.T) {
	c, buf := newConsole(nav.VariantFlat)
	c.Execute("paradigm funcional")

	out := buf.String()
	if !strings.Contains(out, "const sumar = (a, b) => a + b;") {
		t.Errorf("missing code sample:\n%s", out)
	}
	if strings.Contains(out, "Salida de Consola") {
		t.Errorf("output section printed for a step without output:\n%s", out)
	}
	if got, want := c.Prompt(), "paradigmas[funcional | paso 1/1]> "; got != want {
		t.Errorf("prompt = %q, want %q", got, want)
	}
}

func TestConsoleParadigmByNumber(t *testing.T) {
	c, _ := newConsole(nav.VariantFlat)
	c.Execute("paradigm 4")
	if got := c.Navigation().State().ParadigmID; got != "logica" {
		t.Errorf("paradigm = %q, want logica", got)
	}
}

func TestConsoleStepNavigation(t *testing.T) {
	c, buf := newConsole(nav.VariantFlat)
	c.Execute("paradigm estructurada")

	tests := []struct {
		line string
		want int
	}{
		{"next", 1},
		{"n", 2},
		{"n", 2},
		{"prev", 1},
		{"step 3", 2},
		{"step 9", 2},
		{"step 1", 0},
	}
	for _, tt := range tests {
		c.Execute(tt.line)
		if got := c.ActiveStep(); got != tt.want {
			t.Errorf("after %q: step = %d, want %d", tt.line, got, tt.want)
		}
	}

	buf.Reset()
	c.Execute("step 2")
	if strings.Contains(buf.String(), "Salida de Consola") {
		t.Errorf("step 2 has no output:\n%s", buf.String())
	}
	buf.Reset()
	c.Execute("step 3")
	if !strings.Contains(buf.String(), "Salida de Consola") {
		t.Errorf("step 3 has output:\n%s", buf.String())
	}
}

func TestConsoleNewDocumentStartsAtFirstStep(t *testing.T) {
	c, _ := newConsole(nav.VariantFlat)
	c.Execute("paradigm estructurada")
	c.Execute("step 3")
	c.Execute("back")
	if c.ActiveStep() != -1 {
		t.Errorf("step outside a walkthrough = %d, want -1", c.ActiveStep())
	}
	c.Execute("paradigm estructurada")
	if c.ActiveStep() != 0 {
		t.Errorf("step = %d, want 0", c.ActiveStep())
	}
}

func TestConsoleSupportFileAdvisory(t *testing.T) {
	c, buf := newConsole(nav.VariantDrillDown)
	c.Execute("file tareas.json")

	if !c.Advisory().IsOpen() {
		t.Fatal("advisory should be open")
	}
	if c.Navigation().State().Mode != nav.ModeOverview {
		t.Errorf("mode = %v, want overview", c.Navigation().State().Mode)
	}
	if !strings.Contains(buf.String(), nav.TitleSupportFile) {
		t.Errorf("advisory not printed:\n%s", buf.String())
	}

	c.Execute("file Tarea.js")
	if c.Navigation().State().Mode != nav.ModeOverview {
		t.Error("navigation ran while the advisory was open")
	}

	c.Execute("ok")
	if c.Advisory().IsOpen() {
		t.Error("ok did not dismiss the advisory")
	}
	c.Execute("file Tarea.js")
	if got := c.Navigation().State(); got.Mode != nav.ModeFileDetail || got.FileID != "Tarea.js" {
		t.Errorf("state = %+v", got)
	}
	if got, want := c.Prompt(), "paradigmas[Tarea.js]> "; got != want {
		t.Errorf("prompt = %q, want %q", got, want)
	}
}

func TestConsoleDrillDown(t *testing.T) {
	c, buf := newConsole(nav.VariantDrillDown)
	c.Execute("paradigm objetos")
	if !strings.Contains(buf.String(), "Primero elige un archivo") {
		t.Errorf("paradigm before file:\n%s", buf.String())
	}

	c.Execute("file Tarea.js")
	c.Execute("paradigm objetos")
	if got := c.Navigation().Document().Key(); got != (catalogue.Key{File: "Tarea.js", Paradigm: "objetos"}) {
		t.Errorf("document = %v", got)
	}
	c.Execute("b")
	if c.Navigation().State().Mode != nav.ModeFileDetail {
		t.Errorf("back: mode = %v", c.Navigation().State().Mode)
	}
	c.Execute("b")
	c.Execute("b")
	if c.Navigation().State().Mode != nav.ModeOverview {
		t.Errorf("back twice: mode = %v", c.Navigation().State().Mode)
	}
}

func TestConsoleFlatHasNoFileMap(t *testing.T) {
	c, buf := newConsole(nav.VariantFlat)
	c.Execute("file index.js")
	if c.Navigation().State().Mode != nav.ModeOverview || c.Advisory().IsOpen() {
		t.Error("file selection in the flat variant should do nothing")
	}
	if !strings.Contains(buf.String(), "modo plano") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestConsoleHelpAndQuit(t *testing.T) {
	c, buf := newConsole(nav.VariantFlat)
	if c.Execute("help") {
		t.Fatal("help should not quit")
	}
	for _, cmd := range []string{"overview", "paradigms", "files", "file", "paradigm", "next", "prev", "step", "show", "back", "ok", "help", "quit"} {
		if !strings.Contains(buf.String(), cmd) {
			t.Errorf("help output missing command %q", cmd)
		}
	}
	if !c.Execute("quit") {
		t.Error("quit should end the loop")
	}
	if c.Execute("   ") {
		t.Error("blank line should be ignored")
	}
}

func TestConsoleUnknownCommand(t *testing.T) {
	c, buf := newConsole(nav.VariantFlat)
	c.Execute("dance")
	if !strings.Contains(buf.String(), "Comando desconocido") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
