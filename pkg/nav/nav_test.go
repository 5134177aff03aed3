package nav

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ormasoftchile/paradigmas/pkg/advisory"
	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
)

func newController(v Variant) (*Controller, *advisory.Advisory) {
	a := advisory.New()
	return New(v, catalogue.Default(), a), a
}

func TestController_StartsAtOverview(t *testing.T) {
	c, _ := newController(VariantFlat)
	if diff := cmp.Diff(State{Mode: ModeOverview}, c.State()); diff != "" {
		t.Errorf("initial state (-want +got):\n%s", diff)
	}
	if c.Document() != nil {
		t.Error("no document should be active at the overview")
	}
}

func TestController_FlatSelectParadigm(t *testing.T) {
	c, a := newController(VariantFlat)
	if !c.SelectParadigm("funcional") {
		t.Fatal("SelectParadigm(funcional) failed")
	}
	want := State{Mode: ModeWalkthrough, ParadigmID: "funcional"}
	if diff := cmp.Diff(want, c.State()); diff != "" {
		t.Errorf("state (-want +got):\n%s", diff)
	}
	if got := c.Document().Steps[0].Code; got != "const sumar = (a, b) => a + b;" {
		t.Errorf("document code = %q", got)
	}
	if a.IsOpen() {
		t.Error("advisory should stay closed on a successful selection")
	}

	c.GoBack()
	if c.State().Mode != ModeOverview || c.State().ParadigmID != "" {
		t.Errorf("after back: %+v, want cleared overview", c.State())
	}
}

func TestController_FlatIgnoresSelectFile(t *testing.T) {
	c, a := newController(VariantFlat)
	if c.SelectFile("index.js") {
		t.Error("SelectFile should be a no-op in the flat variant")
	}
	if c.State().Mode != ModeOverview || a.IsOpen() {
		t.Errorf("state changed: %+v, advisory open=%v", c.State(), a.IsOpen())
	}
}

func TestController_SupportFileOpensAdvisory(t *testing.T) {
	for _, start := range []string{"", "index.js"} {
		t.Run("from "+start, func(t *testing.T) {
			c, a := newController(VariantDrillDown)
			if start != "" {
				c.SelectFile(start)
			}
			before := c.State()

			if c.SelectFile("tareas.json") {
				t.Fatal("SelectFile(tareas.json) should refuse")
			}
			if c.State() != before {
				t.Errorf("state changed from %+v to %+v", before, c.State())
			}
			if !a.IsOpen() {
				t.Fatal("advisory should be open")
			}
			if a.Title() != "Archivo de Soporte" {
				t.Errorf("title = %q", a.Title())
			}
			if !strings.Contains(a.Message(), "tareas.json") {
				t.Errorf("message %q does not name the file", a.Message())
			}
		})
	}
}

func TestController_UnknownFileOpensAdvisory(t *testing.T) {
	c, a := newController(VariantDrillDown)
	c.SelectFile("main.go")
	if c.State().Mode != ModeOverview || !a.IsOpen() || !strings.Contains(a.Message(), "main.go") {
		t.Errorf("state=%+v open=%v message=%q", c.State(), a.IsOpen(), a.Message())
	}
}

func TestController_DrillDownPath(t *testing.T) {
	c, _ := newController(VariantDrillDown)

	if !c.SelectFile("Tarea.js") {
		t.Fatal("SelectFile(Tarea.js) failed")
	}
	if diff := cmp.Diff(State{Mode: ModeFileDetail, FileID: "Tarea.js"}, c.State()); diff != "" {
		t.Errorf("after file (-want +got):\n%s", diff)
	}

	if !c.SelectParadigm("objetos") {
		t.Fatal("SelectParadigm(objetos) failed")
	}
	if got := c.Document().Key(); got != (catalogue.Key{File: "Tarea.js", Paradigm: "objetos"}) {
		t.Errorf("document = %v, want the file-specific one", got)
	}

	c.GoBack()
	if diff := cmp.Diff(State{Mode: ModeFileDetail, FileID: "Tarea.js"}, c.State()); diff != "" {
		t.Errorf("after first back (-want +got):\n%s", diff)
	}
	if c.Document() != nil {
		t.Error("document should be discarded when leaving the walkthrough")
	}
	c.GoBack()
	if diff := cmp.Diff(State{Mode: ModeOverview}, c.State()); diff != "" {
		t.Errorf("after second back (-want +got):\n%s", diff)
	}
	c.GoBack()
	if c.State().Mode != ModeOverview {
		t.Error("back from overview must be a no-op")
	}
}

type emptyContent struct{}

func (emptyContent) Resolve(string, string) (*catalogue.Document, bool) { return nil, false }
func (emptyContent) File(string) (catalogue.File, bool)                  { return catalogue.File{}, false }

func TestController_UnresolvableParadigmDoesNotTransition(t *testing.T) {
	a := advisory.New()
	c := New(VariantFlat, emptyContent{}, a)
	if c.SelectParadigm("funcional") {
		t.Fatal("SelectParadigm should fail without content")
	}
	if c.State().Mode != ModeOverview {
		t.Errorf("mode = %v, want overview", c.State().Mode)
	}
	if a.Title() != TitleNoWalkthrough || !strings.Contains(a.Message(), "funcional") {
		t.Errorf("advisory = %q / %q", a.Title(), a.Message())
	}
}

func TestController_GenerationChangesWithDocument(t *testing.T) {
	c, _ := newController(VariantFlat)
	g0 := c.Generation()
	c.SelectParadigm("logica")
	g1 := c.Generation()
	if g1 == g0 {
		t.Error("generation should change when a document becomes active")
	}
	c.GoBack()
	c.SelectParadigm("estructurada")
	if c.Generation() == g1 {
		t.Error("generation should change for a new document")
	}
}

func TestController_OnChange(t *testing.T) {
	c, _ := newController(VariantDrillDown)
	var seen []Mode
	c.OnChange(func(from, to State) { seen = append(seen, to.Mode) })

	c.SelectFile("index.js")
	c.SelectParadigm("estructurada")
	c.GoToOverview()
	c.GoToOverview() // no change, no event

	want := []Mode{ModeFileDetail, ModeWalkthrough, ModeOverview}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("transitions (-want +got):\n%s", diff)
	}
}

func TestController_SetContent(t *testing.T) {
	c, _ := newController(VariantFlat)
	c.SelectParadigm("funcional")
	gen := c.Generation()

	fresh := catalogue.Default()
	if !c.SetContent(fresh) {
		t.Fatal("walkthrough should survive a reload that keeps the document")
	}
	if c.Generation() == gen {
		t.Error("reload should replace the active document")
	}

	if c.SetContent(emptyContent{}) {
		t.Error("walkthrough should be dropped when the document disappears")
	}
	if c.State().Mode != ModeOverview {
		t.Errorf("mode = %v, want overview", c.State().Mode)
	}
}

// Any sequence of operations followed by enough GoBack calls lands on the
// overview.
func TestController_BackAlwaysReachesOverview(t *testing.T) {
	cat := catalogue.Default()
	var files, paradigms []string
	for _, f := range cat.Files {
		files = append(files, f.ID)
	}
	for _, p := range cat.Paradigms {
		paradigms = append(paradigms, p.ID)
	}
	paradigms = append(paradigms, "inexistente")

	rng := rand.New(rand.NewSource(7))
	for _, v := range []Variant{VariantFlat, VariantDrillDown} {
		for run := 0; run < 200; run++ {
			c := New(v, cat, advisory.New())
			for i := 0; i < 12; i++ {
				switch rng.Intn(4) {
				case 0:
					c.SelectFile(files[rng.Intn(len(files))])
				case 1:
					c.SelectParadigm(paradigms[rng.Intn(len(paradigms))])
				case 2:
					c.GoBack()
				case 3:
					if rng.Intn(4) == 0 {
						c.GoToOverview()
					}
				}
				if st := c.State(); st.Mode != ModeWalkthrough && st.ParadigmID != "" {
					t.Fatalf("%v: paradigm selected outside walkthrough: %+v", v, st)
				}
			}
			for i := 0; i < 2; i++ {
				c.GoBack()
			}
			if c.State() != (State{Mode: ModeOverview}) {
				t.Fatalf("%v run %d: state after backs = %+v", v, run, c.State())
			}
		}
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"", VariantFlat, false},
		{"flat", VariantFlat, false},
		{"drilldown", VariantDrillDown, false},
		{"grid", VariantFlat, true},
	}
	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseVariant(%q) = %v, %v", tt.in, got, err)
		}
	}
}
