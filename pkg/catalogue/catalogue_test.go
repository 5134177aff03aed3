package catalogue

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultCatalogueIsValid(t *testing.T) {
	c := Default()
	if c.APIVersion != APIVersion {
		t.Fatalf("apiVersion = %q, want %q", c.APIVersion, APIVersion)
	}
	for _, e := range Validate(c) {
		if e.Severity == "warning" {
			t.Logf("warning: %v", e)
			continue
		}
		t.Errorf("unexpected error: %v", e)
	}
}

func TestDefaultCatalogueParadigmMenu(t *testing.T) {
	c := Default()
	var ids []string
	for _, p := range c.Paradigms {
		ids = append(ids, p.ID)
	}
	want := []string{"estructurada", "objetos", "funcional", "logica"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("paradigm ids mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveFunctionalScenario(t *testing.T) {
	c := Default()
	d, ok := c.Resolve("", "funcional")
	if !ok {
		t.Fatal("funcional did not resolve")
	}
	if len(d.Steps) != 1 {
		t.Fatalf("steps = %d, want 1", len(d.Steps))
	}
	if got := d.Steps[0].Code; got != "const sumar = (a, b) => a + b;" {
		t.Errorf("code = %q", got)
	}
	if d.Steps[0].HasOutput() {
		t.Errorf("output = %q, want none", d.Steps[0].Output)
	}
}

func TestResolve(t *testing.T) {
	c := Default()
	tests := []struct {
		name     string
		file     string
		paradigm string
		wantOK   bool
		wantKey  Key
	}{
		{"paradigm level", "", "logica", true, Key{Paradigm: "logica"}},
		{"file specific", "Tarea.js", "objetos", true, Key{File: "Tarea.js", Paradigm: "objetos"}},
		{"falls back to paradigm", "ManejoMenu.js", "estructurada", true, Key{Paradigm: "estructurada"}},
		{"file with other paradigm falls back", "Tarea.js", "funcional", true, Key{Paradigm: "funcional"}},
		{"unknown paradigm", "", "cuantica", false, Key{}},
		{"empty paradigm", "index.js", "", false, Key{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := c.Resolve(tt.file, tt.paradigm)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && d.Key() != tt.wantKey {
				t.Errorf("key = %v, want %v", d.Key(), tt.wantKey)
			}
		})
	}
}

func TestResolveSkipsEmptyDocuments(t *testing.T) {
	c := &Catalogue{
		Documents: []Document{{Paradigm: "funcional", Title: "vacío", Color: ColorEmerald}},
	}
	if _, ok := c.Resolve("", "funcional"); ok {
		t.Error("document without steps must not resolve")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	src := `apiVersion: catalogue/v0
meta:
  title: x
  autor: nadie
paradigms: []
documents: []
`
	if _, err := Load(strings.NewReader(src)); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadTrimsBlocks(t *testing.T) {
	src := `apiVersion: catalogue/v0
meta: {title: t}
paradigms: [{id: funcional, label: F, icon: branch, color: emerald}]
documents:
  - paradigm: funcional
    title: F
    color: emerald
    steps:
      - id: "1"
        title: uno
        description: "  desc  "
        code: |
          x := 1
        output: |
          1
`
	c, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := c.Documents[0].Steps[0]
	if s.Code != "x := 1" || s.Output != "1" || s.Description != "desc" {
		t.Errorf("step not normalized: %+v", s)
	}
}

func TestValidateFileFixtures(t *testing.T) {
	c, errs := ValidateFile(filepath.Join("..", "..", "testdata", "catalogues", "minimal.yaml"))
	if HasErrors(errs) {
		t.Fatalf("minimal.yaml: %v", errs)
	}
	if len(c.Documents) != 1 {
		t.Errorf("documents = %d, want 1", len(c.Documents))
	}

	_, errs = ValidateFile(filepath.Join("..", "..", "testdata", "catalogues", "unknown-field.yaml"))
	if len(errs) != 1 || errs[0].Phase != "structural" {
		t.Errorf("unknown-field.yaml: errs = %v, want one structural error", errs)
	}

	_, errs = ValidateFile(filepath.Join("..", "..", "testdata", "catalogues", "missing.yaml"))
	if !HasErrors(errs) {
		t.Error("expected error for missing file")
	}
}

func TestValidateDomain(t *testing.T) {
	base := func() *Catalogue {
		return &Catalogue{
			APIVersion: APIVersion,
			Meta:       Meta{Title: "t"},
			Paradigms:  []Paradigm{{ID: "funcional", Label: "F", Icon: IconBranch, Color: ColorEmerald}},
			Files: []File{
				{ID: "a.js", Description: "a", Paradigm: "funcional", Layer: LayerEntry, Walkthrough: true},
				{ID: "datos.json", Description: "d", Paradigm: "datos", Layer: LayerBase},
			},
			Documents: []Document{{
				Paradigm: "funcional", Title: "F", Color: ColorEmerald,
				Steps: []Step{{ID: "1", Title: "uno", Description: "d", Code: "f()"}},
			}},
		}
	}

	tests := []struct {
		name     string
		mutate   func(c *Catalogue)
		wantPath string
		severity string
	}{
		{"bad api version", func(c *Catalogue) { c.APIVersion = "catalogue/v9" }, "apiVersion", "error"},
		{"bad variant", func(c *Catalogue) { c.Meta.Variant = "grid" }, "meta.variant", "error"},
		{"unknown color", func(c *Catalogue) { c.Documents[0].Color = "orange" }, "documents[0].color", "error"},
		{"empty steps", func(c *Catalogue) { c.Documents[0].Steps = nil }, "documents[0].steps", "error"},
		{"duplicate step", func(c *Catalogue) {
			c.Documents[0].Steps = append(c.Documents[0].Steps, c.Documents[0].Steps[0])
		}, "documents[0].steps[1].id", "error"},
		{"unknown document paradigm", func(c *Catalogue) { c.Documents[0].Paradigm = "logica" }, "documents[0].paradigm", "error"},
		{"support file document", func(c *Catalogue) {
			d := c.Documents[0]
			d.File = "datos.json"
			c.Documents = append(c.Documents, d)
		}, "documents[1].file", "error"},
		{"dangling import", func(c *Catalogue) { c.Files[0].Imports = []string{"b.js"} }, "files[0].imports[0]", "warning"},
		{"unknown layer", func(c *Catalogue) { c.Files[0].Layer = "sotano" }, "files[0].layer", "error"},
		{"code file with free tag", func(c *Catalogue) { c.Files[0].Paradigm = "datos" }, "files[0].paradigm", "error"},
		{"empty code", func(c *Catalogue) { c.Documents[0].Steps[0].Code = " " }, "documents[0].steps[0].code", "warning"},
	}

	if errs := ValidateDomain(base()); len(errs) != 0 {
		t.Fatalf("base catalogue: %v", errs)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			var found bool
			for _, e := range ValidateDomain(c) {
				if e.Path == tt.wantPath && e.Severity == tt.severity {
					found = true
				}
			}
			if !found {
				t.Errorf("no %s at %s in %v", tt.severity, tt.wantPath, ValidateDomain(c))
			}
		})
	}
}

func TestValidateSemanticRejectsBadEnum(t *testing.T) {
	c := Default()
	c.Paradigms[0].Color = "magenta"
	var semantic bool
	for _, e := range Validate(c) {
		if e.Phase == "semantic" {
			semantic = true
		}
	}
	if !semantic {
		t.Error("expected a semantic error for an out-of-set color")
	}
}

func TestGenerateJSONSchema(t *testing.T) {
	data, err := GenerateJSONSchema()
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if !strings.Contains(string(data), "catalogue/v0") {
		t.Error("schema title should mention catalogue/v0")
	}
	if !strings.Contains(string(data), `"emerald"`) {
		t.Error("schema should enumerate colors")
	}
}

func TestFilter(t *testing.T) {
	c := Default()
	keys := func(docs []*Document) []string {
		var out []string
		for _, d := range docs {
			out = append(out, d.Key().String())
		}
		return out
	}

	tests := []struct {
		where string
		want  []string
	}{
		{`paradigm == "funcional"`, []string{"funcional", "ServiciosTarea.js/funcional"}},
		{`file == "" && hasOutput`, []string{"estructurada", "logica"}},
		{`steps > 2`, []string{"estructurada"}},
	}
	for _, tt := range tests {
		t.Run(tt.where, func(t *testing.T) {
			docs, err := c.Filter(tt.where)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, keys(docs)); diff != "" {
				t.Errorf("Filter(%q) mismatch (-want +got):\n%s", tt.where, diff)
			}
		})
	}

	all, err := c.Filter("")
	if err != nil || len(all) != len(c.Documents) {
		t.Errorf("empty filter: %d docs, err %v", len(all), err)
	}
	if _, err := c.Filter(`steps +`); err == nil {
		t.Error("expected compile error")
	}
	if _, err := c.Filter(`title`); err == nil {
		t.Error("expected error for non-boolean filter")
	}
}
