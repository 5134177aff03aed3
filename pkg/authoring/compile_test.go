package authoring

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
)

func fixture(name string) string {
	return filepath.Join("..", "..", "testdata", "authoring", name)
}

func TestCompileFile(t *testing.T) {
	res, err := CompileFile(fixture("tarea.md"), Options{Paradigm: "objetos", File: "Tarea.js", Color: catalogue.ColorPurple})
	if err != nil {
		t.Fatalf("CompileFile: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}

	want := &catalogue.Document{
		Paradigm: "objetos",
		File:     "Tarea.js",
		Title:    "Tarea.js — Modelo de Tarea",
		Color:    catalogue.ColorPurple,
		Steps: []catalogue.Step{
			{
				ID:          "1",
				Title:       "La clase Tarea",
				Description: "Una **clase** agrupa datos y comportamiento. Cada tarea tiene un título y un estado.",
				Code: "class Tarea {\n  constructor(titulo) {\n    this.titulo = titulo;\n" +
					"    this.completada = false;\n  }\n}",
			},
			{
				ID:          "2",
				Title:       "Métodos",
				Description: "**Completar**\n\n- `completar()` cambia el estado\n\n- `toString()` describe la tarea",
				Code:        "const t = new Tarea(\"Estudiar\");\nt.completar();\nconsole.log(t.toString());",
				Output:      "[x] Estudiar",
			},
		},
	}
	if diff := cmp.Diff(want, res.Document); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_NoSteps(t *testing.T) {
	_, err := CompileFile(fixture("no-steps.md"), Options{Paradigm: "funcional"})
	if err == nil || !strings.Contains(err.Error(), "no steps") {
		t.Fatalf("err = %v, want a no steps error", err)
	}
}

func TestCompile_Options(t *testing.T) {
	src := []byte("## Paso\n\n```js\nx()\n```\n")
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
		title   string
	}{
		{"missing paradigm", Options{}, true, ""},
		{"unknown color", Options{Paradigm: "funcional", Color: "magenta"}, true, ""},
		{"title option", Options{Paradigm: "funcional", Title: "Funcional"}, false, "Funcional"},
		{"paradigm fallback", Options{Paradigm: "funcional"}, false, "funcional"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compile(src, tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Document.Title != tt.title {
				t.Errorf("title = %q, want %q", res.Document.Title, tt.title)
			}
			if res.Document.Color != catalogue.ColorSlate {
				t.Errorf("color = %q, want slate default", res.Document.Color)
			}
		})
	}
}

func TestCompile_Warnings(t *testing.T) {
	src := []byte("# T\n\n## Sin código\n\nSolo texto.\n\n## Dos bloques\n\n```js\na()\n```\n\n```js\nb()\n```\n")
	res, err := Compile(src, Options{Paradigm: "funcional"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("warnings = %v, want 2", res.Warnings)
	}
	if !strings.Contains(res.Warnings[0], "no code block") || !strings.Contains(res.Warnings[1], "extra block ignored") {
		t.Errorf("warnings = %v", res.Warnings)
	}
	if got := res.Document.Steps[1].Code; got != "a()" {
		t.Errorf("code = %q, want the first block", got)
	}
}

func TestMarshal_LoadsBack(t *testing.T) {
	res, err := CompileFile(fixture("tarea.md"), Options{Paradigm: "objetos", File: "Tarea.js", Color: catalogue.ColorPurple})
	if err != nil {
		t.Fatalf("CompileFile: %v", err)
	}
	data, err := Marshal(res.Document)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := catalogue.LoadDocument(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadDocument: %v\n%s", err, data)
	}
	if diff := cmp.Diff(res.Document, got); diff != "" {
		t.Errorf("document changed through YAML (-compiled +loaded):\n%s", diff)
	}
}
