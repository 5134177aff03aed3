package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
	"github.com/ormasoftchile/paradigmas/pkg/config"
	"github.com/ormasoftchile/paradigmas/pkg/nav"
)

func testdata(parts ...string) string {
	return filepath.Join(append([]string{"..", "..", "testdata"}, parts...)...)
}

func TestReportValidation(t *testing.T) {
	var buf bytes.Buffer
	errs := []*catalogue.ValidationError{
		{Phase: "domain", Path: "files[1].imports[0]", Message: "unknown import", Severity: "warning"},
		{Phase: "domain", Path: "documents[0].paradigm", Message: "unknown paradigm", Severity: "error"},
	}
	err := reportValidation(&buf, errs)
	if err == nil {
		t.Fatal("expected error")
	}
	out := buf.String()
	for _, want := range []string{"⚠ [domain] unknown import", "Validation failed: 1 error(s)", "1. [domain] unknown paradigm", "at: documents[0].paradigm"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := reportValidation(&buf, errs[:1]); err != nil {
		t.Errorf("warnings only: unexpected error %v", err)
	}
}

func TestVariantFor(t *testing.T) {
	cat := &catalogue.Catalogue{Meta: catalogue.Meta{Variant: "drilldown"}}
	tests := []struct {
		configured string
		want       nav.Variant
	}{
		{"", nav.VariantDrillDown},
		{"flat", nav.VariantFlat},
	}
	for _, tt := range tests {
		got, err := variantFor(config.Config{Variant: tt.configured}, cat)
		if err != nil {
			t.Fatalf("variantFor(%q): %v", tt.configured, err)
		}
		if got != tt.want {
			t.Errorf("variantFor(%q) = %v, want %v", tt.configured, got, tt.want)
		}
	}
	if _, err := variantFor(config.Config{Variant: "tree"}, cat); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestOpenCatalogue(t *testing.T) {
	var buf bytes.Buffer
	c, err := openCatalogue("", &buf)
	if err != nil || len(c.Paradigms) != 4 {
		t.Fatalf("built-in: %v, %v", c, err)
	}
	if _, err := openCatalogue(testdata("catalogues", "unknown-field.yaml"), &buf); err == nil {
		t.Error("expected error for a catalogue with unknown fields")
	}
	if !strings.Contains(buf.String(), "structural") {
		t.Errorf("structural error not reported:\n%s", buf.String())
	}
}

func TestRunValidate(t *testing.T) {
	cfg = config.Default()
	var out, errOut bytes.Buffer
	validateCmd.SetOut(&out)
	validateCmd.SetErr(&errOut)

	if err := runValidate(validateCmd, nil); err != nil {
		t.Fatalf("built-in catalogue: %v\n%s", err, errOut.String())
	}
	if !strings.Contains(out.String(), "✓ built-in catalogue is valid (4 paradigms, 8 files") {
		t.Errorf("unexpected output: %s", out.String())
	}

	if err := runValidate(validateCmd, []string{"walkthrough.md"}); err == nil || !strings.Contains(err.Error(), "compile") {
		t.Errorf("markdown input: err = %v", err)
	}
}

func TestRunCompile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tarea.yaml")
	compileParadigm, compileFile, compileColor, compileOut = "objetos", "Tarea.js", "purple", out
	defer func() { compileParadigm, compileFile, compileColor, compileOut = "", "", "", "" }()

	var stdout bytes.Buffer
	compileCmd.SetOut(&stdout)
	compileCmd.SetErr(&stdout)
	if err := runCompile(compileCmd, []string{testdata("authoring", "tarea.md")}); err != nil {
		t.Fatalf("runCompile: %v", err)
	}
	if !strings.Contains(stdout.String(), "Tarea.js/objetos: 2 steps") {
		t.Errorf("unexpected output: %s", stdout.String())
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	doc, err := catalogue.LoadDocument(f)
	if err != nil {
		t.Fatalf("compiled document does not load: %v", err)
	}
	if doc.Key() != (catalogue.Key{File: "Tarea.js", Paradigm: "objetos"}) || len(doc.Steps) != 2 {
		t.Errorf("doc = %v with %d steps", doc.Key(), len(doc.Steps))
	}
}

func TestListCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"list", "--where", `paradigm == "logica" && file == ""`})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("list: %v\n%s", err, out.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "logica") {
		t.Errorf("unexpected listing:\n%s", out.String())
	}
}
