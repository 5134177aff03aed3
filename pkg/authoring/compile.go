package authoring

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
)

// outputLanguages tag a fenced block as a console output sample.
var outputLanguages = []string{"output", "console", "salida"}

// Options identify the document being compiled.
type Options struct {
	Paradigm string
	File     string // empty for a paradigm-level document
	Color    catalogue.Color
	// Title is used when the source has no H1.
	Title string
}

// Result holds the compiled document and non-fatal findings.
type Result struct {
	Document *catalogue.Document
	Warnings []string
}

// CompileFile reads and compiles a Markdown walkthrough.
func CompileFile(path string, opts Options) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read walkthrough: %w", err)
	}
	return Compile(source, opts)
}

// Compile turns Markdown into a document: each H2 becomes a step, its
// paragraphs the description, its first non-output fenced block the code and
// a block tagged output, console or salida the console output.
func Compile(source []byte, opts Options) (*Result, error) {
	if opts.Paradigm == "" {
		return nil, fmt.Errorf("paradigm is required")
	}
	if opts.Color == "" {
		opts.Color = catalogue.ColorSlate
	}
	if !slices.Contains(catalogue.Colors, opts.Color) {
		return nil, fmt.Errorf("unknown color %q", opts.Color)
	}

	ir, err := Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse walkthrough: %w", err)
	}
	if len(ir.Sections) == 0 {
		return nil, fmt.Errorf("walkthrough has no steps: add a `## heading` per step")
	}

	res := &Result{}
	doc := &catalogue.Document{
		Paradigm: opts.Paradigm,
		File:     opts.File,
		Title:    ir.Title,
		Color:    opts.Color,
	}
	if doc.Title == "" {
		doc.Title = opts.Title
	}
	if doc.Title == "" {
		doc.Title = opts.Paradigm
		res.Warnings = append(res.Warnings, "no `# title`; using the paradigm id")
	}

	for i, sec := range ir.Sections {
		step := catalogue.Step{
			ID:          strconv.Itoa(i + 1),
			Title:       sec.Heading,
			Description: strings.Join(sec.Paragraphs, "\n\n"),
		}
		for _, cb := range sec.CodeBlocks {
			isOutput := slices.Contains(outputLanguages, cb.Language)
			switch {
			case isOutput && step.Output == "":
				step.Output = cb.Content
			case !isOutput && step.Code == "":
				step.Code = cb.Content
			default:
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("line %d: step %d %q has more than one %s block; extra block ignored",
						cb.Line+1, i+1, sec.Heading, blockKind(isOutput)))
			}
		}
		if step.Code == "" {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("line %d: step %d %q has no code block", sec.Line+1, i+1, sec.Heading))
		}
		doc.Steps = append(doc.Steps, step)
	}

	res.Document = doc
	return res, nil
}

func blockKind(output bool) string {
	if output {
		return "output"
	}
	return "code"
}

// Marshal encodes a document as YAML, ready to be pasted under
// `documents:` of a catalogue or loaded with catalogue.LoadDocument.
func Marshal(doc *catalogue.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
