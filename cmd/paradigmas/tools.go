package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ormasoftchile/paradigmas/pkg/authoring"
	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
	"github.com/ormasoftchile/paradigmas/pkg/diagram"
)

// reportValidation prints warnings and numbered errors to w and returns an
// error when any error-level finding is present.
func reportValidation(w io.Writer, errs []*catalogue.ValidationError) error {
	var errors, warnings []*catalogue.ValidationError
	for _, e := range errs {
		if e.Severity == "warning" {
			warnings = append(warnings, e)
		} else {
			errors = append(errors, e)
		}
	}
	for _, wn := range warnings {
		fmt.Fprintf(w, "  ⚠ [%s] %s\n", wn.Phase, wn.Message)
		if wn.Path != "" {
			fmt.Fprintf(w, "    at: %s\n", wn.Path)
		}
	}
	if len(errors) == 0 {
		return nil
	}
	fmt.Fprintf(w, "Validation failed: %d error(s)\n\n", len(errors))
	for i, e := range errors {
		fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, e.Phase, e.Message)
		if e.Path != "" {
			fmt.Fprintf(w, "     at: %s\n", e.Path)
		}
	}
	return fmt.Errorf("validation failed with %d error(s)", len(errors))
}

// --- validate ---

var validateCmd = &cobra.Command{
	Use:   "validate [catalogue.yaml]",
	Short: "Validate a catalogue YAML file (default: the configured or built-in catalogue)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := cfg.Catalogue
	if len(args) == 1 {
		path = args[0]
	}

	var (
		c    *catalogue.Catalogue
		errs []*catalogue.ValidationError
		name = path
	)
	if path == "" {
		name = "built-in catalogue"
		c = catalogue.Default()
		errs = catalogue.Validate(c)
	} else {
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".md" || ext == ".markdown" {
			return fmt.Errorf("%s is a Markdown file, not a catalogue.\nDid you mean: paradigmas compile %s --paradigm <id>", path, path)
		}
		c, errs = catalogue.ValidateFile(path)
	}

	if err := reportValidation(cmd.ErrOrStderr(), errs); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid (%d paradigms, %d files, %d documents)\n",
		name, len(c.Paradigms), len(c.Files), len(c.Documents))
	return nil
}

// --- schema ---

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the catalogue JSON Schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := catalogue.GenerateJSONSchema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

// --- map ---

var mapFormat string

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Render the architecture map of the catalogue's files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalogue(cfg.Catalogue, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		out, err := diagram.Generate(cat, diagram.Format(mapFormat))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

// --- list ---

var listWhere string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List walkthrough documents",
	Long: "List walkthrough documents, optionally filtered by an expression over\n" +
		"paradigm, file, title, color, steps and hasOutput, e.g.\n\n" +
		"  paradigmas list --where 'file != \"\" && steps > 1'",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalogue(cfg.Catalogue, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		docs, err := cat.Filter(listWhere)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tTITLE\tSTEPS\tOUTPUT")
		for _, d := range docs {
			out := "-"
			if d.HasOutput() {
				out = "sí"
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", d.Key(), d.Title, len(d.Steps), out)
		}
		return tw.Flush()
	},
}

// --- compile ---

var (
	compileParadigm string
	compileFile     string
	compileColor    string
	compileTitle    string
	compileOut      string
)

var compileCmd = &cobra.Command{
	Use:   "compile <walkthrough.md>",
	Short: "Compile a Markdown walkthrough into a catalogue document",
	Long: "Compile a Markdown walkthrough into a catalogue document.\n\n" +
		"Each `## heading` becomes a step. Paragraphs form the description, the first\n" +
		"fenced block is the code and a block tagged output, console or salida is the\n" +
		"console output.",
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func runCompile(cmd *cobra.Command, args []string) error {
	res, err := authoring.CompileFile(args[0], authoring.Options{
		Paradigm: compileParadigm,
		File:     compileFile,
		Color:    catalogue.Color(compileColor),
		Title:    compileTitle,
	})
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "  ⚠ %s\n", w)
	}

	data, err := authoring.Marshal(res.Document)
	if err != nil {
		return err
	}
	if compileOut == "" || compileOut == "-" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(compileOut, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", compileOut, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d steps → %s\n", res.Document.Key(), len(res.Document.Steps), compileOut)
	return nil
}

func init() {
	mapCmd.Flags().StringVar(&mapFormat, "format", string(diagram.FormatASCII), "Diagram format: ascii or mermaid")
	listCmd.Flags().StringVar(&listWhere, "where", "", "Filter expression")

	compileCmd.Flags().StringVar(&compileParadigm, "paradigm", "", "Paradigm id of the document (required)")
	compileCmd.Flags().StringVar(&compileFile, "file", "", "File id for a file-specific walkthrough")
	compileCmd.Flags().StringVar(&compileColor, "color", "", "Theme color (default slate)")
	compileCmd.Flags().StringVar(&compileTitle, "title", "", "Title when the source has no # heading")
	compileCmd.Flags().StringVarP(&compileOut, "out", "o", "", "Output path (default stdout)")
	_ = compileCmd.MarkFlagRequired("paradigm")
}
