package catalogue

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// ValidationError represents a single validation error with location context.
type ValidationError struct {
	Phase    string `json:"phase"` // structural, semantic, domain
	Path     string `json:"path"`  // JSON-path-like location (e.g., "documents[0].steps[1].id")
	Message  string `json:"message"`
	Severity string `json:"severity"` // error, warning
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Phase, e.Path, e.Message)
}

// HasErrors reports whether errs contains anything more severe than a warning.
func HasErrors(errs []*ValidationError) bool {
	for _, e := range errs {
		if e.Severity != "warning" {
			return true
		}
	}
	return false
}

// ValidateFile performs the full 3-phase validation pipeline on a catalogue file.
// Phase 1: Structural (strict YAML decode)
// Phase 2: Semantic (JSON Schema validation)
// Phase 3: Domain (custom Go rules)
func ValidateFile(path string) (*Catalogue, []*ValidationError) {
	c, err := LoadFile(path)
	if err != nil {
		return nil, []*ValidationError{{
			Phase:    "structural",
			Message:  err.Error(),
			Severity: "error",
		}}
	}
	return c, Validate(c)
}

// Validate runs the semantic and domain phases on an already decoded catalogue.
func Validate(c *Catalogue) []*ValidationError {
	var all []*ValidationError
	all = append(all, validateSemantic(c)...)
	all = append(all, ValidateDomain(c)...)
	if len(all) == 0 {
		return nil
	}
	return all
}

// validateSemantic validates the catalogue against the generated JSON Schema.
func validateSemantic(c *Catalogue) []*ValidationError {
	semErr := func(format string, args ...any) []*ValidationError {
		return []*ValidationError{{
			Phase:    "semantic",
			Message:  fmt.Sprintf(format, args...),
			Severity: "error",
		}}
	}

	data, err := json.Marshal(c)
	if err != nil {
		return semErr("marshal for schema validation: %v", err)
	}
	schemaJSON, err := GenerateJSONSchema()
	if err != nil {
		return semErr("generate schema: %v", err)
	}

	var schemaDoc interface{}
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return semErr("unmarshal schema: %v", err)
	}
	comp := sjsonschema.NewCompiler()
	if err := comp.AddResource("catalogue-v0.json", schemaDoc); err != nil {
		return semErr("add schema resource: %v", err)
	}
	sch, err := comp.Compile("catalogue-v0.json")
	if err != nil {
		return semErr("compile schema: %v", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return semErr("unmarshal document: %v", err)
	}

	if err := sch.Validate(doc); err != nil {
		ve, ok := err.(*sjsonschema.ValidationError)
		if !ok {
			return semErr("%v", err)
		}
		var errs []*ValidationError
		for _, cause := range flattenValidationErrors(ve) {
			errs = append(errs, &ValidationError{
				Phase:    "semantic",
				Path:     strings.Join(cause.InstanceLocation, "/"),
				Message:  fmt.Sprintf("%v", cause.ErrorKind),
				Severity: "error",
			})
		}
		return errs
	}
	return nil
}

// flattenValidationErrors recursively collects all leaf validation errors.
func flattenValidationErrors(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}

// ValidateDomain performs Phase 3 domain-level validation.
// Returns a slice of errors; empty means valid.
func ValidateDomain(c *Catalogue) []*ValidationError {
	var errs []*ValidationError
	add := func(severity, path, format string, args ...any) {
		errs = append(errs, &ValidationError{
			Phase:    "domain",
			Path:     path,
			Message:  fmt.Sprintf(format, args...),
			Severity: severity,
		})
	}

	if c.APIVersion != APIVersion {
		add("error", "apiVersion", "unrecognized apiVersion %q, expected %q", c.APIVersion, APIVersion)
	}
	if strings.TrimSpace(c.Meta.Title) == "" {
		add("error", "meta.title", "title is required")
	}
	if v := c.Meta.Variant; v != "" && v != "flat" && v != "drilldown" {
		add("error", "meta.variant", "unknown variant %q, expected flat or drilldown", v)
	}

	// Paradigms
	if len(c.Paradigms) == 0 {
		add("error", "paradigms", "at least one paradigm is required")
	}
	seenParadigm := make(map[string]bool)
	for i, p := range c.Paradigms {
		path := fmt.Sprintf("paradigms[%d]", i)
		if p.ID == "" {
			add("error", path+".id", "id is required")
		} else if seenParadigm[p.ID] {
			add("error", path+".id", "duplicate paradigm id %q", p.ID)
		}
		seenParadigm[p.ID] = true
		if !slices.Contains(Colors, p.Color) {
			add("error", path+".color", "unknown color %q", p.Color)
		}
		if !slices.Contains(Icons, p.Icon) {
			add("error", path+".icon", "unknown icon %q", p.Icon)
		}
	}

	// File registry
	seenFile := make(map[string]bool)
	for _, f := range c.Files {
		seenFile[f.ID] = true
	}
	dupFile := make(map[string]bool)
	for i, f := range c.Files {
		path := fmt.Sprintf("files[%d]", i)
		if f.ID == "" {
			add("error", path+".id", "id is required")
		} else if dupFile[f.ID] {
			add("error", path+".id", "duplicate file id %q", f.ID)
		}
		dupFile[f.ID] = true
		if !slices.Contains(Layers, f.Layer) {
			add("error", path+".layer", "unknown layer %q", f.Layer)
		}
		if f.Icon != "" && !slices.Contains(Icons, f.Icon) {
			add("error", path+".icon", "unknown icon %q", f.Icon)
		}
		// Support files may carry a free tag (e.g. "datos"); code files must
		// point at a paradigm of the menu.
		if f.Walkthrough && !seenParadigm[f.Paradigm] {
			add("error", path+".paradigm", "unknown paradigm %q", f.Paradigm)
		}
		for j, imp := range f.Imports {
			if !seenFile[imp] {
				add("warning", fmt.Sprintf("%s.imports[%d]", path, j), "import %q is not in the file registry", imp)
			}
		}
	}

	// Documents
	seenKey := make(map[Key]bool)
	for i := range c.Documents {
		d := &c.Documents[i]
		path := fmt.Sprintf("documents[%d]", i)
		if !seenParadigm[d.Paradigm] {
			add("error", path+".paradigm", "unknown paradigm %q", d.Paradigm)
		}
		if d.File != "" {
			f, ok := c.File(d.File)
			switch {
			case !ok:
				add("error", path+".file", "unknown file %q", d.File)
			case !f.Walkthrough:
				add("error", path+".file", "file %q is a support file and cannot carry a walkthrough", d.File)
			}
		}
		if seenKey[d.Key()] {
			add("error", path, "duplicate document for %s", d.Key())
		}
		seenKey[d.Key()] = true
		if !slices.Contains(Colors, d.Color) {
			add("error", path+".color", "unknown color %q", d.Color)
		}
		if len(d.Steps) == 0 {
			add("error", path+".steps", "document %s has no steps", d.Key())
		}
		seenStep := make(map[string]bool)
		for j, s := range d.Steps {
			spath := fmt.Sprintf("%s.steps[%d]", path, j)
			if s.ID == "" {
				add("error", spath+".id", "id is required")
			} else if seenStep[s.ID] {
				add("error", spath+".id", "duplicate step id %q", s.ID)
			}
			seenStep[s.ID] = true
			if strings.TrimSpace(s.Code) == "" {
				add("warning", spath+".code", "step %q has no code sample", s.ID)
			}
		}
	}

	// Every walkthrough file should open at least one paradigm.
	for i, f := range c.Files {
		if !f.Walkthrough {
			continue
		}
		reachable := false
		for _, p := range c.Paradigms {
			if _, ok := c.Resolve(f.ID, p.ID); ok {
				reachable = true
				break
			}
		}
		if !reachable {
			add("warning", fmt.Sprintf("files[%d]", i), "file %q has no resolvable walkthrough", f.ID)
		}
	}

	return errs
}
