package catalogue

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
)

// filterEnv is the variable set visible to a filter expression.
func filterEnv(d *Document) map[string]any {
	return map[string]any{
		"paradigm":  d.Paradigm,
		"file":      d.File,
		"title":     d.Title,
		"color":     string(d.Color),
		"steps":     len(d.Steps),
		"hasOutput": d.HasOutput(),
	}
}

// Filter returns the documents matching a boolean expr-lang expression over
// paradigm, file, title, color, steps and hasOutput. An empty expression
// matches every document.
//
//	paradigm == "funcional" && steps > 1
//	file != "" and hasOutput
func (c *Catalogue) Filter(where string) ([]*Document, error) {
	var out []*Document
	if strings.TrimSpace(where) == "" {
		for i := range c.Documents {
			out = append(out, &c.Documents[i])
		}
		return out, nil
	}

	program, err := expr.Compile(where, expr.Env(filterEnv(&Document{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", where, err)
	}
	for i := range c.Documents {
		d := &c.Documents[i]
		result, err := expr.Run(program, filterEnv(d))
		if err != nil {
			return nil, fmt.Errorf("evaluate filter on %s: %w", d.Key(), err)
		}
		if matched, _ := result.(bool); matched {
			out = append(out, d)
		}
	}
	return out, nil
}
