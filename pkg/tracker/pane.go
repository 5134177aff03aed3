package tracker

import (
	"fmt"

	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
)

// PlaceholderText is shown in place of the code panel when a document has no
// step to show.
const PlaceholderText = "No hay contenido disponible"

// Panel is what the right pane shows for the active step.
type Panel struct {
	Title       string
	Code        string
	Output      string
	HasOutput   bool
	Placeholder bool
	Step        int
	Total       int
	// Key identifies the displayed content. Renderers rebuild both
	// sub-panels whenever it changes.
	Key string
}

// Pane projects the right pane for step active of doc.
func Pane(doc *catalogue.Document, active int) Panel {
	if doc == nil || len(doc.Steps) == 0 || active < 0 || active >= len(doc.Steps) {
		p := Panel{Placeholder: true, Code: PlaceholderText, Key: "placeholder"}
		if doc != nil {
			p.Total = len(doc.Steps)
			p.Key = fmt.Sprintf("%s#placeholder", doc.Key())
		}
		return p
	}
	s := doc.Steps[active]
	return Panel{
		Title:     s.Title,
		Code:      s.Code,
		Output:    s.Output,
		HasOutput: s.HasOutput(),
		Step:      active,
		Total:     len(doc.Steps),
		Key:       fmt.Sprintf("%s#%d", doc.Key(), active),
	}
}
