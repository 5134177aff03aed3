// Package nav implements the view navigation state machine: which screen is
// mounted and which file and paradigm are selected.
//
// Two shapes of the same machine are supported. The flat variant goes
// straight from a paradigm menu to a walkthrough. The drill-down variant goes
// from the architecture map to a file, then to a paradigm for that file.
//
//	flat:      Overview ⇄ Walkthrough
//	drilldown: Overview ⇄ FileDetail ⇄ Walkthrough
package nav

import (
	"fmt"

	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
)

// Mode is the top-level screen.
type Mode int

const (
	ModeOverview Mode = iota
	ModeFileDetail
	ModeWalkthrough
)

func (m Mode) String() string {
	switch m {
	case ModeOverview:
		return "overview"
	case ModeFileDetail:
		return "file-detail"
	case ModeWalkthrough:
		return "walkthrough"
	}
	return "unknown"
}

// Variant selects the shape of the state machine.
type Variant int

const (
	VariantFlat Variant = iota
	VariantDrillDown
)

func (v Variant) String() string {
	if v == VariantDrillDown {
		return "drilldown"
	}
	return "flat"
}

// ParseVariant converts "flat" or "drilldown" into a Variant.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "", "flat":
		return VariantFlat, nil
	case "drilldown", "drill-down", "mapa":
		return VariantDrillDown, nil
	}
	return VariantFlat, fmt.Errorf("unknown variant %q: expected flat or drilldown", s)
}

// Advisory titles. Messages always name the offending identifier.
const (
	TitleSupportFile   = "Archivo de Soporte"
	TitleNoWalkthrough = "Contenido no disponible"
)

// State is the navigation state. FileID is set only in the drill-down
// variant after a file was selected; ParadigmID only in ModeWalkthrough.
type State struct {
	Mode       Mode
	FileID     string
	ParadigmID string
}

// Resolver is the read-only content the controller navigates.
// *catalogue.Catalogue satisfies it.
type Resolver interface {
	Resolve(fileID, paradigmID string) (*catalogue.Document, bool)
	File(id string) (catalogue.File, bool)
}

// Advisor receives notices for selections that cannot be satisfied.
// *advisory.Advisory satisfies it.
type Advisor interface {
	Open(title, message string)
}

// Controller is the single owner of State.
type Controller struct {
	variant  Variant
	content  Resolver
	advisor  Advisor
	state    State
	doc      *catalogue.Document
	gen      int
	onChange func(from, to State)
}

// New creates a controller in ModeOverview.
func New(variant Variant, content Resolver, advisor Advisor) *Controller {
	return &Controller{
		variant: variant,
		content: content,
		advisor: advisor,
	}
}

// OnChange registers a hook called after every state change.
func (c *Controller) OnChange(fn func(from, to State)) {
	c.onChange = fn
}

// Variant returns the machine shape.
func (c *Controller) Variant() Variant { return c.variant }

// State returns a copy of the current state.
func (c *Controller) State() State { return c.state }

// Document returns the active document; nil outside ModeWalkthrough.
func (c *Controller) Document() *catalogue.Document { return c.doc }

// Generation increments every time the active document is replaced.
// Step trackers compare it to know when to reset.
func (c *Controller) Generation() int { return c.gen }

// SetContent swaps the content source (e.g. after a reload). If the active
// walkthrough no longer resolves, the controller returns to the overview and
// reports false; otherwise the document is re-resolved from the new content.
func (c *Controller) SetContent(content Resolver) bool {
	c.content = content
	switch c.state.Mode {
	case ModeWalkthrough:
		doc, ok := content.Resolve(c.state.FileID, c.state.ParadigmID)
		if !ok {
			c.GoToOverview()
			return false
		}
		c.setDocument(doc)
	case ModeFileDetail:
		if f, ok := content.File(c.state.FileID); !ok || !f.Walkthrough {
			c.GoToOverview()
			return false
		}
	}
	return true
}

// GoToOverview returns to the top-level screen and clears all selections.
func (c *Controller) GoToOverview() {
	c.transition(State{Mode: ModeOverview})
	c.setDocument(nil)
}

// SelectFile moves to the paradigm picker of a file. Support files and
// unknown ids leave the mode unchanged and open the advisory instead.
// In the flat variant it does nothing.
func (c *Controller) SelectFile(fileID string) bool {
	if c.variant != VariantDrillDown {
		return false
	}
	f, ok := c.content.File(fileID)
	if !ok || !f.Walkthrough {
		c.advise(TitleSupportFile, fmt.Sprintf(
			"%s es un archivo de soporte (datos o configuración) y no tiene un recorrido de código asociado.", fileID))
		return false
	}
	c.transition(State{Mode: ModeFileDetail, FileID: fileID})
	return true
}

// SelectParadigm opens the walkthrough for the selected file (if any) and
// paradigm. An unresolvable composite leaves the mode unchanged and opens
// the advisory.
func (c *Controller) SelectParadigm(paradigmID string) bool {
	fileID := ""
	if c.variant == VariantDrillDown {
		fileID = c.state.FileID
	}
	doc, ok := c.content.Resolve(fileID, paradigmID)
	if !ok {
		key := catalogue.Key{File: fileID, Paradigm: paradigmID}
		c.advise(TitleNoWalkthrough, fmt.Sprintf("No hay un recorrido disponible para %s.", key))
		return false
	}
	c.transition(State{Mode: ModeWalkthrough, FileID: fileID, ParadigmID: paradigmID})
	c.setDocument(doc)
	return true
}

// GoBack moves exactly one level up. Back from the overview is a no-op.
func (c *Controller) GoBack() {
	switch c.state.Mode {
	case ModeWalkthrough:
		if c.variant == VariantDrillDown && c.state.FileID != "" {
			c.transition(State{Mode: ModeFileDetail, FileID: c.state.FileID})
			c.setDocument(nil)
			return
		}
		c.GoToOverview()
	case ModeFileDetail:
		c.GoToOverview()
	}
}

func (c *Controller) transition(to State) {
	from := c.state
	c.state = to
	if c.onChange != nil && from != to {
		c.onChange(from, to)
	}
}

func (c *Controller) setDocument(doc *catalogue.Document) {
	if doc == c.doc {
		return
	}
	c.doc = doc
	c.gen++
}

func (c *Controller) advise(title, message string) {
	if c.advisor != nil {
		c.advisor.Open(title, message)
	}
}
