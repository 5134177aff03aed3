// Package catalogue defines the read-only content of a presentation: the
// paradigm menu, the file registry of the presented project and the
// step-by-step walkthrough documents keyed by file × paradigm.
package catalogue

// APIVersion is the only catalogue document version understood by this build.
const APIVersion = "catalogue/v0"

// ---------------------------------------------------------------------------
// Catalogue
// ---------------------------------------------------------------------------

// Catalogue is the top-level catalogue/v0 document.
type Catalogue struct {
	APIVersion string     `yaml:"apiVersion" json:"apiVersion"`
	Meta       Meta       `yaml:"meta"       json:"meta"`
	Paradigms  []Paradigm `yaml:"paradigms"  json:"paradigms"`
	Files      []File     `yaml:"files,omitempty" json:"files,omitempty"`
	Documents  []Document `yaml:"documents"  json:"documents"`
}

// Meta carries display metadata for the overview screens.
type Meta struct {
	Title    string `yaml:"title"              json:"title"`
	Subtitle string `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Variant  string `yaml:"variant,omitempty"  json:"variant,omitempty" jsonschema:"enum=flat,enum=drilldown"`
}

// ---------------------------------------------------------------------------
// Paradigms and files
// ---------------------------------------------------------------------------

// Paradigm is one entry of the closed paradigm menu.
type Paradigm struct {
	ID          string `yaml:"id"          json:"id"`
	Label       string `yaml:"label"       json:"label"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Icon        Icon   `yaml:"icon"        json:"icon"`
	Color       Color  `yaml:"color"       json:"color"`
}

// File is one entry of the file registry of the presented project.
// Walkthrough is false for support files (data, configuration) that have no
// code to walk through.
type File struct {
	ID          string   `yaml:"id"          json:"id"`
	Description string   `yaml:"description" json:"description"`
	Paradigm    string   `yaml:"paradigm"    json:"paradigm"`
	Layer       Layer    `yaml:"layer"       json:"layer"`
	Icon        Icon     `yaml:"icon,omitempty"    json:"icon,omitempty"`
	Imports     []string `yaml:"imports,omitempty" json:"imports,omitempty"`
	Walkthrough bool     `yaml:"walkthrough" json:"walkthrough"`
}

// ---------------------------------------------------------------------------
// Documents
// ---------------------------------------------------------------------------

// Document is a presentation document: a titled, colored, ordered list of
// steps. File is empty for paradigm-level documents.
type Document struct {
	Paradigm string `yaml:"paradigm"       json:"paradigm"`
	File     string `yaml:"file,omitempty" json:"file,omitempty"`
	Title    string `yaml:"title"          json:"title"`
	Color    Color  `yaml:"color"          json:"color"`
	Steps    []Step `yaml:"steps"          json:"steps"`
}

// Key returns the composite identifier of the document.
func (d *Document) Key() Key {
	return Key{File: d.File, Paradigm: d.Paradigm}
}

// HasOutput reports whether any step carries a console output sample.
func (d *Document) HasOutput() bool {
	for _, s := range d.Steps {
		if s.HasOutput() {
			return true
		}
	}
	return false
}

// Step is one unit of a walkthrough.
type Step struct {
	ID          string `yaml:"id"          json:"id"`
	Title       string `yaml:"title"       json:"title"`
	Description string `yaml:"description" json:"description"`
	Code        string `yaml:"code"        json:"code"`
	Output      string `yaml:"output,omitempty" json:"output,omitempty"`
}

// HasOutput reports whether the step has a console output sample.
func (s Step) HasOutput() bool {
	return s.Output != ""
}

// Key is the composite identifier of a document: an optional file id and a
// paradigm id.
type Key struct {
	File     string
	Paradigm string
}

func (k Key) String() string {
	if k.File == "" {
		return k.Paradigm
	}
	return k.File + "/" + k.Paradigm
}

// ---------------------------------------------------------------------------
// Closed tag sets
// ---------------------------------------------------------------------------

// Color is a theme key. It only selects styles, never behavior.
type Color string

const (
	ColorBlue    Color = "blue"
	ColorPurple  Color = "purple"
	ColorEmerald Color = "emerald"
	ColorRose    Color = "rose"
	ColorAmber   Color = "amber"
	ColorSlate   Color = "slate"
	ColorCyan    Color = "cyan"
)

// Colors lists every valid Color.
var Colors = []Color{ColorBlue, ColorPurple, ColorEmerald, ColorRose, ColorAmber, ColorSlate, ColorCyan}

// Icon is a picker glyph key.
type Icon string

const (
	IconCode     Icon = "code"
	IconBox      Icon = "box"
	IconBranch   Icon = "branch"
	IconCPU      Icon = "cpu"
	IconTerminal Icon = "terminal"
	IconDatabase Icon = "database"
	IconSettings Icon = "settings"
)

// Icons lists every valid Icon.
var Icons = []Icon{IconCode, IconBox, IconBranch, IconCPU, IconTerminal, IconDatabase, IconSettings}

// Layer is a row of the architecture map.
type Layer string

const (
	LayerEntry     Layer = "entrada"
	LayerParadigms Layer = "paradigmas"
	LayerIO        Layer = "io"
	LayerBase      Layer = "fundacion"
)

// Layers lists every valid Layer in map order, top to bottom.
var Layers = []Layer{LayerEntry, LayerParadigms, LayerIO, LayerBase}

// LayerTitle returns the display heading of a map layer.
func LayerTitle(l Layer) string {
	switch l {
	case LayerEntry:
		return "Punto de Entrada"
	case LayerParadigms:
		return "Paradigmas Principales"
	case LayerIO:
		return "Interfaz de Usuario (I/O)"
	case LayerBase:
		return "Fundación del Sistema"
	}
	return string(l)
}
