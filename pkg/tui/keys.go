package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ormasoftchile/paradigmas/pkg/nav"
)

// keyMap holds all TUI key bindings.
type keyMap struct {
	Select   key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Quick    key.Binding
	Back     key.Binding
	Overview key.Binding
	NextStep key.Binding
	PrevStep key.Binding
	PgUp     key.Binding
	PgDown   key.Binding
	Top      key.Binding
	CodeUp   key.Binding
	CodeDown key.Binding
	Ack      key.Binding
	Close    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "abrir"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "arriba"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "abajo"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "izquierda"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "derecha"),
	),
	Quick: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "elegir"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "volver"),
	),
	Overview: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "inicio"),
	),
	NextStep: key.NewBinding(
		key.WithKeys("n", "tab"),
		key.WithHelp("n", "siguiente paso"),
	),
	PrevStep: key.NewBinding(
		key.WithKeys("p", "shift+tab"),
		key.WithHelp("p", "paso anterior"),
	),
	PgUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("PgUp", "subir"),
	),
	PgDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("PgDn", "bajar"),
	),
	Top: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "principio"),
	),
	CodeUp: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "código arriba"),
	),
	CodeDown: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "código abajo"),
	),
	Ack: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "entendido"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "x"),
		key.WithHelp("esc/x", "cerrar"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "ayuda"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "salir"),
	),
}

// matchKey checks if a key message matches a key.Binding.
func matchKey(msg tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(msg, binding)
}

// contextBindings returns the bindings shown in the key bar for a screen.
func contextBindings(mode nav.Mode, variant nav.Variant, advisoryOpen bool) []key.Binding {
	if advisoryOpen {
		return []key.Binding{keys.Ack, keys.Close}
	}
	switch mode {
	case nav.ModeWalkthrough:
		return []key.Binding{keys.Up, keys.Down, keys.NextStep, keys.PrevStep, keys.CodeDown, keys.Back, keys.Quit, keys.Help}
	case nav.ModeFileDetail:
		return []key.Binding{keys.Left, keys.Right, keys.Quick, keys.Select, keys.Back, keys.Quit, keys.Help}
	}
	if variant == nav.VariantDrillDown {
		return []key.Binding{keys.Up, keys.Down, keys.Select, keys.Quit, keys.Help}
	}
	return []key.Binding{keys.Left, keys.Right, keys.Quick, keys.Select, keys.Quit, keys.Help}
}

// fullHelp groups every binding for the expanded help view.
func fullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Up, keys.Down, keys.Left, keys.Right, keys.Select, keys.Quick},
		{keys.NextStep, keys.PrevStep, keys.PgUp, keys.PgDown, keys.Top, keys.CodeUp, keys.CodeDown},
		{keys.Back, keys.Overview, keys.Close, keys.Help, keys.Quit},
	}
}
