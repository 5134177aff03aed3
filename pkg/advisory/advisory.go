// Package advisory holds the state of the single blocking notice dialog.
package advisory

// Via identifies how a dialog was dismissed.
type Via int

const (
	// ViaAction is the dialog's explicit acknowledge control ("Entendido").
	ViaAction Via = iota
	// ViaClose is the secondary dismiss affordance (the corner "x", Esc).
	ViaClose
	// ViaBackdrop is a press on the dimmed area around the dialog.
	ViaBackdrop
)

func (v Via) String() string {
	switch v {
	case ViaAction:
		return "action"
	case ViaClose:
		return "close"
	case ViaBackdrop:
		return "backdrop"
	}
	return "unknown"
}

// Advisory is a single-slot notice. Opening while open replaces the content;
// there is no queue and no auto-dismiss. The zero value is a closed advisory.
type Advisory struct {
	open    bool
	title   string
	message string
	opened  int

	onOpen    func(title, message string)
	onDismiss func(via Via)
}

// New returns a closed advisory.
func New() *Advisory {
	return &Advisory{}
}

// OnOpen registers a hook called after every Open.
func (a *Advisory) OnOpen(fn func(title, message string)) {
	a.onOpen = fn
}

// OnDismiss registers a hook called when an open advisory is dismissed.
func (a *Advisory) OnDismiss(fn func(via Via)) {
	a.onDismiss = fn
}

// Open shows the advisory with the given content.
func (a *Advisory) Open(title, message string) {
	a.open = true
	a.title = title
	a.message = message
	a.opened++
	if a.onOpen != nil {
		a.onOpen(title, message)
	}
}

// Close hides the advisory. Closing a closed advisory is a no-op.
func (a *Advisory) Close() {
	a.Dismiss(ViaAction)
}

// Dismiss hides the advisory through one of the three equivalent paths.
// It reports whether the advisory was open.
func (a *Advisory) Dismiss(via Via) bool {
	if !a.open {
		return false
	}
	a.open = false
	if a.onDismiss != nil {
		a.onDismiss(via)
	}
	return true
}

// IsOpen reports whether the advisory is shown.
func (a *Advisory) IsOpen() bool { return a.open }

// Title returns the displayed title. Meaningful only while open.
func (a *Advisory) Title() string { return a.title }

// Message returns the displayed message. Meaningful only while open.
func (a *Advisory) Message() string { return a.message }

// Opened returns how many times Open has been called.
func (a *Advisory) Opened() int { return a.opened }
