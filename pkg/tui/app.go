package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/ormasoftchile/paradigmas/pkg/advisory"
	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
	"github.com/ormasoftchile/paradigmas/pkg/nav"
	"github.com/ormasoftchile/paradigmas/pkg/picker"
	"github.com/ormasoftchile/paradigmas/pkg/watch"
)

// --- Tea messages ---

// reloadMsg carries the outcome of a catalogue reload from the watcher.
type reloadMsg struct {
	watch.Reload
}

// TitleReloadFailed is the advisory title shown when a reload is rejected.
const TitleReloadFailed = "Catálogo no recargado"

// --- Model ---

// Options holds the parameters needed to launch the TUI.
type Options struct {
	Catalogue    *catalogue.Catalogue
	Variant      nav.Variant
	Compact      bool
	Mouse        bool
	Style        string
	BandMargin   int
	CodeLanguage string
	// WatchPath enables hot reload of the catalogue file.
	WatchPath string
	Logger    *zap.Logger
}

// Model is the top-level Bubble Tea model for the TUI.
type Model struct {
	opts   Options
	cat    *catalogue.Catalogue
	logger *zap.Logger
	md     *markdown

	// State owners
	nav      *nav.Controller
	advisory *advisory.Advisory

	// Pickers
	paradigms *picker.Picker
	files     *picker.Picker

	// Walkthrough screen, nil outside ModeWalkthrough.
	walk    *walkthrough
	walkGen int

	help     help.Model
	showHelp bool

	// Layout
	compact bool // single-column mode for narrow terminals
	width   int
	height  int
}

// New builds the model for a catalogue. It does not start a program.
func New(opts Options) Model {
	if opts.Catalogue == nil {
		opts.Catalogue = catalogue.Default()
	}
	if opts.CodeLanguage == "" {
		opts.CodeLanguage = "javascript"
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	adv := advisory.New()
	adv.OnOpen(func(title, message string) {
		logger.Info("advisory opened", zap.String("title", title), zap.String("message", message))
	})
	adv.OnDismiss(func(via advisory.Via) {
		logger.Debug("advisory dismissed", zap.Stringer("via", via))
	})

	ctl := nav.New(opts.Variant, opts.Catalogue, adv)
	ctl.OnChange(func(from, to nav.State) {
		logger.Info("navigation",
			zap.Stringer("from", from.Mode),
			zap.Stringer("to", to.Mode),
			zap.String("file", to.FileID),
			zap.String("paradigm", to.ParadigmID))
	})

	h := help.New()
	h.Styles.ShortKey = keyStyle
	h.Styles.ShortDesc = keyDescStyle
	h.Styles.FullKey = keyStyle
	h.Styles.FullDesc = keyDescStyle

	m := Model{
		opts:     opts,
		cat:      opts.Catalogue,
		logger:   logger,
		md:       newMarkdown(opts.Style),
		nav:      ctl,
		advisory: adv,
		help:     h,
		compact:  opts.Compact,
		walkGen:  ctl.Generation(),
	}
	m.buildPickers()
	return m
}

// buildPickers (re)creates both pickers from the current catalogue. Picker
// callbacks go straight to the navigation controller.
func (m *Model) buildPickers() {
	ctl := m.nav
	cols := 4
	if m.paradigms != nil {
		cols = m.paradigms.Columns()
	}
	m.paradigms = picker.New(paradigmEntries(m.cat), cols, func(id string) { ctl.SelectParadigm(id) })
	m.files = picker.New(fileEntries(m.cat), 1, func(id string) { ctl.SelectFile(id) })
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	m := New(opts)

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, progOpts...)

	if opts.WatchPath != "" {
		w, err := watch.New(opts.WatchPath, func(r watch.Reload) { p.Send(reloadMsg{r}) }, m.logger)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = w.Run(ctx) }()
	}

	_, err := p.Run()
	return err
}

// Init has no startup work: all content is in memory.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Auto-detect compact mode for narrow terminals
		m.compact = m.opts.Compact || msg.Width < 80
		m.help.Width = msg.Width
		m.layout()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case reloadMsg:
		m.handleReload(msg.Reload)
	}

	m.sync()
	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// The advisory blocks every other interaction while open.
	if m.advisory.IsOpen() {
		switch {
		case matchKey(msg, keys.Ack):
			m.advisory.Dismiss(advisory.ViaAction)
		case matchKey(msg, keys.Close):
			m.advisory.Dismiss(advisory.ViaClose)
		}
		return m, nil
	}

	switch {
	case matchKey(msg, keys.Quit):
		return m, tea.Quit
	case matchKey(msg, keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case matchKey(msg, keys.Overview):
		m.nav.GoToOverview()
		m.sync()
		return m, nil
	case matchKey(msg, keys.Back):
		m.nav.GoBack()
		m.sync()
		return m, nil
	}

	switch m.nav.State().Mode {
	case nav.ModeWalkthrough:
		m.walkthroughKey(msg)
	case nav.ModeFileDetail:
		pickerKey(m.paradigms, msg)
	default:
		if m.nav.Variant() == nav.VariantDrillDown {
			listKey(m.files, msg)
		} else {
			pickerKey(m.paradigms, msg)
		}
	}
	m.sync()
	return m, nil
}

// pickerKey drives a grid picker.
func pickerKey(p *picker.Picker, msg tea.KeyMsg) {
	switch {
	case matchKey(msg, keys.Up):
		p.Up()
	case matchKey(msg, keys.Down):
		p.Down()
	case matchKey(msg, keys.Left):
		p.Left()
	case matchKey(msg, keys.Right):
		p.Right()
	case matchKey(msg, keys.Select):
		p.Activate()
	case matchKey(msg, keys.Quick):
		p.ActivateAt(int(msg.String()[0] - '1'))
	}
}

// listKey drives the file list of the architecture map, where cards wrap
// across rows and every arrow walks the list.
func listKey(p *picker.Picker, msg tea.KeyMsg) {
	switch {
	case matchKey(msg, keys.Up), matchKey(msg, keys.Left):
		p.Up()
	case matchKey(msg, keys.Down), matchKey(msg, keys.Right):
		p.Down()
	case matchKey(msg, keys.Select):
		p.Activate()
	case matchKey(msg, keys.Quick):
		p.ActivateAt(int(msg.String()[0] - '1'))
	}
}

func (m *Model) walkthroughKey(msg tea.KeyMsg) {
	w := m.walk
	if w == nil {
		return
	}
	switch {
	case matchKey(msg, keys.Up):
		w.ScrollBy(-1)
	case matchKey(msg, keys.Down):
		w.ScrollBy(1)
	case matchKey(msg, keys.PgUp):
		w.PageUp()
	case matchKey(msg, keys.PgDown):
		w.PageDown()
	case matchKey(msg, keys.NextStep):
		w.NextStep()
	case matchKey(msg, keys.PrevStep):
		w.PrevStep()
	case matchKey(msg, keys.Top):
		w.ScrollToStep(0)
	case matchKey(msg, keys.CodeUp):
		w.CodeUp()
	case matchKey(msg, keys.CodeDown):
		w.CodeDown()
	}
}

// bodyTop is the screen row where the body starts, below the header.
const bodyTop = 1

// handleMouse routes presses and wheel events.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.advisory.IsOpen() {
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return
		}
		box := layoutAdvisory(m.advisory, m.width, m.height)
		if via, ok := box.hit(msg.X, msg.Y); ok {
			m.advisory.Dismiss(via)
		}
		return
	}

	if m.nav.State().Mode == nav.ModeWalkthrough {
		m.walkthroughMouse(msg)
		return
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	_, boxes := m.renderBody()
	for _, b := range boxes {
		if b.contains(msg.X, msg.Y-bodyTop) {
			m.activePicker().ActivateAt(b.index)
			return
		}
	}
}

func (m *Model) walkthroughMouse(msg tea.MouseMsg) {
	w := m.walk
	if w == nil {
		return
	}
	overLeft := msg.X < w.leftW
	if w.compact {
		overLeft = msg.Y-bodyTop < w.leftH
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if !overLeft {
			w.code, _ = w.code.Update(msg)
			return
		}
		if msg.Button == tea.MouseButtonWheelUp {
			w.ScrollBy(-3)
		} else {
			w.ScrollBy(3)
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || !overLeft {
			return
		}
		// border + title line above the first content row
		if b := w.BlockAt(msg.Y - bodyTop - 2); b >= 0 {
			w.ScrollToStep(b)
		}
	}
}

func (m *Model) activePicker() *picker.Picker {
	if m.nav.State().Mode == nav.ModeOverview && m.nav.Variant() == nav.VariantDrillDown {
		return m.files
	}
	return m.paradigms
}

// handleReload swaps in a reloaded catalogue, or keeps the current one and
// reports why the new one was rejected.
func (m *Model) handleReload(r watch.Reload) {
	if !r.OK() {
		m.logger.Warn("catalogue reload rejected", zap.String("path", r.Path), zap.Int("errors", len(r.Errors)))
		m.advisory.Open(TitleReloadFailed, "Se mantiene el catálogo anterior.\n"+r.Summary())
		return
	}
	m.logger.Info("catalogue reloaded", zap.String("path", r.Path))

	prev := m.nav.State()
	m.cat = r.Catalogue
	m.buildPickers()
	if !m.nav.SetContent(m.cat) && prev.Mode != nav.ModeOverview {
		m.advisory.Open(nav.TitleNoWalkthrough,
			fmt.Sprintf("El catálogo recargado ya no contiene %s.", catalogue.Key{File: prev.FileID, Paradigm: prev.ParadigmID}))
	}
	m.layout()
}

// sync mounts or unmounts the walkthrough screen when the active document
// changed. A new document always starts at step 0.
func (m *Model) sync() {
	if gen := m.nav.Generation(); gen != m.walkGen {
		m.walkGen = gen
		m.walk = nil
		if doc := m.nav.Document(); doc != nil {
			m.walk = newWalkthrough(doc, m.md, m.opts.CodeLanguage, m.opts.BandMargin, m.logger)
			m.layout()
		}
	}
}

// layout recalculates panel dimensions based on terminal size.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.paradigms.SetColumns(gridColumns(m.width, 4))
	if m.walk != nil {
		m.walk.SetSize(m.width, m.bodyHeight(), m.compact)
	}
}

// bodyHeight is the screen minus the header and key bar.
func (m Model) bodyHeight() int {
	h := m.height - bodyTop - lipgloss.Height(m.keyBar())
	if h < 4 {
		h = 4
	}
	return h
}

// renderBody renders the mounted screen and the hit boxes of its cards.
func (m Model) renderBody() (string, []hitBox) {
	h := m.bodyHeight()
	switch m.nav.State().Mode {
	case nav.ModeWalkthrough:
		if m.walk != nil {
			return m.walk.View(), nil
		}
	case nav.ModeFileDetail:
		return m.renderFileDetail(h)
	}
	if m.nav.Variant() == nav.VariantDrillDown {
		return m.renderMap(h)
	}
	return m.renderParadigmMenu(h)
}

// View renders the complete TUI.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	// The advisory takes over the full screen
	if m.advisory.IsOpen() {
		return renderAdvisory(layoutAdvisory(m.advisory, m.width, m.height), m.width, m.height)
	}

	body, _ := m.renderBody()
	body = lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(body)
	return m.renderHeader() + "\n" + body + "\n" + m.keyBar()
}

// keyBar renders the context-sensitive key hints.
func (m Model) keyBar() string {
	bindings := contextBindings(m.nav.State().Mode, m.nav.Variant(), m.advisory.IsOpen())
	if m.showHelp {
		return keyBarStyle.Render(m.help.FullHelpView(fullHelp()))
	}
	return keyBarStyle.Render(m.help.ShortHelpView(bindings))
}

// renderHeader builds the top header line.
func (m Model) renderHeader() string {
	title := headerStyle.Render("paradigmas")
	st := m.nav.State()
	mode := modeBadgeStyle.Render(modeLabel(st.Mode))

	var where string
	switch st.Mode {
	case nav.ModeFileDetail:
		where = st.FileID
	case nav.ModeWalkthrough:
		if doc := m.nav.Document(); doc != nil {
			where = doc.Title
			if doc.File != "" {
				where = doc.File + " · " + doc.Title
			}
		}
	default:
		where = m.cat.Meta.Title
	}

	var status string
	if m.walk != nil && st.Mode == nav.ModeWalkthrough {
		status = fmt.Sprintf("Paso %d/%d", m.walk.Active()+1, len(m.walk.doc.Steps))
	}

	left := title + " " + mode + "  "
	room := m.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if room < 1 {
		room = 1
	}
	left += runewidth.Truncate(where, room, "…")

	padding := m.width - lipgloss.Width(left) - lipgloss.Width(status) - 1
	if padding < 1 {
		padding = 1
	}
	return left + strings.Repeat(" ", padding) + status
}

func modeLabel(mode nav.Mode) string {
	switch mode {
	case nav.ModeFileDetail:
		return "archivo"
	case nav.ModeWalkthrough:
		return "recorrido"
	}
	return "inicio"
}

// --- Accessors used by tests and the console ---

// Navigation returns the navigation controller.
func (m Model) Navigation() *nav.Controller { return m.nav }

// Advisory returns the advisory dialog state.
func (m Model) Advisory() *advisory.Advisory { return m.advisory }

// ActiveStep returns the active step of the mounted walkthrough, or -1.
func (m Model) ActiveStep() int {
	if m.walk == nil {
		return -1
	}
	return m.walk.Active()
}
