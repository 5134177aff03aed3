// Package console implements the line-mode presenter: the same navigation
// and step state as the TUI, driven by typed commands.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"github.com/ormasoftchile/paradigmas/pkg/advisory"
	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
	"github.com/ormasoftchile/paradigmas/pkg/nav"
	"github.com/ormasoftchile/paradigmas/pkg/tracker"
)

// Console is a readline REPL over a navigation controller.
type Console struct {
	cat     *catalogue.Catalogue
	nav     *nav.Controller
	adv     *advisory.Advisory
	tracker *tracker.Tracker
	gen     int
	output  io.Writer
	logger  *zap.Logger
	rl      *readline.Instance
}

// New creates a console for the catalogue. Output goes to os.Stdout until
// SetOutput is called.
func New(cat *catalogue.Catalogue, variant nav.Variant, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	adv := advisory.New()
	c := &Console{
		cat:     cat,
		nav:     nav.New(variant, cat, adv),
		adv:     adv,
		tracker: tracker.New(0),
		output:  os.Stdout,
		logger:  logger,
	}
	c.gen = c.nav.Generation()
	c.nav.OnChange(func(from, to nav.State) {
		logger.Info("navigation",
			zap.Stringer("from", from.Mode),
			zap.Stringer("to", to.Mode),
			zap.String("file", to.FileID),
			zap.String("paradigm", to.ParadigmID))
	})
	return c
}

// SetOutput redirects command output.
func (c *Console) SetOutput(w io.Writer) { c.output = w }

// Navigation returns the navigation controller.
func (c *Console) Navigation() *nav.Controller { return c.nav }

// Advisory returns the advisory state.
func (c *Console) Advisory() *advisory.Advisory { return c.adv }

// ActiveStep returns the active step index, or -1 outside a walkthrough.
func (c *Console) ActiveStep() int {
	if c.nav.Document() == nil {
		return -1
	}
	return c.tracker.Active()
}

// Run starts the interactive loop. It returns nil on quit, Ctrl+C or EOF.
func (c *Console) Run(ctx context.Context) error {
	ids := func(f func() []string) readline.DynamicCompleteFunc {
		return func(string) []string { return f() }
	}
	completer := readline.NewPrefixCompleter(
		readline.PcItem("overview"),
		readline.PcItem("paradigms"),
		readline.PcItem("files"),
		readline.PcItem("file", readline.PcItemDynamic(ids(c.fileIDs))),
		readline.PcItem("paradigm", readline.PcItemDynamic(ids(c.paradigmIDs))),
		readline.PcItem("next"),
		readline.PcItem("prev"),
		readline.PcItem("step"),
		readline.PcItem("show"),
		readline.PcItem("back"),
		readline.PcItem("ok"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          c.Prompt(),
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	c.rl = rl
	defer rl.Close()

	fmt.Fprintf(c.output, "%s — %d paradigmas, modo %s\n", c.cat.Meta.Title, len(c.cat.Paradigms), c.nav.Variant())
	fmt.Fprintf(c.output, "Escribe 'help' para ver los comandos.\n\n")
	c.showOverview()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		rl.SetPrompt(c.Prompt())
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				return nil
			}
			return err
		}
		if c.Execute(line) {
			return nil
		}
	}
}

// Prompt builds the prompt: paradigmas[mode | step i/N]>
func (c *Console) Prompt() string {
	st := c.nav.State()
	switch st.Mode {
	case nav.ModeFileDetail:
		return fmt.Sprintf("paradigmas[%s]> ", st.FileID)
	case nav.ModeWalkthrough:
		doc := c.nav.Document()
		if doc == nil || len(doc.Steps) == 0 {
			return fmt.Sprintf("paradigmas[%s]> ", st.ParadigmID)
		}
		return fmt.Sprintf("paradigmas[%s | paso %d/%d]> ", doc.Key(), c.tracker.Active()+1, len(doc.Steps))
	}
	return "paradigmas> "
}

// Execute runs one command line and reports whether the console should exit.
func (c *Console) Execute(line string) (quit bool) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd, args := parts[0], parts[1:]
	c.logger.Debug("console command", zap.String("command", cmd), zap.Strings("args", args))

	// An open advisory blocks navigation until acknowledged.
	if c.adv.IsOpen() {
		switch cmd {
		case "ok", "help", "?", "quit", "q":
		default:
			fmt.Fprintf(c.output, "Hay un aviso abierto. Escribe 'ok' para cerrarlo.\n")
			return false
		}
	}

	switch cmd {
	case "overview", "o":
		c.nav.GoToOverview()
	case "paradigms":
		c.listParadigms()
		return false
	case "files":
		c.listFiles()
		return false
	case "file", "f":
		if len(args) != 1 {
			fmt.Fprintf(c.output, "Uso: file <id>\n")
			return false
		}
		if c.nav.Variant() != nav.VariantDrillDown {
			fmt.Fprintf(c.output, "El modo plano no tiene mapa de archivos.\n")
			return false
		}
		c.nav.SelectFile(args[0])
	case "paradigm":
		if len(args) != 1 {
			fmt.Fprintf(c.output, "Uso: paradigm <id|número>\n")
			return false
		}
		if c.nav.State().Mode == nav.ModeWalkthrough {
			fmt.Fprintf(c.output, "Vuelve atrás ('back') para elegir otro paradigma.\n")
			return false
		}
		if c.nav.Variant() == nav.VariantDrillDown && c.nav.State().Mode != nav.ModeFileDetail {
			fmt.Fprintf(c.output, "Primero elige un archivo con 'file <id>'.\n")
			return false
		}
		c.nav.SelectParadigm(c.paradigmArg(args[0]))
	case "next", "n":
		c.moveStep(c.tracker.Active() + 1)
	case "prev", "p":
		c.moveStep(c.tracker.Active() - 1)
	case "step", "s":
		if len(args) != 1 {
			fmt.Fprintf(c.output, "Uso: step <n>\n")
			return false
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(c.output, "Paso inválido: %q\n", args[0])
			return false
		}
		c.moveStep(n - 1)
	case "show":
	case "back", "b":
		c.nav.GoBack()
	case "ok":
		if !c.adv.Dismiss(advisory.ViaAction) {
			fmt.Fprintf(c.output, "No hay avisos abiertos.\n")
		}
		return false
	case "help", "?":
		c.handleHelp()
		return false
	case "quit", "q":
		fmt.Fprintf(c.output, "Hasta luego.\n")
		return true
	default:
		fmt.Fprintf(c.output, "Comando desconocido: %q. Escribe 'help' para ver los comandos.\n", cmd)
		return false
	}

	c.sync()
	if c.adv.IsOpen() {
		c.showAdvisory()
		return false
	}
	c.show()
	return false
}

// paradigmArg accepts a paradigm id or its 1-based position in the menu.
func (c *Console) paradigmArg(arg string) string {
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(c.cat.Paradigms) {
		return c.cat.Paradigms[n-1].ID
	}
	return arg
}

// sync resets the step tracker when the active document changed.
func (c *Console) sync() {
	if gen := c.nav.Generation(); gen != c.gen {
		c.gen = gen
		n := 0
		if doc := c.nav.Document(); doc != nil {
			n = len(doc.Steps)
		}
		c.tracker.Reset(n)
	}
}

func (c *Console) moveStep(i int) {
	if c.nav.Document() == nil {
		fmt.Fprintf(c.output, "No hay un recorrido abierto.\n")
		return
	}
	c.tracker.Report(tracker.Signal{Index: i, Entered: true})
}

func (c *Console) fileIDs() []string {
	ids := make([]string, 0, len(c.cat.Files))
	for _, f := range c.cat.Files {
		ids = append(ids, f.ID)
	}
	return ids
}

func (c *Console) paradigmIDs() []string {
	ids := make([]string, 0, len(c.cat.Paradigms))
	for _, p := range c.cat.Paradigms {
		ids = append(ids, p.ID)
	}
	return ids
}
