package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ormasoftchile/paradigmas/pkg/catalogue"
	"github.com/ormasoftchile/paradigmas/pkg/config"
	"github.com/ormasoftchile/paradigmas/pkg/console"
	"github.com/ormasoftchile/paradigmas/pkg/logging"
	"github.com/ormasoftchile/paradigmas/pkg/nav"
	"github.com/ormasoftchile/paradigmas/pkg/tui"
	"github.com/ormasoftchile/paradigmas/pkg/watch"
)

// Version is set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	config.LoadDotEnv(".env") // load .env file if present (gitignored)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	cfg    config.Config
	logger = zap.NewNop()
)

// Persistent flags
var (
	flagConfig    string
	flagCatalogue string
	flagVariant   string
	flagLogFile   string
	flagDebug     bool
)

var rootCmd = &cobra.Command{
	Use:   "paradigmas",
	Short: "Interactive terminal presentation of programming paradigms",
	Long: "paradigmas — a terminal presenter that walks through programming paradigms step by step, " +
		"with the code of each step beside its explanation.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runPresent,
}

// setup resolves the configuration (file, then environment, then flags) and
// builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	c, src, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyFlags(cmd, &c)
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	l, err := logging.New(cfg.Log.File, cfg.Log.Debug)
	if err != nil {
		return err
	}
	logger = l
	logger.Debug("configuration loaded",
		zap.String("source", src),
		zap.String("catalogue", cfg.Catalogue),
		zap.String("variant", cfg.Variant))
	return nil
}

// applyFlags overrides c with every flag set on the command line.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("catalogue") {
		c.Catalogue = flagCatalogue
	}
	if flags.Changed("variant") {
		c.Variant = flagVariant
	}
	if flags.Changed("log-file") {
		c.Log.File = flagLogFile
	}
	if flags.Changed("debug") {
		c.Log.Debug = flagDebug
	}
	if flags.Changed("watch") {
		c.Watch = presentWatch
	}
	if flags.Changed("compact") {
		c.Compact = presentCompact
	}
	if flags.Changed("no-mouse") {
		c.Mouse = !presentNoMouse
	}
	if flags.Changed("style") {
		c.Render.Style = presentStyle
	}
}

// openCatalogue loads and validates the configured catalogue, or returns the
// built-in one. Warnings are printed to w; errors abort.
func openCatalogue(path string, w io.Writer) (*catalogue.Catalogue, error) {
	if path == "" {
		return catalogue.Default(), nil
	}
	r := watch.Load(path)
	if err := reportValidation(w, r.Errors); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r.Catalogue, nil
}

// variantFor picks the configured variant, else the catalogue's own.
func variantFor(c config.Config, cat *catalogue.Catalogue) (nav.Variant, error) {
	v := c.Variant
	if v == "" {
		v = cat.Meta.Variant
	}
	return nav.ParseVariant(v)
}

// --- present (default) ---

var (
	presentWatch   bool
	presentCompact bool
	presentNoMouse bool
	presentStyle   string
)

var presentCmd = &cobra.Command{
	Use:   "present",
	Short: "Run the full-screen presenter (default)",
	Args:  cobra.NoArgs,
	RunE:  runPresent,
}

func runPresent(cmd *cobra.Command, args []string) error {
	cat, err := openCatalogue(cfg.Catalogue, os.Stderr)
	if err != nil {
		return err
	}
	variant, err := variantFor(cfg, cat)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Catalogue:    cat,
		Variant:      variant,
		Compact:      cfg.Compact,
		Mouse:        cfg.Mouse,
		Style:        cfg.Render.Style,
		BandMargin:   cfg.Render.BandMargin,
		CodeLanguage: cfg.Render.CodeLanguage,
		Logger:       logger,
	}
	if cfg.Watch {
		if cfg.Catalogue == "" {
			return fmt.Errorf("--watch needs a --catalogue file")
		}
		opts.WatchPath = cfg.Catalogue
	}

	logger.Info("presenter starting",
		zap.Stringer("variant", variant),
		zap.Int("paradigms", len(cat.Paradigms)),
		zap.Int("documents", len(cat.Documents)),
		zap.Bool("watch", cfg.Watch))
	return tui.Run(opts)
}

// --- console ---

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run the line-mode presenter",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalogue(cfg.Catalogue, os.Stderr)
		if err != nil {
			return err
		}
		variant, err := variantFor(cfg, cat)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return console.New(cat, variant, logger).Run(ctx)
	},
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("paradigmas %s (build: %s)\n", version, commit)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default ./.paradigmas.yaml, then $XDG_CONFIG_HOME/paradigmas/config.yaml)")
	pf.StringVar(&flagCatalogue, "catalogue", "", "Catalogue YAML file (default: built-in catalogue)")
	pf.StringVar(&flagVariant, "variant", "", "Navigation variant: flat or drilldown (default: the catalogue's meta.variant)")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.BoolVar(&flagDebug, "debug", false, "Log at debug level")

	for _, c := range []*cobra.Command{rootCmd, presentCmd} {
		c.Flags().BoolVar(&presentWatch, "watch", false, "Reload the catalogue when the file changes")
		c.Flags().BoolVar(&presentCompact, "compact", false, "Stack the walkthrough panes vertically")
		c.Flags().BoolVar(&presentNoMouse, "no-mouse", false, "Disable mouse input")
		c.Flags().StringVar(&presentStyle, "style", "", "Markdown style: auto, dark, light, notty, dracula, tokyo-night, pink or ascii")
	}

	rootCmd.AddCommand(presentCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(versionCmd)
}
