// Package config loads presenter settings. Sources are applied in order, each
// overriding the previous one: built-in defaults, a YAML file, PARADIGMAS_*
// environment variables, command-line flags (applied by the caller).
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "PARADIGMAS_"

// FileName is the per-project config file looked up in the working directory.
const FileName = ".paradigmas.yaml"

// Styles are the glamour styles accepted by Render.Style.
var Styles = []string{"auto", "dark", "light", "notty", "dracula", "tokyo-night", "pink", "ascii"}

// Config holds every presenter setting.
type Config struct {
	Catalogue string `yaml:"catalogue,omitempty"`
	Variant   string `yaml:"variant,omitempty"`
	Watch     bool   `yaml:"watch,omitempty"`
	Compact   bool   `yaml:"compact,omitempty"`
	Mouse     bool   `yaml:"mouse"`

	Render Render `yaml:"render"`
	Log    Log    `yaml:"log"`
}

// Render configures the walkthrough panes.
type Render struct {
	Style string `yaml:"style"`
	// BandMargin is the number of rows on each side of the viewport midline
	// that count as the central band.
	BandMargin int `yaml:"band_margin"`
	// CodeLanguage is the fence language used to highlight code samples.
	CodeLanguage string `yaml:"code_language,omitempty"`
}

// Log configures the file logger.
type Log struct {
	File  string `yaml:"file,omitempty"`
	Debug bool   `yaml:"debug,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Mouse: true,
		Render: Render{
			Style:        "auto",
			CodeLanguage: "javascript",
		},
	}
}

// Load reads the config file (explicit path, else ./.paradigmas.yaml, else
// $XDG_CONFIG_HOME/paradigmas/config.yaml) over the defaults and then applies
// environment overrides. A missing implicit file is not an error; a missing
// explicit one is.
func Load(path string) (Config, string, error) {
	cfg := Default()

	src := path
	if src == "" {
		src = findFile()
	}
	if src != "" {
		f, err := os.Open(src)
		switch {
		case err == nil:
			err = decode(f, &cfg)
			f.Close()
			if err != nil {
				return cfg, src, fmt.Errorf("config %s: %w", src, err)
			}
		case path != "" || !errors.Is(err, fs.ErrNotExist):
			return cfg, src, fmt.Errorf("open config: %w", err)
		default:
			src = ""
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, src, err
	}
	return cfg, src, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func findFile() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	p := filepath.Join(dir, "paradigmas", "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

// ApplyEnv overrides fields from PARADIGMAS_* variables read through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
		return nil
	}

	str("CATALOGUE", &c.Catalogue)
	str("VARIANT", &c.Variant)
	str("STYLE", &c.Render.Style)
	str("CODE_LANGUAGE", &c.Render.CodeLanguage)
	str("LOG_FILE", &c.Log.File)

	for name, dst := range map[string]*bool{
		"WATCH":   &c.Watch,
		"COMPACT": &c.Compact,
		"MOUSE":   &c.Mouse,
		"DEBUG":   &c.Log.Debug,
	} {
		if err := boolean(name, dst); err != nil {
			return err
		}
	}

	if v, ok := lookup(EnvPrefix + "BAND_MARGIN"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sBAND_MARGIN: %w", EnvPrefix, err)
		}
		c.Render.BandMargin = n
	}
	return nil
}

// Validate checks values that cannot be expressed by the YAML types.
func (c Config) Validate() error {
	switch c.Variant {
	case "", "flat", "drilldown":
	default:
		return fmt.Errorf("variant %q: expected flat or drilldown", c.Variant)
	}
	known := false
	for _, s := range Styles {
		if s == c.Render.Style {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("render.style %q: expected one of %s", c.Render.Style, strings.Join(Styles, ", "))
	}
	if c.Render.BandMargin < 0 {
		return fmt.Errorf("render.band_margin must not be negative, got %d", c.Render.BandMargin)
	}
	return nil
}

// LoadDotEnv reads KEY=VALUE lines from path and sets every variable that is
// not already set. Blank lines and # comments are skipped; surrounding quotes
// are removed. A missing file is fine.
func LoadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		if os.Getenv(key) == "" {
			os.Setenv(key, val)
		}
	}
}
