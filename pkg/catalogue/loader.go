package catalogue

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalogue []byte

// LoadFile reads and structurally decodes a catalogue/v0 YAML file.
// Returns a structural error if the YAML contains unknown fields.
func LoadFile(path string) (*Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalogue: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a catalogue/v0 document from a reader.
func Load(r io.Reader) (*Catalogue, error) {
	var c Catalogue
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true) // strict: reject unknown fields
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("structural decode: %w", err)
	}
	normalize(&c)
	return &c, nil
}

// Default returns the built-in catalogue. It panics if the embedded document
// does not decode, which can only happen with a broken build.
func Default() *Catalogue {
	c, err := Load(bytes.NewReader(defaultCatalogue))
	if err != nil {
		panic(fmt.Sprintf("embedded catalogue: %v", err))
	}
	return c
}

// DefaultSource returns the raw YAML of the built-in catalogue.
func DefaultSource() []byte {
	return bytes.Clone(defaultCatalogue)
}

// LoadDocument decodes a single presentation document, as produced by
// `paradigmas compile`.
func LoadDocument(r io.Reader) (*Document, error) {
	var d Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("structural decode: %w", err)
	}
	normalizeDocument(&d)
	return &d, nil
}

// normalize trims code and output blocks: YAML literal blocks keep a trailing
// newline that would otherwise render as an empty last line.
func normalize(c *Catalogue) {
	for i := range c.Documents {
		normalizeDocument(&c.Documents[i])
	}
}

func normalizeDocument(d *Document) {
	for j := range d.Steps {
		s := &d.Steps[j]
		s.Code = strings.TrimRight(s.Code, "\n")
		s.Output = strings.TrimRight(s.Output, "\n")
		s.Description = strings.TrimSpace(s.Description)
	}
}
