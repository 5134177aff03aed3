package catalogue

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// GenerateJSONSchema produces a JSON Schema Draft 2020-12 document from the
// catalogue/v0 Go types.
func GenerateJSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	s := r.Reflect(&Catalogue{})
	s.ID = "https://github.com/ormasoftchile/paradigmas/schemas/catalogue-v0.json"
	s.Title = "Paradigm walkthrough catalogue — catalogue/v0"
	s.Description = "Schema for catalogue/v0 YAML documents (Draft 2020-12)"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal catalogue schema: %w", err)
	}
	return data, nil
}

// JSONSchema restricts Color to its closed set.
func (Color) JSONSchema() *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "string"}
	for _, c := range Colors {
		s.Enum = append(s.Enum, string(c))
	}
	return s
}

// JSONSchema restricts Icon to its closed set.
func (Icon) JSONSchema() *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "string"}
	for _, i := range Icons {
		s.Enum = append(s.Enum, string(i))
	}
	return s
}

// JSONSchema restricts Layer to its closed set.
func (Layer) JSONSchema() *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "string"}
	for _, l := range Layers {
		s.Enum = append(s.Enum, string(l))
	}
	return s
}
