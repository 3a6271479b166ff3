package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a parameter import file.
type ImportSchema struct {
	Parameters []ParameterImport `json:"parameters" yaml:"parameters"`
}

// ParameterImport defines a time parameter and its versions. Company names a
// company by id or name.
type ParameterImport struct {
	Code        string          `json:"code" yaml:"code"`
	Name        string          `json:"name,omitempty" yaml:"name,omitempty"`
	Type        string          `json:"type" yaml:"type"`
	Country     *string         `json:"country,omitempty" yaml:"country,omitempty"`
	Company     *string         `json:"company,omitempty" yaml:"company,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	JSONSchema  RawValue        `json:"json_schema,omitempty" yaml:"json_schema,omitempty"`
	Versions    []VersionImport `json:"versions" yaml:"versions"`
}

// VersionImport defines one dated value.
type VersionImport struct {
	EffectiveDate string   `json:"effective_date" yaml:"effective_date"`
	Value         RawValue `json:"value" yaml:"value"`
}

// RawValue holds a value as written in the file. Strings are taken
// verbatim; numbers, booleans, objects and arrays keep their literal text
// (objects and arrays re-encoded as JSON when read from YAML); null is empty.
type RawValue string

func (v *RawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = RawValue(s)
	default:
		*v = RawValue(data)
	}
	return nil
}

func (v *RawValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		if node.Tag == "!!null" {
			*v = ""
			return nil
		}
		*v = RawValue(node.Value)
		return nil
	}
	var decoded any
	if err := node.Decode(&decoded); err != nil {
		return err
	}
	data, err := json.Marshal(decoded)
	if err != nil {
		return fmt.Errorf("line %d: encoding value as JSON: %w", node.Line, err)
	}
	*v = RawValue(data)
	return nil
}

// Format is the encoding of an import file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadImportSchema reads and parses a parameter import file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data, FormatForPath(path))
}

// ParseImportSchema decodes an import document.
func ParseImportSchema(data []byte, format Format) (*ImportSchema, error) {
	var schema ImportSchema
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported import format %q", format)
	}
	return &schema, nil
}
