// Package definitionfile reads grouped variable definitions from JSON or YAML files.
//
// A file holds either one definition object or a list of them. Both formats share the field names
// of the JSON form, so a YAML file is a JSON document written as YAML.
package definitionfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/survey-variables-go/variables"
)

// Format is the encoding of a definition file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

var (
	ErrUnsupportedFormat = errors.New("unsupported definition file format")
	ErrEmptyDocument     = errors.New("definition document is empty")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FormatOf derives the format from the file extension: .json, .yaml or .yml.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Load reads and decodes the definitions in the file at path.
func Load(path string) ([]variables.GroupedVariableDefinition, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	definitions, err := Decode(file, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return definitions, nil
}

// Decode reads all of r and decodes the definitions it contains.
// The definitions are not validated; compiling them does that.
func Decode(r io.Reader, format Format) ([]variables.GroupedVariableDefinition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func decodeJSON(data []byte) ([]variables.GroupedVariableDefinition, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyDocument
	}

	if trimmed[0] == '{' {
		definition, err := variables.UnmarshalGroupedVariableDefinition(trimmed)
		if err != nil {
			return nil, err
		}

		return []variables.GroupedVariableDefinition{definition}, nil
	}

	return variables.UnmarshalGroupedVariableDefinitions(trimmed)
}

// decodeYAML converts the YAML document into its JSON equivalent, so both formats share one decoder.
func decodeYAML(data []byte) ([]variables.GroupedVariableDefinition, error) {
	var document any
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}

	if document == nil {
		return nil, ErrEmptyDocument
	}

	asJSON, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("converting yaml to json: %w", err)
	}

	return decodeJSON(asJSON)
}
