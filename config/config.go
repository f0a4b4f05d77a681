package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xy-planning-network/dbenum"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a definitions file.
type Format int

const (
	// FormatAuto detects the format from the file extension.
	FormatAuto Format = iota
	FormatYAML
	FormatTOML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// FormatOf detects the Format from the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return FormatAuto, fmt.Errorf("%w: cannot detect format of %q", dbenum.ErrBadConfig, path)
	}
}

// Load reads the enumerations declared in the file at path
// and registers them in a new, frozen *dbenum.Registry.
func Load(path string) (*dbenum.Registry, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", dbenum.ErrNotExist, path)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s", dbenum.ErrUnexpected, err)
	}
	defer f.Close()

	defs, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	reg, err := dbenum.NewRegistry(defs...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	reg.Freeze()
	return reg, nil
}

// Decode reads enumerations from r.
//
// In YAML, choices are either a mapping from value to label,
// whose order is kept, or a list of value-label pairs:
//
//	enums:
//	  - name: Status
//	    choices:
//	      draft: Draft
//	      published: Published
//	  - name: Role
//	    choices:
//	      - {value: admin, label: Administrator}
//
// In TOML, choices are a list of value-label pairs:
//
//	[[enums]]
//	name = "Status"
//	choices = [
//	  { value = "draft", label = "Draft" },
//	  { value = "published", label = "Published" },
//	]
func Decode(r io.Reader, format Format) ([]*dbenum.Definition, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", dbenum.ErrUnexpected, err)
	}

	switch format {
	case FormatYAML:
		return decodeYAML(b)
	case FormatTOML:
		return decodeTOML(b)
	default:
		return nil, fmt.Errorf("%w: unsupported format %s", dbenum.ErrBadConfig, format)
	}
}

type yamlFile struct {
	Enums []struct {
		Name    string    `yaml:"name"`
		Choices yaml.Node `yaml:"choices"`
	} `yaml:"enums"`
}

func decodeYAML(b []byte) ([]*dbenum.Definition, error) {
	var file yamlFile
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s", dbenum.ErrBadConfig, err)
	}

	defs := make([]*dbenum.Definition, 0, len(file.Enums))
	for _, e := range file.Enums {
		choices, err := yamlChoices(&e.Choices)
		if err != nil {
			return nil, fmt.Errorf("enum %s: %w", e.Name, err)
		}

		def, err := dbenum.Define(e.Name, choices...)
		if err != nil {
			return nil, err
		}

		defs = append(defs, def)
	}

	return defs, nil
}

// yamlChoices walks node directly since decoding a mapping into a Go map loses its order.
func yamlChoices(node *yaml.Node) ([]dbenum.Choice, error) {
	switch node.Kind {
	case 0:
		return nil, nil

	case yaml.MappingNode:
		choices := make([]dbenum.Choice, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, v := node.Content[i], node.Content[i+1]
			if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: line %d: choices must map values to labels", dbenum.ErrBadConfig, k.Line)
			}

			choices = append(choices, dbenum.Choice{Value: k.Value, Label: v.Value})
		}

		return choices, nil

	case yaml.SequenceNode:
		var choices []dbenum.Choice
		if err := node.Decode(&choices); err != nil {
			return nil, fmt.Errorf("%w: line %d: %s", dbenum.ErrBadConfig, node.Line, err)
		}

		return choices, nil

	default:
		return nil, fmt.Errorf("%w: line %d: choices must be a mapping or a list", dbenum.ErrBadConfig, node.Line)
	}
}

type tomlFile struct {
	Enums []struct {
		Name    string          `toml:"name"`
		Choices []dbenum.Choice `toml:"choices"`
	} `toml:"enums"`
}

func decodeTOML(b []byte) ([]*dbenum.Definition, error) {
	var file tomlFile
	md, err := toml.Decode(string(b), &file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", dbenum.ErrBadConfig, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown keys %v", dbenum.ErrBadConfig, undecoded)
	}

	defs := make([]*dbenum.Definition, 0, len(file.Enums))
	for _, e := range file.Enums {
		def, err := dbenum.Define(e.Name, e.Choices...)
		if err != nil {
			return nil, err
		}

		defs = append(defs, def)
	}

	return defs, nil
}
