// Package manifest loads commands and flows from a declarative file.
//
// The file may be YAML (.yaml, .yml), TOML (.toml) or JSON (.json):
//
//	commands:
//	  - id: greet
//	    kind: hello
//	    description: Greets someone
//	    config:
//	      greeting: Hi
//	flows:
//	  - name: welcome
//	    steps: [greet, list]
//
// Each command names a kind (defaulting to its id); a ports.CommandBuilder turns
// kind and config into a factory.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported manifest format")

// Manifest is the decoded content of a manifest file.
type Manifest struct {
	Commands []CommandSpec `mapstructure:"commands"`
	Flows    []FlowSpec    `mapstructure:"flows"`
}

// CommandSpec declares one command.
type CommandSpec struct {
	ID          string         `mapstructure:"id"`
	Kind        string         `mapstructure:"kind"`
	Description string         `mapstructure:"description"`
	Details     string         `mapstructure:"details"`
	Config      map[string]any `mapstructure:"config"`
}

// FlowSpec declares one flow.
type FlowSpec struct {
	Name  string   `mapstructure:"name"`
	Steps []string `mapstructure:"steps"`
}

// Parse decodes a manifest; format is the file extension including the dot.
func Parse(data []byte, format string) (*Manifest, error) {
	var raw map[string]any
	switch strings.ToLower(format) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml manifest: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse toml manifest: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse json manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var m Manifest
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &m,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

// ParseFile reads and decodes the manifest at path.
func ParseFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}
