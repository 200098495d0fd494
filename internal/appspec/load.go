package appspec

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and parses an AppSpec document from a file. The format is
// chosen by extension, falling back to JSON-then-YAML for unknown
// extensions. Load performs no structural validation beyond syntax; callers
// gate the result through the schema validator before use.
func Load(path string) (*AppSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read app spec: %w", err)
	}
	return Parse(data, path)
}

// Parse parses AppSpec document bytes. filename is used only to pick the
// decoder.
func Parse(data []byte, filename string) (*AppSpec, error) {
	var spec AppSpec

	switch {
	case strings.HasSuffix(filename, ".yaml"), strings.HasSuffix(filename, ".yml"):
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	case strings.HasSuffix(filename, ".json"):
		if err := json.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &spec); err != nil {
			if err := yaml.Unmarshal(data, &spec); err != nil {
				return nil, fmt.Errorf("parse app spec: %w", err)
			}
		}
	}

	return &spec, nil
}

// ParseUntyped parses document bytes into the generic map form accepted by
// the schema gate. JSON payloads that are not objects decode to their
// scalar or sequence value, which the gate then rejects.
func ParseUntyped(data []byte, filename string) (any, error) {
	var doc any

	switch {
	case strings.HasSuffix(filename, ".yaml"), strings.HasSuffix(filename, ".yml"):
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return nil, fmt.Errorf("parse app spec: %w", err)
			}
		}
	}

	return doc, nil
}
