// Package definitions loads the externally maintained table name mapping.
// The decoder never needs it; it only supplies table and column names when
// projecting rows into CSV.
package definitions

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Table names one table and its columns.
type Table struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
	Types   []string `yaml:"types,omitempty"`
}

// Definitions maps table ids to their definitions.
type Definitions map[uint16]Table

// Parse reads YAML definitions from r.
func Parse(r io.Reader) (Definitions, error) {
	var defs Definitions
	if err := yaml.NewDecoder(r).Decode(&defs); err != nil {
		if errors.Is(err, io.EOF) {
			return Definitions{}, nil
		}
		return nil, fmt.Errorf("definitions: %w", err)
	}

	for id, def := range defs {
		if len(def.Types) != 0 && len(def.Types) != len(def.Columns) {
			return nil, fmt.Errorf("definitions: table %d: %d types for %d columns", id, len(def.Types), len(def.Columns))
		}
	}
	return defs, nil
}

// Load reads YAML definitions from path. An empty path yields an empty set.
func Load(path string) (Definitions, error) {
	if path == "" {
		return Definitions{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}
