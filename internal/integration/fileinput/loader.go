// Package fileinput reads expense datasets from JSON, YAML or TOML files.
package fileinput

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/expense-tracker/backend/internal/application/usecase/dashboard"
)

// Format names a supported dataset encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Dataset is the raw content of an input file. Records are validated later by
// dashboard.ParseExpenses and dashboard.ParseCategories.
type Dataset struct {
	Timezone   string                  `json:"timezone,omitempty" yaml:"timezone,omitempty" toml:"timezone"`
	Categories []dashboard.RawCategory `json:"categories" yaml:"categories" toml:"categories"`
	Expenses   []dashboard.RawExpense  `json:"expenses" yaml:"expenses" toml:"expenses"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported dataset file format: %q", ext)
	}
}

// Load reads and decodes the dataset at path.
func Load(path string) (*Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing dataset file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading dataset file: %w", err)
	}

	return Decode(data, format)
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (*Dataset, error) {
	var ds Dataset

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &ds); err != nil {
			return nil, fmt.Errorf("error parsing JSON dataset: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &ds); err != nil {
			return nil, fmt.Errorf("error parsing YAML dataset: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &ds); err != nil {
			return nil, fmt.Errorf("error parsing TOML dataset: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format: %q", format)
	}

	return &ds, nil
}
