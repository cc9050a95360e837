package transform

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aboutkit/aboutkit/pkg/about"
)

// Config describes the transformations applied to an inventory.
type Config struct {
	// FieldRenamings maps a source field name to its new name.
	FieldRenamings map[string]string `yaml:"field_renamings,omitempty"`

	// RequiredFields must have a value in every row, in addition to
	// about_resource and name.
	RequiredFields []string `yaml:"required_fields,omitempty"`

	// FieldFilters lists the only fields kept, when not empty.
	FieldFilters []string `yaml:"field_filters,omitempty"`

	// ExcludeFields lists fields dropped from the output.
	ExcludeFields []string `yaml:"exclude_fields,omitempty"`
}

// LoadConfig reads a transform configuration file. Tabs are treated as
// two spaces so hand-edited files indent consistently.
func LoadConfig(location string) (*Config, error) {
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read transform configuration: %v", about.ErrInvalidConfig, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses a YAML transform configuration. Empty input yields an
// empty configuration.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	text := strings.ReplaceAll(string(data), "\t", "  ")
	if err := yaml.Unmarshal([]byte(text), &cfg); err != nil {
		return nil, fmt.Errorf("%w: invalid transform configuration: %v", about.ErrInvalidConfig, err)
	}
	return &cfg, nil
}
