package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aboutkit/aboutkit/pkg/about"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Environment variables that override the config file.
const (
	EnvAPIURL       = "ABOUT_API_URL"
	EnvAPIKey       = "ABOUT_API_KEY"
	EnvLicenseDBURL = "ABOUT_LICENSEDB_URL"
)

// ProjectConfig is the content of about.yaml.
type ProjectConfig struct {
	// APIURL and APIKey address a DejaCode license library.
	APIURL string `yaml:"api_url,omitempty"`
	APIKey string `yaml:"api_key,omitempty"`

	// LicenseDBURL overrides the LicenseDB base URL.
	LicenseDBURL string `yaml:"licensedb_url,omitempty"`

	ReferenceDir string            `yaml:"reference_dir,omitempty"`
	Template     string            `yaml:"template,omitempty"`
	Exclude      []string          `yaml:"exclude,omitempty"`
	Variables    map[string]string `yaml:"variables,omitempty"`
	Timeout      string            `yaml:"timeout,omitempty"`
}

// ConfigFileName is the project config file looked up in the working directory.
const ConfigFileName = about.ConfigFileName

// Load reads about.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads the config file at path.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", about.ErrInvalidConfig, path, err)
	}
	return &cfg, nil
}

// ApplyEnv overrides fields with the ABOUT_* variables found by lookup.
func (c *ProjectConfig) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		c.APIURL = v
	}
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		c.APIKey = v
	}
	if v, ok := lookup(EnvLicenseDBURL); ok && v != "" {
		c.LicenseDBURL = v
	}
}

// HTTPTimeout returns the configured timeout, or about.DefaultHTTPTimeout.
func (c *ProjectConfig) HTTPTimeout() (time.Duration, error) {
	if strings.TrimSpace(c.Timeout) == "" {
		return about.DefaultHTTPTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid timeout in %s: %v", about.ErrInvalidConfig, ConfigFileName, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout in %s must be positive", about.ErrInvalidConfig, ConfigFileName)
	}
	return d, nil
}

// LicenseDB returns the LicenseDB base URL, or about.DefaultLicenseDBURL.
func (c *ProjectConfig) LicenseDB() string {
	if c.LicenseDBURL != "" {
		return c.LicenseDBURL
	}
	return about.DefaultLicenseDBURL
}

// Resolve loads the project configuration. An explicit path must exist;
// otherwise about.yaml in dir is optional. Environment overrides are
// applied last.
func Resolve(explicitPath, dir string, lookup func(string) (string, bool)) (*ProjectConfig, error) {
	var cfg *ProjectConfig
	var err error
	if explicitPath != "" {
		cfg, err = LoadFile(explicitPath)
		if errors.Is(err, ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: %s does not exist", about.ErrInvalidConfig, explicitPath)
		}
	} else {
		cfg, err = Load(dir)
		if errors.Is(err, ErrConfigNotFound) {
			cfg, err = &ProjectConfig{}, nil
		}
	}
	if err != nil {
		return nil, err
	}
	if lookup != nil {
		cfg.ApplyEnv(lookup)
	}
	return cfg, nil
}
