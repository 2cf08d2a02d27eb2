package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config represents the nodediff configuration
type Config struct {
	// Emitter selects the output language of synthesized code (php, go)
	Emitter string `json:"emitter" yaml:"emitter" toml:"emitter"`

	// Dialect selects how inputs are parsed (fragment, file)
	Dialect string `json:"dialect" yaml:"dialect" toml:"dialect"`

	// RootVariable names the variable holding the original node in
	// generated code
	RootVariable string `json:"root_variable" yaml:"root_variable" toml:"root_variable"`

	// Output is the default output format (text, json, yaml)
	Output string `json:"output" yaml:"output" toml:"output"`

	// Jobs bounds concurrent fixtures in batch runs; 0 uses all CPUs
	Jobs int `json:"jobs" yaml:"jobs" toml:"jobs"`

	Rule RuleConfig `json:"rule" yaml:"rule" toml:"rule"`
}

// RuleConfig contains rule scaffolding settings
type RuleConfig struct {
	Namespace string `json:"namespace" yaml:"namespace" toml:"namespace"`
	// NodeNamespace is the PHP namespace of the node classes
	NodeNamespace string `json:"node_namespace" yaml:"node_namespace" toml:"node_namespace"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Emitter:      "php",
		Dialect:      "fragment",
		RootVariable: "node",
		Output:       "text",
		Jobs:         0,
		Rule: RuleConfig{
			Namespace:     `App\Rector`,
			NodeNamespace: `PhpParser\Node`,
		},
	}
}

var configNames = []string{".nodediff.yaml", ".nodediff.yml", ".nodediff.toml"}

// Load loads configuration from path on top of the defaults. An empty path
// searches the working directory and then the home directory; finding
// nothing yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch strings.ToLower(c.Emitter) {
	case "php", "go":
	default:
		return fmt.Errorf("unknown emitter %q (valid: php, go)", c.Emitter)
	}
	switch strings.ToLower(c.Dialect) {
	case "fragment", "file":
	default:
		return fmt.Errorf("unknown dialect %q (valid: fragment, file)", c.Dialect)
	}
	switch c.Output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q (valid: text, json, yaml)", c.Output)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	return nil
}

// findConfigFile looks for config files in common locations
func findConfigFile() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	for _, dir := range dirs {
		for _, name := range configNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}
