// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds localpkg configuration
type Config struct {
	PythonBin  string `yaml:"python_bin"`
	PythonName string `yaml:"python_name"`
	Maintainer string `yaml:"maintainer"`
	Prefix     string `yaml:"prefix"`
	OutputDir  string `yaml:"output_dir"`
	Debug      bool   `yaml:"debug"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		PythonBin:  "python",
		PythonName: "python3",
		Maintainer: "Watanabe Takashi <wtnb75@gmail.com>",
		Prefix:     "usr",
		OutputDir:  ".",
		Debug:      false,
	}
}

// LoadConfig loads configuration from file, falling back to defaults for
// missing file or missing fields
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, ".config", "localpkg", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}
