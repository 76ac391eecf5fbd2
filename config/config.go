// Package config loads the optional lapis.yaml configuration. Missing files
// are not an error: every field has a default, and CLI flags override file
// values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked for when none is given.
const DefaultPath = "lapis.yaml"

// Config holds server and dashboard settings.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`
	// DataFile is the CSV loaded at startup.
	DataFile string `yaml:"dataFile"`
	// Charts selects the chart adapter: "plotly" or "native".
	Charts string `yaml:"charts"`
	// Watch reloads the data file when it changes on disk.
	Watch bool `yaml:"watch"`
	// Title is the dashboard page title.
	Title string `yaml:"title"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:     ":8080",
		DataFile: "inscriptions_data.csv",
		Charts:   "plotly",
		Title:    "Latin Inscriptions Dashboard",
	}
}

// Load reads a YAML config file over the defaults. An empty path tries
// DefaultPath; a missing file at either path just returns the defaults. A
// file that exists but does not parse is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("config: %s not found: %w", path, err)
		}
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}
