package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// cliConfig holds settings loadable from a --config YAML file, overridden
// by any flag the user passes explicitly on the command line.
type cliConfig struct {
	SnapshotPath   string `yaml:"snapshot_path"`
	TopK           int    `yaml:"top_k"`
	DebounceMillis int    `yaml:"debounce_millis"`
	NoColor        bool   `yaml:"no_color"`
}

func defaultConfig() cliConfig {
	return cliConfig{
		SnapshotPath:   "kdvec.snapshot.json",
		TopK:           10,
		DebounceMillis: 200,
	}
}

func loadConfig(path string) (cliConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		return cliConfig{}, err
	}
	if err := yaml.Unmarshal(blob, &cfg); err != nil {
		return cliConfig{}, err
	}
	return cfg, nil
}
