// Package config loads the optional YAML run configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/captop/captop/pkg/system/cgroup"
)

// Config mirrors the command-line surface so an invocation can be pinned in
// a file and overridden per run by explicit flags.
type Config struct {
	Summary        bool   `yaml:"summary"`
	Verbose        bool   `yaml:"verbose"`
	NoColor        bool   `yaml:"no_color"`
	MemoryStatPath string `yaml:"memory_stat_path"`
}

// Default returns the configuration used when no file and no flags are
// given.
func Default() Config {
	return Config{MemoryStatPath: cgroup.DefaultStatPath}
}

// Load reads a YAML file and overlays it on the defaults. Unknown keys are
// rejected so a typo fails loudly instead of being silently ignored.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// empty file means all defaults
			return cfg, nil
		}
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
