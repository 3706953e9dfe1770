/*
PURPOSE:
  Defines the configuration structure and loading logic for matbench.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Sizes, runs, output path, seed and correctness-check size.
  - Defaults: sizes 64 128 256 512 1024, runs 3, results_raw.csv, seed 27,
    check_n 5.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Language tag and tolerance are configurable so the same harness can
    label records consistently with the other implementations.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing default files fall back to defaults.

USAGE:
  cfg, err := config.Load("matbench.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update DefaultConfig()/Validate().

RELATED FILES:
  - internal/cli/run.go
*/

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for a benchmark invocation.
type Config struct {
	Sizes     []int   `yaml:"sizes"`
	Runs      int     `yaml:"runs"`
	Out       string  `yaml:"out"`
	Seed      int64   `yaml:"seed"`
	CheckN    int     `yaml:"check_n"`
	Tolerance float64 `yaml:"tolerance"`
	// Language tags every record; aggregation groups on it.
	Language string `yaml:"language"`
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Sizes:     []int{64, 128, 256, 512, 1024},
		Runs:      3,
		Out:       "results_raw.csv",
		Seed:      27,
		CheckN:    5,
		Tolerance: 1e-8,
		Language:  "Go",
		LogLevel:  "info",
	}
}

// DefaultFiles are searched, in order, when no path is given.
var DefaultFiles = []string{"matbench.yaml", "matbench.yml"}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		found := false
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Sizes) == 0 {
		errs = append(errs, errors.New("sizes: at least one size is required"))
	}
	for _, n := range c.Sizes {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("sizes: %d is not a positive integer", n))
		}
	}
	if c.Runs <= 0 {
		errs = append(errs, fmt.Errorf("runs: %d is not a positive integer", c.Runs))
	}
	if c.CheckN <= 0 {
		errs = append(errs, fmt.Errorf("check_n: %d is not a positive integer", c.CheckN))
	}
	if !(c.Tolerance > 0) {
		errs = append(errs, fmt.Errorf("tolerance: %g must be positive", c.Tolerance))
	}
	if strings.TrimSpace(c.Out) == "" {
		errs = append(errs, errors.New("out: output path is empty"))
	}
	if strings.TrimSpace(c.Language) == "" {
		errs = append(errs, errors.New("language: tag is empty"))
	}
	return errors.Join(errs...)
}

// ParseSizes splits a list such as "64 128,256" on spaces and commas.
func ParseSizes(parts ...string) ([]int, error) {
	var sizes []int
	for _, part := range parts {
		fields := strings.FieldsFunc(part, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		})
		for _, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("invalid size %q: %w", f, err)
			}
			if n <= 0 {
				return nil, fmt.Errorf("invalid size %d: must be positive", n)
			}
			sizes = append(sizes, n)
		}
	}
	return sizes, nil
}
