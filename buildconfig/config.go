/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package buildconfig provides configuration loading for the orchestrator:
// worker-pool size, validation mode, and per-output renderer declarations.
package buildconfig

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ValidationMode controls how the orchestrator reacts to validation
// diagnostics surfaced by the fixed validation hook.
type ValidationMode string

const (
	ValidationError ValidationMode = "error"
	ValidationWarn  ValidationMode = "warn"
	ValidationOff   ValidationMode = "off"
)

// Config is the orchestrator's build configuration.
type Config struct {
	// Resolver is the path to the resolver document.
	Resolver string `mapstructure:"resolver" yaml:"resolver" json:"resolver"`

	// OutputDir is the directory build outputs are written under.
	OutputDir string `mapstructure:"outputDir" yaml:"outputDir" json:"outputDir"`

	// Workers caps the orchestrator's worker-pool concurrency; 0 means
	// unbounded (one goroutine per permutation or output).
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`

	// Validation configures the fixed validation hook's failure mode.
	Validation ValidationConfig `mapstructure:"validation" yaml:"validation" json:"validation"`

	// Preprocessors names built-in Stage 4 passes, run in order over every
	// permutation's raw merged document before Stage 5 re-resolves
	// references. See orchestrator.buildPreprocessors for the built-in set.
	Preprocessors []string `mapstructure:"preprocessors" yaml:"preprocessors" json:"preprocessors"`

	// Outputs declares one renderer invocation per entry.
	Outputs []OutputSpec `mapstructure:"outputs" yaml:"outputs" json:"outputs"`
}

// ValidationConfig configures the validation hook.
type ValidationConfig struct {
	Mode ValidationMode `mapstructure:"mode" yaml:"mode" json:"mode"`
}

// OutputSpec declares one renderer invocation: which renderer, which
// preset, which filters/transforms run first, and how files are named.
type OutputSpec struct {
	Name             string       `mapstructure:"name" yaml:"name" json:"name"`
	Renderer         string       `mapstructure:"renderer" yaml:"renderer" json:"renderer"`
	Preset           string       `mapstructure:"preset" yaml:"preset" json:"preset"`
	FilenameTemplate string       `mapstructure:"filenameTemplate" yaml:"filenameTemplate" json:"filenameTemplate"`
	Filters          []string     `mapstructure:"filters" yaml:"filters" json:"filters"`
	Transforms       []string     `mapstructure:"transforms" yaml:"transforms" json:"transforms"`
	Selector         SelectorSpec `mapstructure:"selector" yaml:"selector" json:"selector"`
}

// SelectorSpec accepts either a bare selector string (e.g. ":host"), kept
// in Literal, or an object form with modifier, context and template fields,
// following the teacher's FileSpec string-or-object unmarshal pattern. Only
// Literal and Template shape the cascade-bundle override selector; Modifier
// and Context are parsed but do not select anything.
type SelectorSpec struct {
	Literal  string `yaml:"-" json:"-"`
	Modifier string `yaml:"modifier,omitempty" json:"modifier,omitempty"`
	Context  string `yaml:"context,omitempty" json:"context,omitempty"`
	Template string `yaml:"template,omitempty" json:"template,omitempty"`
}

// UnmarshalYAML handles both string and object forms for SelectorSpec.
func (s *SelectorSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Literal = node.Value
		return nil
	}
	type rawSelectorSpec SelectorSpec
	return node.Decode((*rawSelectorSpec)(s))
}

// UnmarshalJSON handles both string and object forms for SelectorSpec.
func (s *SelectorSpec) UnmarshalJSON(data []byte) error {
	var literal string
	if err := json.Unmarshal(data, &literal); err == nil {
		s.Literal = literal
		return nil
	}
	type rawSelectorSpec SelectorSpec
	return json.Unmarshal(data, (*rawSelectorSpec)(s))
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Workers:    0,
		Validation: ValidationConfig{Mode: ValidationError},
	}
}

// Validate checks Config for internal consistency beyond what unmarshaling
// already guarantees (distinct output names, a recognized validation mode).
func (c *Config) Validate() error {
	switch c.Validation.Mode {
	case ValidationError, ValidationWarn, ValidationOff, "":
	default:
		return fmt.Errorf("buildconfig: unrecognized validation.mode %q", c.Validation.Mode)
	}

	seen := make(map[string]bool, len(c.Outputs))
	for _, out := range c.Outputs {
		if out.Name == "" {
			return fmt.Errorf("buildconfig: output missing required \"name\"")
		}
		if seen[out.Name] {
			return fmt.Errorf("buildconfig: duplicate output name %q", out.Name)
		}
		seen[out.Name] = true
	}
	return nil
}
