/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package buildconfig

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "tokenforge"

// ConfigDir is the directory config files are searched under, relative to
// rootDir, mirroring the teacher's ".config/" convention.
const ConfigDir = ".config"

// Load searches rootDir/.config for a tokenforge.{yaml,yml,json,toml}
// config file via Viper, which autodetects the format from the file
// extension. Returns Default() if no config file is found.
func Load(rootDir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.AddConfigPath(filepath.Join(rootDir, ConfigDir))
	v.AddConfigPath(rootDir)

	v.SetDefault("workers", 0)
	v.SetDefault("validation.mode", string(ValidationError))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	// viper decodes through mapstructure, not yaml.v3/encoding/json, so
	// SelectorSpec's custom Unmarshal methods only fire for configs loaded
	// directly via LoadBytes below, not for this Viper-backed path.
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadBytes decodes a config document directly (YAML when ext is ".yaml" or
// ".yml", JSON otherwise), exercising SelectorSpec's string-or-object
// shorthand the way a hand-authored per-output "selector: \":host\"" line
// is meant to be read.
func LoadBytes(data []byte, ext string) (*Config, error) {
	cfg := &Config{}
	var err error
	if strings.EqualFold(ext, ".yaml") || strings.EqualFold(ext, ".yml") {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
