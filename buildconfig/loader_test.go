/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package buildconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ConfigDir), 0o755))
	doc := `
resolver: tokens.resolver.json
workers: 4
validation:
  mode: warn
outputs:
  - name: css-bundle
    renderer: css
    preset: bundle
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigDir, ConfigFileName+".yaml"), []byte(doc), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "tokens.resolver.json", cfg.Resolver)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, ValidationWarn, cfg.Validation.Mode)
	require.Len(t, cfg.Outputs, 1)
	assert.Equal(t, "css-bundle", cfg.Outputs[0].Name)
}

func TestLoadBytesSelectorShorthand(t *testing.T) {
	doc := `
outputs:
  - name: host-css
    renderer: css
    selector: ":host"
`
	cfg, err := LoadBytes([]byte(doc), ".yaml")
	require.NoError(t, err)
	require.Len(t, cfg.Outputs, 1)
	assert.Equal(t, ":host", cfg.Outputs[0].Selector.Literal)
}

func TestLoadBytesSelectorObject(t *testing.T) {
	doc := `{"outputs":[{"name":"dark","renderer":"css","selector":{"modifier":"theme","context":"dark"}}]}`
	cfg, err := LoadBytes([]byte(doc), ".json")
	require.NoError(t, err)
	assert.Equal(t, "theme", cfg.Outputs[0].Selector.Modifier)
	assert.Equal(t, "dark", cfg.Outputs[0].Selector.Context)
}

func TestValidateDuplicateOutputNames(t *testing.T) {
	cfg := &Config{Outputs: []OutputSpec{{Name: "a"}, {Name: "a"}}}
	err := cfg.Validate()
	require.Error(t, err)
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := &Config{Validation: ValidationConfig{Mode: "bogus"}}
	err := cfg.Validate()
	require.Error(t, err)
}
