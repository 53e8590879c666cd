/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package docloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeResolver(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "resolver.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadBasic(t *testing.T) {
	dir := t.TempDir()
	path := writeResolver(t, dir, `{
		"version": "2025.10",
		"sets": { "core": { "sources": [ { "$ref": "./core.json" } ] } },
		"resolutionOrder": [ { "$ref": "#/sets/core" } ]
	}`)

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2025.10", doc.Version)
	assert.Equal(t, []string{"./core.json"}, doc.Sets["core"].Sources)
	assert.Equal(t, []OrderEntry{{Kind: EntrySet, Name: "core"}}, doc.ResolutionOrder)
	assert.Empty(t, doc.ModifierOrder)
}

func TestLoadModifierOrderPreserved(t *testing.T) {
	dir := t.TempDir()
	path := writeResolver(t, dir, `{
		"version": "2025.10",
		"modifiers": {
			"platform": { "default": "web", "contexts": { "web": [], "ios": [] } },
			"theme": { "default": "light", "contexts": { "light": [], "dark": [] } }
		},
		"resolutionOrder": [ { "$ref": "#/modifiers/platform" }, { "$ref": "#/modifiers/theme" } ]
	}`)

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"platform", "theme"}, doc.ModifierOrder, "modifier declaration order must survive JSON decoding")
	assert.Equal(t, []string{"web", "ios"}, doc.Modifiers["platform"].ContextOrder)
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	dir := t.TempDir()
	path := writeResolver(t, dir, `{"version": "1999.01", "resolutionOrder": []}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadDefault(t *testing.T) {
	dir := t.TempDir()
	path := writeResolver(t, dir, `{
		"version": "2025.10",
		"modifiers": { "theme": { "default": "sepia", "contexts": { "light": [] } } },
		"resolutionOrder": [ { "$ref": "#/modifiers/theme" } ]
	}`)
	_, err := Load(path)
	assert.Error(t, err)
}
