/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolution

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tokenforge.dev/tokenforge/docloader"
	"go.tokenforge.dev/tokenforge/filecache"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestEnumeratePermutationsOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "resolver.json", `{
		"version": "2025.10",
		"modifiers": {
			"platform": { "default": "web", "contexts": { "web": [], "ios": [] } },
			"theme": { "default": "light", "contexts": { "light": [], "dark": [] } }
		},
		"resolutionOrder": [ { "$ref": "#/modifiers/platform" }, { "$ref": "#/modifiers/theme" } ]
	}`)
	doc, err := docloader.Load(filepath.Join(dir, "resolver.json"))
	require.NoError(t, err)

	perms := EnumeratePermutations(doc)
	require.Len(t, perms, 4)
	assert.Equal(t, map[string]string{"platform": "web", "theme": "light"}, perms[0].Inputs)
	assert.True(t, perms[0].IsBase)
	assert.Equal(t, map[string]string{"platform": "web", "theme": "dark"}, perms[1].Inputs)
	assert.Equal(t, map[string]string{"platform": "ios", "theme": "light"}, perms[2].Inputs)
	assert.Equal(t, map[string]string{"platform": "ios", "theme": "dark"}, perms[3].Inputs)
}

func TestMergeTheme(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "core.json", `{"color":{"text":{"$value":"black"}}}`)
	writeFile(t, dir, "dark.json", `{"color":{"text":{"$value":"white"}}}`)
	writeFile(t, dir, "resolver.json", `{
		"version": "2025.10",
		"sets": { "core": { "sources": [ { "$ref": "./core.json" } ] } },
		"modifiers": { "theme": { "default": "light", "contexts": { "light": [], "dark": [ { "$ref": "./dark.json" } ] } } },
		"resolutionOrder": [ { "$ref": "#/sets/core" }, { "$ref": "#/modifiers/theme" } ]
	}`)
	doc, err := docloader.Load(filepath.Join(dir, "resolver.json"))
	require.NoError(t, err)

	perms := EnumeratePermutations(doc)
	cache := filecache.New()

	base, err := Merge(doc, perms[0], cache)
	require.NoError(t, err)
	val, ok := base.Root.Get("color")
	require.True(t, ok)
	text, ok := val.Get("text")
	require.True(t, ok)
	v, _ := text.Get("$value")
	assert.Equal(t, "black", v.Str)
	assert.Equal(t, "core", base.Provenance["color.text"].SourceSet)

	dark, err := Merge(doc, perms[1], cache)
	require.NoError(t, err)
	val, ok = dark.Root.Get("color")
	require.True(t, ok)
	text, ok = val.Get("text")
	require.True(t, ok)
	v, _ = text.Get("$value")
	assert.Equal(t, "white", v.Str)
	assert.Equal(t, "theme", dark.Provenance["color.text"].SourceModifier)
	assert.Equal(t, "dark", dark.Provenance["color.text"].SourceContext)
}
