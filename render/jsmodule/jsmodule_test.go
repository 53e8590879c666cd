/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package jsmodule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tokenforge.dev/tokenforge/render"
	"go.tokenforge.dev/tokenforge/resolution"
	"go.tokenforge.dev/tokenforge/token"
)

func TestFormatBundlePick(t *testing.T) {
	light := resolution.Permutation{Inputs: map[string]string{"theme": "light"}, IsBase: true}
	dark := resolution.Permutation{Inputs: map[string]string{"theme": "dark"}, IsBase: false}
	ctx := render.Context{
		Permutations: []render.PermutationResult{
			{Permutation: light, Tokens: []*token.Token{{Name: "color.brand", Path: []string{"color", "brand"}, Value: "#0080ff"}}},
			{Permutation: dark, Tokens: []*token.Token{{Name: "color.brand", Path: []string{"color", "brand"}, Value: "#66b2ff"}}},
		},
		Meta: render.Meta{Dimensions: []string{"theme"}, Defaults: map[string]string{"theme": "light"}},
	}
	out, err := New().Format(ctx, Options{Preset: render.PresetBundle})
	require.NoError(t, err)
	body, ok := out["tokens.ts"]
	require.True(t, ok)
	assert.Contains(t, body, "export function pick")
	assert.Contains(t, body, `"light"`)
}
