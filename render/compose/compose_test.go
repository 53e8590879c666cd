/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tokenforge.dev/tokenforge/render"
	"go.tokenforge.dev/tokenforge/resolution"
	"go.tokenforge.dev/tokenforge/token"
)

func TestFormatObjectConstants(t *testing.T) {
	base := resolution.Permutation{Inputs: map[string]string{}, IsBase: true}
	ctx := render.Context{
		Permutations: []render.PermutationResult{{
			Permutation: base,
			Tokens: []*token.Token{
				{Name: "color.brand", Path: []string{"color", "brand"}, Type: "color",
					Value: map[string]any{"colorSpace": "srgb", "components": []any{0.0, 0.5, 1.0}, "alpha": 1.0}},
				{Name: "spacing.sm", Path: []string{"spacing", "sm"}, Type: "dimension", Value: 8.0},
			},
		}},
	}
	out, err := New().Format(ctx, Options{})
	require.NoError(t, err)
	body, ok := out["Tokens-base.kt"]
	require.True(t, ok)
	assert.Contains(t, body, "object Tokens {")
	assert.Contains(t, body, "val ColorBrand: Color = Color(0x")
	assert.Contains(t, body, "val SpacingSm: Dp = 8.dp")
}
