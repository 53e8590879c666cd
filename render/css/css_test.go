/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tokenforge.dev/tokenforge/render"
	"go.tokenforge.dev/tokenforge/resolution"
	"go.tokenforge.dev/tokenforge/token"
)

func srgb(r, g, b float64) map[string]any {
	return map[string]any{
		"colorSpace": "srgb",
		"components": []any{r, g, b},
		"alpha":      1.0,
	}
}

func TestToCSSValueColorHex(t *testing.T) {
	assert.Equal(t, "#0080ff", colorToCSS(srgb(0, 128.0/255.0, 1)))
}

func TestToCSSValueCubicBezier(t *testing.T) {
	got := ToCSSValue("cubicBezier", []any{0.25, 0.1, 0.25, 1.0})
	assert.Equal(t, "cubic-bezier(0.25, 0.1, 0.25, 1)", got)
}

func TestToCSSValueFontFamily(t *testing.T) {
	assert.Equal(t, `"Open Sans"`, ToCSSValue("fontFamily", "Open Sans"))
	assert.Equal(t, `"Roboto"`, ToCSSValue("fontFamily", `"Roboto"`))
}

func TestToCSSValueNumber(t *testing.T) {
	assert.Equal(t, "400", ToCSSValue("number", 400.0))
	assert.Equal(t, "1.5", ToCSSValue("number", 1.5))
}

func TestFormatStandaloneBasicMerge(t *testing.T) {
	base := resolution.Permutation{Inputs: map[string]string{}, IsBase: true}
	ctx := render.Context{
		Permutations: []render.PermutationResult{{
			Permutation: base,
			Tokens: []*token.Token{{
				Name: "color.brand", Path: []string{"color", "brand"}, Type: "color",
				Value: srgb(0, 128.0/255.0, 1),
			}},
		}},
	}
	f := New()
	out, err := f.Format(ctx, Options{FilenameTemplate: "tokens-{_base}.css"})
	require.NoError(t, err)
	css, ok := out["tokens-base.css"]
	require.True(t, ok)
	assert.Contains(t, css, ":root {")
	assert.Contains(t, css, "--color-brand: #0080ff;")
}

func TestFormatStandaloneLitModule(t *testing.T) {
	base := resolution.Permutation{Inputs: map[string]string{}, IsBase: true}
	ctx := render.Context{
		Permutations: []render.PermutationResult{{
			Permutation: base,
			Tokens:      []*token.Token{{Name: "color.brand", Path: []string{"color", "brand"}, Type: "color", Value: srgb(0, 0, 0)}},
		}},
	}
	out, err := New().Format(ctx, Options{StandaloneSelector: SelectorHost, Module: ModuleLit})
	require.NoError(t, err)
	body, ok := out["tokens-base.ts"]
	require.True(t, ok)
	assert.Contains(t, body, `import { css } from "lit";`)
	assert.Contains(t, body, ":host {")
}

func TestFormatBundleThemeModifier(t *testing.T) {
	base := resolution.Permutation{Inputs: map[string]string{"theme": "light"}, IsBase: true}
	dark := resolution.Permutation{Inputs: map[string]string{"theme": "dark"}, IsBase: false}
	baseTok := &token.Token{
		Name: "color.brand", Path: []string{"color", "brand"}, Type: "color",
		Value: srgb(0, 128.0/255.0, 1), SourceSet: "core",
	}
	darkTok := &token.Token{
		Name: "color.brand", Path: []string{"color", "brand"}, Type: "color",
		Value: srgb(1, 1, 1), SourceModifier: "theme", SourceContext: "dark",
	}
	ctx := render.Context{
		Permutations: []render.PermutationResult{
			{Permutation: base, Tokens: []*token.Token{baseTok}},
			{Permutation: dark, Tokens: []*token.Token{darkTok}},
		},
		Meta: render.Meta{
			Dimensions: []string{"theme"},
			Defaults:   map[string]string{"theme": "light"},
		},
	}
	f := New()
	out, err := f.Format(ctx, Options{Preset: render.PresetBundle})
	require.NoError(t, err)
	css := out["tokens.css"]
	assert.Contains(t, css, ":root {")
	assert.Contains(t, css, `[data-theme="dark"] {`)
	assert.Contains(t, css, "--color-brand: #ffffff;")
}
