/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tokenforge.dev/tokenforge/token"
)

func TestApplyFiltersAND(t *testing.T) {
	tokens := []*token.Token{
		{Name: "color.primary", Path: []string{"color", "primary"}, Type: "color"},
		{Name: "spacing.small", Path: []string{"spacing", "small"}, Type: "dimension"},
	}
	prefixFilter, err := ByPath("color.")
	require.NoError(t, err)
	out := ApplyFilters(tokens, []Filter{ByType("color"), prefixFilter})
	require.Len(t, out, 1)
	assert.Equal(t, "color.primary", out[0].Name)
}

func TestByPathRegex(t *testing.T) {
	tokens := []*token.Token{
		{Name: "color.primary.hover", Path: []string{"color", "primary", "hover"}},
		{Name: "spacing.small", Path: []string{"spacing", "small"}},
	}
	regexFilter, err := ByPath(`^color\..*\.hover$`)
	require.NoError(t, err)
	out := ApplyFilters(tokens, []Filter{regexFilter})
	require.Len(t, out, 1)
}

func TestByPathInvalidRegex(t *testing.T) {
	_, err := ByPath(`color.(unterminated`)
	require.Error(t, err)
}

func TestApplyTransformsOrderAndMatcher(t *testing.T) {
	tokens := []*token.Token{
		{Name: "Color.Primary", Type: "color"},
		{Name: "Spacing.Small", Type: "dimension"},
	}
	onlyColor := Transform{
		Name:    "onlyColor",
		Matcher: func(tok *token.Token) (bool, error) { return tok.Type == "color", nil },
		Apply: func(tok *token.Token) (*token.Token, error) {
			out := tok.Clone()
			out.Value = "matched"
			return out, nil
		},
	}
	out, warnings, err := ApplyTransforms(tokens, []Transform{KebabCaseNames(), onlyColor})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "color-primary", out[0].Name)
	assert.Equal(t, "matched", out[0].Value)
	assert.Nil(t, out[1].Value)
}

func TestApplyTransformsFailureAborts(t *testing.T) {
	tokens := []*token.Token{{Name: "a"}}
	failing := Transform{
		Name: "boom",
		Apply: func(tok *token.Token) (*token.Token, error) {
			return nil, errors.New("kaboom")
		},
	}
	_, _, err := ApplyTransforms(tokens, []Transform{failing})
	require.Error(t, err)
	var tErr *TransformError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, "boom", tErr.TransformName)
}

func TestMatcherErrorDowngradesToWarning(t *testing.T) {
	tokens := []*token.Token{{Name: "a"}}
	tr := Transform{
		Name:    "flaky",
		Matcher: func(tok *token.Token) (bool, error) { return false, errors.New("bad matcher") },
		Apply:   func(tok *token.Token) (*token.Token, error) { return tok, nil },
	}
	out, warnings, err := ApplyTransforms(tokens, []Transform{tr})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, tokens[0], out[0])
}

func TestParseCSSColorStrings(t *testing.T) {
	tokens := []*token.Token{{Name: "color.brand", Type: "color", Value: "#0080ff"}}
	out, _, err := ApplyTransforms(tokens, []Transform{ParseCSSColorStrings()})
	require.NoError(t, err)
	m := out[0].Value.(map[string]any)
	assert.Equal(t, "srgb", m["colorSpace"])
	comps := m["components"].([]any)
	require.Len(t, comps, 3)
}

func TestToColorSpaceSRGBtoHSL(t *testing.T) {
	tokens := []*token.Token{{
		Name: "color.red",
		Type: "color",
		Value: map[string]any{
			"colorSpace": "srgb",
			"components": []any{1.0, 0.0, 0.0},
			"alpha":      1.0,
		},
	}}
	out, _, err := ApplyTransforms(tokens, []Transform{ToColorSpace("hsl")})
	require.NoError(t, err)
	m := out[0].Value.(map[string]any)
	assert.Equal(t, "hsl", m["colorSpace"])
}
