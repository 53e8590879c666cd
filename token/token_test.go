/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSSVariableName(t *testing.T) {
	tok := &Token{Name: "color.primary", Path: []string{"color", "primary"}}
	assert.Equal(t, "--color-primary", tok.CSSVariableName(""))
	assert.Equal(t, "--brand-color-primary", tok.CSSVariableName("brand"))
}

func TestDotPath(t *testing.T) {
	tok := &Token{Path: []string{"color", "primary", "hover"}}
	assert.Equal(t, "color.primary.hover", tok.DotPath())
}

func TestClone(t *testing.T) {
	tok := &Token{Name: "a.b", Path: []string{"a", "b"}, Value: "#fff"}
	clone := tok.Clone()
	clone.Path[0] = "z"
	assert.Equal(t, "a", tok.Path[0], "clone must not alias the original Path slice")
	assert.Equal(t, tok.Value, clone.Value)
}

func TestBuildTree(t *testing.T) {
	tokens := []*Token{
		{Name: "color.primary", Path: []string{"color", "primary"}, Value: "#f00"},
		{Name: "color.secondary", Path: []string{"color", "secondary"}, Value: "#0f0"},
		{Name: "spacing.small", Path: []string{"spacing", "small"}, Value: "4px"},
	}
	root := BuildTree(tokens)

	assert.ElementsMatch(t, []string{"color", "spacing"}, root.SortedGroupNames())
	colorGroup := root.Groups["color"]
	assert.ElementsMatch(t, []string{"primary", "secondary"}, colorGroup.SortedTokenNames())
	assert.Equal(t, "#f00", colorGroup.Tokens["primary"].Value)

	all := root.AllTokens()
	assert.Len(t, all, 3)
	assert.Equal(t, "color.primary", all[0].Name)
}
