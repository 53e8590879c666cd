/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package docparse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.tokenforge.dev/tokenforge/valuetree"
)

func TestParseJSONWithComments(t *testing.T) {
	v, err := Parse([]byte(`{
		// a comment
		"color": { "$value": "#fff" }
	}`))
	assert.NoError(t, err)
	assert.Equal(t, valuetree.KindObject, v.Kind)
	color, ok := v.Get("color")
	assert.True(t, ok)
	val, ok := color.Get("$value")
	assert.True(t, ok)
	assert.Equal(t, "#fff", val.Str)
}

func TestParseYAML(t *testing.T) {
	v, err := Parse([]byte("color:\n  \"$value\": \"#fff\"\n"))
	assert.NoError(t, err)
	color, ok := v.Get("color")
	assert.True(t, ok)
	val, ok := color.Get("$value")
	assert.True(t, ok)
	assert.Equal(t, "#fff", val.Str)
}

func TestParseRef(t *testing.T) {
	v, err := Parse([]byte(`{"$ref": "./base.json#/color"}`))
	assert.NoError(t, err)
	assert.Equal(t, valuetree.KindRef, v.Kind)
	assert.Equal(t, "./base.json#/color", v.Ref)
}
