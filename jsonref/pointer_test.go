/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package jsonref

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.tokenforge.dev/tokenforge/valuetree"
)

func TestParseCurlyBraceRef(t *testing.T) {
	path, ok := ParseCurlyBraceRef("{color.primary}")
	assert.True(t, ok)
	assert.Equal(t, "color.primary", path)

	_, ok = ParseCurlyBraceRef("prefix-{color.primary}")
	assert.False(t, ok, "interpolated strings are not whole-value aliases")
}

func TestExtractAllRefs(t *testing.T) {
	refs := ExtractAllRefs("{a.b} and {c.d}")
	assert.Equal(t, []string{"a.b", "c.d"}, refs)
}

func TestInterpolate(t *testing.T) {
	out := Interpolate("calc({spacing.base} * 2)", func(p string) string {
		return "4px"
	})
	assert.Equal(t, "calc(4px * 2)", out)
}

func TestParsePointer(t *testing.T) {
	ptr := ParsePointer("#/color/primary~1variant")
	assert.Equal(t, Pointer{"color", "primary/variant"}, ptr)
	assert.Equal(t, "color.primary/variant", ptr.DotPath())
}

func TestSplitURI(t *testing.T) {
	f, frag := SplitURI("./base.json#/color/primary")
	assert.Equal(t, "./base.json", f)
	assert.Equal(t, "/color/primary", frag)

	f, frag = SplitURI("#/color/primary")
	assert.Equal(t, "", f)
	assert.Equal(t, "/color/primary", frag)
}

func TestGet(t *testing.T) {
	v := valuetree.NewObject([]string{"components"}, map[string]valuetree.Value{
		"components": valuetree.Array(valuetree.Num(0.2), valuetree.Num(0.4), valuetree.Num(0.9)),
	})
	got, ok := Get(v, Pointer{"components", "1"})
	assert.True(t, ok)
	assert.Equal(t, 0.4, got.Num)

	_, ok = Get(v, Pointer{"components", "9"})
	assert.False(t, ok)
}
