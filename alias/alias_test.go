/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package alias

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tokenforge.dev/tokenforge/schema"
	"go.tokenforge.dev/tokenforge/token"
	"go.tokenforge.dev/tokenforge/valuetree"
)

func tok(name string, value valuetree.Value) *token.Token {
	return &token.Token{Name: name, Path: []string{name}, OriginalValue: value}
}

func TestResolveWholeValueAlias(t *testing.T) {
	tokens := map[string]*token.Token{
		"color.brand":   tok("color.brand", valuetree.Str("#f00")),
		"color.primary": tok("color.primary", valuetree.Str("{color.brand}")),
	}
	require.NoError(t, Resolve(tokens))
	assert.Equal(t, "#f00", tokens["color.primary"].Value)
}

func TestResolveInterpolated(t *testing.T) {
	tokens := map[string]*token.Token{
		"spacing.base": tok("spacing.base", valuetree.Num(4)),
		"spacing.calc": tok("spacing.calc", valuetree.Str("calc({spacing.base} * 2)")),
	}
	require.NoError(t, Resolve(tokens))
	assert.Equal(t, "calc(4 * 2)", tokens["spacing.calc"].Value)
}

func TestResolveCircular(t *testing.T) {
	tokens := map[string]*token.Token{
		"a": tok("a", valuetree.Str("{b}")),
		"b": tok("b", valuetree.Str("{a}")),
	}
	err := Resolve(tokens)
	require.Error(t, err)
	var cycleErr *schema.CircularReferenceError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"a", "b", "a"}, cycleErr.Trail)
}

func TestArrayAliasingNoFlatten(t *testing.T) {
	shadowObj := func(blur float64) valuetree.Value {
		return valuetree.NewObject([]string{"blur"}, map[string]valuetree.Value{"blur": valuetree.Num(blur)})
	}
	tokens := map[string]*token.Token{
		"shadow.base":   tok("shadow.base", shadowObj(2)),
		"shadow.accent": tok("shadow.accent", shadowObj(4)),
		"shadow.layered": tok("shadow.layered", valuetree.Array(
			valuetree.Str("{shadow.base}"),
			valuetree.Str("{shadow.accent}"),
			shadowObj(8),
		)),
	}
	require.NoError(t, Resolve(tokens))
	arr, ok := tokens["shadow.layered"].Value.([]any)
	require.True(t, ok)
	require.Len(t, arr, 3)
}

func TestDepthBoundExactlySucceeds(t *testing.T) {
	tokens := map[string]*token.Token{}
	const n = 10
	for i := 0; i < n; i++ {
		name := chainName(i)
		next := chainName(i + 1)
		if i == n-1 {
			tokens[name] = tok(name, valuetree.Str("end"))
		} else {
			tokens[name] = tok(name, valuetree.Str("{"+next+"}"))
		}
	}
	require.NoError(t, Resolve(tokens))
	assert.Equal(t, "end", tokens[chainName(0)].Value)
}

func chainName(i int) string {
	return "chain" + string(rune('a'+i))
}
