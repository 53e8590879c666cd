/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package reference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tokenforge.dev/tokenforge/filecache"
	"go.tokenforge.dev/tokenforge/schema"
	"go.tokenforge.dev/tokenforge/valuetree"
)

func TestResolveLocalPointer(t *testing.T) {
	doc := valuetree.NewObject([]string{"a", "b"}, map[string]valuetree.Value{
		"a": valuetree.Ref("#/b"),
		"b": valuetree.Str("hello"),
	})
	resolved, err := Resolve(doc, t.TempDir(), filecache.New())
	require.NoError(t, err)
	a, ok := resolved.Get("a")
	require.True(t, ok)
	assert.Equal(t, "hello", a.Str)
}

func TestResolveFileRelative(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.json"), []byte(`{"color":{"primary":"#fff"}}`), 0o644))

	doc := valuetree.NewObject([]string{"theme"}, map[string]valuetree.Value{
		"theme": valuetree.Ref("./base.json#/color/primary"),
	})
	resolved, err := Resolve(doc, dir, filecache.New())
	require.NoError(t, err)
	theme, ok := resolved.Get("theme")
	require.True(t, ok)
	assert.Equal(t, "#fff", theme.Str)
}

func TestResolveMissingFile(t *testing.T) {
	doc := valuetree.NewObject([]string{"a"}, map[string]valuetree.Value{
		"a": valuetree.Ref("./missing.json"),
	})
	_, err := Resolve(doc, t.TempDir(), filecache.New())
	require.Error(t, err)
	var fileErr *schema.FileOperationError
	assert.ErrorAs(t, err, &fileErr)
}

func TestResolveMissingPointer(t *testing.T) {
	doc := valuetree.NewObject([]string{"a", "b"}, map[string]valuetree.Value{
		"a": valuetree.Ref("#/missing"),
		"b": valuetree.Str("hi"),
	})
	_, err := Resolve(doc, t.TempDir(), filecache.New())
	require.Error(t, err)
	var refErr *schema.TokenReferenceError
	assert.ErrorAs(t, err, &refErr)
}

func TestResolveCycle(t *testing.T) {
	doc := valuetree.NewObject([]string{"a", "b"}, map[string]valuetree.Value{
		"a": valuetree.Ref("#/b"),
		"b": valuetree.Ref("#/a"),
	})
	_, err := Resolve(doc, t.TempDir(), filecache.New())
	require.Error(t, err)
	var cycleErr *schema.CircularReferenceError
	assert.ErrorAs(t, err, &cycleErr)
}

func TestResolveSiblingOverride(t *testing.T) {
	doc := valuetree.NewObject([]string{"a", "b"}, map[string]valuetree.Value{
		"a": Value2(valuetree.Ref("#/b"), "extra", valuetree.Str("override")),
		"b": valuetree.NewObject([]string{"x"}, map[string]valuetree.Value{"x": valuetree.Str("base")}),
	})
	resolved, err := Resolve(doc, t.TempDir(), filecache.New())
	require.NoError(t, err)
	a, ok := resolved.Get("a")
	require.True(t, ok)
	x, ok := a.Get("x")
	require.True(t, ok)
	assert.Equal(t, "base", x.Str)
	extra, ok := a.Get("extra")
	require.True(t, ok)
	assert.Equal(t, "override", extra.Str)
}

// Value2 builds a Ref value with one sibling key, for tests only.
func Value2(ref valuetree.Value, siblingKey string, siblingVal valuetree.Value) valuetree.Value {
	ref.RefSiblingKeys = []string{siblingKey}
	ref.RefSiblingValues = map[string]valuetree.Value{siblingKey: siblingVal}
	return ref
}
