/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package reference

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tokenforge.dev/tokenforge/filecache"
	tffs "go.tokenforge.dev/tokenforge/fs"
	"go.tokenforge.dev/tokenforge/specifier"
	"go.tokenforge.dev/tokenforge/valuetree"
)

func TestResolveWithOptionsNilSpecifierBehavesLikeResolve(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.json"), []byte(`{"color":"#fff"}`), 0o644))

	doc := valuetree.NewObject([]string{"a"}, map[string]valuetree.Value{
		"a": valuetree.Ref("./base.json#/color"),
	})
	resolved, err := ResolveWithOptions(context.Background(), doc, dir, filecache.New(), Options{})
	require.NoError(t, err)
	a, ok := resolved.Get("a")
	require.True(t, ok)
	assert.Equal(t, "#fff", a.Str)
}

func TestResolveWithOptionsNPMSpecifier(t *testing.T) {
	dir := t.TempDir()
	pkgDir := filepath.Join(dir, "node_modules", "@acme", "tokens")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "core.json"), []byte(`{"color":"#0f0"}`), 0o644))

	resolver := specifier.NewNPMResolver(tffs.NewOSFileSystem(), dir)
	doc := valuetree.NewObject([]string{"a"}, map[string]valuetree.Value{
		"a": valuetree.Ref("npm:@acme/tokens/core.json#/color"),
	})
	resolved, err := ResolveWithOptions(context.Background(), doc, dir, filecache.New(), Options{Specifier: resolver})
	require.NoError(t, err)
	a, ok := resolved.Get("a")
	require.True(t, ok)
	assert.Equal(t, "#0f0", a.Str)
}

type stubFetcher struct {
	content []byte
	err     error
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return s.content, s.err
}

func TestResolveWithOptionsFetcherFallback(t *testing.T) {
	dir := t.TempDir()
	resolver := specifier.NewNPMResolver(tffs.NewOSFileSystem(), dir) // no node_modules present, so local resolution fails
	fetcher := &stubFetcher{content: []byte(`{"color":"#abc"}`)}

	doc := valuetree.NewObject([]string{"a"}, map[string]valuetree.Value{
		"a": valuetree.Ref("npm:@acme/tokens/core.json#/color"),
	})
	resolved, err := ResolveWithOptions(context.Background(), doc, dir, filecache.New(), Options{
		Specifier: resolver,
		Fetcher:   fetcher,
	})
	require.NoError(t, err)
	a, ok := resolved.Get("a")
	require.True(t, ok)
	assert.Equal(t, "#abc", a.Str)
}
