/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package reference

import (
	"context"
	"path/filepath"

	"go.tokenforge.dev/tokenforge/filecache"
	"go.tokenforge.dev/tokenforge/specifier"
	"go.tokenforge.dev/tokenforge/valuetree"
)

// Options configures optional, additive behavior of Resolve. The zero value
// preserves the required behavior of spec.md §4.2: only local, file-relative
// and absolute $ref targets are read.
type Options struct {
	// Specifier, when set, is consulted before a $ref's file part is
	// resolved against baseDir. It lets npm: and jsr: specifiers name a
	// $ref target alongside plain local paths.
	Specifier specifier.Resolver

	// Fetcher, when set, is tried as a CDN fallback when Specifier is set
	// and fails for a package specifier. With Specifier nil, a package
	// specifier is read as a local path and Fetcher is not consulted.
	// Never consulted for local paths.
	Fetcher Fetcher

	// CDN selects the provider Fetcher fetches from. Defaults to
	// specifier.CDNUnpkg when empty.
	CDN specifier.CDN
}

// LoadSpecifier resolves and loads a file path, local path, or package
// specifier, trying local/specifier resolution first and falling back to
// opts.Fetcher for package specifiers it could not resolve locally. It
// backs both $ref file-part loading here and resolutionOrder source-entry
// loading in package resolution.
func LoadSpecifier(ctx context.Context, filePart, baseDir string, cache *filecache.Cache, opts Options) (valuetree.Value, string, error) {
	if opts.Specifier != nil && specifier.IsPackageSpecifier(filePart) {
		resolved, err := opts.Specifier.Resolve(filePart)
		if err == nil {
			v, loadErr := cache.Load(resolved.Path)
			return v, resolved.Path, loadErr
		}
		if opts.Fetcher != nil {
			if url, ok := specifier.CDNURL(filePart, opts.CDN); ok {
				v, fetchErr := cache.LoadWith(url, func() ([]byte, error) {
					return opts.Fetcher.Fetch(ctx, url)
				})
				return v, url, fetchErr
			}
		}
		return valuetree.Value{}, "", err
	}

	absPath := filePart
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(baseDir, filePart)
	}
	v, err := cache.Load(absPath)
	return v, absPath, err
}
