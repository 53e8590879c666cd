/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"fmt"
	"path/filepath"
	"strings"

	tffs "go.tokenforge.dev/tokenforge/fs"
)

// NPMResolver resolves npm: specifiers to node_modules paths, walking up
// the directory tree the way Node's own module resolution does.
type NPMResolver struct {
	fs      tffs.FileSystem
	rootDir string
}

func NewNPMResolver(fs tffs.FileSystem, rootDir string) *NPMResolver {
	return &NPMResolver{fs: fs, rootDir: rootDir}
}

func (r *NPMResolver) Resolve(spec string) (*ResolvedFile, error) {
	parsed := Parse(spec)
	if parsed.Kind != KindNPM {
		return nil, fmt.Errorf("specifier: not an npm specifier: %s", spec)
	}

	dir := r.rootDir
	if !filepath.IsAbs(dir) {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("specifier: failed to resolve path %s: %w", dir, err)
		}
		dir = absDir
	}
	startDir := dir

	for {
		candidate := filepath.Join(dir, "node_modules", parsed.Package, parsed.File)
		if r.fs.Exists(candidate) {
			return &ResolvedFile{Specifier: spec, Path: candidate, Kind: KindNPM}, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return nil, fmt.Errorf("specifier: package not found: %s (looked in node_modules starting from %s)", parsed.Package, startDir)
}

func (r *NPMResolver) CanResolve(spec string) bool {
	return strings.HasPrefix(spec, "npm:")
}
