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

// JSRNodeModulesResolver resolves jsr: specifiers via the npm compatibility
// layer: packages installed with `npx jsr add @scope/pkg` land under
// node_modules/@jsr/scope__pkg.
type JSRNodeModulesResolver struct {
	fs      tffs.FileSystem
	rootDir string
}

func NewJSRNodeModulesResolver(fs tffs.FileSystem, rootDir string) (*JSRNodeModulesResolver, error) {
	if !filepath.IsAbs(rootDir) {
		return nil, fmt.Errorf("specifier: rootDir must be absolute, got %s", rootDir)
	}
	return &JSRNodeModulesResolver{fs: fs, rootDir: rootDir}, nil
}

func (r *JSRNodeModulesResolver) Resolve(spec string) (*ResolvedFile, error) {
	parsed := Parse(spec)
	if parsed.Kind != KindJSR {
		return nil, fmt.Errorf("specifier: not a jsr specifier: %s", spec)
	}

	npmPackageName := jsrToNPMCompatPackage(parsed.Package)
	dir := r.rootDir
	startDir := dir

	for {
		nodeModulesBase := filepath.Join(dir, "node_modules")
		candidate := filepath.Clean(filepath.Join(nodeModulesBase, "@jsr", npmPackageName, parsed.File))

		if !isInsideDir(candidate, nodeModulesBase) {
			return nil, fmt.Errorf("specifier: path traversal detected in specifier: %s", spec)
		}

		if r.fs.Exists(candidate) {
			return &ResolvedFile{Specifier: spec, Path: candidate, Kind: KindJSR}, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return nil, fmt.Errorf("specifier: jsr package not found: %s (looked in node_modules/@jsr starting from %s)", parsed.Package, startDir)
}

func (r *JSRNodeModulesResolver) CanResolve(spec string) bool {
	return strings.HasPrefix(spec, "jsr:")
}

func jsrToNPMCompatPackage(pkg string) string {
	if scoped, ok := strings.CutPrefix(pkg, "@"); ok {
		return strings.Replace(scoped, "/", "__", 1)
	}
	return pkg
}

func isInsideDir(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
