/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

// LocalResolver handles local filesystem paths (non-package specifiers) —
// the only resolver spec.md §4.2 requires to exist.
type LocalResolver struct{}

func NewLocalResolver() *LocalResolver { return &LocalResolver{} }

func (r *LocalResolver) Resolve(spec string) (*ResolvedFile, error) {
	return &ResolvedFile{Specifier: spec, Path: spec, Kind: KindLocal}, nil
}

func (r *LocalResolver) CanResolve(spec string) bool {
	return !IsPackageSpecifier(spec)
}
