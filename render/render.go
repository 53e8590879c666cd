/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package render defines the Renderer/Bundler interface (Stage 10) and the
// shared PermutationResult/RenderContext/OutputTree shapes every concrete
// renderer (css, tailwind, json, jsmodule, swiftui, compose, figma) builds
// on.
package render

import (
	"go.tokenforge.dev/tokenforge/docloader"
	"go.tokenforge.dev/tokenforge/resolution"
	"go.tokenforge.dev/tokenforge/token"
)

// PermutationResult is one fully-resolved, filtered, and transformed
// permutation handed to a renderer.
type PermutationResult struct {
	Permutation resolution.Permutation
	Tokens      []*token.Token
}

// Meta carries the dimension/default/base-permutation bookkeeping every
// renderer needs without re-deriving it from the resolver document.
type Meta struct {
	Dimensions      []string          // modifier names, in document order
	Defaults        map[string]string // modifier -> default context
	BasePermutation resolution.Permutation
}

// Context is the `ctx` argument to Renderer.Format: the full permutation
// list plus enough resolver metadata to drive bundling decisions.
type Context struct {
	Permutations []PermutationResult
	Resolver     *docloader.Document
	Meta         Meta
}

// OutputTree maps a virtual file path to its string contents.
type OutputTree map[string]string

// Renderer formats a Context into an OutputTree. Opts is renderer-specific
// (filename template, selector function, module format, ...).
type Renderer interface {
	Format(ctx Context, opts any) (OutputTree, error)
}

// Preset selects whether a renderer emits one file per permutation
// ("standalone") or a single cascading/keyed file covering all permutations
// ("bundle").
type Preset string

const (
	PresetStandalone Preset = "standalone"
	PresetBundle      Preset = "bundle"
)

// BuildMeta derives a Meta from a loaded resolver document.
func BuildMeta(doc *docloader.Document, base resolution.Permutation) Meta {
	defaults := make(map[string]string, len(doc.ModifierOrder))
	for _, name := range doc.ModifierOrder {
		defaults[name] = doc.Modifiers[name].Default
	}
	return Meta{
		Dimensions:      append([]string(nil), doc.ModifierOrder...),
		Defaults:        defaults,
		BasePermutation: base,
	}
}
