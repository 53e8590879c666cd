/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package reference implements Stages 2 and 5 of the pipeline: expanding
// every `{ "$ref": <uri> }` object in a document tree to the value it names,
// following file-relative, absolute, and same-document JSON-Pointer URIs,
// with per-call cycle detection and depth bounding over a shared,
// single-flight file cache.
package reference

import (
	"context"
	"path/filepath"

	"go.tokenforge.dev/tokenforge/filecache"
	"go.tokenforge.dev/tokenforge/jsonref"
	"go.tokenforge.dev/tokenforge/schema"
	"go.tokenforge.dev/tokenforge/valuetree"
)

// MaxDepth bounds the length of a single $ref chain (invariant I5 / the
// boundary behavior: depth exactly at the bound succeeds, depth+1 fails).
const MaxDepth = 10

// docContext tracks the document a $ref is currently being resolved against,
// so that same-document pointers ("#/...") resolve relative to the file that
// contains them rather than the original caller's document.
type docContext struct {
	doc     valuetree.Value
	baseDir string
	path    string // canonical absolute path, CDN URL, or "" for the original in-memory document
}

// Resolve walks doc and replaces every KindRef node with the value it names,
// recursing so chained refs are fully expanded before substitution. baseDir
// is the directory relative file paths are resolved against, and cache is
// the build-wide shared file cache (safe for concurrent use across
// permutations; the visited set constructed here is not).
func Resolve(doc valuetree.Value, baseDir string, cache *filecache.Cache) (valuetree.Value, error) {
	return ResolveWithOptions(context.Background(), doc, baseDir, cache, Options{})
}

// ResolveWithOptions is Resolve with the additive behavior in opts enabled.
// ctx bounds any network fetch opts.Fetcher performs; it is otherwise unused
// since every other suspension point is a local file read.
func ResolveWithOptions(ctx context.Context, doc valuetree.Value, baseDir string, cache *filecache.Cache, opts Options) (valuetree.Value, error) {
	root := docContext{doc: doc, baseDir: baseDir}
	return resolveValue(ctx, doc, root, cache, nil, opts)
}

func resolveValue(ctx context.Context, v valuetree.Value, dc docContext, cache *filecache.Cache, trail []string, opts Options) (valuetree.Value, error) {
	switch v.Kind {
	case valuetree.KindRef:
		return resolveRef(ctx, v, dc, cache, trail, opts)
	case valuetree.KindObject:
		fields := make(map[string]valuetree.Value, len(v.Fields))
		for _, k := range v.Keys {
			resolved, err := resolveValue(ctx, v.Fields[k], dc, cache, trail, opts)
			if err != nil {
				return valuetree.Value{}, err
			}
			fields[k] = resolved
		}
		return valuetree.NewObject(v.Keys, fields), nil
	case valuetree.KindArray:
		items := make([]valuetree.Value, len(v.Array))
		for i, e := range v.Array {
			resolved, err := resolveValue(ctx, e, dc, cache, trail, opts)
			if err != nil {
				return valuetree.Value{}, err
			}
			items[i] = resolved
		}
		return valuetree.Array(items...), nil
	default:
		return v, nil
	}
}

func resolveRef(ctx context.Context, v valuetree.Value, dc docContext, cache *filecache.Cache, trail []string, opts Options) (valuetree.Value, error) {
	filePart, fragment := jsonref.SplitURI(v.Ref)

	targetCtx := dc
	if filePart != "" {
		parsed, key, err := LoadSpecifier(ctx, filePart, dc.baseDir, cache, opts)
		if err != nil {
			return valuetree.Value{}, &schema.FileOperationError{Op: "read", Path: key, Cause: err}
		}
		targetCtx = docContext{doc: parsed, baseDir: filepath.Dir(key), path: key}
	}

	trailKey := targetCtx.path + "#" + fragment
	for _, seen := range trail {
		if seen == trailKey {
			return valuetree.Value{}, &schema.CircularReferenceError{Trail: append(append([]string{}, trail...), trailKey)}
		}
	}
	if len(trail)+1 > MaxDepth {
		return valuetree.Value{}, &schema.CircularReferenceError{Trail: append(append([]string{}, trail...), trailKey)}
	}

	target := targetCtx.doc
	if fragment != "" {
		ptr := jsonref.ParsePointer(fragment)
		got, ok := jsonref.Get(targetCtx.doc, ptr)
		if !ok {
			return valuetree.Value{}, &schema.TokenReferenceError{URI: v.Ref, Path: ptr.DotPath()}
		}
		target = got
	}

	nextTrail := append(append([]string{}, trail...), trailKey)
	resolved, err := resolveValue(ctx, target, targetCtx, cache, nextTrail, opts)
	if err != nil {
		return valuetree.Value{}, err
	}

	if len(v.RefSiblingKeys) == 0 {
		return resolved, nil
	}
	return mergeSiblings(ctx, resolved, v, dc, cache, trail, opts)
}

// mergeSiblings applies the non-$ref keys on a $ref object as a
// property-level override, resolved in the referencing document's own
// context and merged in after substitution (spec §4.2).
func mergeSiblings(ctx context.Context, resolved valuetree.Value, ref valuetree.Value, dc docContext, cache *filecache.Cache, trail []string, opts Options) (valuetree.Value, error) {
	if resolved.Kind != valuetree.KindObject {
		return resolved, nil
	}
	out := resolved
	for _, k := range ref.RefSiblingKeys {
		siblingResolved, err := resolveValue(ctx, ref.RefSiblingValues[k], dc, cache, trail, opts)
		if err != nil {
			return valuetree.Value{}, err
		}
		out = out.WithField(k, siblingResolved)
	}
	return out, nil
}
