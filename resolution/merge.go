/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolution

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.tokenforge.dev/tokenforge/docloader"
	"go.tokenforge.dev/tokenforge/filecache"
	"go.tokenforge.dev/tokenforge/reference"
	"go.tokenforge.dev/tokenforge/schema"
	"go.tokenforge.dev/tokenforge/valuetree"
)

// Preprocessor is a user-supplied pass over the raw merged document, run
// after Stage 3's merge and before Stage 5 re-resolves any $refs the merge
// or the preprocessor itself introduced. Spec §6: `Preprocessor = { name?,
// preprocess(doc) → doc }`.
type Preprocessor struct {
	Name       string
	Preprocess func(valuetree.Value) (valuetree.Value, error)
}

// Provenance records which resolutionOrder entry last wrote a leaf, kept in
// a table parallel to the merged tree rather than folded into $value, so
// transforms cannot corrupt it (spec §9).
type Provenance struct {
	SourceSet      string
	SourceModifier string
	SourceContext  string
}

// MergedDocument is one permutation's merged, Stage-5-re-resolved tree.
type MergedDocument struct {
	Root        valuetree.Value
	Provenance  map[string]Provenance
	Diagnostics []error
}

// Merge runs Stages 2-5 for one permutation: loads and reference-resolves
// every source document resolutionOrder names for this permutation, deep
// last-wins merges them stamping provenance, then re-resolves the merged
// tree to catch refs that only became resolvable after merging.
func Merge(doc *docloader.Document, perm Permutation, cache *filecache.Cache) (*MergedDocument, error) {
	return MergeWithOptions(context.Background(), doc, perm, cache, reference.Options{}, nil)
}

// MergeWithOptions is Merge with opts' additive behavior (currently,
// package-specifier and CDN-fallback resolution for source and $ref paths)
// enabled, and preprocessors run as Stage 4 before Stage 5's re-resolve.
func MergeWithOptions(ctx context.Context, doc *docloader.Document, perm Permutation, cache *filecache.Cache, opts reference.Options, preprocessors []Preprocessor) (*MergedDocument, error) {
	root := valuetree.Value{}
	prov := map[string]Provenance{}
	var diags []error

	for _, entry := range doc.ResolutionOrder {
		var sources []string
		var ss, sm, sc string
		if entry.Kind == docloader.EntrySet {
			sources = doc.Sets[entry.Name].Sources
			ss = entry.Name
		} else {
			modCtx := perm.Inputs[entry.Name]
			sources = doc.Modifiers[entry.Name].Contexts[modCtx].Sources
			sm = entry.Name
			sc = modCtx
		}

		for _, src := range sources {
			parsed, key, err := reference.LoadSpecifier(ctx, src, doc.BaseDir, cache, opts)
			if err != nil {
				return nil, &schema.FileOperationError{Op: "read", Path: key, Cause: err}
			}

			resolved, rerr := reference.ResolveWithOptions(ctx, parsed, filepath.Dir(key), cache, opts)
			if rerr != nil {
				diags = append(diags, rerr)
				resolved = parsed
			}

			root = mergeInto(root, resolved, prov, nil, ss, sm, sc)
		}
	}

	for _, pp := range preprocessors {
		processed, perr := pp.Preprocess(root)
		if perr != nil {
			name := pp.Name
			if name == "" {
				name = "(anonymous)"
			}
			return nil, &schema.ConfigurationError{Component: fmt.Sprintf("preprocessor %s", name), Message: perr.Error()}
		}
		root = processed
	}

	reResolved, err := reference.ResolveWithOptions(ctx, root, doc.BaseDir, cache, opts)
	if err != nil {
		return nil, err
	}

	return &MergedDocument{Root: reResolved, Provenance: prov, Diagnostics: diags}, nil
}

func isLeaf(v valuetree.Value) bool {
	return v.Kind == valuetree.KindRef || (v.Kind == valuetree.KindObject && v.Has("$value"))
}

// mergeInto deep-merges src onto dst, recording provenance for every leaf it
// sets, per the merge rules of spec §4.3.
func mergeInto(dst, src valuetree.Value, prov map[string]Provenance, path []string, ss, sm, sc string) valuetree.Value {
	if isLeaf(src) {
		prov[strings.Join(path, ".")] = Provenance{SourceSet: ss, SourceModifier: sm, SourceContext: sc}
		return src
	}
	if src.Kind != valuetree.KindObject {
		return src
	}

	base := dst
	if base.Kind != valuetree.KindObject {
		base = valuetree.NewObject(nil, map[string]valuetree.Value{})
	}

	keys := append([]string(nil), base.Keys...)
	fields := make(map[string]valuetree.Value, len(base.Fields)+len(src.Fields))
	for k, v := range base.Fields {
		fields[k] = v
	}

	for _, k := range src.Keys {
		srcVal := src.Fields[k]
		if strings.HasPrefix(k, "$") {
			if _, exists := fields[k]; !exists {
				keys = append(keys, k)
			}
			fields[k] = srcVal
			continue
		}
		childPath := append(append([]string{}, path...), k)
		merged := mergeInto(fields[k], srcVal, prov, childPath, ss, sm, sc)
		if _, exists := fields[k]; !exists {
			keys = append(keys, k)
		}
		fields[k] = merged
	}

	return valuetree.NewObject(keys, fields)
}
