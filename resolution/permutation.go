/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolution implements Stage 3, the Resolution Engine: enumerating
// modifier permutations and merging the token documents each one names in
// resolutionOrder into a single tree, stamping provenance on every leaf.
package resolution

import (
	"strings"

	"go.tokenforge.dev/tokenforge/docloader"
	"go.tokenforge.dev/tokenforge/schema"
)

// Permutation is a concrete assignment of one context to every modifier.
type Permutation struct {
	Inputs map[string]string
	IsBase bool
}

// Key renders the permutation as a stable string, the dimension values in
// dimension order joined by "-", for keyed bundling (spec §4.7).
func (p Permutation) Key(order []string) string {
	parts := make([]string, len(order))
	for i, name := range order {
		parts[i] = p.Inputs[name]
	}
	return strings.Join(parts, "-")
}

// EnumeratePermutations returns every permutation in the deterministic order
// required by P6: the lexicographic Cartesian product of modifier contexts
// in document-declaration order of modifiers. A document with no modifiers
// produces exactly one (base) permutation.
func EnumeratePermutations(doc *docloader.Document) []Permutation {
	perms := []Permutation{{Inputs: map[string]string{}}}

	for _, modName := range doc.ModifierOrder {
		mod := doc.Modifiers[modName]
		next := make([]Permutation, 0, len(perms)*len(mod.ContextOrder))
		for _, p := range perms {
			for _, ctxName := range mod.ContextOrder {
				inputs := make(map[string]string, len(p.Inputs)+1)
				for k, v := range p.Inputs {
					inputs[k] = v
				}
				inputs[modName] = ctxName
				next = append(next, Permutation{Inputs: inputs})
			}
		}
		perms = next
	}

	for i := range perms {
		perms[i].IsBase = isBase(doc, perms[i])
	}
	return perms
}

func isBase(doc *docloader.Document, p Permutation) bool {
	for _, modName := range doc.ModifierOrder {
		if p.Inputs[modName] != doc.Modifiers[modName].Default {
			return false
		}
	}
	return true
}

// ResolveInputs fills in defaults for any modifier absent from partial, and
// validates that every named modifier and context exists (case-insensitive
// lookup per spec §3, original declared casing is used in the result).
func ResolveInputs(doc *docloader.Document, partial map[string]string) (Permutation, error) {
	inputs := make(map[string]string, len(doc.ModifierOrder))
	lowerPartial := make(map[string]string, len(partial))
	for k, v := range partial {
		lowerPartial[strings.ToLower(k)] = v
		known := false
		for _, modName := range doc.ModifierOrder {
			if strings.EqualFold(k, modName) {
				known = true
				break
			}
		}
		if !known {
			return Permutation{}, &schema.ModifierError{Modifier: k, Available: doc.ModifierOrder}
		}
	}

	for _, modName := range doc.ModifierOrder {
		mod := doc.Modifiers[modName]
		ctx, given := lowerPartial[strings.ToLower(modName)]
		if !given {
			inputs[modName] = mod.Default
			continue
		}
		resolvedCtx := ctx
		found := false
		for _, c := range mod.ContextOrder {
			if strings.EqualFold(c, ctx) {
				resolvedCtx = c
				found = true
				break
			}
		}
		if !found {
			return Permutation{}, &schema.ModifierError{Modifier: modName, Context: ctx, Available: mod.ContextOrder}
		}
		inputs[modName] = resolvedCtx
	}
	p := Permutation{Inputs: inputs}
	p.IsBase = isBase(doc, p)
	return p, nil
}
