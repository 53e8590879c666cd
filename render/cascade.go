/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package render

import (
	"fmt"

	"go.tokenforge.dev/tokenforge/resolution"
	"go.tokenforge.dev/tokenforge/schema"
	"go.tokenforge.dev/tokenforge/token"
)

// SelectorFunc computes the CSS selector a cascade bundler emits a block
// under. isBase is true only for the default (every-modifier-at-default)
// block; allInputs is the full permutation's modifier inputs.
type SelectorFunc func(modifier, context string, isBase bool, allInputs map[string]string) string

// DefaultSelector implements the spec's default selector rule: ":root" for
// the base block, `[data-<modifier>="<context>"]` for a single-dimension
// deviation.
func DefaultSelector(modifier, context string, isBase bool, allInputs map[string]string) string {
	if isBase {
		return ":root"
	}
	return fmt.Sprintf(`[data-%s="%s"]`, modifier, context)
}

// CascadeBlock is one emitted cascade rule: a selector plus the tokens that
// belong under it.
type CascadeBlock struct {
	Selector string
	Tokens   []*token.Token
}

// BuildCascade groups ctx's permutations into the base block plus one block
// per single-dimension deviation, skipping multi-dimension deviations
// (spec §4.7). Tokens in a deviation block are restricted to those whose
// provenance matches the deviating modifier-context, so overrides stay
// minimal.
func BuildCascade(ctx Context, selector SelectorFunc) ([]CascadeBlock, error) {
	if selector == nil {
		selector = DefaultSelector
	}

	var basePerm *PermutationResult
	for i := range ctx.Permutations {
		if ctx.Permutations[i].Permutation.IsBase {
			basePerm = &ctx.Permutations[i]
			break
		}
	}
	if basePerm == nil {
		return nil, &schema.BasePermutationError{Output: "cascade"}
	}

	blocks := []CascadeBlock{{
		Selector: selector("", "", true, basePerm.Permutation.Inputs),
		Tokens:   basePerm.Tokens,
	}}

	for _, pr := range ctx.Permutations {
		if pr.Permutation.IsBase {
			continue
		}
		modifier, context, ok := singleDeviation(ctx.Meta, pr.Permutation)
		if !ok {
			continue
		}
		var tokens []*token.Token
		for _, tok := range pr.Tokens {
			if tok.SourceModifier == modifier && tok.SourceContext == context {
				tokens = append(tokens, tok)
			}
		}
		blocks = append(blocks, CascadeBlock{
			Selector: selector(modifier, context, false, pr.Permutation.Inputs),
			Tokens:   tokens,
		})
	}

	return blocks, nil
}

// singleDeviation reports whether perm differs from the defaults in exactly
// one dimension, and if so, which modifier/context.
func singleDeviation(meta Meta, perm resolution.Permutation) (modifier, context string, ok bool) {
	count := 0
	for _, dim := range meta.Dimensions {
		if perm.Inputs[dim] != meta.Defaults[dim] {
			count++
			modifier = dim
			context = perm.Inputs[dim]
		}
	}
	return modifier, context, count == 1
}
