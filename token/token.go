/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package token provides the resolved design token type that flows out of
// flattening and alias resolution, plus the nested Group shape renderers use
// to reconstruct a DTCG-shaped tree from a flat permutation.
package token

import (
	"strings"

	"go.tokenforge.dev/tokenforge/valuetree"
)

// Token represents a single resolved design token within one permutation.
// See: https://design-tokens.github.io/community-group/format/
type Token struct {
	// Name is the token's dot-joined identifier (e.g., "color.primary").
	Name string `json:"name"`

	// Path is the token's group path, e.g. ["color", "primary"].
	Path []string `json:"-"`

	// Value is the token's value after alias resolution, ready to hand to a
	// transform or renderer. For composite types (shadow, gradient, ...) this
	// holds a map[string]any produced by valuetree.Value.ToAny.
	Value any `json:"$value"`

	// Type is the token's resolved $type, inherited from its nearest
	// ancestor group when not set directly on the token.
	Type string `json:"$type,omitempty"`

	// Description is optional documentation for the token.
	Description string `json:"$description,omitempty"`

	// Deprecated indicates this token should no longer be used; it is either
	// the literal $deprecated boolean or, when $deprecated is a string, true
	// with DeprecationMessage set to that string.
	Deprecated        bool   `json:"$deprecated,omitempty"`
	DeprecationMessage string `json:"-"`

	// Extensions carries the token's $extensions map verbatim.
	Extensions map[string]any `json:"$extensions,omitempty"`

	// OriginalValue is the token's $value as it stood after reference
	// resolution but before alias substitution, preserved for tooling that
	// wants to show "what this token points to" (e.g. a "go to definition"
	// feature, or diagnostics on an unresolved alias).
	OriginalValue valuetree.Value `json:"-"`

	// IsAlias reports whether OriginalValue was (wholly or partly) a
	// curly-brace alias or $ref prior to resolution.
	IsAlias bool `json:"-"`

	// SourceSet and SourceModifier record which resolutionOrder entry last
	// contributed this token's value, per the _sourceSet/_sourceModifier
	// provenance stamps (spec §4.3). SourceModifier is empty when the
	// winning entry was a set.
	SourceSet      string `json:"-"`
	SourceModifier string `json:"-"`
	SourceContext  string `json:"-"`
}

// CSSVariableName returns the CSS custom property name for this token,
// e.g. "--color-primary", optionally under a caller-supplied prefix.
func (t *Token) CSSVariableName(prefix string) string {
	name := strings.ReplaceAll(t.Name, ".", "-")
	if prefix != "" {
		return "--" + strings.ReplaceAll(prefix, ".", "-") + "-" + name
	}
	return "--" + name
}

// DotPath returns the dot-separated path to this token (equal to Name, kept
// distinct so callers working from Path alone don't need to rebuild Name).
func (t *Token) DotPath() string {
	return strings.Join(t.Path, ".")
}

// Clone returns a deep-enough copy of t safe to mutate independently; Value
// and Extensions are shallow-copied since transforms replace them wholesale
// rather than editing in place.
func (t *Token) Clone() *Token {
	clone := *t
	clone.Path = append([]string(nil), t.Path...)
	return &clone
}
