/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package pipeline implements Stages 8-9, the per-output Filter and
// Transform subpipeline that runs over each permutation's resolved tokens
// before a renderer sees them.
package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"go.tokenforge.dev/tokenforge/token"
)

// pathSafe matches dot-path patterns built only from path characters
// (letters, digits, ".", "-", "_") with no regex metacharacter, the plain
// prefix case ByPath favors over compiling a regex for every comparison.
var pathSafe = regexp.MustCompile(`^[A-Za-z0-9._-]*$`)

// Filter is a pure predicate over a resolved token. The filters configured
// for an output are applied as a logical AND; filters run before transforms.
type Filter struct {
	Name      string
	Predicate func(*token.Token) bool
}

// ApplyFilters returns the subset of tokens every filter accepts.
func ApplyFilters(tokens []*token.Token, filters []Filter) []*token.Token {
	if len(filters) == 0 {
		return tokens
	}
	out := make([]*token.Token, 0, len(tokens))
	for _, tok := range tokens {
		keep := true
		for _, f := range filters {
			if !f.Predicate(tok) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, tok)
		}
	}
	return out
}

// ByType keeps tokens whose $type is one of the given types.
func ByType(types ...string) Filter {
	set := make(map[string]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return Filter{
		Name: "byType",
		Predicate: func(tok *token.Token) bool {
			return set[tok.Type]
		},
	}
}

// ByPath keeps tokens whose dot-path matches pattern, either as a plain
// string prefix (pattern uses only path characters) or, when pattern
// contains a regex metacharacter, as a regular expression run unanchored
// against the dot-path. An invalid regex is reported to the caller rather
// than silently matching nothing.
func ByPath(pattern string) (Filter, error) {
	if pathSafe.MatchString(pattern) {
		return Filter{
			Name: "byPath",
			Predicate: func(tok *token.Token) bool {
				return strings.HasPrefix(tok.DotPath(), pattern)
			},
		}, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return Filter{}, fmt.Errorf("byPath: invalid regex %q: %w", pattern, err)
	}
	return Filter{
		Name:      "byPath",
		Predicate: func(tok *token.Token) bool { return re.MatchString(tok.DotPath()) },
	}, nil
}

// IsAlias keeps tokens whose pre-resolution value was (wholly or partly) an
// alias or reference.
func IsAlias() Filter {
	return Filter{Name: "isAlias", Predicate: func(tok *token.Token) bool { return tok.IsAlias }}
}

// IsBase keeps tokens whose value was not an alias or reference.
func IsBase() Filter {
	return Filter{Name: "isBase", Predicate: func(tok *token.Token) bool { return !tok.IsAlias }}
}

// figmaUnsupportedTypes lists token $types Figma Variables cannot express
// directly: composite and enum-like shapes without a Figma primitive
// counterpart.
var figmaUnsupportedTypes = map[string]bool{
	"shadow":      true,
	"gradient":    true,
	"typography":  true,
	"border":      true,
	"cubicBezier": true,
	"strokeStyle": true,
	"fontWeight":  true,
}

// IsFigmaCompatible keeps tokens whose $type Figma Variables can represent
// (color, dimension/number as float, string, boolean).
func IsFigmaCompatible() Filter {
	return Filter{
		Name: "isFigmaCompatible",
		Predicate: func(tok *token.Token) bool {
			return !figmaUnsupportedTypes[tok.Type]
		},
	}
}
