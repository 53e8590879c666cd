/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package flatten implements Stage 6, the Token Parser/Flattener: a
// depth-first walk of a merged token document that inherits group-level
// $type and emits a flat map keyed by dot-path.
package flatten

import (
	"fmt"
	"strings"

	"go.tokenforge.dev/tokenforge/jsonref"
	"go.tokenforge.dev/tokenforge/resolution"
	"go.tokenforge.dev/tokenforge/schema"
	"go.tokenforge.dev/tokenforge/token"
	"go.tokenforge.dev/tokenforge/valuetree"
)

// Result is the ordered, flat output of Stage 6: Names holds the
// depth-first emission order (not semantically significant; callers sort on
// name before anything order-dependent, per spec §3).
type Result struct {
	Tokens map[string]*token.Token
	Names  []string
}

// Flatten walks root and produces one Token per leaf.
func Flatten(root valuetree.Value, prov map[string]resolution.Provenance) (*Result, error) {
	res := &Result{Tokens: map[string]*token.Token{}}
	if err := walk(root, nil, "", prov, res); err != nil {
		return nil, err
	}
	return res, nil
}

func walk(node valuetree.Value, path []string, inheritedType string, prov map[string]resolution.Provenance, res *Result) error {
	if node.Kind != valuetree.KindObject {
		return nil
	}

	effectiveType := inheritedType
	if t, ok := node.Get("$type"); ok && t.Kind == valuetree.KindStr {
		effectiveType = t.Str
	}

	if node.Has("$value") {
		return emitLeaf(node, path, effectiveType, prov, res)
	}

	for _, key := range node.Keys {
		if strings.HasPrefix(key, "$") {
			continue
		}
		childPath := append(append([]string{}, path...), key)
		if err := walk(node.Fields[key], childPath, effectiveType, prov, res); err != nil {
			return err
		}
	}
	return nil
}

func emitLeaf(node valuetree.Value, path []string, effectiveType string, prov map[string]resolution.Provenance, res *Result) error {
	name := strings.Join(path, ".")
	if _, dup := res.Tokens[name]; dup {
		return &schema.ConfigurationError{Component: "flatten", Message: fmt.Sprintf("duplicate token path %q after merge", name)}
	}

	value, _ := node.Get("$value")

	tok := &token.Token{
		Name:          name,
		Path:          append([]string(nil), path...),
		Type:          effectiveType,
		Value:         value.ToAny(),
		OriginalValue: value,
		IsAlias:       containsAlias(value),
	}

	if d, ok := node.Get("$description"); ok && d.Kind == valuetree.KindStr {
		tok.Description = d.Str
	}
	if dep, ok := node.Get("$deprecated"); ok {
		switch dep.Kind {
		case valuetree.KindBool:
			tok.Deprecated = dep.Bool
		case valuetree.KindStr:
			tok.Deprecated = true
			tok.DeprecationMessage = dep.Str
		}
	}
	if ext, ok := node.Get("$extensions"); ok && ext.Kind == valuetree.KindObject {
		if m, ok := ext.ToAny().(map[string]any); ok {
			tok.Extensions = m
		}
	}

	if p, ok := prov[name]; ok {
		tok.SourceSet = p.SourceSet
		tok.SourceModifier = p.SourceModifier
		tok.SourceContext = p.SourceContext
	}

	res.Tokens[name] = tok
	res.Names = append(res.Names, name)
	return nil
}

// containsAlias reports whether v contains a curly-brace alias string or a
// leftover $ref anywhere in its structure, used to seed Token.IsAlias before
// the alias resolver runs.
func containsAlias(v valuetree.Value) bool {
	switch v.Kind {
	case valuetree.KindStr:
		return jsonref.IsCurlyBraceRef(v.Str)
	case valuetree.KindRef:
		return true
	case valuetree.KindArray:
		for _, e := range v.Array {
			if containsAlias(e) {
				return true
			}
		}
		return false
	case valuetree.KindObject:
		for _, f := range v.Fields {
			if containsAlias(f) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
