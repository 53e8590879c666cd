/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package alias implements Stage 7, the Alias Resolver: expanding every
// "{a.b.c}" expression (whole-value or interpolated) and any property-level
// JSON-Pointer reference that survives into flat form, with a depth bound
// and full-trail cycle detection (spec §4.5).
//
// In this implementation most property-level $ref objects are already
// erased during the tree-based Reference Resolver (Stages 2/5), since
// jsonref.Get navigates arbitrarily deep structure the same way whether the
// target is a whole token or a composite sub-field. The property-level
// handling here is the documented fallback for refs that survive into flat
// form (spec §4.5, §9 open question).
package alias

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.tokenforge.dev/tokenforge/jsonref"
	"go.tokenforge.dev/tokenforge/schema"
	"go.tokenforge.dev/tokenforge/token"
	"go.tokenforge.dev/tokenforge/valuetree"
)

// MaxDepth bounds a single alias chain (invariant I5; boundary behavior:
// exactly MaxDepth succeeds, MaxDepth+1 fails).
const MaxDepth = 10

type resolver struct {
	tokens   map[string]*token.Token
	names    []string
	resolved map[string]valuetree.Value
}

// Resolve expands every alias and property-level reference across tokens in
// place, setting each Token's Value to its final, alias-free form.
func Resolve(tokens map[string]*token.Token) error {
	names := make([]string, 0, len(tokens))
	for n := range tokens {
		names = append(names, n)
	}
	sort.Strings(names)

	r := &resolver{tokens: tokens, names: names, resolved: map[string]valuetree.Value{}}

	for _, name := range names {
		v, err := r.resolveToken(name, nil)
		if err != nil {
			return err
		}
		tokens[name].Value = v.ToAny()
	}
	return nil
}

func (r *resolver) resolveToken(name string, trail []string) (valuetree.Value, error) {
	if v, ok := r.resolved[name]; ok {
		return v, nil
	}
	for _, seen := range trail {
		if seen == name {
			return valuetree.Value{}, &schema.CircularReferenceError{Trail: append(append([]string{}, trail...), name)}
		}
	}
	if len(trail)+1 > MaxDepth {
		return valuetree.Value{}, &schema.CircularReferenceError{Trail: append(append([]string{}, trail...), name)}
	}

	tok, ok := r.tokens[name]
	if !ok {
		return valuetree.Value{}, &schema.TokenReferenceError{URI: name, Suggestions: schema.Suggest(name, r.names, 3)}
	}

	nextTrail := append(append([]string{}, trail...), name)
	resolved, err := r.resolveValue(tok.OriginalValue, nextTrail)
	if err != nil {
		return valuetree.Value{}, err
	}
	r.resolved[name] = resolved
	return resolved, nil
}

func (r *resolver) resolveValue(v valuetree.Value, trail []string) (valuetree.Value, error) {
	switch v.Kind {
	case valuetree.KindStr:
		if path, ok := jsonref.ParseCurlyBraceRef(v.Str); ok {
			return r.resolveToken(path, trail)
		}
		if jsonref.IsCurlyBraceRef(v.Str) {
			var interpErr error
			out := jsonref.Interpolate(v.Str, func(path string) string {
				resolved, err := r.resolveToken(path, trail)
				if err != nil {
					interpErr = err
					return ""
				}
				return stringify(resolved)
			})
			if interpErr != nil {
				return valuetree.Value{}, interpErr
			}
			return valuetree.Str(out), nil
		}
		return v, nil

	case valuetree.KindRef:
		return r.resolvePropertyRef(v.Ref, trail)

	case valuetree.KindArray:
		items := make([]valuetree.Value, len(v.Array))
		for i, e := range v.Array {
			resolved, err := r.resolveValue(e, trail)
			if err != nil {
				return valuetree.Value{}, err
			}
			items[i] = resolved
		}
		return valuetree.Array(items...), nil

	case valuetree.KindObject:
		fields := make(map[string]valuetree.Value, len(v.Fields))
		for _, k := range v.Keys {
			resolved, err := r.resolveValue(v.Fields[k], trail)
			if err != nil {
				return valuetree.Value{}, err
			}
			fields[k] = resolved
		}
		return valuetree.NewObject(v.Keys, fields), nil

	default:
		return v, nil
	}
}

// resolvePropertyRef resolves a "#/a/b/$value/sub/0"-shaped pointer against
// the flat token map: the segments before the first literal "$value"
// segment name the token, and the remaining segments are navigated inside
// that token's own resolved value.
func (r *resolver) resolvePropertyRef(uri string, trail []string) (valuetree.Value, error) {
	_, fragment := jsonref.SplitURI(uri)
	ptr := jsonref.ParsePointer(fragment)

	valueIdx := -1
	for i, seg := range ptr {
		if seg == "$value" {
			valueIdx = i
			break
		}
	}
	if valueIdx <= 0 {
		return valuetree.Value{}, &schema.TokenReferenceError{URI: uri}
	}

	tokenName := strings.Join(ptr[:valueIdx], ".")
	resolvedTokVal, err := r.resolveToken(tokenName, trail)
	if err != nil {
		return valuetree.Value{}, err
	}

	remaining := ptr[valueIdx+1:]
	if len(remaining) == 0 {
		return resolvedTokVal, nil
	}
	got, ok := jsonref.Get(resolvedTokVal, remaining)
	if !ok {
		return valuetree.Value{}, &schema.TokenReferenceError{URI: uri, Path: tokenName}
	}
	return got, nil
}

func stringify(v valuetree.Value) string {
	switch v.Kind {
	case valuetree.KindStr:
		return v.Str
	case valuetree.KindNum:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case valuetree.KindBool:
		return strconv.FormatBool(v.Bool)
	case valuetree.KindNull:
		return ""
	default:
		return fmt.Sprintf("%v", v.ToAny())
	}
}
