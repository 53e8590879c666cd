/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package valuetree provides the tagged-variant JSON value type that flows
// through the early pipeline stages (reference resolution, permutation
// merging). Using a closed sum type instead of bare map[string]any keeps the
// reference resolver and merge stage total functions over exactly the shapes
// a token or resolver document can contain: see the "Prototype-based JSON
// values become tagged variants" design note.
package valuetree

import (
	"fmt"
	"sort"
)

// Kind tags which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNum
	KindStr
	KindArray
	KindObject
	// KindRef marks a `{ "$ref": <uri> }` object recognized by the parser,
	// produced instead of KindObject so downstream stages never need to
	// re-detect it by probing map keys.
	KindRef
)

// Value is a node in a parsed token or resolver document tree.
type Value struct {
	Kind Kind

	Bool  bool
	Num   float64
	Str   string
	Array []Value
	// Object preserves key insertion order via Keys; Fields holds the values.
	Keys   []string
	Fields map[string]Value

	// Ref is the raw "$ref" URI string when Kind == KindRef.
	Ref string
	// RefSiblingKeys and RefSiblingValues hold any other keys present alongside $ref on the same
	// object, applied as a property-level override after substitution
	// (spec §4.2: "non-$ref keys on the same object are merged in after
	// substitution").
	RefSiblingKeys   []string
	RefSiblingValues map[string]Value
}

// Null is the canonical null value.
var Null = Value{Kind: KindNull}

func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }
func Num(n float64) Value { return Value{Kind: KindNum, Num: n} }
func Str(s string) Value { return Value{Kind: KindStr, Str: s} }

func Array(items ...Value) Value {
	return Value{Kind: KindArray, Array: items}
}

// NewObject builds an Object value preserving the given key order.
func NewObject(keys []string, fields map[string]Value) Value {
	return Value{Kind: KindObject, Keys: keys, Fields: fields}
}

// Ref builds a Ref value for a bare `{"$ref": uri}` object.
func Ref(uri string) Value {
	return Value{Kind: KindRef, Ref: uri}
}

// IsObject reports whether v is a KindObject (not KindRef).
func (v Value) IsObject() bool { return v.Kind == KindObject }

// Get returns the field named key from an Object, or false if absent or v is
// not an Object.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindObject {
		return Value{}, false
	}
	val, ok := v.Fields[key]
	return val, ok
}

// Has reports whether an Object has the given field.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// WithField returns a copy of v (must be an Object) with key set to val,
// appending key to Keys if it is new.
func (v Value) WithField(key string, val Value) Value {
	fields := make(map[string]Value, len(v.Fields)+1)
	for k, f := range v.Fields {
		fields[k] = f
	}
	keys := v.Keys
	if _, exists := fields[key]; !exists {
		keys = append(append([]string{}, v.Keys...), key)
	}
	fields[key] = val
	return Value{Kind: KindObject, Keys: keys, Fields: fields}
}

// ToAny converts a Value tree into plain Go values (map[string]any,
// []any, string, float64, bool, nil) for stages after reference resolution
// that prefer ergonomic dynamic typing (flattening, alias substitution,
// rendering). A Value still tagged KindRef at this point is a pipeline bug
// (invariant I3): it converts to its raw {"$ref": uri} shape rather than
// panicking, so a downstream stage can surface the leftover reference as a
// diagnostic instead of crashing the build.
func (v Value) ToAny() any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		return v.Bool
	case KindNum:
		return v.Num
	case KindStr:
		return v.Str
	case KindArray:
		out := make([]any, len(v.Array))
		for i, e := range v.Array {
			out[i] = e.ToAny()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.Fields))
		for k, f := range v.Fields {
			out[k] = f.ToAny()
		}
		return out
	case KindRef:
		m := map[string]any{"$ref": v.Ref}
		for k, f := range v.RefSiblingValues {
			m[k] = f.ToAny()
		}
		return m
	default:
		return nil
	}
}

// FromAny builds a Value tree from a plain Go dynamic value, as produced by
// encoding/json or yaml.v3 unmarshaling into `any`. Objects whose only key
// is "$ref" with a string value become KindRef; objects with $ref plus other
// keys become KindRef with RefSiblingKeys/RefSiblingValues capturing the rest.
func FromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null
	case bool:
		return Bool(x)
	case float64:
		return Num(x)
	case int:
		return Num(float64(x))
	case string:
		return Str(x)
	case []any:
		items := make([]Value, len(x))
		for i, e := range x {
			items[i] = FromAny(e)
		}
		return Array(items...)
	case map[string]any:
		return objectFromMap(x)
	default:
		return Value{Kind: KindStr, Str: fmt.Sprintf("%v", x)}
	}
}

func objectFromMap(m map[string]any) Value {
	allKeys := make([]string, 0, len(m))
	for k := range m {
		allKeys = append(allKeys, k)
	}
	sort.Strings(allKeys)

	if refRaw, ok := m["$ref"]; ok {
		if refStr, ok := refRaw.(string); ok {
			siblingKeys := make([]string, 0, len(m))
			siblings := make(map[string]Value, len(m)-1)
			for _, k := range allKeys {
				if k == "$ref" {
					continue
				}
				siblingKeys = append(siblingKeys, k)
				siblings[k] = FromAny(m[k])
			}
			return Value{Kind: KindRef, Ref: refStr, RefSiblingKeys: siblingKeys, RefSiblingValues: siblings}
		}
	}

	fields := make(map[string]Value, len(m))
	for _, k := range allKeys {
		fields[k] = FromAny(m[k])
	}
	return NewObject(allKeys, fields)
}
