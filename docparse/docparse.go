/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package docparse decodes raw resolver- and token-document bytes (JSON with
// comments, or YAML) into a valuetree.Value tree, the single shape every
// later pipeline stage operates on. Object key order is preserved from the
// source text rather than round-tripped through Go's unordered
// map[string]any, since modifier declaration order is load-bearing (it
// fixes dimension order for permutation enumeration, spec §4.1/§4.3).
package docparse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"go.tokenforge.dev/tokenforge/valuetree"
)

// Parse decodes data as JSON-with-comments or YAML (auto-detected by the
// leading non-whitespace byte) into an order-preserving Value tree.
func Parse(data []byte) (valuetree.Value, error) {
	if looksLikeJSON(data) {
		clean := jsonc.ToJSON(data)
		dec := json.NewDecoder(bytes.NewReader(clean))
		v, err := decodeJSONValue(dec)
		if err != nil {
			return valuetree.Value{}, fmt.Errorf("parse JSON: %w", err)
		}
		return v, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return valuetree.Value{}, fmt.Errorf("parse YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return valuetree.Null, nil
	}
	return decodeYAMLNode(doc.Content[0])
}

// looksLikeJSON reports whether data's first non-whitespace/BOM byte is '{'
// or '['.
func looksLikeJSON(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r', 0xEF, 0xBB, 0xBF:
			continue
		case '{', '[':
			return true
		default:
			return false
		}
	}
	return false
}

func decodeJSONValue(dec *json.Decoder) (valuetree.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return valuetree.Null, nil
		}
		return valuetree.Value{}, err
	}
	return decodeJSONToken(tok, dec)
}

func decodeJSONToken(tok json.Token, dec *json.Decoder) (valuetree.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		}
		return valuetree.Value{}, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return valuetree.Str(t), nil
	case float64:
		return valuetree.Num(t), nil
	case bool:
		return valuetree.Bool(t), nil
	case nil:
		return valuetree.Null, nil
	default:
		return valuetree.Value{}, fmt.Errorf("unexpected token %v (%T)", tok, tok)
	}
}

func decodeJSONObject(dec *json.Decoder) (valuetree.Value, error) {
	keys := []string{}
	fields := map[string]valuetree.Value{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return valuetree.Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return valuetree.Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := decodeJSONValue(dec)
		if err != nil {
			return valuetree.Value{}, err
		}
		if _, dup := fields[key]; !dup {
			keys = append(keys, key)
		}
		fields[key] = val
	}
	if _, err := dec.Token(); err != nil { // consume closing '}'
		return valuetree.Value{}, err
	}
	return asRefOrObject(keys, fields), nil
}

func decodeJSONArray(dec *json.Decoder) (valuetree.Value, error) {
	items := []valuetree.Value{}
	for dec.More() {
		val, err := decodeJSONValue(dec)
		if err != nil {
			return valuetree.Value{}, err
		}
		items = append(items, val)
	}
	if _, err := dec.Token(); err != nil { // consume closing ']'
		return valuetree.Value{}, err
	}
	return valuetree.Array(items...), nil
}

func decodeYAMLNode(n *yaml.Node) (valuetree.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return valuetree.Null, nil
		}
		return decodeYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return decodeYAMLNode(n.Alias)
	case yaml.MappingNode:
		keys := make([]string, 0, len(n.Content)/2)
		fields := make(map[string]valuetree.Value, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				key = n.Content[i].Value
			}
			val, err := decodeYAMLNode(n.Content[i+1])
			if err != nil {
				return valuetree.Value{}, err
			}
			if _, dup := fields[key]; !dup {
				keys = append(keys, key)
			}
			fields[key] = val
		}
		return asRefOrObject(keys, fields), nil
	case yaml.SequenceNode:
		items := make([]valuetree.Value, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := decodeYAMLNode(c)
			if err != nil {
				return valuetree.Value{}, err
			}
			items = append(items, val)
		}
		return valuetree.Array(items...), nil
	case yaml.ScalarNode:
		return decodeYAMLScalar(n)
	default:
		return valuetree.Null, nil
	}
}

func decodeYAMLScalar(n *yaml.Node) (valuetree.Value, error) {
	switch n.Tag {
	case "!!null":
		return valuetree.Null, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return valuetree.Value{}, err
		}
		return valuetree.Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return valuetree.Value{}, err
		}
		return valuetree.Num(f), nil
	default:
		return valuetree.Str(n.Value), nil
	}
}

// asRefOrObject recognizes the `{"$ref": <uri>[, ...siblings]}` shape the
// reference resolver expects, so downstream stages never re-detect it by
// probing map keys (spec §9's tagged-variant design note).
func asRefOrObject(keys []string, fields map[string]valuetree.Value) valuetree.Value {
	refVal, ok := fields["$ref"]
	if !ok || refVal.Kind != valuetree.KindStr {
		return valuetree.NewObject(keys, fields)
	}
	siblingKeys := make([]string, 0, len(keys))
	siblings := make(map[string]valuetree.Value, len(keys))
	for _, k := range keys {
		if k == "$ref" {
			continue
		}
		siblingKeys = append(siblingKeys, k)
		siblings[k] = fields[k]
	}
	return valuetree.Value{Kind: valuetree.KindRef, Ref: refVal.Str, RefSiblingKeys: siblingKeys, RefSiblingValues: siblings}
}
