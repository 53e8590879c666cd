/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package docloader implements Stage 1, the Resolver Loader: reading and
// normalizing a resolver document and establishing the base directory used
// for relative $ref resolution throughout the rest of the build.
package docloader

import (
	"fmt"
	"os"
	"path/filepath"

	"go.tokenforge.dev/tokenforge/docparse"
	"go.tokenforge.dev/tokenforge/schema"
	"go.tokenforge.dev/tokenforge/valuetree"
)

// EntryKind tags a normalized resolutionOrder entry.
type EntryKind string

const (
	EntrySet      EntryKind = "set"
	EntryModifier EntryKind = "modifier"
)

// OrderEntry is one normalized resolutionOrder element.
type OrderEntry struct {
	Kind EntryKind
	Name string
}

// Set is a named, ordered list of token-document source $ref URIs.
type Set struct {
	Name        string
	Sources     []string
	Description string
}

// ModifierContext is one named context of a modifier (e.g. "dark" of "theme").
type ModifierContext struct {
	Name    string
	Sources []string
}

// Modifier is a named dimension with a default context and a set of
// available contexts, in document-declaration order.
type Modifier struct {
	Name         string
	Default      string
	ContextOrder []string
	Contexts     map[string]ModifierContext
	Description  string
}

// Document is the normalized resolver document plus its base directory.
type Document struct {
	Version         string
	Name            string
	Sets            map[string]Set
	ModifierOrder   []string
	Modifiers       map[string]Modifier
	ResolutionOrder []OrderEntry
	BaseDir         string
}

// Load reads and normalizes the resolver document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &schema.FileOperationError{Op: "read", Path: path, Cause: err}
	}
	v, err := docparse.Parse(data)
	if err != nil {
		return nil, &schema.FileOperationError{Op: "parse", Path: path, Cause: err}
	}
	return normalize(v, filepath.Dir(path))
}

// LoadValue normalizes an already-parsed in-memory resolver document value,
// for callers that construct the document programmatically rather than
// from disk (spec §4.1: "Either a filesystem path or an in-memory resolver
// value").
func LoadValue(v valuetree.Value, baseDir string) (*Document, error) {
	return normalize(v, baseDir)
}

func normalize(v valuetree.Value, baseDir string) (*Document, error) {
	if v.Kind != valuetree.KindObject {
		return nil, &schema.ConfigurationError{Component: "docloader", Message: "resolver document root must be an object"}
	}

	versionVal, ok := v.Get("version")
	if !ok || versionVal.Kind != valuetree.KindStr {
		return nil, &schema.ConfigurationError{Component: "docloader", Message: "resolver document is missing a \"version\" field"}
	}
	if _, err := schema.FromString(versionVal.Str); err != nil && versionVal.Str != schema.ResolverVersion {
		return nil, &schema.ConfigurationError{Component: "docloader", Message: fmt.Sprintf("unsupported resolver version %q", versionVal.Str)}
	}

	name := ""
	if nameVal, ok := v.Get("name"); ok && nameVal.Kind == valuetree.KindStr {
		name = nameVal.Str
	}

	sets, err := normalizeSets(v)
	if err != nil {
		return nil, err
	}
	modifierOrder, modifiers, err := normalizeModifiers(v)
	if err != nil {
		return nil, err
	}

	orderVal, ok := v.Get("resolutionOrder")
	if !ok || orderVal.Kind != valuetree.KindArray {
		return nil, &schema.ConfigurationError{Component: "docloader", Message: "resolver document is missing \"resolutionOrder\""}
	}
	order := make([]OrderEntry, 0, len(orderVal.Array))
	for _, entry := range orderVal.Array {
		kind, name, err := parseOrderRef(entry)
		if err != nil {
			return nil, err
		}
		if kind == EntrySet {
			if _, ok := sets[name]; !ok {
				return nil, &schema.ConfigurationError{Component: "docloader", Message: fmt.Sprintf("resolutionOrder references unknown set %q", name)}
			}
		} else {
			if _, ok := modifiers[name]; !ok {
				return nil, &schema.ConfigurationError{Component: "docloader", Message: fmt.Sprintf("resolutionOrder references unknown modifier %q", name)}
			}
		}
		order = append(order, OrderEntry{Kind: kind, Name: name})
	}

	return &Document{
		Version:         versionVal.Str,
		Name:            name,
		Sets:            sets,
		ModifierOrder:   modifierOrder,
		Modifiers:       modifiers,
		ResolutionOrder: order,
		BaseDir:         baseDir,
	}, nil
}

func normalizeSets(v valuetree.Value) (map[string]Set, error) {
	sets := map[string]Set{}
	setsVal, ok := v.Get("sets")
	if !ok {
		return sets, nil
	}
	if setsVal.Kind != valuetree.KindObject {
		return nil, &schema.ConfigurationError{Component: "docloader", Message: "\"sets\" must be an object"}
	}
	for _, name := range setsVal.Keys {
		entry := setsVal.Fields[name]
		sources, err := extractSources(entry)
		if err != nil {
			return nil, fmt.Errorf("set %q: %w", name, err)
		}
		desc := ""
		if d, ok := entry.Get("description"); ok && d.Kind == valuetree.KindStr {
			desc = d.Str
		}
		sets[name] = Set{Name: name, Sources: sources, Description: desc}
	}
	return sets, nil
}

func normalizeModifiers(v valuetree.Value) ([]string, map[string]Modifier, error) {
	modifiers := map[string]Modifier{}
	modsVal, ok := v.Get("modifiers")
	if !ok {
		return nil, modifiers, nil
	}
	if modsVal.Kind != valuetree.KindObject {
		return nil, nil, &schema.ConfigurationError{Component: "docloader", Message: "\"modifiers\" must be an object"}
	}
	order := append([]string(nil), modsVal.Keys...)
	for _, name := range order {
		entry := modsVal.Fields[name]
		defaultVal, ok := entry.Get("default")
		if !ok || defaultVal.Kind != valuetree.KindStr {
			return nil, nil, &schema.ConfigurationError{Component: "docloader", Message: fmt.Sprintf("modifier %q is missing a \"default\"", name)}
		}
		contextsVal, ok := entry.Get("contexts")
		if !ok || contextsVal.Kind != valuetree.KindObject {
			return nil, nil, &schema.ConfigurationError{Component: "docloader", Message: fmt.Sprintf("modifier %q is missing \"contexts\"", name)}
		}
		contextOrder := append([]string(nil), contextsVal.Keys...)
		contexts := make(map[string]ModifierContext, len(contextOrder))
		for _, ctxName := range contextOrder {
			sources, err := extractSources(contextsVal.Fields[ctxName])
			if err != nil {
				return nil, nil, fmt.Errorf("modifier %q context %q: %w", name, ctxName, err)
			}
			contexts[ctxName] = ModifierContext{Name: ctxName, Sources: sources}
		}
		if _, ok := contexts[defaultVal.Str]; !ok {
			return nil, nil, &schema.ModifierError{Modifier: name, Context: defaultVal.Str, Available: contextOrder}
		}
		desc := ""
		if d, ok := entry.Get("description"); ok && d.Kind == valuetree.KindStr {
			desc = d.Str
		}
		modifiers[name] = Modifier{
			Name:         name,
			Default:      defaultVal.Str,
			ContextOrder: contextOrder,
			Contexts:     contexts,
			Description:  desc,
		}
	}
	return order, modifiers, nil
}

// extractSources reads a "sources" array of `{ "$ref": path }` entries
// (sets and modifier-contexts both use this shape) into their raw URIs.
func extractSources(v valuetree.Value) ([]string, error) {
	sourcesVal := v
	if v.Kind == valuetree.KindObject {
		if s, ok := v.Get("sources"); ok {
			sourcesVal = s
		}
	}
	if sourcesVal.Kind != valuetree.KindArray {
		return nil, fmt.Errorf("expected a \"sources\" array")
	}
	out := make([]string, 0, len(sourcesVal.Array))
	for _, item := range sourcesVal.Array {
		if item.Kind != valuetree.KindRef {
			return nil, fmt.Errorf("source entries must be {\"$ref\": <path>} objects")
		}
		out = append(out, item.Ref)
	}
	return out, nil
}

// parseOrderRef parses one `{ "$ref": "#/sets/X" | "#/modifiers/Y" }` entry.
func parseOrderRef(v valuetree.Value) (EntryKind, string, error) {
	if v.Kind != valuetree.KindRef {
		return "", "", &schema.ConfigurationError{Component: "docloader", Message: "resolutionOrder entries must be {\"$ref\": ...} objects"}
	}
	const setPrefix = "#/sets/"
	const modPrefix = "#/modifiers/"
	switch {
	case len(v.Ref) > len(setPrefix) && v.Ref[:len(setPrefix)] == setPrefix:
		return EntrySet, v.Ref[len(setPrefix):], nil
	case len(v.Ref) > len(modPrefix) && v.Ref[:len(modPrefix)] == modPrefix:
		return EntryModifier, v.Ref[len(modPrefix):], nil
	default:
		return "", "", &schema.ConfigurationError{Component: "docloader", Message: fmt.Sprintf("resolutionOrder entry %q must point at #/sets/<name> or #/modifiers/<name>", v.Ref)}
	}
}
