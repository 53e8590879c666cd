/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package jsonref parses and navigates the two reference syntaxes the
// pipeline recognizes: curly-brace token aliases ("{color.primary}") and
// RFC 6901 JSON Pointers carried in "$ref" / "#/..." URIs.
package jsonref

import (
	"regexp"
	"strings"

	"go.tokenforge.dev/tokenforge/valuetree"
)

var (
	// curlyBracePattern matches {token.path} references.
	curlyBracePattern = regexp.MustCompile(`\{([^{}]+)\}`)

	// wholeValuePattern matches a string that is *entirely* a single alias,
	// as opposed to one embedded in a larger interpolated string.
	wholeValuePattern = regexp.MustCompile(`^\{([^{}]+)\}$`)
)

// ParseCurlyBraceRef extracts the dot-path from a string that is entirely a
// single alias expression. Returns ok=false for interpolated or non-alias
// strings.
func ParseCurlyBraceRef(value string) (path string, ok bool) {
	m := wholeValuePattern.FindStringSubmatch(value)
	if len(m) != 2 {
		return "", false
	}
	return m[1], true
}

// IsCurlyBraceRef reports whether value contains at least one alias
// expression anywhere (whole-value or interpolated).
func IsCurlyBraceRef(value string) bool {
	return curlyBracePattern.MatchString(value)
}

// ExtractAllRefs returns every dot-path referenced by an alias expression
// appearing anywhere in value, in left-to-right order.
func ExtractAllRefs(value string) []string {
	matches := curlyBracePattern.FindAllStringSubmatch(value, -1)
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(m) >= 2 {
			refs = append(refs, m[1])
		}
	}
	return refs
}

// Interpolate substitutes every alias expression in value with render(path),
// leaving non-alias text untouched.
func Interpolate(value string, render func(dotPath string) string) string {
	return curlyBracePattern.ReplaceAllStringFunc(value, func(match string) string {
		path := match[1 : len(match)-1]
		return render(path)
	})
}

// Pointer is a parsed RFC 6901 JSON Pointer: an ordered list of unescaped
// segments.
type Pointer []string

// ParsePointer parses the fragment half of a "#/a/b/c" reference (the
// leading "#/" already stripped by the caller, or present — both accepted)
// into its unescaped segments, per RFC 6901 (~1 -> '/', ~0 -> '~', in that
// order).
func ParsePointer(fragment string) Pointer {
	fragment = strings.TrimPrefix(fragment, "#")
	fragment = strings.TrimPrefix(fragment, "/")
	if fragment == "" {
		return nil
	}
	parts := strings.Split(fragment, "/")
	out := make(Pointer, len(parts))
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		p = strings.ReplaceAll(p, "~0", "~")
		out[i] = p
	}
	return out
}

// DotPath renders a Pointer as the dot-joined form used for token names.
func (p Pointer) DotPath() string {
	return strings.Join(p, ".")
}

// SplitURI splits a $ref URI into its file-path component and fragment
// component (without the leading "#"). A bare "#/a/b" has an empty file
// path. A bare "./file.json" has an empty fragment.
func SplitURI(uri string) (filePath, fragment string) {
	if idx := strings.Index(uri, "#"); idx >= 0 {
		return uri[:idx], uri[idx+1:]
	}
	return uri, ""
}

// IsLocalPointer reports whether uri is a same-document pointer ("#/...").
func IsLocalPointer(uri string) bool {
	return strings.HasPrefix(uri, "#/") || uri == "#"
}

// Get navigates v by pointer, descending through Object fields and Array
// indices. Returns ok=false if any segment is missing or the shape doesn't
// match (e.g. a non-numeric index into an array).
func Get(v valuetree.Value, ptr Pointer) (valuetree.Value, bool) {
	cur := v
	for _, seg := range ptr {
		switch cur.Kind {
		case valuetree.KindObject:
			next, ok := cur.Get(seg)
			if !ok {
				return valuetree.Value{}, false
			}
			cur = next
		case valuetree.KindArray:
			idx, err := parseArrayIndex(seg)
			if err != nil || idx < 0 || idx >= len(cur.Array) {
				return valuetree.Value{}, false
			}
			cur = cur.Array[idx]
		default:
			return valuetree.Value{}, false
		}
	}
	return cur, true
}

func parseArrayIndex(seg string) (int, error) {
	n := 0
	if seg == "" {
		return 0, errNotIndex
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return 0, errNotIndex
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

var errNotIndex = stringError("not a numeric index")

type stringError string

func (e stringError) Error() string { return string(e) }
