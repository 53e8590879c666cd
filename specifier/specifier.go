/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package specifier parses and resolves npm:/jsr: package specifiers and
// local file paths feeding the Reference Resolver's opt-in package-specifier
// path (spec.md §4.2 requires only local-path resolution; package specifiers
// are an additive, opt-in extension).
package specifier

import (
	"regexp"
	"strings"
)

// Kind indicates the type of specifier.
type Kind int

const (
	// KindLocal is a local file path.
	KindLocal Kind = iota
	// KindNPM is an npm package specifier.
	KindNPM
	// KindJSR is a jsr package specifier.
	KindJSR
)

// Specifier represents a parsed package specifier.
type Specifier struct {
	Kind    Kind
	Package string
	File    string
	Raw     string
}

var (
	npmPattern = regexp.MustCompile(`^npm:(@[^/]+/[^/]+|[^/]+)(/.*)?$`)
	jsrPattern = regexp.MustCompile(`^jsr:(@[^/]+/[^/]+|[^/]+)(/.*)?$`)
)

// Parse parses a specifier string into a Specifier struct.
func Parse(spec string) *Specifier {
	if strings.HasPrefix(spec, "npm:") {
		if matches := npmPattern.FindStringSubmatch(spec); len(matches) == 3 {
			return &Specifier{Kind: KindNPM, Package: matches[1], File: strings.TrimPrefix(matches[2], "/"), Raw: spec}
		}
	}
	if strings.HasPrefix(spec, "jsr:") {
		if matches := jsrPattern.FindStringSubmatch(spec); len(matches) == 3 {
			return &Specifier{Kind: KindJSR, Package: matches[1], File: strings.TrimPrefix(matches[2], "/"), Raw: spec}
		}
	}
	return &Specifier{Kind: KindLocal, File: spec, Raw: spec}
}

// IsPackageSpecifier returns true if the string is a valid npm or jsr specifier.
func IsPackageSpecifier(spec string) bool {
	parsed := Parse(spec)
	return parsed.Kind == KindNPM || parsed.Kind == KindJSR
}

func (s *Specifier) IsNPM() bool   { return s.Kind == KindNPM }
func (s *Specifier) IsJSR() bool   { return s.Kind == KindJSR }
func (s *Specifier) IsLocal() bool { return s.Kind == KindLocal }
