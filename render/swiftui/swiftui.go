/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package swiftui renders resolved color tokens as a Swift extension
// declaring static Color members, one file per permutation; tokens of other
// types are not emitted (SwiftUI has
// no runtime theming primitive equivalent to a CSS cascade, so tokens are
// baked per-permutation the way the teacher's android formatter bakes one
// XML resource file per locale).
package swiftui

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"go.tokenforge.dev/tokenforge/render"
	"go.tokenforge.dev/tokenforge/token"
)

// Options configures the swiftui.Formatter.
type Options struct {
	FilenameTemplate string // defaults to "Tokens-{_base}.swift"
	ExtensionOn      string // type the static members extend; defaults to "Color"
}

// Formatter implements render.Renderer for SwiftUI.
type Formatter struct{}

func New() *Formatter { return &Formatter{} }

var titleCaser = cases.Title(language.Und)

func (f *Formatter) Format(ctx render.Context, opts any) (render.OutputTree, error) {
	swiftOpts, _ := opts.(Options)
	if swiftOpts.FilenameTemplate == "" {
		swiftOpts.FilenameTemplate = "Tokens-{_base}.swift"
	}
	if swiftOpts.ExtensionOn == "" {
		swiftOpts.ExtensionOn = "Color"
	}

	out := make(render.OutputTree, len(ctx.Permutations))
	for _, pr := range ctx.Permutations {
		filename := render.ExpandFilename(swiftOpts.FilenameTemplate, pr.Permutation)
		out[filename] = renderFile(pr.Tokens, swiftOpts.ExtensionOn)
	}
	return out, nil
}

func renderFile(tokens []*token.Token, extensionOn string) string {
	sorted := make([]*token.Token, len(tokens))
	copy(sorted, tokens)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].DotPath() < sorted[j].DotPath() })

	var sb strings.Builder
	sb.WriteString("import SwiftUI\n\n")
	sb.WriteString(fmt.Sprintf("extension %s {\n", extensionOn))
	for _, tok := range sorted {
		if tok.Type != "color" {
			continue
		}
		sb.WriteString(fmt.Sprintf("    static let %s = %s\n", swiftIdentifier(tok), colorLiteral(tok.Value)))
	}
	sb.WriteString("}\n")
	return sb.String()
}

// swiftIdentifier converts a dot-path into a lowerCamelCase Swift property
// name, e.g. "color.brand.hover" -> "colorBrandHover".
func swiftIdentifier(tok *token.Token) string {
	parts := tok.Path
	if len(parts) == 0 {
		return "token"
	}
	var sb strings.Builder
	sb.WriteString(strings.ToLower(parts[0]))
	for _, p := range parts[1:] {
		sb.WriteString(titleCaser.String(p))
	}
	return sb.String()
}

func colorLiteral(value any) string {
	m, ok := value.(map[string]any)
	if !ok {
		return fmt.Sprintf("Color(%v)", value)
	}
	comps, _ := m["components"].([]any)
	alpha := 1.0
	if a, ok := m["alpha"].(float64); ok {
		alpha = a
	}
	if len(comps) != 3 {
		return fmt.Sprintf("Color(%v)", value)
	}
	r, _ := comps[0].(float64)
	g, _ := comps[1].(float64)
	b, _ := comps[2].(float64)
	return fmt.Sprintf("Color(red: %g, green: %g, blue: %g, opacity: %g)", r, g, b, alpha)
}
