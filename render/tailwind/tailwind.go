/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package tailwind renders resolved tokens as a Tailwind CSS v4 "@theme"
// block, cascade-bundled the same way render/css bundles :root/[data-*]
// overrides, since Tailwind themes are themselves CSS custom properties.
package tailwind

import (
	"sort"
	"strings"

	"go.tokenforge.dev/tokenforge/render"
	"go.tokenforge.dev/tokenforge/render/css"
	"go.tokenforge.dev/tokenforge/token"
)

// Options configures the tailwind.Formatter.
type Options struct {
	Selector render.SelectorFunc // selector for non-base override blocks; defaults to render.DefaultSelector
	Prefix   string
	Static   bool // when true, the @theme block is declared "static" (emits every custom property as a utility even if unused)
}

// Formatter implements render.Renderer, always emitting a single bundled
// file regardless of ctx's preset, since Tailwind themes are consumed as
// one stylesheet.
type Formatter struct{}

func New() *Formatter { return &Formatter{} }

func (f *Formatter) Format(ctx render.Context, opts any) (render.OutputTree, error) {
	twOpts, _ := opts.(Options)
	selector := twOpts.Selector
	if selector == nil {
		selector = render.DefaultSelector
	}

	blocks, err := render.BuildCascade(ctx, selector)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	for i, block := range blocks {
		if len(block.Tokens) == 0 {
			continue
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		if i == 0 {
			sb.WriteString(themeHeader(twOpts.Static))
			sb.WriteString(renderProperties(block.Tokens, twOpts.Prefix))
			sb.WriteString("}\n")
			continue
		}
		sb.WriteString(block.Selector)
		sb.WriteString(" {\n")
		sb.WriteString(renderProperties(block.Tokens, twOpts.Prefix))
		sb.WriteString("}\n")
	}

	return render.OutputTree{"theme.css": sb.String()}, nil
}

func themeHeader(static bool) string {
	if static {
		return "@theme static {\n"
	}
	return "@theme {\n"
}

func renderProperties(tokens []*token.Token, prefix string) string {
	sorted := make([]*token.Token, len(tokens))
	copy(sorted, tokens)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].DotPath() < sorted[j].DotPath() })

	var sb strings.Builder
	for _, tok := range sorted {
		sb.WriteString("  ")
		sb.WriteString(tok.CSSVariableName(prefix))
		sb.WriteString(": ")
		sb.WriteString(css.ToCSSValue(tok.Type, tok.Value))
		sb.WriteString(";\n")
	}
	return sb.String()
}
