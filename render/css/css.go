/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package css renders resolved tokens as CSS custom properties, either as
// one file per permutation (standalone) or a single cascading file using
// :root plus data-attribute overrides (bundle).
package css

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.tokenforge.dev/tokenforge/render"
	"go.tokenforge.dev/tokenforge/resolution"
	"go.tokenforge.dev/tokenforge/token"
)

// Selector names the CSS selector a standalone file's block is scoped
// under; bundle selectors are computed per-permutation instead (see
// render.SelectorFunc).
type Selector string

const (
	SelectorRoot Selector = ":root"
	SelectorHost Selector = ":host"
)

// Module selects whether a standalone file is emitted as plain CSS or
// wrapped as a Lit `css` tagged template module.
type Module string

const (
	ModuleNone Module = ""
	ModuleLit  Module = "lit"
)

// Options configures the css.Formatter.
type Options struct {
	Preset           render.Preset
	FilenameTemplate string // standalone: per-permutation template, "{_base}" and "{modifier}" placeholders substituted; bundle: the single file's name, defaults to "tokens.css"
	StandaloneSelector Selector // selector for a standalone block; defaults to SelectorRoot
	Module           Module    // ModuleLit wraps standalone output as a Lit css`` template
	Selector         render.SelectorFunc // used when Preset == render.PresetBundle; defaults to render.DefaultSelector
	Prefix           string              // prefix applied to every custom-property name, e.g. "my-app"
}

// Formatter implements render.Renderer for CSS custom properties.
type Formatter struct{}

func New() *Formatter { return &Formatter{} }

func (f *Formatter) Format(ctx render.Context, opts any) (render.OutputTree, error) {
	cssOpts, _ := opts.(Options)
	if cssOpts.FilenameTemplate == "" && cssOpts.Preset != render.PresetBundle {
		if cssOpts.Module == ModuleLit {
			cssOpts.FilenameTemplate = "tokens-{_base}.ts"
		} else {
			cssOpts.FilenameTemplate = "tokens-{_base}.css"
		}
	}
	if cssOpts.StandaloneSelector == "" {
		cssOpts.StandaloneSelector = SelectorRoot
	}

	if cssOpts.Preset == render.PresetBundle {
		return formatBundle(ctx, cssOpts)
	}
	return formatStandalone(ctx, cssOpts)
}

func formatStandalone(ctx render.Context, opts Options) (render.OutputTree, error) {
	perms := make([]resolution.Permutation, len(ctx.Permutations))
	for i, pr := range ctx.Permutations {
		perms[i] = pr.Permutation
	}
	if err := render.CheckUniqueFilenames(opts.FilenameTemplate, perms); err != nil {
		return nil, err
	}

	out := make(render.OutputTree, len(ctx.Permutations))
	for _, pr := range ctx.Permutations {
		filename := render.ExpandFilename(opts.FilenameTemplate, pr.Permutation)
		block := renderBlock(string(opts.StandaloneSelector), pr.Tokens, opts.Prefix)
		if opts.Module == ModuleLit {
			block = "import { css } from \"lit\";\n\nexport default css`\n" + block + "`;\n"
		}
		out[filename] = block
	}
	return out, nil
}

func formatBundle(ctx render.Context, opts Options) (render.OutputTree, error) {
	selector := opts.Selector
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
		sb.WriteString(renderBlock(block.Selector, block.Tokens, opts.Prefix))
	}
	filename := "tokens.css"
	if opts.FilenameTemplate != "" {
		filename = opts.FilenameTemplate
	}
	return render.OutputTree{filename: sb.String()}, nil
}

func renderBlock(selector string, tokens []*token.Token, prefix string) string {
	sorted := make([]*token.Token, len(tokens))
	copy(sorted, tokens)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].DotPath() < sorted[j].DotPath() })

	var sb strings.Builder
	sb.WriteString(selector)
	sb.WriteString(" {\n")
	for _, tok := range sorted {
		sb.WriteString("  ")
		sb.WriteString(tok.CSSVariableName(prefix))
		sb.WriteString(": ")
		sb.WriteString(ToCSSValue(tok.Type, tok.Value))
		sb.WriteString(";\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

// ToCSSValue renders a resolved token value as a CSS value literal, given its
// $type. Structured values (color, cubicBezier) are rendered in their
// canonical CSS form; scalars pass through with minimal reformatting.
func ToCSSValue(tokenType string, value any) string {
	switch tokenType {
	case "color":
		return colorToCSS(value)
	case "cubicBezier":
		return cubicBezierToCSS(value)
	case "fontFamily":
		return fontFamilyToCSS(value)
	case "number":
		return numberToCSS(value)
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return numberToCSS(v)
	case map[string]any:
		if _, ok := v["colorSpace"]; ok {
			return colorToCSS(value)
		}
	}
	return fmt.Sprintf("%v", value)
}

func colorToCSS(value any) string {
	m, ok := value.(map[string]any)
	if !ok {
		if s, ok := value.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", value)
	}
	space, _ := m["colorSpace"].(string)
	comps, _ := m["components"].([]any)
	alpha := 1.0
	if a, ok := m["alpha"].(float64); ok {
		alpha = a
	}
	if space != "srgb" || len(comps) != 3 {
		return fmt.Sprintf("%v", value)
	}
	r := componentToByte(comps[0])
	g := componentToByte(comps[1])
	b := componentToByte(comps[2])
	if alpha >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, componentToByte(alpha))
}

func componentToByte(v any) int {
	f, _ := v.(float64)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return int(f*255 + 0.5)
}

func cubicBezierToCSS(value any) string {
	arr, ok := value.([]any)
	if !ok || len(arr) != 4 {
		return fmt.Sprintf("%v", value)
	}
	parts := make([]string, 4)
	for i, v := range arr {
		parts[i] = trimFloat(v)
	}
	return "cubic-bezier(" + strings.Join(parts, ", ") + ")"
}

func fontFamilyToCSS(value any) string {
	s, ok := value.(string)
	if !ok {
		return fmt.Sprintf("%v", value)
	}
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s
	}
	return `"` + s + `"`
}

func numberToCSS(value any) string {
	f, ok := value.(float64)
	if !ok {
		return fmt.Sprintf("%v", value)
	}
	return trimFloat(f)
}

func trimFloat(v any) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
