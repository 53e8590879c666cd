/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package compose renders resolved tokens as a Kotlin object of Jetpack
// Compose Color/Dp constants, one file per permutation, generalizing the
// teacher's android XML-resource formatter from XML resources to Kotlin
// source.
package compose

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"go.tokenforge.dev/tokenforge/render"
	"go.tokenforge.dev/tokenforge/token"
)

// Options configures the compose.Formatter.
type Options struct {
	FilenameTemplate string // defaults to "Tokens-{_base}.kt"
	Package          string // Kotlin package declaration; defaults to "tokens"
	ObjectName       string // defaults to "Tokens"
}

// Formatter implements render.Renderer for Jetpack Compose.
type Formatter struct{}

func New() *Formatter { return &Formatter{} }

var titleCaser = cases.Title(language.Und)

func (f *Formatter) Format(ctx render.Context, opts any) (render.OutputTree, error) {
	kOpts, _ := opts.(Options)
	if kOpts.FilenameTemplate == "" {
		kOpts.FilenameTemplate = "Tokens-{_base}.kt"
	}
	if kOpts.Package == "" {
		kOpts.Package = "tokens"
	}
	if kOpts.ObjectName == "" {
		kOpts.ObjectName = "Tokens"
	}

	out := make(render.OutputTree, len(ctx.Permutations))
	for _, pr := range ctx.Permutations {
		filename := render.ExpandFilename(kOpts.FilenameTemplate, pr.Permutation)
		out[filename] = renderFile(pr.Tokens, kOpts)
	}
	return out, nil
}

func renderFile(tokens []*token.Token, opts Options) string {
	sorted := make([]*token.Token, len(tokens))
	copy(sorted, tokens)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].DotPath() < sorted[j].DotPath() })

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("package %s\n\n", opts.Package))
	sb.WriteString("import androidx.compose.ui.graphics.Color\n")
	sb.WriteString("import androidx.compose.ui.unit.Dp\n")
	sb.WriteString("import androidx.compose.ui.unit.dp\n\n")
	sb.WriteString(fmt.Sprintf("object %s {\n", opts.ObjectName))
	for _, tok := range sorted {
		name := kotlinIdentifier(tok)
		switch tok.Type {
		case "color":
			sb.WriteString(fmt.Sprintf("    val %s: Color = %s\n", name, colorLiteral(tok.Value)))
		case "dimension":
			sb.WriteString(fmt.Sprintf("    val %s: Dp = %s\n", name, dpLiteral(tok.Value)))
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

func kotlinIdentifier(tok *token.Token) string {
	parts := tok.Path
	if len(parts) == 0 {
		return "token"
	}
	var sb strings.Builder
	for _, p := range parts {
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
	r := componentToByte(comps[0])
	g := componentToByte(comps[1])
	b := componentToByte(comps[2])
	a := componentToByte(alpha)
	return fmt.Sprintf("Color(0x%02X%02X%02X%02X)", a, r, g, b)
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

func dpLiteral(value any) string {
	switch v := value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64) + ".dp"
	case string:
		trimmed := strings.TrimSuffix(strings.TrimSuffix(v, "px"), "rem")
		if trimmed != v {
			return trimmed + ".dp"
		}
		return "0.dp"
	default:
		return "0.dp"
	}
}
