/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package jsmodule renders resolved tokens as an ESM module: a default
// export of the keyed-by-permutation object plus a "_meta" block and a
// "pick" runtime helper that selects the right sub-object for a given set
// of modifier inputs (spec §4.7/§6).
package jsmodule

import (
	json "github.com/segmentio/encoding/json"

	"go.tokenforge.dev/tokenforge/render"
	"go.tokenforge.dev/tokenforge/token"
)

// Options configures the jsmodule.Formatter.
type Options struct {
	Preset           render.Preset
	FilenameTemplate string // used when Preset == render.PresetStandalone
}

// Formatter implements render.Renderer, emitting TypeScript-flavored ESM.
type Formatter struct{}

func New() *Formatter { return &Formatter{} }

func (f *Formatter) Format(ctx render.Context, opts any) (render.OutputTree, error) {
	jsOpts, _ := opts.(Options)
	if jsOpts.Preset == render.PresetBundle {
		return formatBundle(ctx)
	}
	if jsOpts.FilenameTemplate == "" {
		jsOpts.FilenameTemplate = "tokens-{_base}.ts"
	}
	return formatStandalone(ctx, jsOpts)
}

func formatStandalone(ctx render.Context, opts Options) (render.OutputTree, error) {
	out := make(render.OutputTree, len(ctx.Permutations))
	for _, pr := range ctx.Permutations {
		filename := render.ExpandFilename(opts.FilenameTemplate, pr.Permutation)
		body, err := json.MarshalIndent(flatMap(pr.Tokens), "", "  ")
		if err != nil {
			return nil, err
		}
		out[filename] = "export default " + string(body) + " as const;\n"
	}
	return out, nil
}

func formatBundle(ctx render.Context) (render.OutputTree, error) {
	permutations := make(map[string]map[string]any, len(ctx.Permutations))
	for _, pr := range ctx.Permutations {
		key := pr.Permutation.Key(ctx.Meta.Dimensions)
		permutations[key] = flatMap(pr.Tokens)
	}

	permsJSON, err := json.MarshalIndent(permutations, "", "  ")
	if err != nil {
		return nil, err
	}
	dimsJSON, err := json.Marshal(ctx.Meta.Dimensions)
	if err != nil {
		return nil, err
	}
	defaultsJSON, err := json.MarshalIndent(ctx.Meta.Defaults, "", "  ")
	if err != nil {
		return nil, err
	}

	body := "export const dimensions = " + string(dimsJSON) + " as const;\n\n"
	body += "export const defaults = " + string(defaultsJSON) + " as const;\n\n"
	body += "const permutations = " + string(permsJSON) + " as const;\n\n"
	body += "export function pick(inputs: Partial<Record<(typeof dimensions)[number], string>>) {\n"
	body += "  const key = dimensions.map((d) => inputs[d] ?? defaults[d]).join(\"-\");\n"
	body += "  return permutations[key as keyof typeof permutations];\n"
	body += "}\n"

	return render.OutputTree{"tokens.ts": body}, nil
}

func flatMap(tokens []*token.Token) map[string]any {
	m := make(map[string]any, len(tokens))
	for _, tok := range tokens {
		m[tok.DotPath()] = tok.Value
	}
	return m
}
