/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package json renders resolved tokens as flat JSON, either one file per
// permutation (standalone) or a single keyed object covering every
// permutation, with a "_meta" block a runtime helper can use to compute the
// right key for a given set of modifier inputs (spec §4.7/§6).
package json

import (
	json "github.com/segmentio/encoding/json"

	"go.tokenforge.dev/tokenforge/render"
	"go.tokenforge.dev/tokenforge/token"
)

// Options configures the json.Formatter.
type Options struct {
	Preset           render.Preset
	FilenameTemplate string // standalone: per-permutation template; bundle: the single file's name, defaults to "tokens.json"
	Indent           string // passed to json.MarshalIndent; defaults to two spaces
}

// Formatter implements render.Renderer for flat JSON token maps.
type Formatter struct{}

func New() *Formatter { return &Formatter{} }

func (f *Formatter) Format(ctx render.Context, opts any) (render.OutputTree, error) {
	jsonOpts, _ := opts.(Options)
	if jsonOpts.FilenameTemplate == "" && jsonOpts.Preset != render.PresetBundle {
		jsonOpts.FilenameTemplate = "tokens-{_base}.json"
	}
	if jsonOpts.Indent == "" {
		jsonOpts.Indent = "  "
	}

	if jsonOpts.Preset == render.PresetBundle {
		return formatKeyed(ctx, jsonOpts)
	}
	return formatStandalone(ctx, jsonOpts)
}

func formatStandalone(ctx render.Context, opts Options) (render.OutputTree, error) {
	out := make(render.OutputTree, len(ctx.Permutations))
	for _, pr := range ctx.Permutations {
		filename := render.ExpandFilename(opts.FilenameTemplate, pr.Permutation)
		body, err := marshal(flatMap(pr.Tokens), opts.Indent)
		if err != nil {
			return nil, err
		}
		out[filename] = body
	}
	return out, nil
}

// keyedDocument is the shape written to the single bundle file: one entry
// per permutation under "permutations", keyed by dimension values joined
// with "-", plus a "_meta" block describing the dimensions/defaults used to
// compute that key.
type keyedDocument struct {
	Meta         metaBlock                 `json:"_meta"`
	Permutations map[string]map[string]any `json:"permutations"`
}

type metaBlock struct {
	Dimensions []string          `json:"dimensions"`
	Defaults   map[string]string `json:"defaults"`
}

func formatKeyed(ctx render.Context, opts Options) (render.OutputTree, error) {
	doc := keyedDocument{
		Meta: metaBlock{
			Dimensions: ctx.Meta.Dimensions,
			Defaults:   ctx.Meta.Defaults,
		},
		Permutations: make(map[string]map[string]any, len(ctx.Permutations)),
	}
	for _, pr := range ctx.Permutations {
		key := pr.Permutation.Key(ctx.Meta.Dimensions)
		doc.Permutations[key] = flatMap(pr.Tokens)
	}

	body, err := marshal(doc, opts.Indent)
	if err != nil {
		return nil, err
	}
	filename := "tokens.json"
	if opts.FilenameTemplate != "" {
		filename = opts.FilenameTemplate
	}
	return render.OutputTree{filename: body}, nil
}

func flatMap(tokens []*token.Token) map[string]any {
	m := make(map[string]any, len(tokens))
	for _, tok := range tokens {
		m[tok.DotPath()] = tok.Value
	}
	return m
}

func marshal(v any, indent string) (string, error) {
	b, err := json.MarshalIndent(v, "", indent)
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
