/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package figma renders resolved tokens as a Figma Variables import
// document: one collection with one mode per permutation, values keyed by
// dot-path. Callers are expected to have already applied
// pipeline.IsFigmaCompatible so only representable $types reach Format.
package figma

import (
	json "github.com/segmentio/encoding/json"

	"go.tokenforge.dev/tokenforge/render"
	"go.tokenforge.dev/tokenforge/token"
)

// Options configures the figma.Formatter.
type Options struct {
	CollectionName string // defaults to "Design Tokens"
}

// Formatter implements render.Renderer for Figma Variables.
type Formatter struct{}

func New() *Formatter { return &Formatter{} }

// variable is one Figma Variable entry: its resolved type plus one value
// per mode (permutation key).
type variable struct {
	Type        string         `json:"type"`
	ValuesByMode map[string]any `json:"valuesByMode"`
}

type collection struct {
	Name      string               `json:"name"`
	Modes     []string             `json:"modes"`
	Variables map[string]*variable `json:"variables"`
}

func (f *Formatter) Format(ctx render.Context, opts any) (render.OutputTree, error) {
	figOpts, _ := opts.(Options)
	if figOpts.CollectionName == "" {
		figOpts.CollectionName = "Design Tokens"
	}

	col := collection{
		Name:      figOpts.CollectionName,
		Variables: make(map[string]*variable),
	}

	for _, pr := range ctx.Permutations {
		mode := pr.Permutation.Key(ctx.Meta.Dimensions)
		if mode == "" {
			mode = "Default"
		}
		col.Modes = append(col.Modes, mode)
		for _, tok := range pr.Tokens {
			addVariable(&col, tok, mode)
		}
	}

	body, err := json.MarshalIndent(col, "", "  ")
	if err != nil {
		return nil, err
	}
	return render.OutputTree{"figma-variables.json": string(body) + "\n"}, nil
}

func addVariable(col *collection, tok *token.Token, mode string) {
	v, ok := col.Variables[tok.DotPath()]
	if !ok {
		v = &variable{Type: figmaType(tok.Type), ValuesByMode: make(map[string]any)}
		col.Variables[tok.DotPath()] = v
	}
	v.ValuesByMode[mode] = tok.Value
}

func figmaType(tokenType string) string {
	switch tokenType {
	case "color":
		return "COLOR"
	case "number", "dimension":
		return "FLOAT"
	case "boolean":
		return "BOOLEAN"
	default:
		return "STRING"
	}
}
