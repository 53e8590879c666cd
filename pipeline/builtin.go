/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package pipeline

import (
	"fmt"

	"github.com/iancoleman/strcase"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"

	"go.tokenforge.dev/tokenforge/token"
)

// KebabCaseNames rewrites every token's Name to kebab-case, leaving Path and
// Type untouched.
func KebabCaseNames() Transform {
	return Transform{
		Name: "kebabCaseNames",
		Apply: func(tok *token.Token) (*token.Token, error) {
			out := tok.Clone()
			out.Name = strcase.ToKebab(tok.Name)
			return out, nil
		},
	}
}

// CamelCaseNames rewrites every token's Name to camelCase.
func CamelCaseNames() Transform {
	return Transform{
		Name: "camelCaseNames",
		Apply: func(tok *token.Token) (*token.Token, error) {
			out := tok.Clone()
			out.Name = strcase.ToLowerCamel(tok.Name)
			return out, nil
		},
	}
}

// PrefixNames prepends prefix + delimiter to every token's Name.
func PrefixNames(prefix, delimiter string) Transform {
	return Transform{
		Name: "prefixNames",
		Apply: func(tok *token.Token) (*token.Token, error) {
			if prefix == "" {
				return tok, nil
			}
			out := tok.Clone()
			out.Name = prefix + delimiter + tok.Name
			return out, nil
		},
	}
}

// colorComponents extracts {colorSpace, components, alpha} from a resolved
// structured color value, per the DTCG 2025.10 color shape.
func colorComponents(v any) (space string, comps []float64, alpha float64, ok bool) {
	m, isMap := v.(map[string]any)
	if !isMap {
		return "", nil, 0, false
	}
	spaceAny, hasSpace := m["colorSpace"]
	compsAny, hasComps := m["components"]
	if !hasSpace || !hasComps {
		return "", nil, 0, false
	}
	space, _ = spaceAny.(string)
	compsSlice, isSlice := compsAny.([]any)
	if !isSlice {
		return "", nil, 0, false
	}
	comps = make([]float64, len(compsSlice))
	for i, c := range compsSlice {
		f, _ := c.(float64)
		comps[i] = f
	}
	alpha = 1.0
	if a, hasAlpha := m["alpha"]; hasAlpha {
		if f, isFloat := a.(float64); isFloat {
			alpha = f
		}
	}
	return space, comps, alpha, true
}

// ToColorSpace converts every color token whose structured value is in srgb
// or hsl into the target color space (srgb, hsl or lab) via go-colorful,
// preserving alpha. Values in other source spaces pass through unchanged;
// any other target fails the transform.
func ToColorSpace(target string) Transform {
	return Transform{
		Name:    fmt.Sprintf("toColorSpace(%s)", target),
		Matcher: func(tok *token.Token) (bool, error) { return tok.Type == "color", nil },
		Apply: func(tok *token.Token) (*token.Token, error) {
			space, comps, alpha, ok := colorComponents(tok.Value)
			if !ok || len(comps) < 3 {
				return tok, nil
			}

			var c colorful.Color
			switch space {
			case "srgb":
				c = colorful.Color{R: comps[0], G: comps[1], B: comps[2]}
			case "hsl":
				c = colorful.Hsl(comps[0], comps[1], comps[2])
			default:
				return tok, nil
			}

			var outComps []float64
			switch target {
			case "srgb":
				outComps = []float64{c.R, c.G, c.B}
			case "hsl":
				h, s, l := c.Hsl()
				outComps = []float64{h, s, l}
			case "lab":
				l, a, b := c.Lab()
				outComps = []float64{l, a, b}
			default:
				return nil, fmt.Errorf("unsupported target color space %q", target)
			}

			out := tok.Clone()
			out.Value = map[string]any{
				"colorSpace": target,
				"components": toAnySlice(outComps),
				"alpha":      alpha,
			}
			return out, nil
		},
	}
}

// ParseCSSColorStrings converts color tokens authored as bare CSS color
// strings (hex, rgb(), named colors, ...) into the structured DTCG
// {colorSpace: "srgb", components, alpha} shape, leaving already-structured
// color values untouched. Tokens whose value can't be parsed as a CSS color
// are left as-is rather than failing the whole output.
func ParseCSSColorStrings() Transform {
	return Transform{
		Name:    "parseCSSColorStrings",
		Matcher: func(tok *token.Token) (bool, error) { return tok.Type == "color", nil },
		Apply: func(tok *token.Token) (*token.Token, error) {
			s, isString := tok.Value.(string)
			if !isString {
				return tok, nil
			}
			c, err := csscolorparser.Parse(s)
			if err != nil {
				return tok, nil
			}
			out := tok.Clone()
			out.Value = map[string]any{
				"colorSpace": "srgb",
				"components": []any{c.R, c.G, c.B},
				"alpha":      c.A,
			}
			return out, nil
		},
	}
}

func toAnySlice(fs []float64) []any {
	out := make([]any, len(fs))
	for i, f := range fs {
		out[i] = f
	}
	return out
}
