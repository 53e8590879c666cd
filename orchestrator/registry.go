/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package orchestrator

import (
	"fmt"
	"strings"

	"go.tokenforge.dev/tokenforge/buildconfig"
	"go.tokenforge.dev/tokenforge/pipeline"
	"go.tokenforge.dev/tokenforge/render"
	"go.tokenforge.dev/tokenforge/render/compose"
	"go.tokenforge.dev/tokenforge/render/css"
	"go.tokenforge.dev/tokenforge/render/figma"
	"go.tokenforge.dev/tokenforge/render/jsmodule"
	"go.tokenforge.dev/tokenforge/render/json"
	"go.tokenforge.dev/tokenforge/render/swiftui"
	"go.tokenforge.dev/tokenforge/render/tailwind"
	"go.tokenforge.dev/tokenforge/resolution"
	"go.tokenforge.dev/tokenforge/schema"
)

// buildRenderer resolves spec.Renderer to a concrete render.Renderer plus
// its assembled Options, translating the generic OutputSpec fields into
// each renderer's own Options shape.
func buildRenderer(spec buildconfig.OutputSpec) (render.Renderer, any, error) {
	preset := render.Preset(spec.Preset)
	if preset == "" {
		preset = render.PresetStandalone
	}
	selector := selectorFuncFromSpec(spec.Selector)

	switch spec.Renderer {
	case "css":
		opts := css.Options{
			Preset:           preset,
			FilenameTemplate: spec.FilenameTemplate,
			Selector:         selector,
		}
		if spec.Selector.Literal != "" {
			opts.StandaloneSelector = css.Selector(spec.Selector.Literal)
		}
		return css.New(), opts, nil

	case "json":
		return json.New(), json.Options{Preset: preset, FilenameTemplate: spec.FilenameTemplate}, nil

	case "jsmodule":
		return jsmodule.New(), jsmodule.Options{Preset: preset, FilenameTemplate: spec.FilenameTemplate}, nil

	case "tailwind":
		return tailwind.New(), tailwind.Options{Selector: selector}, nil

	case "swiftui":
		return swiftui.New(), swiftui.Options{FilenameTemplate: spec.FilenameTemplate}, nil

	case "compose":
		return compose.New(), compose.Options{FilenameTemplate: spec.FilenameTemplate}, nil

	case "figma":
		return figma.New(), figma.Options{}, nil

	default:
		return nil, nil, &schema.ConfigurationError{Component: "orchestrator", Message: fmt.Sprintf("output %q: unknown renderer %q", spec.Name, spec.Renderer)}
	}
}

// selectorFuncFromSpec builds a render.SelectorFunc from a SelectorSpec. A
// bare literal selector (the common "selector: \":host\"" shorthand) always
// wins regardless of which permutation is being rendered; a Template has its
// "{modifier}" and "{context}" placeholders substituted per block. A spec
// with neither yields nil, and the renderer falls back to
// render.DefaultSelector. Modifier and Context are not read.
func selectorFuncFromSpec(spec buildconfig.SelectorSpec) render.SelectorFunc {
	if spec.Literal != "" {
		literal := spec.Literal
		return func(modifier, context string, isBase bool, allInputs map[string]string) string {
			return literal
		}
	}
	if spec.Template != "" {
		tmpl := spec.Template
		return func(modifier, context string, isBase bool, allInputs map[string]string) string {
			out := strings.ReplaceAll(tmpl, "{modifier}", modifier)
			out = strings.ReplaceAll(out, "{context}", context)
			return out
		}
	}
	return nil
}

// buildFiltersAndTransforms parses an OutputSpec's string-named filter and
// transform lists into the concrete pipeline.Filter/Transform values the
// builtin constructors produce. Each spec is "name" or "name:arg1:arg2".
func buildFiltersAndTransforms(spec buildconfig.OutputSpec) ([]pipeline.Filter, []pipeline.Transform, error) {
	filters := make([]pipeline.Filter, 0, len(spec.Filters))
	for _, raw := range spec.Filters {
		f, err := parseFilter(raw)
		if err != nil {
			return nil, nil, &schema.ConfigurationError{Component: "orchestrator", Message: fmt.Sprintf("output %q: %v", spec.Name, err)}
		}
		filters = append(filters, f)
	}

	transforms := make([]pipeline.Transform, 0, len(spec.Transforms))
	for _, raw := range spec.Transforms {
		t, err := parseTransform(raw)
		if err != nil {
			return nil, nil, &schema.ConfigurationError{Component: "orchestrator", Message: fmt.Sprintf("output %q: %v", spec.Name, err)}
		}
		transforms = append(transforms, t)
	}

	return filters, transforms, nil
}

func parseFilter(raw string) (pipeline.Filter, error) {
	name, args := splitNameArgs(raw)
	switch name {
	case "byType":
		return pipeline.ByType(args...), nil
	case "byPath":
		if len(args) != 1 {
			return pipeline.Filter{}, fmt.Errorf("byPath takes exactly one pattern argument, got %d", len(args))
		}
		return pipeline.ByPath(args[0])
	case "isAlias":
		return pipeline.IsAlias(), nil
	case "isBase":
		return pipeline.IsBase(), nil
	case "isFigmaCompatible":
		return pipeline.IsFigmaCompatible(), nil
	default:
		return pipeline.Filter{}, fmt.Errorf("unknown filter %q", name)
	}
}

func parseTransform(raw string) (pipeline.Transform, error) {
	name, args := splitNameArgs(raw)
	switch name {
	case "kebabCaseNames":
		return pipeline.KebabCaseNames(), nil
	case "camelCaseNames":
		return pipeline.CamelCaseNames(), nil
	case "prefixNames":
		prefix, delimiter := "", "-"
		if len(args) > 0 {
			prefix = args[0]
		}
		if len(args) > 1 {
			delimiter = args[1]
		}
		return pipeline.PrefixNames(prefix, delimiter), nil
	case "toColorSpace":
		if len(args) != 1 {
			return pipeline.Transform{}, fmt.Errorf("toColorSpace takes exactly one target-space argument, got %d", len(args))
		}
		return pipeline.ToColorSpace(args[0]), nil
	case "parseCSSColorStrings":
		return pipeline.ParseCSSColorStrings(), nil
	default:
		return pipeline.Transform{}, fmt.Errorf("unknown transform %q", name)
	}
}

func splitNameArgs(raw string) (string, []string) {
	parts := strings.Split(raw, ":")
	return parts[0], parts[1:]
}

// buildPreprocessors resolves cfg.Preprocessors' string names to concrete
// resolution.Preprocessor values. Arbitrary, non-named preprocessors are
// supplied programmatically through BuildOptions.Preprocessors instead;
// names here cover the built-in set every config file can reach.
func buildPreprocessors(names []string) ([]resolution.Preprocessor, error) {
	out := make([]resolution.Preprocessor, 0, len(names))
	for _, name := range names {
		switch name {
		case "stripDeprecated":
			out = append(out, resolution.StripDeprecated())
		default:
			return nil, &schema.ConfigurationError{Component: "orchestrator", Message: fmt.Sprintf("unknown preprocessor %q", name)}
		}
	}
	return out, nil
}
