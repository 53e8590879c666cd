/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolution

import "go.tokenforge.dev/tokenforge/valuetree"

// StripDeprecated returns a Preprocessor that removes any group or token
// carrying a truthy $deprecated, before Stage 5 re-resolves references and
// Stage 6 flattens the tree. Tokens aliasing a deprecated entry still fail
// normally in the Alias Resolver, since removal happens before alias
// resolution runs.
func StripDeprecated() Preprocessor {
	return Preprocessor{
		Name: "stripDeprecated",
		Preprocess: func(root valuetree.Value) (valuetree.Value, error) {
			return stripDeprecated(root), nil
		},
	}
}

func stripDeprecated(v valuetree.Value) valuetree.Value {
	if v.Kind != valuetree.KindObject {
		return v
	}
	if dep, ok := v.Get("$deprecated"); ok && isTruthy(dep) {
		return valuetree.Value{}
	}

	keys := make([]string, 0, len(v.Keys))
	fields := make(map[string]valuetree.Value, len(v.Fields))
	for _, k := range v.Keys {
		child := v.Fields[k]
		if !isTopLevelKey(k) {
			child = stripDeprecated(child)
			if child.Kind == valuetree.KindNull && v.Fields[k].Kind != valuetree.KindNull {
				continue // child was dropped for carrying $deprecated
			}
		}
		keys = append(keys, k)
		fields[k] = child
	}
	return valuetree.NewObject(keys, fields)
}

// isTopLevelKey reports whether k is a reserved "$"-prefixed key rather than
// a child group or token name, mirroring the merge stage's own check.
func isTopLevelKey(k string) bool {
	return len(k) > 0 && k[0] == '$'
}

func isTruthy(v valuetree.Value) bool {
	switch v.Kind {
	case valuetree.KindBool:
		return v.Bool
	case valuetree.KindStr:
		return v.Str != ""
	default:
		return false
	}
}
