/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package render

import (
	"fmt"
	"regexp"

	"go.tokenforge.dev/tokenforge/resolution"
	"go.tokenforge.dev/tokenforge/schema"
)

var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// ExpandFilename substitutes brace placeholders in template with the
// permutation's context values; "{_base}" is available to renderers that
// need to name a single base file (spec §6).
func ExpandFilename(template string, perm resolution.Permutation) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		if name == "_base" {
			if perm.IsBase {
				return "base"
			}
			return ""
		}
		return perm.Inputs[name]
	})
}

// CheckUniqueFilenames validates that a standalone preset's filename
// template yields distinct paths across permutations (spec §6: collisions
// are a configuration error).
func CheckUniqueFilenames(template string, perms []resolution.Permutation) error {
	seen := make(map[string]bool, len(perms))
	for _, p := range perms {
		name := ExpandFilename(template, p)
		if seen[name] {
			return &schema.ConfigurationError{
				Component: "render",
				Message:   fmt.Sprintf("filename template %q produces duplicate path %q across permutations", template, name),
			}
		}
		seen[name] = true
	}
	return nil
}
