/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validator checks that a token file's content is internally
// consistent with its detected schema version: no draft file should use
// 2025.10-only syntax ($ref, $extends, $root, structured colors) and no
// 2025.10 file should fall back to draft-only syntax (string colors, group
// markers instead of $root). It surfaces diagnostics; it does not itself
// define or enforce the DTCG JSON Schema.
package validator

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"go.tokenforge.dev/tokenforge/schema"
)

// ValidateConsistency checks file content against the expected schema
// version and returns one issue per inconsistency found.
func ValidateConsistency(content []byte, version schema.Version) ([]schema.ValidationIssue, error) {
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}

	switch version {
	case schema.Draft:
		return validateDraft(data, nil), nil
	case schema.V2025_10:
		return validateV2025(data, nil), nil
	default:
		return nil, nil
	}
}

// ValidateConsistencyError runs ValidateConsistency and wraps any resulting
// issues in a *schema.ValidationError scoped to filePath, or returns nil if
// the file is consistent.
func ValidateConsistencyError(content []byte, version schema.Version, filePath string) (*schema.ValidationError, error) {
	issues, err := ValidateConsistency(content, version)
	if err != nil {
		return nil, err
	}
	if len(issues) == 0 {
		return nil, nil
	}
	return &schema.ValidationError{FilePath: filePath, Issues: issues}, nil
}

func validateDraft(data map[string]any, path []string) []schema.ValidationIssue {
	var issues []schema.ValidationIssue

	for key, value := range data {
		currentPath := append(path[:len(path):len(path)], key)
		pathStr := strings.Join(currentPath, ".")

		switch key {
		case "$ref":
			issues = append(issues, schema.ValidationIssue{
				Path:    pathStr,
				Message: "$ref is not valid in draft schema (use curly-brace references like {token.path}, or update $schema to 2025.10)",
			})
			continue
		case "$extends":
			issues = append(issues, schema.ValidationIssue{
				Path:    pathStr,
				Message: "$extends is not valid in draft schema (update $schema to 2025.10 to use group extensions)",
			})
			continue
		case "$root":
			issues = append(issues, schema.ValidationIssue{
				Path:    pathStr,
				Message: `$root is not valid in draft schema (use a group marker like "_", or update $schema to 2025.10)`,
			})
			continue
		}

		valueMap, ok := value.(map[string]any)
		if !ok {
			continue
		}

		if isColorToken(valueMap, path) {
			if rawValue, hasValue := valueMap["$value"]; hasValue {
				if colorMap, isMap := rawValue.(map[string]any); isMap {
					if _, hasColorSpace := colorMap["colorSpace"]; hasColorSpace {
						issues = append(issues, schema.ValidationIssue{
							Path:    pathStr,
							Message: `structured color values are not valid in draft schema (use a string like "#RRGGBB", or update $schema to 2025.10)`,
						})
					}
				}
			}
		}

		issues = append(issues, validateDraft(valueMap, currentPath)...)
	}

	return issues
}

func validateV2025(data map[string]any, path []string) []schema.ValidationIssue {
	var issues []schema.ValidationIssue

	hasRootToken := false
	hasGroupMarker := false
	groupMarkerPath := ""

	for key, value := range data {
		if key == "$schema" {
			continue
		}
		currentPath := append(path[:len(path):len(path)], key)
		pathStr := strings.Join(currentPath, ".")

		if key == "$root" {
			hasRootToken = true
		}
		if isGroupMarker(key) {
			hasGroupMarker = true
			groupMarkerPath = pathStr
		}

		valueMap, ok := value.(map[string]any)
		if !ok {
			continue
		}

		if isColorToken(valueMap, path) {
			if rawValue, hasValue := valueMap["$value"]; hasValue {
				if colorStr, isString := rawValue.(string); isString {
					issues = append(issues, schema.ValidationIssue{
						Path:    pathStr,
						Message: fmt.Sprintf("string color value %q is not valid in 2025.10 schema (use a structured colorSpace/components object)", colorStr),
					})
				}
			}
		}

		issues = append(issues, validateV2025(valueMap, currentPath)...)
	}

	switch {
	case hasRootToken && hasGroupMarker:
		issues = append(issues, schema.ValidationIssue{
			Path:    strings.Join(path, "."),
			Message: `conflicting root token patterns: both $root and a group marker found (use only $root in 2025.10 schema)`,
		})
	case hasGroupMarker:
		issues = append(issues, schema.ValidationIssue{
			Path:    groupMarkerPath,
			Message: `group marker tokens are deprecated in 2025.10 schema (use $root instead)`,
		})
	}

	return issues
}

// isColorToken reports whether valueMap is a $type: color token, either
// explicitly or via inherited group typing inferred from parentPath.
func isColorToken(valueMap map[string]any, parentPath []string) bool {
	if tokenType, ok := valueMap["$type"].(string); ok {
		return tokenType == "color"
	}
	for i := len(parentPath) - 1; i >= 0; i-- {
		if parentPath[i] == "color" || parentPath[i] == "colors" {
			return true
		}
	}
	return false
}

// isGroupMarker reports whether key is a draft-style group-root marker.
func isGroupMarker(key string) bool {
	return key == "_" || key == "-" || key == "."
}
