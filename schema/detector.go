/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DetectionConfig configures schema-version detection.
type DetectionConfig struct {
	// DefaultVersion is used when no other detection method succeeds.
	DefaultVersion Version
}

// DetectVersion detects a token or resolver document's schema version from
// its raw content. Priority order:
//  1. $schema field at the document root
//  2. config.DefaultVersion, if set
//  3. duck typing against unambiguous 2025.10 features
//  4. Draft, for backward compatibility
func DetectVersion(content []byte, config *DetectionConfig) (Version, error) {
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return Unknown, fmt.Errorf("invalid YAML/JSON: %w", err)
	}

	if schemaURL, ok := data["$schema"].(string); ok {
		if version, err := FromURL(schemaURL); err == nil {
			return version, nil
		}
	}

	if config != nil && config.DefaultVersion != Unknown {
		return config.DefaultVersion, nil
	}

	if version := duckTypeSchema(data); version != Unknown {
		return version, nil
	}

	return Draft, nil
}

// duckTypeSchema inspects content patterns for unambiguous 2025.10 markers.
func duckTypeSchema(data map[string]any) Version {
	if hasFeature(data, "$ref") {
		return V2025_10
	}
	if hasFeature(data, "$extends") {
		return V2025_10
	}
	if hasFeature(data, "resolutionOrder") {
		return V2025_10
	}
	if hasStructuredColorObjects(data) {
		return V2025_10
	}
	return Unknown
}

// hasFeature reports whether featureName exists as a key anywhere in data.
func hasFeature(data map[string]any, featureName string) bool {
	if _, exists := data[featureName]; exists {
		return true
	}
	for _, value := range data {
		switch v := value.(type) {
		case map[string]any:
			if hasFeature(v, featureName) {
				return true
			}
		case []any:
			if hasFeatureInSlice(v, featureName) {
				return true
			}
		}
	}
	return false
}

func hasFeatureInSlice(arr []any, featureName string) bool {
	for _, elem := range arr {
		switch v := elem.(type) {
		case map[string]any:
			if hasFeature(v, featureName) {
				return true
			}
		case []any:
			if hasFeatureInSlice(v, featureName) {
				return true
			}
		}
	}
	return false
}

// hasStructuredColorObjects reports whether data contains at least one
// $type: color token whose $value is a structured {colorSpace, components}
// object rather than a draft-style hex/CSS string.
func hasStructuredColorObjects(data map[string]any) bool {
	return checkForStructuredColors(data)
}

func checkForStructuredColors(obj any) bool {
	switch v := obj.(type) {
	case map[string]any:
		if colorType, ok := v["$type"].(string); ok && colorType == "color" {
			if value, ok := v["$value"].(map[string]any); ok {
				if _, hasColorSpace := value["colorSpace"]; hasColorSpace {
					return true
				}
			}
		}
		for _, child := range v {
			if checkForStructuredColors(child) {
				return true
			}
		}
	case []any:
		for _, elem := range v {
			if checkForStructuredColors(elem) {
				return true
			}
		}
	}
	return false
}
