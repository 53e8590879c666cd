/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tokenforge.dev/tokenforge/schema"
)

func TestValidateConsistencyDraftRejectsRef(t *testing.T) {
	content := []byte(`{"color": {"primary": {"$ref": "#/sets/core"}}}`)
	issues, err := ValidateConsistency(content, schema.Draft)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "$ref is not valid in draft schema")
}

func TestValidateConsistencyDraftRejectsStructuredColor(t *testing.T) {
	content := []byte(`{
		"color": {
			"primary": {
				"$type": "color",
				"$value": {"colorSpace": "srgb", "components": [1, 0, 0]}
			}
		}
	}`)
	issues, err := ValidateConsistency(content, schema.Draft)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "structured color values are not valid in draft schema")
}

func TestValidateConsistencyV2025RejectsStringColor(t *testing.T) {
	content := []byte(`{
		"color": {
			"primary": {"$type": "color", "$value": "#ff0000"}
		}
	}`)
	issues, err := ValidateConsistency(content, schema.V2025_10)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "is not valid in 2025.10 schema")
}

func TestValidateConsistencyV2025RejectsConflictingRootPatterns(t *testing.T) {
	content := []byte(`{
		"color": {
			"$root": {"$value": {"colorSpace": "srgb", "components": [1, 0, 0]}},
			"_": {"$value": {"colorSpace": "srgb", "components": [0, 0, 0]}}
		}
	}`)
	issues, err := ValidateConsistency(content, schema.V2025_10)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "conflicting root token patterns")
}

func TestValidateConsistencyCleanFilesPass(t *testing.T) {
	draft := []byte(`{"color": {"primary": {"$value": "#ff0000"}}}`)
	issues, err := ValidateConsistency(draft, schema.Draft)
	require.NoError(t, err)
	assert.Empty(t, issues)

	v2025 := []byte(`{
		"color": {
			"primary": {
				"$type": "color",
				"$value": {"colorSpace": "srgb", "components": [1, 0, 0]}
			}
		}
	}`)
	issues, err = ValidateConsistency(v2025, schema.V2025_10)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestValidateConsistencyErrorWrapsFilePath(t *testing.T) {
	content := []byte(`{"color": {"primary": {"$ref": "#/sets/core"}}}`)
	verr, err := ValidateConsistencyError(content, schema.Draft, "tokens/core.json")
	require.NoError(t, err)
	require.NotNil(t, verr)
	assert.Equal(t, "tokens/core.json", verr.FilePath)
	require.Len(t, verr.Issues, 1)
}
