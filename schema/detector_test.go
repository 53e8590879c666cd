/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectVersionExplicitSchema(t *testing.T) {
	content := []byte(`{"$schema": "https://www.designtokens.org/schemas/2025.10.json"}`)
	v, err := DetectVersion(content, nil)
	require.NoError(t, err)
	assert.Equal(t, V2025_10, v)
}

func TestDetectVersionConfigDefault(t *testing.T) {
	content := []byte(`{"color": {"$value": "#000"}}`)
	v, err := DetectVersion(content, &DetectionConfig{DefaultVersion: Draft})
	require.NoError(t, err)
	assert.Equal(t, Draft, v)
}

func TestDetectVersionDuckTypeRef(t *testing.T) {
	content := []byte(`{"color": {"primary": {"$ref": "#/sets/core"}}}`)
	v, err := DetectVersion(content, nil)
	require.NoError(t, err)
	assert.Equal(t, V2025_10, v)
}

func TestDetectVersionDuckTypeStructuredColor(t *testing.T) {
	content := []byte(`{
		"color": {
			"primary": {
				"$type": "color",
				"$value": {"colorSpace": "srgb", "components": [1, 0, 0]}
			}
		}
	}`)
	v, err := DetectVersion(content, nil)
	require.NoError(t, err)
	assert.Equal(t, V2025_10, v)
}

func TestDetectVersionDefaultsToDraft(t *testing.T) {
	content := []byte(`{"color": {"primary": {"$value": "#ff0000"}}}`)
	v, err := DetectVersion(content, nil)
	require.NoError(t, err)
	assert.Equal(t, Draft, v)
}
