// Copyright 2022 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPruneNulls(t *testing.T) {
	testCases := map[string]struct {
		doc      Document
		expected Document
	}{
		"nil document": {
			doc:      nil,
			expected: nil,
		},
		"top-level nil": {
			doc:      Document{"a": nil, "b": "x"},
			expected: Document{"b": "x"},
		},
		"nested nil": {
			doc: Document{"metadata": map[string]interface{}{
				"name":   "ns1",
				"labels": nil,
			}},
			expected: Document{"metadata": map[string]interface{}{"name": "ns1"}},
		},
		"nil inside list element": {
			doc: Document{"routes": []interface{}{
				map[string]interface{}{"path": "/", "headers": nil},
				nil,
			}},
			expected: Document{"routes": []interface{}{
				map[string]interface{}{"path": "/"},
				nil,
			}},
		},
		"empty mappings are kept": {
			doc:      Document{"spec": map[string]interface{}{"no_challenge": map[string]interface{}{}}},
			expected: Document{"spec": map[string]interface{}{"no_challenge": map[string]interface{}{}}},
		},
	}

	for tn, tc := range testCases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.expected, PruneNulls(tc.doc))
		})
	}
}

func TestDeepCopy(t *testing.T) {
	doc := Document{
		"metadata": map[string]interface{}{"name": "ns1"},
		"list":     []interface{}{"a", map[string]interface{}{"b": "c"}},
	}
	copied, err := DeepCopy(doc)
	require.NoError(t, err)
	assert.Equal(t, doc, copied)

	copied["metadata"].(map[string]interface{})["name"] = "other"
	copied["list"].([]interface{})[1].(map[string]interface{})["b"] = "d"
	assert.Equal(t, "ns1", doc["metadata"].(map[string]interface{})["name"])
	assert.Equal(t, "c", doc["list"].([]interface{})[1].(map[string]interface{})["b"])

	cyclic := map[string]interface{}{}
	cyclic["self"] = cyclic
	_, err = DeepCopy(Document{"c": cyclic})
	assert.ErrorIs(t, err, ErrCyclicDocument)
}

func TestNestedAccessors(t *testing.T) {
	doc := Document{
		"system_metadata": map[string]interface{}{
			"initializers": map[string]interface{}{
				"pending": []interface{}{"a"},
			},
		},
		"name": "tenant",
	}

	pending, found, err := NestedSlice(doc, "system_metadata", "initializers", "pending")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []interface{}{"a"}, pending)

	initializers, found, err := NestedMap(doc, "system_metadata", "initializers")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, initializers, 1)

	name, found, err := NestedString(doc, "name")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "tenant", name)

	_, found, err = NestedMap(doc, "metadata")
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = NestedMap(doc, "name")
	assert.Error(t, err)

	_, _, err = NestedSlice(doc, "name")
	assert.Error(t, err)
}
