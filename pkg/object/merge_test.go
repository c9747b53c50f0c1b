// Copyright 2022 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dropNulls removes the top-level nil entries of doc.
func dropNulls(doc Document) Document {
	out := Document{}
	for k, v := range doc {
		if v != nil {
			out[k] = v
		}
	}
	return out
}

func TestMerge(t *testing.T) {
	testCases := map[string]struct {
		base     Document
		overlay  Document
		expected Document
	}{
		"empty inputs": {
			base:     Document{},
			overlay:  Document{},
			expected: Document{},
		},
		"nil inputs": {
			base:     nil,
			overlay:  nil,
			expected: Document{},
		},
		"overlay wins on scalar conflict": {
			base:     Document{"a": "1", "b": "2"},
			overlay:  Document{"a": "3"},
			expected: Document{"a": "3", "b": "2"},
		},
		"nil in overlay removes key": {
			base:     Document{"a": "1", "b": "2"},
			overlay:  Document{"a": nil},
			expected: Document{"b": "2"},
		},
		"nil only in base is dropped": {
			base:     Document{"a": nil, "b": "2"},
			overlay:  Document{},
			expected: Document{"b": "2"},
		},
		"nil only in overlay is dropped": {
			base:     Document{"b": "2"},
			overlay:  Document{"a": nil},
			expected: Document{"b": "2"},
		},
		"nested mappings merge recursively": {
			base: Document{
				"spec": map[string]interface{}{
					"domains": []interface{}{"a.com"},
					"https":   map[string]interface{}{"port": float64(443)},
				},
			},
			overlay: Document{
				"spec": map[string]interface{}{
					"domains": []interface{}{"a.com", "b.com"},
				},
			},
			expected: Document{
				"spec": map[string]interface{}{
					"domains": []interface{}{"a.com", "b.com"},
					"https":   map[string]interface{}{"port": float64(443)},
				},
			},
		},
		"nested nil removes nested key": {
			base: Document{
				"spec": map[string]interface{}{
					"http":  map[string]interface{}{"port": float64(80)},
					"https": map[string]interface{}{"port": float64(443)},
				},
			},
			overlay: Document{
				"spec": map[string]interface{}{"http": nil},
			},
			expected: Document{
				"spec": map[string]interface{}{
					"https": map[string]interface{}{"port": float64(443)},
				},
			},
		},
		"mapping replaces scalar": {
			base:     Document{"a": "scalar"},
			overlay:  Document{"a": map[string]interface{}{"x": true}},
			expected: Document{"a": map[string]interface{}{"x": true}},
		},
		"scalar replaces mapping": {
			base:     Document{"a": map[string]interface{}{"x": true}},
			overlay:  Document{"a": "scalar"},
			expected: Document{"a": "scalar"},
		},
		"lists are replaced not merged": {
			base:     Document{"a": []interface{}{"1", "2", "3"}},
			overlay:  Document{"a": []interface{}{"4"}},
			expected: Document{"a": []interface{}{"4"}},
		},
		"deep nesting": {
			base: Document{"a": map[string]interface{}{"b": map[string]interface{}{
				"c": map[string]interface{}{"d": "base", "e": "keep"}}}},
			overlay: Document{"a": map[string]interface{}{"b": map[string]interface{}{
				"c": map[string]interface{}{"d": "overlay"}}}},
			expected: Document{"a": map[string]interface{}{"b": map[string]interface{}{
				"c": map[string]interface{}{"d": "overlay", "e": "keep"}}}},
		},
	}

	for tn, tc := range testCases {
		t.Run(tn, func(t *testing.T) {
			actual, err := Merge(tc.base, tc.overlay)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.expected, actual); diff != "" {
				t.Errorf("unexpected merge result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeIdentities(t *testing.T) {
	a := Document{"name": "a", "labels": map[string]interface{}{"x": "y"}, "unset": nil}

	withEmptyOverlay, err := Merge(a, Document{})
	require.NoError(t, err)
	assert.Equal(t, dropNulls(a), withEmptyOverlay)

	withEmptyBase, err := Merge(Document{}, a)
	require.NoError(t, err)
	assert.Equal(t, dropNulls(a), withEmptyBase)
}

func TestMergeIsNotCommutative(t *testing.T) {
	a := Document{"name": "a"}
	b := Document{"name": "b"}

	ab, err := Merge(a, b)
	require.NoError(t, err)
	ba, err := Merge(b, a)
	require.NoError(t, err)
	assert.NotEqual(t, ab, ba)
}

func TestMergeDoesNotModifyInputs(t *testing.T) {
	base := Document{"spec": map[string]interface{}{"a": "1", "b": "2"}}
	overlay := Document{"spec": map[string]interface{}{"a": nil, "c": "3"}}

	_, err := Merge(base, overlay)
	require.NoError(t, err)

	assert.Equal(t, Document{"spec": map[string]interface{}{"a": "1", "b": "2"}}, base)
	assert.Equal(t, Document{"spec": map[string]interface{}{"a": nil, "c": "3"}}, overlay)
}

func TestMergeRejectsCycles(t *testing.T) {
	cyclic := map[string]interface{}{}
	cyclic["self"] = cyclic

	_, err := Merge(Document{"a": cyclic}, Document{})
	assert.ErrorIs(t, err, ErrCyclicDocument)

	_, err = Merge(Document{}, Document{"a": cyclic})
	assert.ErrorIs(t, err, ErrCyclicDocument)

	list := []interface{}{nil}
	list[0] = list
	_, err = Merge(Document{"l": list}, Document{})
	assert.ErrorIs(t, err, ErrCyclicDocument)
}

func TestMergeAcceptsSharedSubtrees(t *testing.T) {
	shared := map[string]interface{}{"x": "y"}
	actual, err := Merge(Document{"a": shared, "b": shared}, Document{})
	require.NoError(t, err)
	assert.Equal(t, Document{"a": shared, "b": shared}, actual)
}
