// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYamlStringer(t *testing.T) {
	testCases := map[string]struct {
		doc      Document
		expected string
	}{
		"nil": {
			expected: "null\n",
		},
		"nested": {
			doc: Document{
				"metadata": map[string]interface{}{"name": "lb1"},
				"spec":     map[string]interface{}{"domains": []interface{}{"a.com"}},
			},
			expected: "metadata:\n  name: lb1\nspec:\n  domains:\n  - a.com\n",
		},
		"unsupported value": {
			doc:      Document{"ch": make(chan int)},
			expected: "<<failed to serialize as yaml: ",
		},
	}

	for tn, tc := range testCases {
		t.Run(tn, func(t *testing.T) {
			assert.Contains(t, YamlStringer{D: tc.doc}.String(), tc.expected)
		})
	}
}
