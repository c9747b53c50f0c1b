// Copyright 2021 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

func TestValidator(t *testing.T) {
	testCases := map[string]struct {
		errs           []error
		expectedTypes  []field.ErrorType
		expectedFields []string
	}{
		"no errors": {
			errs: []error{nil, nil},
		},
		"missing field is required": {
			errs:           []error{&LookupError{Field: "metadata.name"}},
			expectedTypes:  []field.ErrorType{field.ErrorTypeRequired},
			expectedFields: []string{"params.metadata.name"},
		},
		"wrapped missing field": {
			errs:           []error{nil, errors.Join(errors.New("identity"), &LookupError{Field: "name"})},
			expectedTypes:  []field.ErrorType{field.ErrorTypeRequired},
			expectedFields: []string{"params.name"},
		},
		"other errors are invalid params": {
			errs:           []error{errors.New("empty namespace for http_loadbalancer object")},
			expectedTypes:  []field.ErrorType{field.ErrorTypeInvalid},
			expectedFields: []string{"params"},
		},
	}

	for tn, tc := range testCases {
		t.Run(tn, func(t *testing.T) {
			var v Validator
			for _, err := range tc.errs {
				v.Add("namespace", "test.yaml", err)
			}
			err := v.Err()
			if len(tc.expectedTypes) == 0 {
				assert.NoError(t, err)
				return
			}
			var multiErr *MultiValidationError
			require.ErrorAs(t, err, &multiErr)
			require.Len(t, multiErr.Errors, len(tc.expectedTypes))
			for i, e := range multiErr.Errors {
				assert.Equal(t, "namespace", e.Kind)
				assert.Equal(t, "test.yaml", e.Source)
				require.Len(t, e.FieldErrors, 1)
				assert.Equal(t, tc.expectedTypes[i], e.FieldErrors[0].Type)
				assert.Equal(t, tc.expectedFields[i], e.FieldErrors[0].Field)
			}
		})
	}
}

func TestMultiValidationErrorMessage(t *testing.T) {
	err := &MultiValidationError{Errors: []*ValidationError{
		NewValidationError("namespace", "a.yaml", &LookupError{Field: "metadata.name"}),
	}}
	assert.Equal(t, "1 objects failed validation\n"+
		"Kind: \"namespace\", Source: \"a.yaml\"\n"+
		"params.metadata.name: Required value\n", err.Error())
}
