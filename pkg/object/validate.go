// Copyright 2021 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"errors"
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// MultiValidationError captures validation errors for multiple objects.
type MultiValidationError struct {
	Errors []*ValidationError
}

func (ae MultiValidationError) Error() string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "%d objects failed validation\n", len(ae.Errors))
	for _, e := range ae.Errors {
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return b.String()
}

// ValidationError captures the errors found in the parameters of one
// object.
type ValidationError struct {
	Kind        string
	Source      string
	FieldErrors field.ErrorList
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Kind: %q, Source: %q\n", e.Kind, e.Source))
	b.WriteString(e.FieldErrors.ToAggregate().Error())
	return b.String()
}

// NewValidationError converts err, as returned while deriving the identity
// of an object, into a ValidationError. Missing fields are reported as
// required, anything else as an invalid parameter set.
func NewValidationError(kind, source string, err error) *ValidationError {
	var lookupErr *LookupError
	var fieldErr *field.Error
	if errors.As(err, &lookupErr) {
		fieldErr = field.Required(fieldPath(lookupErr.Field), "")
	} else {
		fieldErr = field.Invalid(field.NewPath("params"), field.OmitValueType{}, err.Error())
	}
	return &ValidationError{
		Kind:        kind,
		Source:      source,
		FieldErrors: field.ErrorList{fieldErr},
	}
}

// fieldPath turns a dotted field name into a path rooted at params.
func fieldPath(name string) *field.Path {
	path := field.NewPath("params")
	for _, elem := range strings.Split(name, ".") {
		path = path.Child(elem)
	}
	return path
}

// Validator collects the validation errors of a set of objects.
type Validator struct {
	errs []*ValidationError
}

// Add records err for one object. A nil err is ignored.
func (v *Validator) Add(kind, source string, err error) {
	if err == nil {
		return
	}
	v.errs = append(v.errs, NewValidationError(kind, source, err))
}

// Err returns a MultiValidationError of everything added so far, or nil.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return &MultiValidationError{Errors: v.errs}
}
