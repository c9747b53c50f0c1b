// Copyright 2022 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/tiendc/go-deepcopy"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// ErrCyclicDocument is returned when a document contains a mapping or list
// that is reachable from itself. Documents are expected to be plain trees.
var ErrCyclicDocument = errors.New("document contains a reference cycle")

// Document is a JSON-shaped tree: maps, slices, strings, numbers, bools
// and nil.
type Document map[string]interface{}

// NestedField returns the value found at path. The bool reports whether
// the path exists. A nil value is a legitimate value.
func NestedField(doc Document, path ...string) (interface{}, bool, error) {
	return unstructured.NestedFieldNoCopy(doc, path...)
}

// NestedMap returns the mapping found at path.
func NestedMap(doc Document, path ...string) (map[string]interface{}, bool, error) {
	val, found, err := NestedField(doc, path...)
	if !found || err != nil || val == nil {
		return nil, found, err
	}
	m, ok := asMap(val)
	if !ok {
		return nil, true, fmt.Errorf("%v accessor error: %v is of the type %T, expected map[string]interface{}",
			strings.Join(path, "."), val, val)
	}
	return m, true, nil
}

// NestedString returns the string found at path.
func NestedString(doc Document, path ...string) (string, bool, error) {
	return unstructured.NestedString(doc, path...)
}

// NestedSlice returns the list found at path, without copying it.
func NestedSlice(doc Document, path ...string) ([]interface{}, bool, error) {
	val, found, err := NestedField(doc, path...)
	if !found || err != nil || val == nil {
		return nil, found, err
	}
	s, ok := val.([]interface{})
	if !ok {
		return nil, true, fmt.Errorf("%v accessor error: %v is of the type %T, expected []interface{}",
			strings.Join(path, "."), val, val)
	}
	return s, true, nil
}

// DeepCopy returns a copy of doc that shares no maps or slices with it.
func DeepCopy(doc Document) (Document, error) {
	if doc == nil {
		return nil, nil
	}
	if err := checkAcyclic(doc); err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := deepcopy.Copy(&out, map[string]interface{}(doc)); err != nil {
		return nil, fmt.Errorf("copying document: %w", err)
	}
	return out, nil
}

// PruneNulls returns a copy of doc with every nil map entry removed, at
// any depth. Nil elements of lists are kept since they are positional.
func PruneNulls(doc Document) Document {
	if doc == nil {
		return nil
	}
	return pruneMap(doc)
}

func pruneMap(m map[string]interface{}) Document {
	out := make(Document, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		out[k] = pruneValue(v)
	}
	return out
}

func pruneValue(v interface{}) interface{} {
	if m, ok := asMap(v); ok {
		return map[string]interface{}(pruneMap(m))
	}
	if s, ok := v.([]interface{}); ok {
		out := make([]interface{}, len(s))
		for i := range s {
			if s[i] == nil {
				continue
			}
			out[i] = pruneValue(s[i])
		}
		return out
	}
	return v
}

// asMap returns v as a plain map when it is one of the mapping types a
// Document can hold.
func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case Document:
		return m, true
	default:
		return nil, false
	}
}

// checkAcyclic walks doc and fails if a map or list is encountered again
// while it is still being visited.
func checkAcyclic(doc Document) error {
	return walk(map[string]interface{}(doc), make(map[uintptr]bool))
}

func walk(v interface{}, onPath map[uintptr]bool) error {
	var children []interface{}
	var key uintptr
	switch t := v.(type) {
	case map[string]interface{}, Document:
		m, _ := asMap(t)
		if len(m) == 0 {
			return nil
		}
		key = reflect.ValueOf(m).Pointer()
		for _, child := range m {
			children = append(children, child)
		}
	case []interface{}:
		if len(t) == 0 {
			return nil
		}
		key = reflect.ValueOf(t).Pointer()
		children = t
	default:
		return nil
	}
	if onPath[key] {
		return ErrCyclicDocument
	}
	onPath[key] = true
	defer delete(onPath, key)
	for _, child := range children {
		if err := walk(child, onPath); err != nil {
			return err
		}
	}
	return nil
}
