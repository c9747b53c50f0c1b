// Copyright 2022 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"fmt"
	"strings"
)

// Schema declares which top-level fields of an entity take part in
// writes (Updatable) and which are reported back (Returnable).
type Schema struct {
	Updatable  []string
	Returnable []string
}

// LookupError is returned when a declared field is read from a snapshot
// that does not carry the key at all. A key that is present with a nil
// value is not an error.
type LookupError struct {
	Field string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("field %q is missing", e.Field)
}

// Parameters is a read-only view over one snapshot of an entity, filtered
// through the Schema of its kind. The same type backs the desired state
// built from operator input and the observed state decoded from API
// responses.
type Parameters struct {
	schema Schema
	values Document
}

// NewParameters copies raw and returns a view over the copy. Later
// changes to raw are not visible through the view.
func NewParameters(raw Document, schema Schema) (*Parameters, error) {
	values, err := DeepCopy(raw)
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = Document{}
	}
	return &Parameters{schema: schema, values: values}, nil
}

// EmptyParameters returns a view with no fields populated.
func EmptyParameters(schema Schema) *Parameters {
	return &Parameters{schema: schema, values: Document{}}
}

// Schema returns the field declarations of the view.
func (p *Parameters) Schema() Schema {
	return p.schema
}

// Field returns the value of a top-level field.
func (p *Parameters) Field(name string) (interface{}, error) {
	val, found := p.values[name]
	if !found {
		return nil, &LookupError{Field: name}
	}
	return val, nil
}

// NestedField returns the value found at path.
func (p *Parameters) NestedField(path ...string) (interface{}, error) {
	val, found, err := NestedField(p.values, path...)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &LookupError{Field: strings.Join(path, ".")}
	}
	return val, nil
}

// NestedString returns the string found at path. A nil value yields the
// empty string.
func (p *Parameters) NestedString(path ...string) (string, error) {
	val, err := p.NestedField(path...)
	if err != nil || val == nil {
		return "", err
	}
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("field %q is of type %T, expected string", strings.Join(path, "."), val)
	}
	return s, nil
}

// Bool returns the boolean stored in a top-level field. Missing and nil
// fields yield false.
func (p *Parameters) Bool(name string) (bool, error) {
	val, found := p.values[name]
	if !found || val == nil {
		return false, nil
	}
	b, ok := val.(bool)
	if !ok {
		return false, fmt.Errorf("field %q is of type %T, expected bool", name, val)
	}
	return b, nil
}

// ToUpdate returns the updatable fields that carry a value. A top-level
// field holding an empty mapping is treated as unset.
func (p *Parameters) ToUpdate() Document {
	result := Document{}
	for _, name := range p.schema.Updatable {
		val := p.values[name]
		if val == nil {
			continue
		}
		if m, ok := asMap(val); ok && len(m) == 0 {
			continue
		}
		result[name] = val
	}
	return result
}

// ToReturn returns the returnable fields that carry a value.
func (p *Parameters) ToReturn() Document {
	result := Document{}
	for _, name := range p.schema.Returnable {
		if val := p.values[name]; val != nil {
			result[name] = val
		}
	}
	return result
}

// Raw returns a copy of the whole backing snapshot.
func (p *Parameters) Raw() Document {
	out, err := DeepCopy(p.values)
	if err != nil {
		// values were checked when the view was built
		panic(err)
	}
	return out
}

// IsEmpty reports whether no field is populated.
func (p *Parameters) IsEmpty() bool {
	return len(p.values) == 0
}

// Observed holds the last known server-side snapshot of an entity. It
// starts empty and is replaced wholesale by Set.
type Observed struct {
	params *Parameters
}

// NewObserved returns an empty holder for the given schema.
func NewObserved(schema Schema) *Observed {
	return &Observed{params: EmptyParameters(schema)}
}

// Set replaces the held snapshot with a copy of doc.
func (o *Observed) Set(doc Document) error {
	params, err := NewParameters(doc, o.params.schema)
	if err != nil {
		return err
	}
	o.params = params
	return nil
}

// Params returns the view over the current snapshot.
func (o *Observed) Params() *Parameters {
	return o.params
}
