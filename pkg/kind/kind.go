// Copyright 2022 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

// Package kind describes the remote object kinds the reconciler can
// manage. A Kind carries everything the generic engine needs to know
// about an entity: its field schema, how to derive its identity from the
// desired parameters, the endpoints of each action and how to recognise
// a complete document.
package kind

import (
	"fmt"
	"net/http"
	"sort"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/utils/strings/slices"

	"github.com/yoctoalex/xcctl/pkg/object"
)

// State is the target lifecycle state of a reconciliation.
type State string

const (
	Present State = "present"
	Absent  State = "absent"
	Fetch   State = "fetch"
)

// Endpoint is one REST call of a kind.
type Endpoint struct {
	Method string
	Path   func(id object.Identity) string
}

// Endpoints lists the calls available for a kind. A nil entry means the
// kind does not support the action:
//
//   - no Read: existence is never probed; present always writes through
//     Create and absent always calls Delete
//   - no Replace: present on an existing object leaves it untouched
//   - no Create or Delete: the kind can only be fetched
type Endpoints struct {
	Read    *Endpoint
	Create  *Endpoint
	Replace *Endpoint
	Delete  *Endpoint
}

// IdentityFunc derives the identity of an object from its desired
// parameters.
type IdentityFunc func(desired *object.Parameters) (object.Identity, error)

// ReadyFunc reports whether the asynchronous initialization of a freshly
// created object has settled.
type ReadyFunc func(doc object.Document) (bool, error)

// Kind describes one remote object kind.
type Kind struct {
	Name string

	// Description is a one-line summary used by the CLI.
	Description string

	// Schema declares the updatable and returnable fields.
	Schema object.Schema

	// States lists the target states the kind accepts. The first entry
	// is the default.
	States []State

	// Identity derives the object identity from the desired parameters.
	Identity IdentityFunc

	// Marker is the top-level field whose presence in a read response
	// signals that the object exists.
	Marker string

	Endpoints Endpoints

	// Ready is consulted by the wait loop after a create. Kinds without
	// it do not support waiting.
	Ready ReadyFunc

	// Defaults are applied to host arguments that are absent or nil.
	Defaults object.Document

	// NamespacePath locates the namespace of the object in its
	// parameters. It is empty for kinds that are not namespaced.
	NamespacePath []string

	// SpecFields documents the sub-fields accepted under spec. Keys that
	// are not listed are still passed through.
	SpecFields []string
}

// DefaultState returns the state used when none is requested.
func (k *Kind) DefaultState() State {
	return k.States[0]
}

// Supports reports whether the kind accepts the target state.
func (k *Kind) Supports(s State) bool {
	for _, st := range k.States {
		if st == s {
			return true
		}
	}
	return false
}

// IsUpdatable reports whether the named field takes part in writes.
func (k *Kind) IsUpdatable(field string) bool {
	return slices.Contains(k.Schema.Updatable, field)
}

// HasMarker reports whether doc carries a non-empty marker field.
func (k *Kind) HasMarker(doc object.Document) bool {
	val, found := doc[k.Marker]
	if !found || val == nil {
		return false
	}
	switch v := val.(type) {
	case string:
		return v != ""
	case map[string]interface{}:
		return len(v) > 0
	case []interface{}:
		return len(v) > 0
	default:
		return true
	}
}

// ApplyDefaults returns params with every default filled in where the
// key is absent or nil. params itself is not modified.
func (k *Kind) ApplyDefaults(params object.Document) (object.Document, error) {
	out, err := object.DeepCopy(params)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = object.Document{}
	}
	for key, val := range k.Defaults {
		if out[key] != nil {
			continue
		}
		cp, err := object.DeepCopy(object.Document{key: val})
		if err != nil {
			return nil, err
		}
		out[key] = cp[key]
	}
	return out, nil
}

// Namespaced reports whether objects of the kind live in a namespace.
func (k *Kind) Namespaced() bool {
	return len(k.NamespacePath) > 0
}

// UnknownKindError is returned for a kind name that is not registered.
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown kind %q, must be one of %v", e.Name, Names())
}

var registry = map[string]*Kind{}

// Register adds a kind to the registry. It panics on duplicates.
func Register(k *Kind) {
	if _, found := registry[k.Name]; found {
		panic(fmt.Errorf("kind %q registered twice", k.Name))
	}
	if len(k.States) == 0 {
		panic(fmt.Errorf("kind %q declares no states", k.Name))
	}
	registry[k.Name] = k
}

// Lookup returns the registered kind with the given name.
func Lookup(name string) (*Kind, error) {
	k, found := registry[name]
	if !found {
		return nil, &UnknownKindError{Name: name}
	}
	return k, nil
}

// Names returns the sorted names of all registered kinds.
func Names() []string {
	names := sets.NewString()
	for name := range registry {
		names.Insert(name)
	}
	return names.List()
}

// All returns the registered kinds sorted by name.
func All() []*Kind {
	kinds := make([]*Kind, 0, len(registry))
	for _, k := range registry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].Name < kinds[j].Name })
	return kinds
}

func get(path func(object.Identity) string) *Endpoint {
	return &Endpoint{Method: http.MethodGet, Path: path}
}

func post(path func(object.Identity) string) *Endpoint {
	return &Endpoint{Method: http.MethodPost, Path: path}
}

func put(path func(object.Identity) string) *Endpoint {
	return &Endpoint{Method: http.MethodPut, Path: path}
}

func del(path func(object.Identity) string) *Endpoint {
	return &Endpoint{Method: http.MethodDelete, Path: path}
}
