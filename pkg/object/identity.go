// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0
//
// Identity is the minimal set of information to uniquely
// identify a remote object. The four fields are:
//
//   Kind
//   Namespace   (empty for tenant-scoped kinds)
//   ObjectType  (only used by stored objects)
//   Name        (empty for singleton kinds)
//
// The identity is used to build the endpoint paths of an
// object and to label progress events.

package object

import (
	"fmt"
	"strings"
)

const fieldSeparator = "/"

// Identity organizes and stores the identifying information
// for a remote object.
type Identity struct {
	Kind       string
	Namespace  string
	ObjectType string
	Name       string
}

// CreateIdentity returns an Identity filled with the passed values. This
// function normalizes and validates the passed fields and returns an error
// for bad parameters.
func CreateIdentity(kind, namespace, objectType, name string) (Identity, error) {
	// Namespace and object type can be empty, but name cannot.
	name = strings.TrimSpace(name)
	if name == "" {
		return Identity{}, fmt.Errorf("empty name for %s object", kind)
	}
	if strings.TrimSpace(kind) == "" {
		return Identity{}, fmt.Errorf("empty kind for object %q", name)
	}
	return Identity{
		Kind:       strings.TrimSpace(kind),
		Namespace:  strings.TrimSpace(namespace),
		ObjectType: strings.TrimSpace(objectType),
		Name:       name,
	}, nil
}

// Equals compares two Identities and returns true if they are equal.
func (i *Identity) Equals(other *Identity) bool {
	if other == nil {
		return false
	}
	return *i == *other
}

// String renders the identity as kind/namespace/type/name, leaving out
// the segments that are empty.
func (i Identity) String() string {
	parts := []string{i.Kind}
	for _, s := range []string{i.Namespace, i.ObjectType, i.Name} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, fieldSeparator)
}
