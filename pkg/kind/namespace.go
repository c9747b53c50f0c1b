// Copyright 2022 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package kind

import (
	"fmt"
	"net/url"

	"github.com/yoctoalex/xcctl/pkg/object"
)

// Namespace is a logical workspace within a tenant. Namespaces cannot be
// replaced through the API, so present on an existing namespace reports
// it unchanged.
var Namespace = &Kind{
	Name:        "namespace",
	Description: "logical independent workspace within a tenant",
	Schema: object.Schema{
		Updatable:  []string{"metadata", "spec"},
		Returnable: []string{"metadata", "spec"},
	},
	States:   []State{Present, Absent, Fetch},
	Identity: namespaceIdentity,
	Marker:   "metadata",
	Endpoints: Endpoints{
		Read: get(func(id object.Identity) string {
			return fmt.Sprintf("/api/web/namespaces/%s", url.PathEscape(id.Name))
		}),
		Create: post(func(object.Identity) string {
			return "/api/web/namespaces"
		}),
		Delete: post(func(id object.Identity) string {
			return fmt.Sprintf("/api/web/namespaces/%s/cascade_delete", url.PathEscape(id.Name))
		}),
	},
	Ready: initializersSettled,
	Defaults: object.Document{
		"spec": map[string]interface{}{},
	},
}

func namespaceIdentity(desired *object.Parameters) (object.Identity, error) {
	name, err := desired.NestedString("metadata", "name")
	if err != nil {
		return object.Identity{}, err
	}
	return object.CreateIdentity("namespace", "", "", name)
}

// initializersSettled reports whether the object carries an initializer
// block whose pending list is empty.
func initializersSettled(doc object.Document) (bool, error) {
	initializers, found, err := object.NestedMap(doc, "system_metadata", "initializers")
	if err != nil {
		return false, err
	}
	if !found || len(initializers) == 0 {
		return false, nil
	}
	pending, _, err := object.NestedSlice(doc, "system_metadata", "initializers", "pending")
	if err != nil {
		return false, err
	}
	return len(pending) == 0, nil
}

//nolint:gochecknoinits
func init() {
	Register(Namespace)
}
