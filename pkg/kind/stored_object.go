// Copyright 2022 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package kind

import (
	"fmt"
	"net/url"

	"github.com/yoctoalex/xcctl/pkg/object"
)

// StoredObject is a blob kept in the tenant object store, e.g. a swagger
// document. The create call is an upsert and there is no read endpoint.
var StoredObject = &Kind{
	Name:        "stored_object",
	Description: "object store entry such as a swagger document",
	Schema: object.Schema{
		Updatable: []string{
			"bytes_value",
			"content_format",
			"description",
			"name",
			"namespace",
			"object_type",
			"string_value",
		},
		Returnable: []string{"metadata", "status"},
	},
	States:        []State{Present, Absent},
	Identity:      storedObjectIdentity,
	NamespacePath: []string{"namespace"},
	Marker:        "metadata",
	Endpoints: Endpoints{
		Create: put(storedObjectPath),
		Delete: del(storedObjectPath),
	},
}

func storedObjectPath(id object.Identity) string {
	return fmt.Sprintf("/api/object_store/namespaces/%s/stored_objects/%s/%s",
		url.PathEscape(id.Namespace), url.PathEscape(id.ObjectType), url.PathEscape(id.Name))
}

func storedObjectIdentity(desired *object.Parameters) (object.Identity, error) {
	var fields [3]string
	for i, name := range []string{"namespace", "object_type", "name"} {
		val, err := desired.NestedString(name)
		if err != nil {
			return object.Identity{}, err
		}
		if val == "" {
			return object.Identity{}, fmt.Errorf("empty %s for stored_object", name)
		}
		fields[i] = val
	}
	return object.CreateIdentity("stored_object", fields[0], fields[1], fields[2])
}

//nolint:gochecknoinits
func init() {
	Register(StoredObject)
}
