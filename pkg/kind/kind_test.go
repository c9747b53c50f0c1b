// Copyright 2022 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package kind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoctoalex/xcctl/pkg/object"
)

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"http_loadbalancer", "namespace", "stored_object", "tenant_settings"}, Names())

	k, err := Lookup("namespace")
	require.NoError(t, err)
	assert.Same(t, Namespace, k)

	_, err = Lookup("virtual_host")
	var unknown *UnknownKindError
	require.ErrorAs(t, err, &unknown)
	assert.Contains(t, err.Error(), "virtual_host")

	all := All()
	require.Len(t, all, 4)
	assert.Equal(t, "http_loadbalancer", all[0].Name)
}

func TestStates(t *testing.T) {
	testCases := map[string]struct {
		kind         *Kind
		defaultState State
		supported    []State
		unsupported  []State
	}{
		"namespace": {
			kind:         Namespace,
			defaultState: Present,
			supported:    []State{Present, Absent, Fetch},
		},
		"http_loadbalancer": {
			kind:         HTTPLoadBalancer,
			defaultState: Present,
			supported:    []State{Present, Absent, Fetch},
		},
		"stored_object": {
			kind:         StoredObject,
			defaultState: Present,
			supported:    []State{Present, Absent},
			unsupported:  []State{Fetch},
		},
		"tenant_settings": {
			kind:         TenantSettings,
			defaultState: Fetch,
			supported:    []State{Fetch},
			unsupported:  []State{Present, Absent},
		},
	}

	for tn, tc := range testCases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.defaultState, tc.kind.DefaultState())
			for _, s := range tc.supported {
				assert.True(t, tc.kind.Supports(s), s)
			}
			for _, s := range tc.unsupported {
				assert.False(t, tc.kind.Supports(s), s)
			}
		})
	}
}

func TestIdentity(t *testing.T) {
	testCases := map[string]struct {
		kind        *Kind
		params      object.Document
		expected    object.Identity
		lookupError bool
		isError     bool
	}{
		"namespace": {
			kind:     Namespace,
			params:   object.Document{"metadata": map[string]interface{}{"name": "ns1"}},
			expected: object.Identity{Kind: "namespace", Name: "ns1"},
		},
		"namespace without metadata": {
			kind:        Namespace,
			params:      object.Document{},
			lookupError: true,
		},
		"load balancer": {
			kind: HTTPLoadBalancer,
			params: object.Document{"metadata": map[string]interface{}{
				"name": "lb1", "namespace": "default",
			}},
			expected: object.Identity{Kind: "http_loadbalancer", Namespace: "default", Name: "lb1"},
		},
		"load balancer without namespace": {
			kind:        HTTPLoadBalancer,
			params:      object.Document{"metadata": map[string]interface{}{"name": "lb1"}},
			lookupError: true,
		},
		"load balancer with empty namespace": {
			kind: HTTPLoadBalancer,
			params: object.Document{"metadata": map[string]interface{}{
				"name": "lb1", "namespace": "",
			}},
			isError: true,
		},
		"stored object": {
			kind: StoredObject,
			params: object.Document{
				"namespace": "shared", "object_type": "swagger", "name": "api",
			},
			expected: object.Identity{Kind: "stored_object", Namespace: "shared", ObjectType: "swagger", Name: "api"},
		},
		"stored object without type": {
			kind:        StoredObject,
			params:      object.Document{"namespace": "shared", "name": "api"},
			lookupError: true,
		},
		"tenant settings": {
			kind:     TenantSettings,
			params:   object.Document{},
			expected: object.Identity{Kind: "tenant_settings"},
		},
	}

	for tn, tc := range testCases {
		t.Run(tn, func(t *testing.T) {
			desired, err := object.NewParameters(tc.params, tc.kind.Schema)
			require.NoError(t, err)

			id, err := tc.kind.Identity(desired)
			if tc.lookupError {
				var lookupErr *object.LookupError
				assert.ErrorAs(t, err, &lookupErr)
				return
			}
			if tc.isError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, id)
		})
	}
}

func TestEndpoints(t *testing.T) {
	ns := object.Identity{Kind: "namespace", Name: "ns1"}
	lb := object.Identity{Kind: "http_loadbalancer", Namespace: "default", Name: "lb1"}
	so := object.Identity{Kind: "stored_object", Namespace: "shared", ObjectType: "swagger", Name: "api"}

	assert.Equal(t, "GET", Namespace.Endpoints.Read.Method)
	assert.Equal(t, "/api/web/namespaces/ns1", Namespace.Endpoints.Read.Path(ns))
	assert.Equal(t, "POST", Namespace.Endpoints.Create.Method)
	assert.Equal(t, "/api/web/namespaces", Namespace.Endpoints.Create.Path(ns))
	assert.Nil(t, Namespace.Endpoints.Replace)
	assert.Equal(t, "POST", Namespace.Endpoints.Delete.Method)
	assert.Equal(t, "/api/web/namespaces/ns1/cascade_delete", Namespace.Endpoints.Delete.Path(ns))

	assert.Equal(t, "/api/config/namespaces/default/http_loadbalancers/lb1", HTTPLoadBalancer.Endpoints.Read.Path(lb))
	assert.Equal(t, "/api/config/namespaces/default/http_loadbalancers", HTTPLoadBalancer.Endpoints.Create.Path(lb))
	assert.Equal(t, "PUT", HTTPLoadBalancer.Endpoints.Replace.Method)
	assert.Equal(t, "DELETE", HTTPLoadBalancer.Endpoints.Delete.Method)

	assert.Nil(t, StoredObject.Endpoints.Read)
	assert.Equal(t, "PUT", StoredObject.Endpoints.Create.Method)
	assert.Equal(t, "/api/object_store/namespaces/shared/stored_objects/swagger/api", StoredObject.Endpoints.Create.Path(so))

	assert.Nil(t, TenantSettings.Endpoints.Create)
	assert.Equal(t, "/api/web/namespaces/system/tenant/settings",
		TenantSettings.Endpoints.Read.Path(object.Identity{Kind: "tenant_settings"}))
}

func TestHasMarker(t *testing.T) {
	assert.True(t, Namespace.HasMarker(object.Document{"metadata": map[string]interface{}{"name": "ns1"}}))
	assert.False(t, Namespace.HasMarker(object.Document{"metadata": map[string]interface{}{}}))
	assert.False(t, Namespace.HasMarker(object.Document{"metadata": nil}))
	assert.False(t, Namespace.HasMarker(object.Document{"items": []interface{}{}}))
	assert.True(t, TenantSettings.HasMarker(object.Document{"name": "acme"}))
	assert.False(t, TenantSettings.HasMarker(object.Document{"name": ""}))
	assert.False(t, TenantSettings.HasMarker(nil))
}

func TestIsUpdatable(t *testing.T) {
	assert.True(t, HTTPLoadBalancer.IsUpdatable("spec"))
	assert.False(t, HTTPLoadBalancer.IsUpdatable("status"))
	assert.True(t, StoredObject.IsUpdatable("string_value"))
	assert.False(t, TenantSettings.IsUpdatable("name"))
}

func TestInitializersSettled(t *testing.T) {
	testCases := map[string]struct {
		doc      object.Document
		expected bool
		isError  bool
	}{
		"no system metadata": {
			doc:      object.Document{"metadata": map[string]interface{}{"name": "ns1"}},
			expected: false,
		},
		"empty initializers": {
			doc: object.Document{"system_metadata": map[string]interface{}{
				"initializers": map[string]interface{}{},
			}},
			expected: false,
		},
		"pending initializers": {
			doc: object.Document{"system_metadata": map[string]interface{}{
				"initializers": map[string]interface{}{
					"pending": []interface{}{map[string]interface{}{"name": "ves.io/setup"}},
				},
			}},
			expected: false,
		},
		"settled": {
			doc: object.Document{"system_metadata": map[string]interface{}{
				"initializers": map[string]interface{}{"pending": []interface{}{}},
			}},
			expected: true,
		},
		"settled without pending list": {
			doc: object.Document{"system_metadata": map[string]interface{}{
				"initializers": map[string]interface{}{"result": map[string]interface{}{}},
			}},
			expected: true,
		},
		"malformed initializers": {
			doc: object.Document{"system_metadata": map[string]interface{}{
				"initializers": "done",
			}},
			isError: true,
		},
	}

	for tn, tc := range testCases {
		t.Run(tn, func(t *testing.T) {
			ready, err := Namespace.Ready(tc.doc)
			if tc.isError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ready)
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	params := object.Document{"metadata": map[string]interface{}{"name": "ns1"}}
	out, err := Namespace.ApplyDefaults(params)
	require.NoError(t, err)
	assert.Equal(t, object.Document{
		"metadata": map[string]interface{}{"name": "ns1"},
		"spec":     map[string]interface{}{},
	}, out)
	assert.NotContains(t, params, "spec")

	out, err = Namespace.ApplyDefaults(object.Document{"spec": nil})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{}, out["spec"])

	out, err = Namespace.ApplyDefaults(object.Document{"spec": map[string]interface{}{"x": "y"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"x": "y"}, out["spec"])

	out, err = HTTPLoadBalancer.ApplyDefaults(nil)
	require.NoError(t, err)
	assert.Equal(t, object.Document{}, out)

	assert.True(t, HTTPLoadBalancer.Namespaced())
	assert.True(t, StoredObject.Namespaced())
	assert.False(t, Namespace.Namespaced())
}
