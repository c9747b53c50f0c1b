// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package manifestreader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	utilyaml "k8s.io/apimachinery/pkg/util/yaml"
	"sigs.k8s.io/yaml"

	"github.com/yoctoalex/xcctl/pkg/kind"
	"github.com/yoctoalex/xcctl/pkg/object"
)

// rawManifest is the on-disk form of a Manifest.
type rawManifest struct {
	Kind   string                 `json:"kind"`
	State  string                 `json:"state,omitempty"`
	Patch  bool                   `json:"patch,omitempty"`
	Wait   bool                   `json:"wait,omitempty"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// ManifestError is returned for a document that is not a valid manifest.
type ManifestError struct {
	Source string
	Index  int
	Err    error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("%s: document %d: %v", e.Source, e.Index, e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// decodeManifests splits a YAML or JSON stream into documents and parses
// each one. Empty documents are skipped.
func decodeManifests(r io.Reader, source string) ([]Manifest, error) {
	decoder := utilyaml.NewYAMLOrJSONDecoder(r, 4096)
	var manifests []Manifest
	for index := 0; ; index++ {
		var doc yamlDocument
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return manifests, nil
			}
			return nil, &ManifestError{Source: source, Index: index, Err: err}
		}
		if doc.empty() {
			continue
		}
		m, err := parseManifest(doc.raw, source)
		if err != nil {
			return nil, &ManifestError{Source: source, Index: index, Err: err}
		}
		manifests = append(manifests, m)
	}
}

// yamlDocument captures one document of a stream as JSON.
type yamlDocument struct {
	raw []byte
}

func (d *yamlDocument) UnmarshalJSON(b []byte) error {
	d.raw = append([]byte(nil), b...)
	return nil
}

func (d *yamlDocument) empty() bool {
	trimmed := bytes.TrimSpace(d.raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func parseManifest(raw []byte, source string) (Manifest, error) {
	var rm rawManifest
	if err := yaml.UnmarshalStrict(raw, &rm); err != nil {
		return Manifest{}, err
	}
	if rm.Kind == "" {
		return Manifest{}, fmt.Errorf("kind must be set")
	}
	k, err := kind.Lookup(rm.Kind)
	if err != nil {
		return Manifest{}, err
	}
	state := k.DefaultState()
	if rm.State != "" {
		state = kind.State(rm.State)
	}
	if !k.Supports(state) {
		return Manifest{}, fmt.Errorf("state %q is not supported by kind %s", state, k.Name)
	}
	params, err := k.ApplyDefaults(rm.Params)
	if err != nil {
		return Manifest{}, err
	}
	return Manifest{
		Kind:   k,
		State:  state,
		Patch:  rm.Patch,
		Wait:   rm.Wait,
		Params: params,
		Source: source,
	}, nil
}

// setNamespaces verifies that every namespaced manifest has the namespace
// set, and if one does not, it will set the namespace to the provided
// defaultNamespace.
func setNamespaces(manifests []Manifest, defaultNamespace string, enforceNamespace bool) error {
	for i := range manifests {
		m := &manifests[i]
		if !m.Kind.Namespaced() {
			continue
		}
		ns, _, err := object.NestedString(m.Params, m.Kind.NamespacePath...)
		if err != nil {
			return &ManifestError{Source: m.Source, Index: i, Err: err}
		}
		if ns != "" {
			if enforceNamespace && ns != defaultNamespace {
				return fmt.Errorf("the namespace from the provided object %q "+
					"does not match the namespace %q. You must pass '--namespace=%s' to perform this operation",
					ns, defaultNamespace, ns)
			}
			continue
		}
		if defaultNamespace == "" {
			continue
		}
		if err := unstructured.SetNestedField(m.Params, defaultNamespace, m.Kind.NamespacePath...); err != nil {
			return &ManifestError{Source: m.Source, Index: i, Err: err}
		}
	}
	return nil
}
