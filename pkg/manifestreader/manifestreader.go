// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package manifestreader

import (
	"github.com/yoctoalex/xcctl/pkg/kind"
	"github.com/yoctoalex/xcctl/pkg/object"
)

// Manifest is the desired state of one object.
type Manifest struct {
	Kind *kind.Kind
	// State is the target state. It is never empty once read.
	State  kind.State
	Patch  bool
	Wait   bool
	Params object.Document
	// Source names the file or stream the manifest was read from.
	Source string
}

// ManifestReader defines the interface for reading a set
// of manifests.
type ManifestReader interface {
	Read() ([]Manifest, error)
}

// ReaderOptions defines the shared inputs for the different
// implementations of the ManifestReader interface.
type ReaderOptions struct {
	// Namespace is set on namespaced objects that do not carry one.
	Namespace string
	// EnforceNamespace rejects objects whose namespace differs from
	// Namespace.
	EnforceNamespace bool
}
