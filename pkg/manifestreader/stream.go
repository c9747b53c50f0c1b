// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package manifestreader

import (
	"io"
)

// StreamManifestReader reads manifests from the provided io.Reader.
type StreamManifestReader struct {
	ReaderName string
	Reader     io.Reader

	ReaderOptions
}

// Read reads the manifests from the stream.
func (r *StreamManifestReader) Read() ([]Manifest, error) {
	manifests, err := decodeManifests(r.Reader, r.ReaderName)
	if err != nil {
		return nil, err
	}

	err = setNamespaces(manifests, r.Namespace, r.EnforceNamespace)
	if err != nil {
		return nil, err
	}
	return manifests, nil
}
