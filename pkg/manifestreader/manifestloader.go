// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package manifestreader

import (
	"io"
)

// ManifestLoader is an interface for building the reader of a
// manifest source.
type ManifestLoader interface {
	ManifestReader(reader io.Reader, path string) (ManifestReader, error)
}

// manifestLoader implements the ManifestLoader interface.
type manifestLoader struct {
	readerOptions ReaderOptions
}

// NewManifestLoader returns an instance of manifestLoader. A non-empty
// namespace is set on namespaced objects without one, and with
// enforceNamespace it must match the namespace of every such object.
func NewManifestLoader(namespace string, enforceNamespace bool) ManifestLoader {
	return &manifestLoader{
		readerOptions: ReaderOptions{
			Namespace:        namespace,
			EnforceNamespace: enforceNamespace,
		},
	}
}

func (f *manifestLoader) ManifestReader(reader io.Reader, path string) (ManifestReader, error) {
	return mReader(path, reader, f.readerOptions), nil
}

// mReader returns the ManifestReader based in the input args
func mReader(path string, reader io.Reader, readerOptions ReaderOptions) ManifestReader {
	var mReader ManifestReader
	// Read from stdin if "-" is specified, similar to kubectl
	if path == "-" {
		mReader = &StreamManifestReader{
			ReaderName:    "stdin",
			Reader:        reader,
			ReaderOptions: readerOptions,
		}
	} else {
		mReader = &PathManifestReader{
			Path:          path,
			ReaderOptions: readerOptions,
		}
	}
	return mReader
}
