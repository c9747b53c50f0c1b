// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package manifestreader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"k8s.io/apimachinery/pkg/util/sets"
)

var manifestExtensions = sets.NewString(".yaml", ".yml", ".json")

// PathManifestReader reads manifests from the provided path. A directory
// is walked recursively in lexical order and every file with a YAML or
// JSON extension is read.
type PathManifestReader struct {
	Path string

	ReaderOptions
}

// Read reads the manifests from the file or directory.
func (p *PathManifestReader) Read() ([]Manifest, error) {
	info, err := os.Stat(p.Path)
	if err != nil {
		return nil, err
	}

	var files []string
	if info.IsDir() {
		err = filepath.WalkDir(p.Path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && manifestExtensions.Has(filepath.Ext(path)) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		files = []string{p.Path}
	}

	var manifests []Manifest
	for _, file := range files {
		ms, err := readFile(file)
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, ms...)
	}
	if len(manifests) == 0 {
		return nil, fmt.Errorf("no manifests found in %s", p.Path)
	}

	err = setNamespaces(manifests, p.Namespace, p.EnforceNamespace)
	if err != nil {
		return nil, err
	}
	return manifests, nil
}

func readFile(path string) ([]Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeManifests(f, path)
}
