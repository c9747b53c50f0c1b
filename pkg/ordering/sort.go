// Copyright 2020 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package ordering

import (
	"sort"

	"github.com/yoctoalex/xcctl/pkg/manifestreader"
)

// SortableManifests orders manifests so that objects come after the
// containers they live in. Manifests of the same rank keep their input
// order when sorted with sort.Stable.
type SortableManifests []manifestreader.Manifest

var _ sort.Interface = SortableManifests{}

func (a SortableManifests) Len() int      { return len(a) }
func (a SortableManifests) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a SortableManifests) Less(i, j int) bool {
	return getIndexByKind(a[i].Kind.Name) < getIndexByKind(a[j].Kind.Name)
}

var kind2index = computeKind2index()

func computeKind2index() map[string]int {
	// Namespaces must exist before anything is created in them.
	orderFirst := []string{
		"namespace",
	}
	kind2indexResult := make(map[string]int, len(orderFirst))
	for i, n := range orderFirst {
		kind2indexResult[n] = -len(orderFirst) + i
	}
	return kind2indexResult
}

// getIndexByKind returns the index of the kind respecting the order
func getIndexByKind(kind string) int {
	return kind2index[kind]
}

// SortManifests returns a sorted copy of manifests.
func SortManifests(manifests []manifestreader.Manifest) []manifestreader.Manifest {
	sorted := make(SortableManifests, len(manifests))
	copy(sorted, manifests)
	sort.Stable(sorted)
	return sorted
}
