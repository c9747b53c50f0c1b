// Copyright 2019 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package apply

import (
	"context"

	"github.com/yoctoalex/xcctl/pkg/apply/event"
	"github.com/yoctoalex/xcctl/pkg/gateway"
	"github.com/yoctoalex/xcctl/pkg/kind"
	"github.com/yoctoalex/xcctl/pkg/manifestreader"
	"github.com/yoctoalex/xcctl/pkg/ordering"
)

// NewDestroyer returns a new Destroyer that talks to the API through gw.
func NewDestroyer(gw gateway.Interface) *Destroyer {
	return &Destroyer{gateway: gw}
}

// Destroyer removes every object described by a set of manifests.
type Destroyer struct {
	gateway gateway.Interface
}

// Run performs the destroy step. Manifests are processed in the reverse
// of the apply order so that objects are removed before the namespaces that hold
// them. Kinds that cannot be deleted are skipped. Progress and any
// errors are reported back on the event channel.
func (d *Destroyer) Run(ctx context.Context, manifests []manifestreader.Manifest, opts RunOptions) <-chan event.Event {
	sorted := ordering.SortManifests(manifests)
	reversed := make([]manifestreader.Manifest, 0, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		reversed = append(reversed, sorted[i])
	}

	ch := make(chan event.Event)
	go func() {
		defer close(ch)
		r := &runner{gateway: d.gateway, action: event.DeleteAction, state: kind.Absent}
		r.run(ctx, reversed, opts, ch)
	}()
	return ch
}
