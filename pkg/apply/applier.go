// Copyright 2019 The Kubernetes Authors.
// SPDX-License-Identifier: Apache-2.0

package apply

import (
	"context"

	"github.com/yoctoalex/xcctl/pkg/apply/event"
	"github.com/yoctoalex/xcctl/pkg/gateway"
	"github.com/yoctoalex/xcctl/pkg/manifestreader"
	"github.com/yoctoalex/xcctl/pkg/ordering"
)

// NewApplier returns a new Applier that talks to the API through gw.
func NewApplier(gw gateway.Interface) *Applier {
	return &Applier{gateway: gw}
}

// Applier brings every object described by a set of manifests to the
// state its manifest asks for.
type Applier struct {
	gateway gateway.Interface
}

// Run performs the apply step. Manifests are processed one at a time,
// namespaces first and everything else in input order. This happens asynchronously; progress and any errors are
// reported back on the event channel, which is closed when the run ends.
func (a *Applier) Run(ctx context.Context, manifests []manifestreader.Manifest, opts RunOptions) <-chan event.Event {
	ch := make(chan event.Event)
	go func() {
		defer close(ch)
		r := &runner{gateway: a.gateway, action: event.ApplyAction}
		r.run(ctx, ordering.SortManifests(manifests), opts, ch)
	}()
	return ch
}
